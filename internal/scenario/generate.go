package scenario

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"gridbattle/internal/grid"
)

var ErrArenaTooSmall = errors.New("arena has too few open cells for the requested units")

type GenOptions struct {
	H, W    int
	WallPct float64 // chance that an interior cell is a wall
	Elves   int
	Goblins int
}

// Generate draws a walled arena with random interior walls and scatters
// the units over open cells. The same rng state always yields the same map.
func Generate(rng *rand.Rand, opt GenOptions) (string, error) {
	if opt.H < 3 || opt.W < 3 {
		return "", fmt.Errorf("%w: %dx%d", ErrArenaTooSmall, opt.H, opt.W)
	}
	cells := make([][]byte, opt.H)
	var open []grid.Pos
	for r := range cells {
		cells[r] = make([]byte, opt.W)
		for c := range cells[r] {
			border := r == 0 || c == 0 || r == opt.H-1 || c == opt.W-1
			if border || rng.Float64() < opt.WallPct {
				cells[r][c] = '#'
				continue
			}
			cells[r][c] = '.'
			open = append(open, grid.Pos{R: r, C: c})
		}
	}
	if len(open) < opt.Elves+opt.Goblins {
		return "", fmt.Errorf("%w: %d open, %d units", ErrArenaTooSmall, len(open), opt.Elves+opt.Goblins)
	}

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	for i, p := range open[:opt.Elves+opt.Goblins] {
		glyph := byte('E')
		if i >= opt.Elves {
			glyph = 'G'
		}
		cells[p.R][p.C] = glyph
	}

	var sb strings.Builder
	for _, row := range cells {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
