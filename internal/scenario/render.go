package scenario

import (
	"fmt"
	"strings"

	"gridbattle/internal/combat"
	"gridbattle/internal/grid"
)

// Render draws the board with live units, followed on each row by the
// hit points of that row's units in reading order, e.g. "#G.E#   G(200), E(197)".
func Render(g *grid.Grid, r *combat.Roster) string {
	var sb strings.Builder
	for row := 0; row < g.H; row++ {
		var hp []string
		for col := 0; col < g.W; col++ {
			p := grid.Pos{R: row, C: col}
			if id, ok := r.At(p); ok {
				u := r.Unit(id)
				sb.WriteByte(u.Faction.Glyph())
				hp = append(hp, fmt.Sprintf("%c(%d)", u.Faction.Glyph(), u.HP))
				continue
			}
			if g.TileAt(p) == grid.Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if len(hp) > 0 {
			sb.WriteString("   ")
			sb.WriteString(strings.Join(hp, ", "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
