// Package grid holds the static battlefield terrain and the shortest-path
// distance field used for routing units across it.
package grid

import (
	"errors"
	"fmt"
)

type Tile uint8

const (
	Open Tile = iota
	Wall
)

var (
	ErrEmpty          = errors.New("grid has no cells")
	ErrNotRectangular = errors.New("grid rows are not rectangular")
)

// Grid is an immutable H×W tile array. Nothing mutates it once a battle starts.
type Grid struct {
	H, W  int
	tiles []Tile
}

// New copies rows into a dense grid. Every row must have the same width.
func New(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	g := &Grid{H: len(rows), W: len(rows[0])}
	g.tiles = make([]Tile, 0, g.H*g.W)
	for r, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotRectangular, r, len(row), g.W)
		}
		g.tiles = append(g.tiles, row...)
	}
	return g, nil
}

func (g *Grid) InBounds(p Pos) bool { return p.R >= 0 && p.R < g.H && p.C >= 0 && p.C < g.W }

// Cells is the number of cells, the length of any dense per-cell array.
func (g *Grid) Cells() int { return g.H * g.W }

// Index maps an in-bounds position to its dense offset. Callers check InBounds first.
func (g *Grid) Index(p Pos) int { return p.R*g.W + p.C }

// TileAt returns the tile at p. Positions outside the grid read as Wall.
func (g *Grid) TileAt(p Pos) Tile {
	if !g.InBounds(p) {
		return Wall
	}
	return g.tiles[g.Index(p)]
}

func (g *Grid) Open(p Pos) bool { return g.TileAt(p) == Open }
