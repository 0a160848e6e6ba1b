package grid

import "fmt"

// Pos is a cell coordinate: R is the row, C the column.
type Pos struct{ R, C int }

// dirs lists the 4-connected offsets in reading order: up, left, right, down.
var dirs = [4]Pos{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

func (p Pos) Add(d Pos) Pos { return Pos{p.R + d.R, p.C + d.C} }

// Less reports whether p comes before q in reading order.
func (p Pos) Less(q Pos) bool {
	if p.R != q.R {
		return p.R < q.R
	}
	return p.C < q.C
}

// Neighbors returns the four orthogonal neighbours of p in reading order.
// Out-of-grid positions are included; callers filter with Grid.Open.
func (p Pos) Neighbors() [4]Pos {
	var out [4]Pos
	for i, d := range dirs {
		out[i] = p.Add(d)
	}
	return out
}

// Adjacent reports whether q is one orthogonal step from p.
func (p Pos) Adjacent(q Pos) bool { return manhattan(p, q) == 1 }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.R, p.C) }

func manhattan(a, b Pos) int {
	dr := a.R - b.R
	if dr < 0 {
		dr = -dr
	}
	dc := a.C - b.C
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
