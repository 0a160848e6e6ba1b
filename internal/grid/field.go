package grid

// Blocker reports cells that are open terrain but may not be entered,
// typically because another live unit stands there.
type Blocker interface {
	Blocked(p Pos) bool
}

type BlockerFunc func(Pos) bool

func (f BlockerFunc) Blocked(p Pos) bool { return f(p) }

const unreached = -1

// Field is a dense map from cell to step count from Origin.
type Field struct {
	Origin Pos
	g      *Grid
	dist   []int
}

// Distances runs a breadth-first expansion from origin over open,
// unblocked cells with uniform step cost. The origin is always at
// distance 0 even when blocked reports it occupied. An origin outside
// the grid yields a field where nothing is reachable.
func Distances(g *Grid, origin Pos, blocked Blocker) *Field {
	f := &Field{Origin: origin, g: g, dist: make([]int, g.Cells())}
	for i := range f.dist {
		f.dist[i] = unreached
	}
	if !g.InBounds(origin) {
		return f
	}
	f.dist[g.Index(origin)] = 0

	queue := []Pos{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := f.dist[g.Index(cur)] + 1
		for _, n := range cur.Neighbors() {
			if !g.Open(n) {
				continue
			}
			idx := g.Index(n)
			if f.dist[idx] != unreached {
				continue
			}
			if blocked != nil && blocked.Blocked(n) {
				continue
			}
			f.dist[idx] = next
			queue = append(queue, n)
		}
	}
	return f
}

// At returns the distance to p and whether p is reachable at all.
func (f *Field) At(p Pos) (int, bool) {
	if !f.g.InBounds(p) {
		return 0, false
	}
	d := f.dist[f.g.Index(p)]
	if d == unreached {
		return 0, false
	}
	return d, true
}

// Nearest picks the reachable candidate closest to the origin, breaking
// distance ties by reading order of the candidate itself.
func (f *Field) Nearest(cands []Pos) (Pos, bool) {
	var best Pos
	bestDist := -1
	for _, p := range cands {
		d, ok := f.At(p)
		if !ok {
			continue
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && p.Less(best)) {
			best, bestDist = p, d
		}
	}
	return best, bestDist >= 0
}
