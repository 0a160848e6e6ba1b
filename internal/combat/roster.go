package combat

import (
	"fmt"
	"sort"

	"gridbattle/internal/grid"
)

const vacant = -1

// Roster owns every unit of one battle. Dead units stay in place so ids
// remain valid; they are simply skipped by every query.
type Roster struct {
	grid  *grid.Grid
	units []Unit
	occ   []int // cell index -> live unit id, vacant when empty
}

// NewRoster places units on g. Unit ids are reassigned to slice order.
// A unit off the grid, on a wall, or on another live unit's cell is an
// ErrInvariant.
func NewRoster(g *grid.Grid, units []Unit) (*Roster, error) {
	r := &Roster{
		grid:  g,
		units: make([]Unit, len(units)),
		occ:   make([]int, g.Cells()),
	}
	for i := range r.occ {
		r.occ[i] = vacant
	}
	for i, u := range units {
		u.ID = i
		r.units[i] = u
		if !u.Alive() {
			continue
		}
		if err := r.checkFree(i, u.Pos); err != nil {
			return nil, err
		}
		r.occ[g.Index(u.Pos)] = i
	}
	return r, nil
}

// Clone returns an independent copy sharing only the immutable grid.
func (r *Roster) Clone() *Roster {
	cp := &Roster{
		grid:  r.grid,
		units: make([]Unit, len(r.units)),
		occ:   make([]int, len(r.occ)),
	}
	copy(cp.units, r.units)
	copy(cp.occ, r.occ)
	return cp
}

func (r *Roster) Len() int { return len(r.units) }

func (r *Roster) Unit(id int) Unit { return r.units[id] }

// Units returns a snapshot of every unit, dead ones included.
func (r *Roster) Units() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// At returns the live unit standing on p, if any.
func (r *Roster) At(p grid.Pos) (int, bool) {
	if !r.grid.InBounds(p) {
		return vacant, false
	}
	id := r.occ[r.grid.Index(p)]
	return id, id != vacant
}

func (r *Roster) Occupied(p grid.Pos) bool {
	_, ok := r.At(p)
	return ok
}

// BlockersFor treats every live unit except self as an obstacle.
func (r *Roster) BlockersFor(self int) grid.Blocker {
	return grid.BlockerFunc(func(p grid.Pos) bool {
		id, ok := r.At(p)
		return ok && id != self
	})
}

// Alive counts live units of faction f.
func (r *Roster) Alive(f Faction) int {
	n := 0
	for i := range r.units {
		if r.units[i].Alive() && r.units[i].Faction == f {
			n++
		}
	}
	return n
}

// Losses counts dead units of faction f.
func (r *Roster) Losses(f Faction) int {
	n := 0
	for i := range r.units {
		if !r.units[i].Alive() && r.units[i].Faction == f {
			n++
		}
	}
	return n
}

// HitPoints sums the hit points of all live units.
func (r *Roster) HitPoints() int {
	hp := 0
	for i := range r.units {
		if r.units[i].Alive() {
			hp += r.units[i].HP
		}
	}
	return hp
}

// ReadingOrder returns the ids of live units sorted by position.
func (r *Roster) ReadingOrder() []int {
	var ids []int
	for i := range r.units {
		if r.units[i].Alive() {
			ids = append(ids, i)
		}
	}
	sort.Slice(ids, func(a, b int) bool {
		return r.units[ids[a]].Pos.Less(r.units[ids[b]].Pos)
	})
	return ids
}

// Engaged reports whether unit id stands next to a live enemy.
func (r *Roster) Engaged(id int) bool {
	u := &r.units[id]
	for _, p := range u.Pos.Neighbors() {
		if other, ok := r.At(p); ok && r.units[other].Faction != u.Faction {
			return true
		}
	}
	return false
}

// Boost raises the attack power of every unit of faction f.
func (r *Roster) Boost(f Faction, amount int) {
	for i := range r.units {
		if r.units[i].Faction == f {
			r.units[i].Attack += amount
		}
	}
}

// MaxHP is the largest hit point total among live units of faction f.
func (r *Roster) MaxHP(f Faction) int {
	m := 0
	for i := range r.units {
		if r.units[i].Alive() && r.units[i].Faction == f && r.units[i].HP > m {
			m = r.units[i].HP
		}
	}
	return m
}

// MinAttack is the weakest attack power among live units of faction f.
func (r *Roster) MinAttack(f Faction) int {
	m, seen := 0, false
	for i := range r.units {
		u := &r.units[i]
		if u.Alive() && u.Faction == f && (!seen || u.Attack < m) {
			m, seen = u.Attack, true
		}
	}
	return m
}

// move steps unit id into the adjacent cell to.
func (r *Roster) move(id int, to grid.Pos) error {
	u := &r.units[id]
	if !u.Alive() {
		return fmt.Errorf("%w: dead unit %d asked to move", ErrInvariant, id)
	}
	if !u.Pos.Adjacent(to) {
		return fmt.Errorf("%w: unit %d cannot step %v -> %v", ErrInvariant, id, u.Pos, to)
	}
	if err := r.checkFree(id, to); err != nil {
		return err
	}
	r.occ[r.grid.Index(u.Pos)] = vacant
	r.occ[r.grid.Index(to)] = id
	u.Pos = to
	return nil
}

// damage subtracts amount from unit id and reports whether that killed it.
// Hit points are not clamped; a dead unit frees its cell.
func (r *Roster) damage(id, amount int) bool {
	u := &r.units[id]
	if !u.Alive() {
		return false
	}
	u.HP -= amount
	if u.Alive() {
		return false
	}
	r.occ[r.grid.Index(u.Pos)] = vacant
	return true
}

func (r *Roster) checkFree(id int, p grid.Pos) error {
	if !r.grid.InBounds(p) {
		return fmt.Errorf("%w: unit %d at %v is outside the %dx%d grid", ErrInvariant, id, p, r.grid.H, r.grid.W)
	}
	if !r.grid.Open(p) {
		return fmt.Errorf("%w: unit %d at %v is on a wall", ErrInvariant, id, p)
	}
	if other := r.occ[r.grid.Index(p)]; other != vacant && other != id {
		return fmt.Errorf("%w: unit %d collides with unit %d at %v", ErrInvariant, id, other, p)
	}
	return nil
}
