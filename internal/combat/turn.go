package combat

import (
	"github.com/zyedidia/generic/mapset"

	"gridbattle/internal/grid"
)

// takeTurn runs the move phase and then the attack phase for one unit and
// reports whether either changed the board.
func (b *Battle) takeTurn(id int) (bool, error) {
	changed := false
	u := &b.roster.units[id]

	if !b.roster.Engaged(id) {
		if to, ok := b.nextStep(id); ok {
			from := u.Pos
			if err := b.roster.move(id, to); err != nil {
				return false, err
			}
			changed = true
			b.emit(Event{Round: b.rounds + 1, Type: EventMove, Payload: map[string]any{
				"id": id, "from": []int{from.R, from.C}, "to": []int{to.R, to.C},
			}})
		}
	}

	target, ok := b.pickTarget(id)
	if !ok {
		return changed, nil
	}
	t := &b.roster.units[target]
	killed := b.roster.damage(target, u.Attack)
	b.emit(Event{Round: b.rounds + 1, Type: EventHit, Payload: map[string]any{
		"attacker": id, "target": target, "dmg": u.Attack, "hp": t.HP,
	}})
	if killed {
		b.emit(Event{Round: b.rounds + 1, Type: EventKill, Payload: map[string]any{
			"attacker": id, "target": target, "faction": t.Faction.String(), "row": t.Pos.R, "col": t.Pos.C,
		}})
		b.logf("round %d: %c%d at %v is defeated", b.rounds+1, t.Faction.Glyph(), target, t.Pos)
	}
	return true, nil
}

// nextStep picks the single step unit id should take this turn.
//
// The goal is the reachable open cell next to an enemy with the smallest
// distance from the mover, ties broken by the goal's reading order. A
// second field is then grown from that goal, and the step is the mover's
// free neighbour closest to the goal, ties broken by the step's reading
// order. The two fields stay separate because their tie-breaks differ.
func (b *Battle) nextStep(id int) (grid.Pos, bool) {
	u := &b.roster.units[id]

	goals := mapset.New[grid.Pos]()
	for i := range b.roster.units {
		e := &b.roster.units[i]
		if !e.Alive() || e.Faction == u.Faction {
			continue
		}
		for _, p := range e.Pos.Neighbors() {
			if b.grid.Open(p) && !b.roster.Occupied(p) {
				goals.Put(p)
			}
		}
	}
	if goals.Size() == 0 {
		return grid.Pos{}, false
	}
	cands := make([]grid.Pos, 0, goals.Size())
	goals.Each(func(p grid.Pos) { cands = append(cands, p) })

	blockers := b.roster.BlockersFor(id)
	goal, ok := grid.Distances(b.grid, u.Pos, blockers).Nearest(cands)
	if !ok {
		return grid.Pos{}, false
	}

	var steps []grid.Pos
	for _, p := range u.Pos.Neighbors() {
		if b.grid.Open(p) && !b.roster.Occupied(p) {
			steps = append(steps, p)
		}
	}
	return grid.Distances(b.grid, goal, blockers).Nearest(steps)
}

// pickTarget returns the adjacent live enemy with the fewest hit points,
// ties broken by reading order of its position.
func (b *Battle) pickTarget(id int) (int, bool) {
	u := &b.roster.units[id]
	best := vacant
	for _, p := range u.Pos.Neighbors() {
		other, ok := b.roster.At(p)
		if !ok {
			continue
		}
		e := &b.roster.units[other]
		if e.Faction == u.Faction {
			continue
		}
		if best == vacant {
			best = other
			continue
		}
		cur := &b.roster.units[best]
		if e.HP < cur.HP || (e.HP == cur.HP && e.Pos.Less(cur.Pos)) {
			best = other
		}
	}
	return best, best != vacant
}
