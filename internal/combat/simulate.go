package combat

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"gridbattle/internal/grid"
)

type State int

const (
	Running State = iota
	GameOver
)

// Options tunes a single battle. The zero value runs silently to completion.
type Options struct {
	Record    bool        // keep every event on the Result
	Emit      func(Event) // observer called for every event, in order
	Logger    *log.Logger // text trace; nil disables it
	MaxRounds int         // 0 means no limit
}

type UnitResult struct {
	ID      int     `json:"id"`
	Faction Faction `json:"faction"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	HP      int     `json:"hp"`
	Attack  int     `json:"attack"`
	Alive   bool    `json:"alive"`
}

type Result struct {
	ID        string          `json:"id"`
	Rounds    int             `json:"rounds"`
	Winner    Faction         `json:"winner"`
	HitPoints int             `json:"hit_points"`
	Outcome   int             `json:"outcome"`
	Losses    map[Faction]int `json:"losses"`
	Units     []UnitResult    `json:"units"`
	Events    []Event         `json:"events,omitempty"`
}

// Flawless reports whether f won without losing a single unit.
func (r Result) Flawless(f Faction) bool { return r.Winner == f && r.Losses[f] == 0 }

// Battle plays rounds over a roster it owns exclusively until one
// faction has no live units left.
type Battle struct {
	ID     string
	grid   *grid.Grid
	roster *Roster
	opts   Options

	state  State
	rounds int
	winner Faction
	events []Event
}

func NewBattle(g *grid.Grid, r *Roster, opts Options) *Battle {
	return &Battle{ID: uuid.New().String(), grid: g, roster: r, opts: opts}
}

func (b *Battle) Roster() *Roster { return b.roster }
func (b *Battle) State() State    { return b.state }
func (b *Battle) Rounds() int     { return b.rounds }

func (b *Battle) emit(ev Event) {
	if b.opts.Record {
		b.events = append(b.events, ev)
	}
	if b.opts.Emit != nil {
		b.opts.Emit(ev)
	}
}

func (b *Battle) logf(format string, args ...any) {
	if b.opts.Logger != nil {
		b.opts.Logger.Printf(format, args...)
	}
}

// Run plays the battle to the end. An invariant violation, a stalemate
// or the round limit abort it with an error and no result.
func (b *Battle) Run() (Result, error) {
	if b.state == GameOver {
		return b.result(), nil
	}
	if b.rounds == 0 {
		for _, u := range b.roster.units {
			b.emit(Event{Round: 0, Type: EventSpawn, Payload: map[string]any{
				"id": u.ID, "faction": u.Faction.String(), "row": u.Pos.R, "col": u.Pos.C,
				"hp": u.HP, "attack": u.Attack,
			}})
		}
		b.logf("battle %s: %d elves vs %d goblins on %dx%d",
			b.ID, b.roster.Alive(Elf), b.roster.Alive(Goblin), b.grid.H, b.grid.W)
	}

	for b.state == Running {
		changed, err := b.playRound()
		if err != nil {
			return Result{}, err
		}
		if b.state == GameOver {
			break
		}
		b.rounds++
		b.emit(Event{Round: b.rounds, Type: EventRoundEnd, Payload: map[string]any{
			"units": b.liveSummary(),
		}})
		b.logf("after round %d: %v", b.rounds, b.liveSummary())
		if !changed {
			return Result{}, fmt.Errorf("%w (after %d rounds)", ErrStalemate, b.rounds)
		}
		if b.opts.MaxRounds > 0 && b.rounds >= b.opts.MaxRounds {
			return Result{}, fmt.Errorf("%w (%d rounds)", ErrRoundLimit, b.rounds)
		}
	}

	res := b.result()
	b.emit(Event{Round: b.rounds, Type: EventGameOver, Payload: map[string]any{
		"winner": res.Winner.String(), "rounds": res.Rounds, "hit_points": res.HitPoints, "outcome": res.Outcome,
	}})
	b.logf("battle %s over: %s win after %d full rounds with %d hp left (outcome %d)",
		b.ID, res.Winner, res.Rounds, res.HitPoints, res.Outcome)
	if b.opts.Record {
		res.Events = b.events
	}
	return res, nil
}

// playRound gives every unit alive at the start of the round one turn in
// reading order. The order is fixed up front; units killed before their
// turn are skipped. The battle ends as soon as an acting unit finds no
// enemies, and that partial round is not counted.
func (b *Battle) playRound() (bool, error) {
	changed := false
	for _, id := range b.roster.ReadingOrder() {
		u := &b.roster.units[id]
		if !u.Alive() {
			continue
		}
		if b.roster.Alive(u.Faction.Opponent()) == 0 {
			b.state = GameOver
			b.winner = u.Faction
			return changed, nil
		}
		acted, err := b.takeTurn(id)
		if err != nil {
			return false, fmt.Errorf("round %d, unit %d: %w", b.rounds+1, id, err)
		}
		changed = changed || acted
	}
	return changed, nil
}

func (b *Battle) liveSummary() []string {
	var out []string
	for _, id := range b.roster.ReadingOrder() {
		u := &b.roster.units[id]
		out = append(out, fmt.Sprintf("%c(%d)", u.Faction.Glyph(), u.HP))
	}
	return out
}

func (b *Battle) result() Result {
	hp := b.roster.HitPoints()
	res := Result{
		ID:        b.ID,
		Rounds:    b.rounds,
		Winner:    b.winner,
		HitPoints: hp,
		Outcome:   b.rounds * hp,
		Losses: map[Faction]int{
			Elf:    b.roster.Losses(Elf),
			Goblin: b.roster.Losses(Goblin),
		},
	}
	for _, u := range b.roster.units {
		res.Units = append(res.Units, UnitResult{
			ID: u.ID, Faction: u.Faction, Row: u.Pos.R, Col: u.Pos.C,
			HP: u.HP, Attack: u.Attack, Alive: u.Alive(),
		})
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
