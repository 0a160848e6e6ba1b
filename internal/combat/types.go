package combat

import (
	"errors"
	"fmt"
	"strings"

	"gridbattle/internal/grid"
)

const (
	DefaultHitPoints = 200
	DefaultAttack    = 3
)

type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventSpawn    = "Spawn"
	EventMove     = "Move"
	EventHit      = "Hit"
	EventKill     = "Kill"
	EventRoundEnd = "RoundEnd"
	EventGameOver = "GameOver"
)

// Faction is one of the two opposing sides.
type Faction uint8

const (
	Elf Faction = iota
	Goblin
)

var ErrUnknownFaction = errors.New("unknown faction")

func (f Faction) String() string {
	if f == Elf {
		return "elf"
	}
	return "goblin"
}

// Glyph is the map character for a unit of this faction.
func (f Faction) Glyph() byte {
	if f == Elf {
		return 'E'
	}
	return 'G'
}

func (f Faction) Opponent() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// ParseFaction accepts a faction name or its map glyph, in any case.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elf", "elves", "e":
		return Elf, nil
	case "goblin", "goblins", "g":
		return Goblin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFaction, s)
}

func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Faction) UnmarshalText(b []byte) error {
	v, err := ParseFaction(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Unit is a single combatant. ID is its slot in the roster and never changes.
type Unit struct {
	ID      int
	Faction Faction
	Pos     grid.Pos
	HP      int
	Attack  int
}

// NewUnit returns a unit with the default hit points and attack power.
func NewUnit(f Faction, p grid.Pos) Unit {
	return Unit{Faction: f, Pos: p, HP: DefaultHitPoints, Attack: DefaultAttack}
}

func (u *Unit) Alive() bool { return u.HP > 0 }
