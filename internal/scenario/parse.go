// Package scenario turns map text and scenario configs into a grid and a
// roster, and renders a roster back to text for traces.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"gridbattle/internal/combat"
	"gridbattle/internal/config"
	"gridbattle/internal/grid"
)

var (
	ErrUnknownTile = errors.New("unknown tile")
	ErrNoUnits     = errors.New("map has no units")
)

// Stats are the starting hit points and attack power per faction.
type Stats struct {
	HitPoints map[combat.Faction]int
	Attack    map[combat.Faction]int
}

func DefaultStats() Stats {
	return Stats{
		HitPoints: map[combat.Faction]int{combat.Elf: combat.DefaultHitPoints, combat.Goblin: combat.DefaultHitPoints},
		Attack:    map[combat.Faction]int{combat.Elf: combat.DefaultAttack, combat.Goblin: combat.DefaultAttack},
	}
}

// Parse reads a map where '#' is a wall, '.' open ground, and 'E' / 'G'
// are elf and goblin units standing on open ground. Carriage returns and
// trailing blank lines are ignored.
func Parse(text string, st Stats) (*grid.Grid, []combat.Unit, error) {
	text = strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	var rows [][]grid.Tile
	var units []combat.Unit
	for r, line := range lines {
		row := make([]grid.Tile, 0, len(line))
		for c := 0; c < len(line); c++ {
			switch ch := line[c]; ch {
			case '#':
				row = append(row, grid.Wall)
			case '.':
				row = append(row, grid.Open)
			case 'E', 'G':
				f, _ := combat.ParseFaction(string(ch))
				u := combat.NewUnit(f, grid.Pos{R: r, C: c})
				if hp, ok := st.HitPoints[f]; ok && hp > 0 {
					u.HP = hp
				}
				if atk, ok := st.Attack[f]; ok && atk > 0 {
					u.Attack = atk
				}
				units = append(units, u)
				row = append(row, grid.Open)
			default:
				return nil, nil, fmt.Errorf("%w %q at row %d, col %d", ErrUnknownTile, ch, r, c)
			}
		}
		rows = append(rows, row)
	}
	g, err := grid.New(rows)
	if err != nil {
		return nil, nil, err
	}
	return g, units, nil
}

// Build parses a scenario's map with its rules and places the units.
func Build(s *config.Scenario) (*grid.Grid, *combat.Roster, error) {
	st := Stats{HitPoints: map[combat.Faction]int{}, Attack: map[combat.Faction]int{}}
	for _, f := range []combat.Faction{combat.Elf, combat.Goblin} {
		st.HitPoints[f] = s.Rules.HitPoints
		st.Attack[f] = s.Rules.AttackPower
	}
	for name, fc := range s.Factions {
		f, err := combat.ParseFaction(name)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario factions: %w", err)
		}
		if fc.HitPoints > 0 {
			st.HitPoints[f] = fc.HitPoints
		}
		if fc.AttackPower > 0 {
			st.Attack[f] = fc.AttackPower
		}
	}

	g, units, err := Parse(s.Map, st)
	if err != nil {
		return nil, nil, err
	}
	if len(units) == 0 {
		return nil, nil, ErrNoUnits
	}
	r, err := combat.NewRoster(g, units)
	if err != nil {
		return nil, nil, err
	}
	return g, r, nil
}
