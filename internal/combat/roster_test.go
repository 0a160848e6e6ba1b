package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbattle/internal/grid"
)

func openGrid(t *testing.T, h, w int) *grid.Grid {
	t.Helper()
	rows := make([][]grid.Tile, h)
	for r := range rows {
		rows[r] = make([]grid.Tile, w)
	}
	rows[0][0] = grid.Wall
	g, err := grid.New(rows)
	require.NoError(t, err)
	return g
}

func TestNewRosterRejectsBadPlacement(t *testing.T) {
	g := openGrid(t, 3, 3)
	tests := []struct {
		name  string
		units []Unit
	}{
		{"collision", []Unit{NewUnit(Elf, grid.Pos{R: 1, C: 1}), NewUnit(Goblin, grid.Pos{R: 1, C: 1})}},
		{"wall", []Unit{NewUnit(Elf, grid.Pos{R: 0, C: 0})}},
		{"outside", []Unit{NewUnit(Goblin, grid.Pos{R: 3, C: 1})}},
		{"negative", []Unit{NewUnit(Goblin, grid.Pos{R: -1, C: 0})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(g, tt.units)
			assert.ErrorIs(t, err, ErrInvariant)
		})
	}
}

func TestNewRosterAllowsDeadUnitsToOverlap(t *testing.T) {
	g := openGrid(t, 3, 3)
	dead := NewUnit(Goblin, grid.Pos{R: 1, C: 1})
	dead.HP = 0
	r, err := NewRoster(g, []Unit{NewUnit(Elf, grid.Pos{R: 1, C: 1}), dead})
	require.NoError(t, err)
	id, ok := r.At(grid.Pos{R: 1, C: 1})
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Equal(t, 1, r.Losses(Goblin))
}

func TestMoveInvariants(t *testing.T) {
	g := openGrid(t, 3, 3)
	r, err := NewRoster(g, []Unit{
		NewUnit(Elf, grid.Pos{R: 1, C: 1}),
		NewUnit(Goblin, grid.Pos{R: 1, C: 2}),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, r.move(0, grid.Pos{R: 1, C: 2}), ErrInvariant, "occupied")
	assert.ErrorIs(t, r.move(0, grid.Pos{R: 0, C: 0}), ErrInvariant, "wall")
	assert.ErrorIs(t, r.move(1, grid.Pos{R: 1, C: 3}), ErrInvariant, "off grid")
	assert.ErrorIs(t, r.move(0, grid.Pos{R: 2, C: 2}), ErrInvariant, "diagonal")

	require.NoError(t, r.move(0, grid.Pos{R: 2, C: 1}))
	assert.False(t, r.Occupied(grid.Pos{R: 1, C: 1}))
	id, ok := r.At(grid.Pos{R: 2, C: 1})
	require.True(t, ok)
	assert.Equal(t, 0, id)
}

func TestReadingOrderAndClone(t *testing.T) {
	g := openGrid(t, 3, 3)
	r, err := NewRoster(g, []Unit{
		NewUnit(Elf, grid.Pos{R: 2, C: 0}),
		NewUnit(Goblin, grid.Pos{R: 0, C: 2}),
		NewUnit(Goblin, grid.Pos{R: 2, C: 1}),
		NewUnit(Elf, grid.Pos{R: 0, C: 1}),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 0, 2}, r.ReadingOrder())

	cp := r.Clone()
	cp.Boost(Elf, 5)
	require.True(t, cp.damage(1, 500))
	assert.Equal(t, DefaultAttack+5, cp.Unit(0).Attack)
	assert.Equal(t, DefaultAttack, r.Unit(0).Attack)
	assert.True(t, r.Occupied(grid.Pos{R: 0, C: 2}))
	assert.False(t, cp.Occupied(grid.Pos{R: 0, C: 2}))
	assert.Equal(t, []int{3, 0, 2}, cp.ReadingOrder())
}

func TestRosterAggregates(t *testing.T) {
	g := openGrid(t, 3, 3)
	strong := NewUnit(Goblin, grid.Pos{R: 2, C: 2})
	strong.HP = 300
	weak := NewUnit(Elf, grid.Pos{R: 1, C: 1})
	weak.Attack = 2
	r, err := NewRoster(g, []Unit{weak, NewUnit(Elf, grid.Pos{R: 1, C: 2}), strong})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Alive(Elf))
	assert.Equal(t, 300, r.MaxHP(Goblin))
	assert.Equal(t, 2, r.MinAttack(Elf))
	assert.Equal(t, 700, r.HitPoints())
	assert.True(t, r.Engaged(1))
	assert.False(t, r.Engaged(0))
}
