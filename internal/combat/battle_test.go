package combat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridbattle/internal/combat"
	"gridbattle/internal/grid"
	"gridbattle/internal/scenario"
)

var fixtures = []struct {
	name    string
	board   string
	rounds  int
	hp      int
	winner  combat.Faction
	boost   int
	bRounds int
	bHP     int
}{
	{"arena-a", `
#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######`, 47, 590, combat.Goblin, 12, 29, 172},
	{"arena-b", `
#######
#G..#E#
#E#E.E#
#G.##.#
#...#E#
#...E.#
#######`, 37, 982, combat.Elf, -1, 0, 0},
	{"arena-c", `
#######
#E..EG#
#.#G.E#
#E.##E#
#G..#.#
#..E#.#
#######`, 46, 859, combat.Elf, 1, 33, 948},
	{"arena-d", `
#######
#E.G#.#
#.#G..#
#G.#.G#
#G..#.#
#...E.#
#######`, 35, 793, combat.Goblin, 12, 37, 94},
	{"arena-e", `
#######
#.E...#
#.#..G#
#.###.#
#E#G#G#
#...#G#
#######`, 54, 536, combat.Goblin, 9, 39, 166},
	{"arena-f", `
#########
#G......#
#.E.#...#
#..##..G#
#...##..#
#...#...#
#.G...G.#
#.....G.#
#########`, 20, 937, combat.Goblin, 31, 30, 38},
}

func load(t *testing.T, board string, st scenario.Stats) (*grid.Grid, *combat.Roster) {
	t.Helper()
	g, units, err := scenario.Parse(strings.TrimPrefix(board, "\n"), st)
	require.NoError(t, err)
	r, err := combat.NewRoster(g, units)
	require.NoError(t, err)
	return g, r
}

func TestBattleOutcomes(t *testing.T) {
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			g, r := load(t, fx.board, scenario.DefaultStats())
			res, err := combat.NewBattle(g, r, combat.Options{}).Run()
			require.NoError(t, err)
			assert.Equal(t, fx.rounds, res.Rounds)
			assert.Equal(t, fx.hp, res.HitPoints)
			assert.Equal(t, fx.rounds*fx.hp, res.Outcome)
			assert.Equal(t, fx.winner, res.Winner)
			assert.Zero(t, r.Alive(fx.winner.Opponent()))
		})
	}
}

func TestMinimumBoost(t *testing.T) {
	for _, fx := range fixtures {
		if fx.boost < 0 {
			continue
		}
		t.Run(fx.name, func(t *testing.T) {
			g, r := load(t, fx.board, scenario.DefaultStats())
			br, err := combat.FindMinimumBoost(context.Background(), g, r, combat.Elf, combat.BoostOptions{Workers: 4})
			require.NoError(t, err)
			assert.Equal(t, fx.boost, br.Boost)
			assert.Equal(t, combat.DefaultAttack+fx.boost, br.Attack)
			assert.Equal(t, fx.bRounds, br.Result.Rounds)
			assert.Equal(t, fx.bHP, br.Result.HitPoints)
			assert.True(t, br.Result.Flawless(combat.Elf))

			// the roster handed in is left untouched
			assert.Equal(t, combat.DefaultAttack, r.MinAttack(combat.Elf))

			// one less is not enough
			below := r.Clone()
			below.Boost(combat.Elf, fx.boost-1)
			res, err := combat.NewBattle(g, below, combat.Options{}).Run()
			require.NoError(t, err)
			assert.False(t, res.Flawless(combat.Elf))
		})
	}
}

func TestMinimumBoostIsIndependentOfWorkers(t *testing.T) {
	fx := fixtures[5]
	for _, workers := range []int{1, 3, 16} {
		g, r := load(t, fx.board, scenario.DefaultStats())
		br, err := combat.FindMinimumBoost(context.Background(), g, r, combat.Elf, combat.BoostOptions{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, fx.boost, br.Boost, "workers=%d", workers)
	}
}

func TestMinimumBoostGivesUp(t *testing.T) {
	// The goblin reads first and kills the frail elf before it can swing.
	st := scenario.DefaultStats()
	st.HitPoints[combat.Elf] = 3
	g, r := load(t, "#####\n#GE.#\n#####\n", st)

	_, err := combat.FindMinimumBoost(context.Background(), g, r, combat.Elf, combat.BoostOptions{Workers: 8})
	assert.ErrorIs(t, err, combat.ErrNoFlawlessVictory)
}

func TestMinimumBoostHonoursCancellation(t *testing.T) {
	g, r := load(t, fixtures[0].board, scenario.DefaultStats())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := combat.FindMinimumBoost(ctx, g, r, combat.Elf, combat.BoostOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMovementRounds(t *testing.T) {
	start := `
#########
#G..G..G#
#.......#
#.......#
#G..E..G#
#.......#
#.......#
#G..G..G#
#########`
	want := map[int]string{
		1: `
#########
#.G...G.#
#...G...#
#...E..G#
#.G.....#
#.......#
#G..G..G#
#.......#
#########`,
		2: `
#########
#..G.G..#
#...G...#
#.G.E.G.#
#.......#
#G..G..G#
#.......#
#.......#
#########`,
		3: `
#########
#.......#
#..GGG..#
#..GEG..#
#G..G...#
#......G#
#.......#
#.......#
#########`,
	}
	for rounds := 1; rounds <= 3; rounds++ {
		g, r := load(t, start, scenario.DefaultStats())
		_, err := combat.NewBattle(g, r, combat.Options{MaxRounds: rounds}).Run()
		require.ErrorIs(t, err, combat.ErrRoundLimit)
		assert.Equal(t, strings.TrimPrefix(want[rounds], "\n")+"\n", boardOnly(scenario.Render(g, r)), "after %d rounds", rounds)
	}
}

func TestEveryMoveIsOneStepOncePerRound(t *testing.T) {
	g, r := load(t, fixtures[5].board, scenario.DefaultStats())
	res, err := combat.NewBattle(g, r, combat.Options{Record: true}).Run()
	require.NoError(t, err)

	moved := map[[2]int]bool{}
	for _, ev := range res.Events {
		if ev.Type != combat.EventMove {
			continue
		}
		from := ev.Payload["from"].([]int)
		to := ev.Payload["to"].([]int)
		a := grid.Pos{R: from[0], C: from[1]}
		b := grid.Pos{R: to[0], C: to[1]}
		assert.True(t, a.Adjacent(b), "move %v -> %v", a, b)

		key := [2]int{ev.Round, ev.Payload["id"].(int)}
		assert.False(t, moved[key], "unit %d moved twice in round %d", key[1], key[0])
		moved[key] = true
	}
	assert.NotEmpty(t, moved)
}

// boardOnly strips the per-row hit point suffix from Render output.
func boardOnly(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		if j := strings.Index(l, " "); j >= 0 {
			lines[i] = l[:j]
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
