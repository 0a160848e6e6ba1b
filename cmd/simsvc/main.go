package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"gridbattle/internal/combat"
	"gridbattle/internal/config"
	"gridbattle/internal/scenario"
	"gridbattle/internal/util"
)

func main() {
	var cfgPath, mapPath, out string
	var seed int64
	var workers, gen, genSize, genUnits int
	var boost, trace, record bool
	flag.StringVar(&cfgPath, "config", "", "scenario YAML file")
	flag.StringVar(&mapPath, "map", "", "map text file (used when -config is not given)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.BoolVar(&boost, "boost", false, "also search the minimum flawless attack boost")
	flag.IntVar(&workers, "workers", 0, "concurrent battles for -boost and -gen (0 = scenario default)")
	flag.BoolVar(&trace, "trace", false, "print the board after every round to stderr")
	flag.BoolVar(&record, "log", false, "save the full event log in the output")
	flag.IntVar(&gen, "gen", 0, "run a batch of N generated arenas instead of a scenario")
	flag.Int64Var(&seed, "seed", 12345, "seed for -gen")
	flag.IntVar(&genSize, "gen-size", 12, "side length of generated arenas")
	flag.IntVar(&genUnits, "gen-units", 4, "units per faction in generated arenas")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if gen > 0 {
		if workers <= 0 {
			workers = 8
		}
		runBatch(ctx, gen, seed, workers, scenario.GenOptions{
			H: genSize, W: genSize, WallPct: 0.15, Elves: genUnits, Goblins: genUnits,
		}, out)
		return
	}

	sc, err := loadScenario(cfgPath, mapPath)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	if workers > 0 {
		sc.Boost.Workers = workers
	}
	g, roster, err := scenario.Build(sc)
	if err != nil {
		log.Fatalf("Failed to build scenario: %v", err)
	}
	pristine := roster.Clone()

	opts := combat.Options{Record: record, MaxRounds: sc.Rules.MaxRounds}
	if trace || sc.Trace {
		opts.Logger = log.New(os.Stderr, "", 0)
		fmt.Fprint(os.Stderr, scenario.Render(g, roster))
		opts.Emit = func(ev combat.Event) {
			if ev.Type == combat.EventRoundEnd {
				fmt.Fprintf(os.Stderr, "After %d rounds:\n%s", ev.Round, scenario.Render(g, roster))
			}
		}
	}

	res, err := combat.NewBattle(g, roster, opts).Run()
	if err != nil {
		log.Fatalf("Battle aborted: %v", err)
	}
	report := map[string]any{"battle": res}
	fmt.Printf("Battle finished. Winner=%s, Rounds=%d, HP=%d, Outcome=%d\n", res.Winner, res.Rounds, res.HitPoints, res.Outcome)

	if boost {
		f, err := combat.ParseFaction(sc.Boost.Faction)
		if err != nil {
			log.Fatalf("Bad boost faction: %v", err)
		}
		bopts := combat.BoostOptions{Workers: sc.Boost.Workers, MaxRounds: sc.Rules.MaxRounds}
		if trace || sc.Trace {
			bopts.Logger = opts.Logger
		}
		br, err := combat.FindMinimumBoost(ctx, g, pristine, f, bopts)
		if err != nil {
			log.Fatalf("Boost search failed: %v", err)
		}
		report["boost"] = br
		fmt.Printf("Minimum flawless boost for %s: +%d (attack %d). Rounds=%d, HP=%d, Outcome=%d\n",
			f, br.Boost, br.Attack, br.Result.Rounds, br.Result.HitPoints, br.Result.Outcome)
	}

	if err := os.WriteFile(out, combat.MarshalPretty(report), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", out, err)
	}
	fmt.Printf("-> %s\n", out)
}

func loadScenario(cfgPath, mapPath string) (*config.Scenario, error) {
	if cfgPath != "" {
		return config.LoadScenario(cfgPath)
	}
	if mapPath == "" {
		return nil, errors.New("one of -config or -map is required")
	}
	sc := config.Default()
	sc.MapFile = mapPath
	if err := sc.LoadMap(""); err != nil {
		return nil, err
	}
	return sc, nil
}

// runBatch plays n generated arenas on a fixed pool of workers and writes
// a win-rate summary. Arena i always uses the same derived seed.
func runBatch(ctx context.Context, n int, seed int64, workers int, gopts scenario.GenOptions, out string) {
	type stat struct {
		Wins       map[combat.Faction]int
		Stalemates int
		Failed     int
		SumRounds  int
		SumOutcome int
	}
	st := stat{Wins: map[combat.Faction]int{}}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				res, err := playGenerated(util.Derive(seed, i), gopts)

				mu.Lock()
				switch {
				case errors.Is(err, combat.ErrStalemate), errors.Is(err, combat.ErrRoundLimit):
					st.Stalemates++
				case err != nil:
					st.Failed++
					log.Printf("arena %d: %v", i, err)
				default:
					st.Wins[res.Winner]++
					st.SumRounds += res.Rounds
					st.SumOutcome += res.Outcome
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	finished := st.Wins[combat.Elf] + st.Wins[combat.Goblin]
	avg := func(sum int) float64 {
		if finished == 0 {
			return 0
		}
		return float64(sum) / float64(finished)
	}
	summary := map[string]any{
		"batch_id":    uuid.New().String(),
		"runs":        n,
		"seed":        seed,
		"elf_wins":    st.Wins[combat.Elf],
		"goblin_wins": st.Wins[combat.Goblin],
		"stalemates":  st.Stalemates,
		"failed":      st.Failed,
		"avg_rounds":  avg(st.SumRounds),
		"avg_outcome": avg(st.SumOutcome),
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", out, err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}

func playGenerated(seed int64, gopts scenario.GenOptions) (combat.Result, error) {
	text, err := scenario.Generate(util.New(seed), gopts)
	if err != nil {
		return combat.Result{}, err
	}
	g, units, err := scenario.Parse(text, scenario.DefaultStats())
	if err != nil {
		return combat.Result{}, err
	}
	r, err := combat.NewRoster(g, units)
	if err != nil {
		return combat.Result{}, err
	}
	return combat.NewBattle(g, r, combat.Options{MaxRounds: 1000}).Run()
}
