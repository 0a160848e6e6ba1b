package combat

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"gridbattle/internal/grid"
)

type BoostOptions struct {
	Workers   int         // battles run at once; below 1 means 1
	MaxRounds int         // passed to every battle
	Logger    *log.Logger // one line per attempted boost; nil disables it
}

type BoostResult struct {
	Faction Faction `json:"faction"`
	Boost   int     `json:"boost"`
	Attack  int     `json:"attack"`
	Result  Result  `json:"result"`
}

// FindMinimumBoost returns the smallest non-negative attack boost for
// faction f that makes it win with zero casualties, together with that
// battle's result. base is never modified; every attempt runs on a clone.
//
// Boosts are tried in ascending windows of opts.Workers concurrent
// battles and the lowest satisfying boost of the first window that has
// one wins, so the answer matches a sequential scan. Once f's weakest
// unit kills any enemy in one hit, larger boosts replay the same battle,
// so the scan stops there with ErrNoFlawlessVictory.
func FindMinimumBoost(ctx context.Context, g *grid.Grid, base *Roster, f Faction, opts BoostOptions) (BoostResult, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	limit := base.MaxHP(f.Opponent()) - base.MinAttack(f)
	if limit < 0 {
		limit = 0
	}

	for start := 0; start <= limit; start += workers {
		if err := ctx.Err(); err != nil {
			return BoostResult{}, err
		}
		end := min(start+workers-1, limit)
		found := make([]*Result, end-start+1)

		grp, gctx := errgroup.WithContext(ctx)
		grp.SetLimit(workers)
		for boost := start; boost <= end; boost++ {
			boost := boost
			grp.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, ok, err := tryBoost(g, base, f, boost, opts)
				if err != nil {
					return fmt.Errorf("boost %d: %w", boost, err)
				}
				if ok {
					found[boost-start] = &res
				}
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return BoostResult{}, err
		}

		for i, res := range found {
			if res == nil {
				continue
			}
			return BoostResult{
				Faction: f,
				Boost:   start + i,
				Attack:  base.MinAttack(f) + start + i,
				Result:  *res,
			}, nil
		}
	}
	return BoostResult{}, fmt.Errorf("%w for %s (tried boosts 0..%d)", ErrNoFlawlessVictory, f, limit)
}

// tryBoost plays one boosted battle. A stalemate or round limit is a
// failed attempt, not an error; invariant violations still abort.
func tryBoost(g *grid.Grid, base *Roster, f Faction, boost int, opts BoostOptions) (Result, bool, error) {
	r := base.Clone()
	r.Boost(f, boost)
	res, err := NewBattle(g, r, Options{MaxRounds: opts.MaxRounds}).Run()
	switch {
	case errors.Is(err, ErrStalemate), errors.Is(err, ErrRoundLimit):
		if opts.Logger != nil {
			opts.Logger.Printf("boost %d: %v", boost, err)
		}
		return Result{}, false, nil
	case err != nil:
		return Result{}, false, err
	}
	if opts.Logger != nil {
		opts.Logger.Printf("boost %d: %s win, %s losses %d, outcome %d",
			boost, res.Winner, f, res.Losses[f], res.Outcome)
	}
	return res, res.Flawless(f), nil
}
