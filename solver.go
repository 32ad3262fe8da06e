package genetic_tsp

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// Solver wires seeding, ranking, selection and the generation engine into a
// single run. Persist is optional.
type Solver struct {
	Config  *RunConfig
	Persist *Persistence
}

func NewSolver(config *RunConfig, persist *Persistence) *Solver {
	return &Solver{Config: config, Persist: persist}
}

// Solve returns the best closed tour found over cities. The returned CitySet
// maps the tour's CityIDs back to coordinates in input order.
func (s *Solver) Solve(ctx context.Context, cities []City) (*Result, *CitySet, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, nil, err
	}
	cs, err := NewCitySet(cities)
	if err != nil {
		return nil, nil, err
	}

	if cs.Len() < MinEvolveCities {
		t := append(Tour(cs.IDs()), 0)
		return &Result{Tour: t, Distance: t.Distance(cs), Outcome: OutcomeTrivial}, cs, nil
	}

	seed := s.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := NewRNG(seed)
	started := time.Now()

	pop, err := SeedPopulation(cs, s.Config.PopulationSize, s.Config.Strategy, rng)
	if err != nil {
		return nil, nil, err
	}
	ranking, err := pop.Rank(cs)
	if err != nil {
		return nil, nil, err
	}
	selector := NewSelector(s.Config.Selector, rng)
	pool, err := selector.Select(pop, ranking)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Seeded %s %v tours over %s cities, mating pool of %s (best seed %.3f)",
		humanize.Comma(int64(pop.Len())), pop.Strategy, humanize.Comma(int64(cs.Len())),
		humanize.Comma(int64(len(pool))), -ranking[0].Fitness)

	engine := NewGenerationEngine(cs, s.Config.Engine, rng)

	var runID string
	if s.Persist != nil {
		run := &RunRecord{
			Seed:           seed,
			Cities:         cs.Len(),
			Strategy:       pop.Strategy.String(),
			PopulationSize: pop.Len(),
			PoolSize:       len(pool),
			Generations:    s.Config.Engine.Generations,
		}
		if err := s.Persist.StartRun(run); err != nil {
			return nil, nil, err
		}
		runID = run.ID
		engine.Recorder = s.Persist
		engine.RunID = runID
	}

	result, err := engine.Run(ctx, pool)
	if err != nil {
		return nil, nil, err
	}
	if err := result.Tour.Validate(cs.Len()); err != nil {
		return nil, nil, fmt.Errorf("best tour broke the tour invariant: %w", err)
	}

	result.Seed = seed
	result.RunID = runID
	if s.Persist != nil {
		if err := s.Persist.FinishRun(runID, result); err != nil {
			return nil, nil, err
		}
	}

	log.Printf("Run %s after %s generations in %s: best distance %.3f",
		result.Outcome, humanize.Comma(int64(result.GenerationsRun)),
		time.Since(started).Round(time.Millisecond), result.Distance)
	return result, cs, nil
}
