package genetic_tsp

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

type EngineConfig struct {
	Generations      int     `toml:"generations" yaml:"generations"`
	CarryingCapacity int     `toml:"carrying_capacity" yaml:"carrying_capacity"`
	MutationChance   float64 `toml:"mutation_chance" yaml:"mutation_chance"`
	CheckInterval    int     `toml:"check_interval" yaml:"check_interval"`
	StagnationLimit  int     `toml:"stagnation" yaml:"stagnation"`
}

func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Generations:   DefaultGenerations,
		CheckInterval: DefaultCheckInterval,
	}
}

func (c *EngineConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations %d is negative", ErrInvalidConfig, c.Generations)
	}
	if c.CarryingCapacity != 0 && c.CarryingCapacity < DefaultMinimumPoolSize {
		return fmt.Errorf("%w: carrying_capacity %d must be 0 or at least %d", ErrInvalidConfig, c.CarryingCapacity, DefaultMinimumPoolSize)
	}
	if c.MutationChance < 0 || c.MutationChance > 1 {
		return fmt.Errorf("%w: mutation_chance %v must be in [0, 1]", ErrInvalidConfig, c.MutationChance)
	}
	if c.CheckInterval < 0 || c.StagnationLimit < 0 {
		return fmt.Errorf("%w: check_interval and stagnation must not be negative", ErrInvalidConfig)
	}
	if c.StagnationLimit > 0 && c.CheckInterval == 0 {
		return fmt.Errorf("%w: stagnation needs a check_interval", ErrInvalidConfig)
	}
	return nil
}

// GenerationRecorder receives checkpoint metrics. *Persistence satisfies it.
type GenerationRecorder interface {
	RecordGeneration(runID string, m *GenerationMetrics) error
}

const (
	OutcomeComplete = "complete"
	OutcomeStagnant = "stagnant"
	OutcomeTrivial  = "trivial"
)

type Result struct {
	Tour           Tour
	Distance       float64
	GenerationsRun int
	Outcome        string
	Seed           int64
	RunID          string
	Checkpoints    []*GenerationMetrics
}

// GenerationEngine owns the mating pool for a run and evolves it one child
// per generation.
type GenerationEngine struct {
	Cities   *CitySet
	Config   *EngineConfig
	Culler   *CompetitiveCuller
	Recorder GenerationRecorder
	RunID    string
	rng      *rand.Rand
}

func NewGenerationEngine(cs *CitySet, config *EngineConfig, rng *rand.Rand) *GenerationEngine {
	ge := &GenerationEngine{
		Cities: cs,
		Config: config,
		rng:    rng,
	}
	if config.CarryingCapacity > 0 {
		ge.Culler = NewCompetitiveCuller(cs, config.CarryingCapacity)
	}
	return ge
}

// mutationChance defaults to 1/n.
func (ge *GenerationEngine) mutationChance() float64 {
	if ge.Config.MutationChance > 0 {
		return ge.Config.MutationChance
	}
	return 1 / float64(ge.Cities.Len())
}

// Step consumes the two tours at the front of the pool, breeds one child and
// re-inserts both parents at the back followed by the child. The pool grows
// by one.
func (ge *GenerationEngine) Step(pool []Tour) ([]Tour, error) {
	if len(pool) < 2 {
		return pool, fmt.Errorf("%w: mating pool holds %d tours, need 2", ErrEmptyPopulation, len(pool))
	}
	parent1, parent2 := pool[0], pool[1]
	pool = pool[2:]

	child, err := Crossover(parent1, parent2)
	if err != nil {
		return nil, err
	}
	if ge.rng.Float64() < ge.mutationChance() {
		m, err := Mutate(child, ge.rng)
		if err != nil {
			return nil, err
		}
		if DEBUG {
			log.Printf("Mutated child at positions %v", m.Positions)
		}
	}

	return append(pool, parent1, parent2, child), nil
}

// Run evolves pool for the configured number of generations, or until the
// best distance stops improving for StagnationLimit checkpoints. The pool is
// owned by the engine for the duration of the call.
func (ge *GenerationEngine) Run(ctx context.Context, pool []Tour) (*Result, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPopulation
	}

	result := &Result{Outcome: OutcomeComplete}
	bestSeen := math.Inf(1)
	stagnant := 0

	for gen := 1; gen <= ge.Config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		if pool, err = ge.Step(pool); err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}
		if ge.Culler != nil {
			pool, _ = ge.Culler.Cull(pool)
		}
		result.GenerationsRun = gen

		if !ge.isCheckpoint(gen) {
			continue
		}
		m, err := ge.checkpoint(pool, gen)
		if err != nil {
			return nil, err
		}
		result.Checkpoints = append(result.Checkpoints, m)

		if ge.Config.StagnationLimit == 0 {
			continue
		}
		if m.Best < bestSeen-1e-9 {
			bestSeen = m.Best
			stagnant = 0
			continue
		}
		stagnant++
		if stagnant >= ge.Config.StagnationLimit {
			log.Printf("Stagnation detected at generation %d: no improvement in %d consecutive checks", gen, stagnant)
			result.Outcome = OutcomeStagnant
			break
		}
	}

	best, distance, _ := Best(ge.Cities, pool)
	result.Tour = best.Clone()
	result.Distance = distance
	return result, nil
}

func (ge *GenerationEngine) isCheckpoint(gen int) bool {
	if gen == ge.Config.Generations {
		return true
	}
	return ge.Config.CheckInterval > 0 && gen%ge.Config.CheckInterval == 0
}

func (ge *GenerationEngine) checkpoint(pool []Tour, gen int) (*GenerationMetrics, error) {
	m, err := Measure(ge.Cities, pool, gen)
	if err != nil {
		return nil, fmt.Errorf("generation %d metrics: %w", gen, err)
	}
	log.WithFields(log.Fields{
		"gen":       gen,
		"pool":      m.PoolSize,
		"best":      fmt.Sprintf("%.3f", m.Best),
		"mean":      fmt.Sprintf("%.3f", m.Mean),
		"p90":       fmt.Sprintf("%.3f", m.P90),
		"diversity": fmt.Sprintf("%.3f", m.Diversity),
	}).Info("checkpoint")

	if ge.Recorder != nil {
		if err := ge.Recorder.RecordGeneration(ge.RunID, m); err != nil {
			log.Printf("Warning: failed to record generation %d: %v", gen, err)
		}
	}
	return m, nil
}

// Best returns the shortest tour in the pool, its distance and its position.
// Ties go to the lowest position.
func Best(cs *CitySet, pool []Tour) (Tour, float64, int) {
	bestIdx := -1
	var best float64
	for i, t := range pool {
		d := t.Distance(cs)
		if bestIdx < 0 || d < best {
			bestIdx, best = i, d
		}
	}
	if bestIdx < 0 {
		return nil, 0, -1
	}
	return pool[bestIdx], best, bestIdx
}
