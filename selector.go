package genetic_tsp

import (
	"fmt"
	"math/rand"
)

// SelectorConfig sizes the mating pool. PoolSize wins when set; otherwise the
// pool is floor(population * PoolRatio).
type SelectorConfig struct {
	PoolSize   int     `toml:"pool_size" yaml:"pool_size"`
	PoolRatio  float64 `toml:"pool_ratio" yaml:"pool_ratio"`
	MaxRedraws int     `toml:"max_redraws" yaml:"max_redraws"`
}

func DefaultSelectorConfig() *SelectorConfig {
	return &SelectorConfig{
		PoolRatio:  DefaultPoolRatio,
		MaxRedraws: DefaultMaxRedraws,
	}
}

func (c *SelectorConfig) Validate() error {
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: pool_size %d is negative", ErrInvalidConfig, c.PoolSize)
	}
	if c.PoolSize == 0 && (c.PoolRatio <= 0 || c.PoolRatio > 1) {
		return fmt.Errorf("%w: pool_ratio %v must be in (0, 1]", ErrInvalidConfig, c.PoolRatio)
	}
	if c.MaxRedraws < 0 {
		return fmt.Errorf("%w: max_redraws %d is negative", ErrInvalidConfig, c.MaxRedraws)
	}
	return nil
}

// PoolSizeFor applies the sizing policy to a population. The pool always has
// room for one pair of parents.
func (c *SelectorConfig) PoolSizeFor(population int) int {
	size := c.PoolSize
	if size == 0 {
		size = int(float64(population) * c.PoolRatio)
	}
	if size < DefaultMinimumPoolSize {
		size = DefaultMinimumPoolSize
	}
	return size
}

// Selector builds mating pools with a roulette wheel over a Ranking.
type Selector struct {
	Config *SelectorConfig
	rng    *rand.Rand
}

func NewSelector(config *SelectorConfig, rng *rand.Rand) *Selector {
	return &Selector{Config: config, rng: rng}
}

// Spin runs one roulette walk and returns the ranking position it stops on,
// or -1 if the walk ran off the end.
//
// r is drawn uniformly between total and 0. The walk starts partial at total
// and subtracts each fitness in best-first order, stopping at the first
// entry where partial >= r. Because fitness is negative, partial climbs
// from total toward 0, and entry i wins with probability
// |fitness_i| / |total|.
func (s *Selector) Spin(ranking Ranking, total float64) int {
	r := total + s.rng.Float64()*(0-total)
	partial := total
	for pos, e := range ranking {
		partial -= e.Fitness
		if partial >= r {
			return pos
		}
	}
	return -1
}

// MatingPool draws size tours with replacement from tours according to
// ranking. Pool members are clones; the population is never aliased.
func (s *Selector) MatingPool(tours []Tour, ranking Ranking, size int) ([]Tour, error) {
	if len(tours) == 0 || len(ranking) == 0 {
		return nil, ErrEmptyPopulation
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: mating pool size %d", ErrInvalidConfig, size)
	}

	total := ranking.Total()
	pool := make([]Tour, 0, size)
	for len(pool) < size {
		pos := s.Spin(ranking, total)
		for redraw := 0; pos < 0 && redraw < s.Config.MaxRedraws; redraw++ {
			pos = s.Spin(ranking, total)
		}
		if pos < 0 {
			return pool, fmt.Errorf("%w: slot %d of %d", ErrUnfilledSlot, len(pool), size)
		}
		pool = append(pool, tours[ranking[pos].Index].Clone())
	}
	return pool, nil
}

// Select sizes the pool from the population and fills it.
func (s *Selector) Select(p *Population, ranking Ranking) ([]Tour, error) {
	return s.MatingPool(p.Tours, ranking, s.Config.PoolSizeFor(p.Len()))
}
