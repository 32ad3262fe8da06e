package genetic_tsp

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/xrash/smetrics"
)

// GenerationMetrics summarizes the mating pool at a checkpoint.
type GenerationMetrics struct {
	Generation int
	PoolSize   int
	Best       float64
	Mean       float64
	Median     float64
	P90        float64
	StdDev     float64
	// Diversity is the mean fraction of differing bytes between the best
	// tour's encoding and every other pool member's. 0 means a converged pool.
	Diversity float64
}

// Measure computes GenerationMetrics over the pool's tour distances.
func Measure(cs *CitySet, pool []Tour, generation int) (*GenerationMetrics, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPopulation
	}

	distances := make(stats.Float64Data, len(pool))
	bestIdx := 0
	for i, t := range pool {
		distances[i] = t.Distance(cs)
		if distances[i] < distances[bestIdx] {
			bestIdx = i
		}
	}

	m := &GenerationMetrics{
		Generation: generation,
		PoolSize:   len(pool),
		Best:       distances[bestIdx],
	}

	var err error
	if m.Mean, err = stats.Mean(distances); err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	if m.Median, err = stats.Median(distances); err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}
	if m.P90, err = stats.Percentile(distances, 90); err != nil {
		return nil, fmt.Errorf("p90: %w", err)
	}
	if m.StdDev, err = stats.StandardDeviation(distances); err != nil {
		return nil, fmt.Errorf("stddev: %w", err)
	}
	if m.Diversity, err = Diversity(pool[bestIdx], pool); err != nil {
		return nil, fmt.Errorf("diversity: %w", err)
	}
	return m, nil
}

// Diversity compares every pool member against ref with a Hamming distance
// over the fixed-width tour encoding.
func Diversity(ref Tour, pool []Tour) (float64, error) {
	refKey := ref.key()
	if len(refKey) == 0 || len(pool) == 0 {
		return 0, nil
	}
	var sum float64
	for _, t := range pool {
		d, err := smetrics.Hamming(refKey, t.key())
		if err != nil {
			return 0, err
		}
		sum += float64(d) / float64(len(refKey))
	}
	return sum / float64(len(pool)), nil
}
