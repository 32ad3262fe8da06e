package genetic_tsp

import (
	"math/rand"
	"time"
)

// NewRNG returns the random source threaded through seeding, selection and
// mutation. If seed is 0, the current time is used (non-deterministic). A
// non-zero seed gives reproducible runs.
//
// The returned *rand.Rand is not safe for concurrent use; every run owns one.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

const (
	DEBUG = false

	// MinCities is the smallest problem that has a tour at all. Evolution
	// additionally needs MinEvolveCities for crossover cut points and for
	// two distinct interior positions to swap.
	MinCities       = 2
	MinEvolveCities = 3

	DefaultPopulationSize  = 1000
	DefaultGenerations     = 2000
	DefaultPoolRatio       = 0.5
	DefaultMaxRedraws      = 16
	DefaultCheckInterval   = 100
	DefaultPersistBatch    = 500
	DefaultMinimumPoolSize = 2
)
