package genetic_tsp

import (
	"context"
	"errors"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRunConfig(population, generations int, seed int64) *RunConfig {
	config := DefaultRunConfig()
	config.PopulationSize = population
	config.Engine.Generations = generations
	config.Seed = seed
	return config
}

func TestSolveSquare(t *test.T) {
	for _, strategy := range []Strategy{RandomStrategy, GreedyStrategy} {
		config := makeRunConfig(100, 200, 42)
		config.Strategy = strategy

		result, cs, err := NewSolver(config, nil).Solve(context.Background(), squareCities())
		require.NoError(t, err, "%v", strategy)
		assert.InDelta(t, 40.0, result.Distance, 1e-9, "%v", strategy)
		assert.NoError(t, result.Tour.Validate(cs.Len()))
		assert.Equal(t, OutcomeComplete, result.Outcome)
		assert.Equal(t, int64(42), result.Seed)
		assert.Empty(t, result.RunID)
	}
}

func TestSolveSingleCity(t *test.T) {
	_, _, err := NewSolver(DefaultRunConfig(), nil).Solve(context.Background(), []City{{1, 2, 3}})
	if !errors.Is(err, ErrTooFewCities) {
		t.Errorf("Solve(one city) error = %v, want ErrTooFewCities", err)
	}
	_, _, err = NewSolver(DefaultRunConfig(), nil).Solve(context.Background(), nil)
	if !errors.Is(err, ErrEmptyCitySet) {
		t.Errorf("Solve(no cities) error = %v, want ErrEmptyCitySet", err)
	}
}

func TestSolveTwoCities(t *test.T) {
	result, _, err := NewSolver(DefaultRunConfig(), nil).Solve(context.Background(), []City{{0, 0, 0}, {3, 4, 0}})
	require.NoError(t, err)
	assert.Equal(t, Tour{0, 1, 0}, result.Tour)
	assert.InDelta(t, 10.0, result.Distance, 1e-9)
	assert.Equal(t, OutcomeTrivial, result.Outcome)
}

func TestSolveDuplicateCoordinates(t *test.T) {
	cities := []City{{0, 0, 0}, {0, 0, 0}, {1, 1, 1}, {1, 1, 1}, {5, 5, 5}}
	result, cs, err := NewSolver(makeRunConfig(30, 60, 3), nil).Solve(context.Background(), cities)
	require.NoError(t, err)
	assert.NoError(t, result.Tour.Validate(cs.Len()))
	assert.Len(t, result.Tour, 6)
}

func TestSolveCoincidentCities(t *test.T) {
	cities := []City{{7, 7, 7}, {7, 7, 7}, {7, 7, 7}, {7, 7, 7}}
	result, cs, err := NewSolver(makeRunConfig(10, 20, 5), nil).Solve(context.Background(), cities)
	require.NoError(t, err)
	assert.NoError(t, result.Tour.Validate(cs.Len()))
	assert.Equal(t, 0.0, result.Distance)
}

func TestSolveIsReproducible(t *test.T) {
	cities := randomCities(9, 99)
	a, _, err := NewSolver(makeRunConfig(60, 150, 7), nil).Solve(context.Background(), cities)
	require.NoError(t, err)
	b, _, err := NewSolver(makeRunConfig(60, 150, 7), nil).Solve(context.Background(), cities)
	require.NoError(t, err)

	assert.Equal(t, a.Tour, b.Tour)
	assert.Equal(t, a.Distance, b.Distance)
}

func TestSolveRejectsBadConfig(t *test.T) {
	config := makeRunConfig(0, 10, 1)
	if _, _, err := NewSolver(config, nil).Solve(context.Background(), squareCities()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Solve(population 0) error = %v, want ErrInvalidConfig", err)
	}
}

func TestSolveJournalsRun(t *test.T) {
	p := newTestPersistence(t)
	config := makeRunConfig(40, 200, 11)
	config.Engine.CheckInterval = 50

	result, cs, err := NewSolver(config, p).Solve(context.Background(), randomCities(7, 11))
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)

	run, err := p.LoadRun(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), run.Seed)
	assert.Equal(t, cs.Len(), run.Cities)
	assert.Equal(t, "random", run.Strategy)
	assert.Equal(t, 40, run.PopulationSize)
	assert.Equal(t, 20, run.PoolSize)
	assert.Equal(t, 200, run.GenerationsRun)
	assert.Equal(t, OutcomeComplete, run.Outcome)
	assert.Equal(t, result.Tour.String(), run.BestTour)
	assert.InDelta(t, result.Distance, run.BestDistance, 1e-9)

	require.Len(t, run.Checkpoints, 4)
	for i, c := range run.Checkpoints {
		assert.Equal(t, (i+1)*50, c.Generation)
	}
}
