package genetic_tsp

import (
	"context"
	"runtime"
	"testing"
)

// BenchmarkRankPopulation measures parallel fitness scoring over a large
// population. Run with: go test -run=^$ -bench=BenchmarkRankPopulation -benchtime=10x -v
func BenchmarkRankPopulation(b *testing.B) {
	cs, err := NewCitySet(randomCities(200, 1))
	if err != nil {
		b.Fatal(err)
	}
	pop, err := SeedPopulation(cs, 20000, RandomStrategy, NewRNG(1))
	if err != nil {
		b.Fatal(err)
	}
	b.Logf("Tours: %d, Cities: %d, CPUs: %d", pop.Len(), cs.Len(), runtime.NumCPU())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pop.Rank(cs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCrossover(b *testing.B) {
	cs, err := NewCitySet(randomCities(500, 2))
	if err != nil {
		b.Fatal(err)
	}
	rng := NewRNG(2)
	p1, p2 := NewRandomTour(cs, rng), NewRandomTour(cs, rng)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Crossover(p1, p2); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve(b *testing.B) {
	cities := randomCities(50, 3)
	config := DefaultRunConfig()
	config.PopulationSize = 500
	config.Engine.Generations = 1000
	config.Seed = 3

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := NewSolver(config, nil).Solve(context.Background(), cities); err != nil {
			b.Fatal(err)
		}
	}
}
