package genetic_tsp

import (
	"runtime"
	"sort"
	"sync"
)

// Fitness is the negated tour length so that shorter tours score higher.
// It is always <= 0.
func Fitness(cs *CitySet, t Tour) float64 {
	return -t.Distance(cs)
}

// Rank pairs a population member with its fitness.
type Rank struct {
	Index   int
	Fitness float64
}

// Ranking is sorted best (least negative) first.
type Ranking []Rank

func (r Ranking) Total() float64 {
	var total float64
	for _, e := range r {
		total += e.Fitness
	}
	return total
}

// parallelRankThreshold is the population size below which fitness is
// evaluated on the calling goroutine.
const parallelRankThreshold = 256

// RankPopulation scores every tour and sorts descending by fitness. Ties keep
// their population order.
//
// Scoring is read-only over the tours and is the only part of a run that
// fans out across CPUs.
func RankPopulation(cs *CitySet, tours []Tour) (Ranking, error) {
	if len(tours) == 0 {
		return nil, ErrEmptyPopulation
	}

	ranking := make(Ranking, len(tours))
	score := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ranking[i] = Rank{Index: i, Fitness: Fitness(cs, tours[i])}
		}
	}

	if len(tours) < parallelRankThreshold {
		score(0, len(tours))
	} else {
		cpus := runtime.NumCPU()
		chunkSize := len(tours) / cpus
		if chunkSize == 0 {
			chunkSize = 1
		}
		var wg sync.WaitGroup
		for i := 0; i < cpus; i++ {
			start := i * chunkSize
			if start >= len(tours) {
				break
			}
			end := start + chunkSize
			if i == cpus-1 || end > len(tours) {
				end = len(tours)
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				score(lo, hi)
			}(start, end)
		}
		wg.Wait()
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Fitness > ranking[j].Fitness
	})
	return ranking, nil
}

func (p *Population) Rank(cs *CitySet) (Ranking, error) {
	return RankPopulation(cs, p.Tours)
}
