package genetic_tsp

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// CompetitiveCuller bounds the mating pool: when it grows past the carrying
// capacity the longest tours are dropped. Survivors keep their pool order so
// the front-of-pool parent schedule is not reshuffled.
type CompetitiveCuller struct {
	Cities           *CitySet
	CarryingCapacity int
}

func NewCompetitiveCuller(cs *CitySet, carryingCapacity int) *CompetitiveCuller {
	return &CompetitiveCuller{
		Cities:           cs,
		CarryingCapacity: carryingCapacity,
	}
}

// Cull returns the surviving pool and how many tours were dropped. The best
// tour always survives.
func (cc *CompetitiveCuller) Cull(pool []Tour) ([]Tour, int) {
	if cc.CarryingCapacity <= 0 || len(pool) <= cc.CarryingCapacity {
		return pool, 0
	}

	ranking, err := RankPopulation(cc.Cities, pool)
	if err != nil {
		return pool, 0
	}

	// ranking is best first, so everything past capacity goes
	toKill := ranking[cc.CarryingCapacity:]
	kill := make([]bool, len(pool))
	for _, r := range toKill {
		kill[r.Index] = true
	}

	survivors := make([]Tour, 0, cc.CarryingCapacity)
	for i, t := range pool {
		if !kill[i] {
			survivors = append(survivors, t)
		}
	}

	if DEBUG {
		killed := make([]int, 0, len(toKill))
		for _, r := range toKill {
			killed = append(killed, r.Index)
		}
		sort.Ints(killed)
		log.Printf("Competitive cull: killing %d tours at pool positions %v (capacity: %d)",
			len(killed), killed, cc.CarryingCapacity)
	}

	return survivors, len(toKill)
}
