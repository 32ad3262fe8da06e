package genetic_tsp

import (
	"fmt"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Strategy selects how the initial population is built.
type Strategy int

const (
	RandomStrategy Strategy = iota
	GreedyStrategy
)

func (s Strategy) String() string {
	switch s {
	case RandomStrategy:
		return "random"
	case GreedyStrategy:
		return "greedy"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return RandomStrategy, nil
	case "greedy", "nearest", "nearest-neighbor":
		return GreedyStrategy, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Population is a fixed-size ordered set of tours, all valid at every
// generation boundary.
type Population struct {
	Tours    []Tour
	Strategy Strategy
}

func (p *Population) Len() int {
	return len(p.Tours)
}

// NewRandomTour shuffles every city uniformly and closes the loop on the
// first one.
func NewRandomTour(cs *CitySet, rng *rand.Rand) Tour {
	n := cs.Len()
	t := make(Tour, n, n+1)
	copy(t, cs.IDs())
	rng.Shuffle(n, func(i, j int) {
		t[i], t[j] = t[j], t[i]
	})
	return append(t, t[0])
}

// NewGreedyTour starts from a uniformly random city and keeps stepping to the
// nearest unvisited one. Ties go to the first city met in a linear scan.
func NewGreedyTour(cs *CitySet, rng *rand.Rand) Tour {
	n := cs.Len()
	visited := make([]bool, n)
	t := make(Tour, 0, n+1)

	start := CityID(rng.Intn(n))
	t = append(t, start)
	visited[start] = true

	current := start
	for len(t) < n {
		next := CityID(-1)
		var best float64
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d := cs.Distance(current, CityID(i))
			if next < 0 || d < best {
				next, best = CityID(i), d
			}
		}
		t = append(t, next)
		visited[next] = true
		current = next
	}
	return append(t, start)
}

// SeedPopulation builds size tours with the given strategy. Greedy seeding is
// O(n²) per tour, so it is usually paired with smaller sizes.
func SeedPopulation(cs *CitySet, size int, strategy Strategy, rng *rand.Rand) (*Population, error) {
	if cs == nil || cs.Len() == 0 {
		return nil, ErrEmptyCitySet
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: requested size %d", ErrEmptyPopulation, size)
	}

	var build func(*CitySet, *rand.Rand) Tour
	switch strategy {
	case RandomStrategy:
		build = NewRandomTour
	case GreedyStrategy:
		build = NewGreedyTour
	default:
		return nil, fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfig, strategy)
	}

	pop := &Population{Tours: make([]Tour, size), Strategy: strategy}
	for i := range pop.Tours {
		pop.Tours[i] = build(cs, rng)
	}

	if DEBUG {
		log.Printf("Seeded %d tours over %d cities with %v strategy", size, cs.Len(), strategy)
	}
	return pop, nil
}
