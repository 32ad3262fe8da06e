package genetic_tsp

import (
	"fmt"
	"math/rand"
)

type Mutation interface {
	Apply(Tour)
}

// SwapMutation exchanges the cities at two distinct interior positions. The
// start and closing entries are never touched, so the tour stays closed.
type SwapMutation struct {
	Positions [2]int
}

// NewSwapMutation draws two distinct positions from [1, n-1], re-drawing the
// second until it differs from the first.
func NewSwapMutation(t Tour, rng *rand.Rand) (*SwapMutation, error) {
	interior := t.Cities() - 1
	if interior < 2 {
		return nil, fmt.Errorf("%w: tour has %d interior positions", ErrTooFewCities, interior)
	}
	i := 1 + rng.Intn(interior)
	j := 1 + rng.Intn(interior)
	for j == i {
		j = 1 + rng.Intn(interior)
	}
	return &SwapMutation{Positions: [2]int{i, j}}, nil
}

func (m *SwapMutation) Apply(t Tour) {
	i, j := m.Positions[0], m.Positions[1]
	t[i], t[j] = t[j], t[i]
}

// Mutate applies one random swap to t in place.
func Mutate(t Tour, rng *rand.Rand) (*SwapMutation, error) {
	m, err := NewSwapMutation(t, rng)
	if err != nil {
		return nil, err
	}
	m.Apply(t)
	return m, nil
}
