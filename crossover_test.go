package genetic_tsp

import (
	"errors"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutPoints(t *test.T) {
	cases := []struct {
		L, start, end int
	}{
		{3, 0, 0},
		{4, 0, 1},
		{5, 0, 1},
		{6, 1, 2},
		{9, 2, 4},
		{10, 2, 5},
	}
	for _, c := range cases {
		start, end, err := CutPoints(c.L)
		if err != nil || start != c.start || end != c.end {
			t.Errorf("CutPoints(%d) = %d, %d, %v; want %d, %d", c.L, start, end, err, c.start, c.end)
		}
	}
	for _, L := range []int{0, 1, 2} {
		if _, _, err := CutPoints(L); !errors.Is(err, ErrTooFewCities) {
			t.Errorf("CutPoints(%d) error = %v, want ErrTooFewCities", L, err)
		}
	}
}

func TestCrossoverRepairsDuplicates(t *test.T) {
	parent1 := Tour{0, 1, 2, 3, 4, 5, 0}
	parent2 := Tour{5, 4, 3, 2, 1, 0, 5}

	// raw splice is 5 [1 2] 2 1 0 5: 1 and 2 are doubled, 3 and 4 missing
	child, err := Crossover(parent1, parent2)
	require.NoError(t, err)
	assert.Equal(t, Tour{5, 1, 2, 4, 3, 0, 5}, child)

	// parents are untouched
	assert.Equal(t, Tour{0, 1, 2, 3, 4, 5, 0}, parent1)
	assert.Equal(t, Tour{5, 4, 3, 2, 1, 0, 5}, parent2)
}

func TestCrossoverIsDeterministic(t *test.T) {
	cs, err := NewCitySet(randomCities(11, 4))
	require.NoError(t, err)
	rng := NewRNG(4)
	p1, p2 := NewRandomTour(cs, rng), NewRandomTour(cs, rng)

	a, err := Crossover(p1, p2)
	require.NoError(t, err)
	b, err := Crossover(p1, p2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCrossoverAtAlwaysYieldsValidTours(t *test.T) {
	rng := NewRNG(17)
	for n := 3; n <= 12; n++ {
		cs, err := NewCitySet(randomCities(n, int64(n)))
		require.NoError(t, err)

		for trial := 0; trial < 10; trial++ {
			p1, p2 := NewRandomTour(cs, rng), NewRandomTour(cs, rng)
			for start := 0; start < n; start++ {
				for end := start; end < n; end++ {
					child, err := CrossoverAt(p1, p2, start, end)
					if err != nil {
						t.Fatalf("n=%d [%d,%d]: %v", n, start, end, err)
					}
					if err := child.Validate(n); err != nil {
						t.Fatalf("n=%d [%d,%d] p1=%v p2=%v: %v", n, start, end, p1, p2, err)
					}
					if !Tour(child[start : end+1]).Equal(p1[start : end+1]) {
						t.Fatalf("n=%d [%d,%d]: segment %v not inherited from %v", n, start, end, child, p1)
					}
				}
			}
		}
	}
}

func TestCrossoverIdenticalParents(t *test.T) {
	p := Tour{2, 0, 3, 1, 4, 2}
	child, err := Crossover(p, p)
	require.NoError(t, err)
	assert.Equal(t, p, child)
}

func TestCrossoverErrors(t *test.T) {
	if _, err := Crossover(Tour{0, 1, 0}, Tour{1, 0, 1}); !errors.Is(err, ErrTooFewCities) {
		t.Errorf("two-city crossover error = %v, want ErrTooFewCities", err)
	}
	if _, err := Crossover(Tour{0, 1, 2, 0}, Tour{0, 1, 2, 3, 0}); !errors.Is(err, ErrRepairExhausted) {
		t.Errorf("mismatched lengths error = %v, want ErrRepairExhausted", err)
	}
	// parent2 comes from a larger city set
	if _, err := Crossover(Tour{0, 1, 2, 3, 0}, Tour{0, 1, 2, 9, 0}); !errors.Is(err, ErrRepairExhausted) {
		t.Errorf("foreign city error = %v, want ErrRepairExhausted", err)
	}
	if _, err := CrossoverAt(Tour{0, 1, 2, 3, 0}, Tour{3, 2, 1, 0, 3}, 2, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("inverted cut points error = %v, want ErrInvalidConfig", err)
	}
	if _, err := CrossoverAt(Tour{0, 1, 2, 3, 0}, Tour{3, 2, 1, 0, 3}, 1, 4); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("cut point past the end error = %v, want ErrInvalidConfig", err)
	}
}

func TestRepairLeavesPermutationsAlone(t *test.T) {
	tour := Tour{3, 1, 0, 2, 3}
	require.NoError(t, Repair(tour, 4, 1, 2))
	assert.Equal(t, Tour{3, 1, 0, 2, 3}, tour)
}

func TestRepairReclosesTour(t *test.T) {
	// position 0 holds a duplicate outside the protected segment
	child := Tour{1, 1, 2, 3, 1}
	require.NoError(t, Repair(child, 4, 1, 2))
	assert.Equal(t, Tour{0, 1, 2, 3, 0}, child)
}

func TestRepairWithoutProtection(t *test.T) {
	child := Tour{2, 2, 2, 0, 2}
	require.NoError(t, Repair(child, 4, 1, 0))
	assert.Equal(t, Tour{1, 3, 2, 0, 1}, child)
	require.NoError(t, child.Validate(4))
}

func TestCrossoverWithCoincidentCities(t *test.T) {
	cs, err := NewCitySet([]City{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {2, 2, 2}, {2, 2, 2}})
	require.NoError(t, err)
	rng := NewRNG(21)
	for i := 0; i < 50; i++ {
		child, err := Crossover(NewRandomTour(cs, rng), NewRandomTour(cs, rng))
		require.NoError(t, err)
		require.NoError(t, child.Validate(cs.Len()))
	}
}
