package genetic_tsp

import (
	"fmt"
)

// CutPoints derives the crossover segment from the open tour length L:
// start = floor(L/3) - 1 and end = start + ceil(L/3) - 1, both inclusive.
func CutPoints(L int) (start, end int, err error) {
	if L < MinEvolveCities {
		return 0, 0, fmt.Errorf("%w: crossover needs %d cities, got %d", ErrTooFewCities, MinEvolveCities, L)
	}
	third := (L + 2) / 3
	start = L/3 - 1
	end = start + third - 1
	return start, end, nil
}

// Crossover splices parent1's middle third into parent2 and repairs the
// result. It is deterministic in its inputs.
func Crossover(parent1, parent2 Tour) (Tour, error) {
	start, end, err := CutPoints(parent1.Cities())
	if err != nil {
		return nil, err
	}
	return CrossoverAt(parent1, parent2, start, end)
}

// CrossoverAt builds parent2[:start] + parent1[start:end+1] +
// parent2[end+1:L] + parent2[0], then repairs duplicates keeping the
// parent1 segment intact.
func CrossoverAt(parent1, parent2 Tour, start, end int) (Tour, error) {
	L := parent1.Cities()
	if parent2.Cities() != L {
		return nil, fmt.Errorf("%w: parent lengths %d and %d differ", ErrRepairExhausted, L, parent2.Cities())
	}
	if start < 0 || end < start || end >= L {
		return nil, fmt.Errorf("%w: cut points [%d, %d] out of range for %d cities", ErrInvalidConfig, start, end, L)
	}

	child := make(Tour, 0, L+1)
	child = append(child, parent2[:start]...)
	child = append(child, parent1[start:end+1]...)
	child = append(child, parent2[end+1:L]...)
	child = append(child, parent2[L])

	if err := Repair(child, L, start, end); err != nil {
		return nil, err
	}
	return child, nil
}

// Repair fixes an open child segment of n entries in place so it becomes a
// permutation of 0..n-1, then re-closes the tour on its first entry.
//
// Counts start at 1 per city and drop once per occurrence, so duplicated
// cities end negative and missing ones stay positive. Scanning CityIDs in
// ascending order, every surplus occurrence is paired with the next missing
// city. Occurrences inside the protected segment [lo, hi] are kept; pass
// lo > hi to protect nothing. A child that is already a permutation is left
// untouched.
func Repair(child Tour, n, lo, hi int) error {
	if len(child) != n+1 {
		return fmt.Errorf("%w: child length %d, want %d", ErrInvalidTour, len(child), n+1)
	}
	open := child[:n]

	counts := make([]int, n)
	for i := range counts {
		counts[i] = 1
	}
	for pos, id := range open {
		if id < 0 || int(id) >= n {
			return fmt.Errorf("%w: city %d at position %d out of range", ErrRepairExhausted, id, pos)
		}
		counts[id]--
	}

	var duplicates, missing []CityID
	for id, c := range counts {
		for ; c < 0; c++ {
			duplicates = append(duplicates, CityID(id))
		}
		if c > 0 {
			missing = append(missing, CityID(id))
		}
	}
	if len(duplicates) > len(missing) {
		return fmt.Errorf("%w: %d duplicates, %d missing", ErrRepairExhausted, len(duplicates), len(missing))
	}

	for i, dup := range duplicates {
		pos := replaceablePosition(open, dup, lo, hi)
		if pos < 0 {
			return fmt.Errorf("%w: no replaceable occurrence of city %d", ErrRepairExhausted, dup)
		}
		open[pos] = missing[i]
		counts[dup]++
		counts[missing[i]]--
	}

	for id, c := range counts {
		if c != 0 {
			return fmt.Errorf("%w: city %d count %d after repair", ErrRepairExhausted, id, c)
		}
	}

	child[n] = child[0]
	return nil
}

// replaceablePosition finds the first occurrence of id outside [lo, hi],
// falling back to the first occurrence anywhere when every copy is
// protected.
func replaceablePosition(open []CityID, id CityID, lo, hi int) int {
	first := -1
	for pos, v := range open {
		if v != id {
			continue
		}
		if pos < lo || pos > hi {
			return pos
		}
		if first < 0 {
			first = pos
		}
	}
	return first
}
