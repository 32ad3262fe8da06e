package genetic_tsp

import "errors"

var (
	ErrEmptyCitySet    = errors.New("city set is empty")
	ErrTooFewCities    = errors.New("too few cities")
	ErrEmptyPopulation = errors.New("population is empty")
	ErrInvalidTour     = errors.New("invalid tour")
	ErrInputFormat     = errors.New("malformed input")
	ErrInvalidConfig   = errors.New("invalid config")

	// ErrRepairExhausted means the crossover parents were not permutations of
	// the same city set. It is a caller defect, not a runtime condition.
	ErrRepairExhausted = errors.New("repair exhausted: parents do not share a city set")

	// ErrUnfilledSlot is returned when the roulette walk keeps failing to land
	// on an entry after every allowed re-draw.
	ErrUnfilledSlot = errors.New("mating pool slot left unfilled")
)
