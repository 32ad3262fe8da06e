package genetic_tsp

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// City is a point in 3-D integer space. Two cities may share coordinates;
// identity lives in the CityID handed out by a CitySet, not in the value.
type City struct {
	X int
	Y int
	Z int
}

func (c City) String() string {
	return fmt.Sprintf("%d %d %d", c.X, c.Y, c.Z)
}

func (c City) vec() r3.Vec {
	return r3.Vec{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

// Distance is the Euclidean norm of the coordinate-wise difference.
func Distance(a, b City) float64 {
	return r3.Norm(r3.Sub(a.vec(), b.vec()))
}

// CityID is an index into a CitySet.
type CityID int

// CitySet owns the cities of one problem instance. Tours refer to cities by
// CityID so coincident coordinates never alias.
type CitySet struct {
	cities []City
}

func NewCitySet(cities []City) (*CitySet, error) {
	if len(cities) == 0 {
		return nil, ErrEmptyCitySet
	}
	if len(cities) < MinCities {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewCities, len(cities), MinCities)
	}
	owned := make([]City, len(cities))
	copy(owned, cities)
	return &CitySet{cities: owned}, nil
}

func (cs *CitySet) Len() int {
	return len(cs.cities)
}

func (cs *CitySet) City(id CityID) City {
	return cs.cities[id]
}

func (cs *CitySet) Distance(a, b CityID) float64 {
	return Distance(cs.cities[a], cs.cities[b])
}

// IDs returns every CityID in input order.
func (cs *CitySet) IDs() []CityID {
	ids := make([]CityID, len(cs.cities))
	for i := range ids {
		ids[i] = CityID(i)
	}
	return ids
}
