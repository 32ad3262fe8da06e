package genetic_tsp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	cp "github.com/jinzhu/copier"
)

// Tour is a closed walk over a CitySet: n+1 entries where the first and last
// are the same city and the first n are a permutation of every CityID.
type Tour []CityID

// Cities is the open length n (the closing entry is not counted).
func (t Tour) Cities() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// Open returns the first n entries. It shares storage with t.
func (t Tour) Open() []CityID {
	if len(t) == 0 {
		return nil
	}
	return t[:len(t)-1]
}

func (t Tour) Validate(n int) error {
	if len(t) != n+1 {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidTour, len(t), n+1)
	}
	if t[0] != t[n] {
		return fmt.Errorf("%w: not closed (%d != %d)", ErrInvalidTour, t[0], t[n])
	}
	seen := make([]bool, n)
	for i, id := range t.Open() {
		if id < 0 || int(id) >= n {
			return fmt.Errorf("%w: city %d at position %d out of range", ErrInvalidTour, id, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: city %d visited twice", ErrInvalidTour, id)
		}
		seen[id] = true
	}
	return nil
}

// Distance is the total path length including the closing edge.
func (t Tour) Distance(cs *CitySet) float64 {
	var total float64
	for i := 0; i+1 < len(t); i++ {
		total += cs.Distance(t[i], t[i+1])
	}
	return total
}

func (t Tour) Clone() Tour {
	var clone Tour
	if err := cp.Copy(&clone, t); err != nil {
		panic(fmt.Errorf("Tour clone failed: %w", err))
	}
	return clone
}

func (t Tour) Equal(o Tour) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the tour as space separated CityIDs. ParseTour reverses it.
func (t Tour) String() string {
	var sb strings.Builder
	for i, id := range t {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	return sb.String()
}

func ParseTour(s string) (Tour, error) {
	fields := strings.Fields(s)
	t := make(Tour, len(fields))
	for i, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTour, err)
		}
		t[i] = CityID(id)
	}
	return t, nil
}

// key packs the open tour into a fixed-width byte string, four bytes per
// position, for string metrics.
func (t Tour) key() string {
	open := t.Open()
	buf := make([]byte, 4*len(open))
	for i, id := range open {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}
