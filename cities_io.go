package genetic_tsp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCities parses a city count on the first line followed by that many
// lines of three whitespace separated integers.
func ReadCities(r io.Reader) ([]City, error) {
	scanner := bufio.NewScanner(r)
	line := 0

	next := func() (string, bool) {
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if len(text) > 0 {
				return text, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing city count", ErrInputFormat)
	}
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: line %d: bad city count %q", ErrInputFormat, line, header)
	}

	cities := make([]City, 0, count)
	for len(cities) < count {
		text, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: expected %d cities, found %d", ErrInputFormat, count, len(cities))
		}
		city, err := ParseCity(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

func ParseCity(s string) (City, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return City{}, fmt.Errorf("%w: want 3 coordinates, got %d in %q", ErrInputFormat, len(fields), s)
	}
	var coords [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return City{}, fmt.Errorf("%w: coordinate %q is not an integer", ErrInputFormat, f)
		}
		coords[i] = v
	}
	return City{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// WriteTour writes the total distance, then every city of the closed tour on
// its own line. There is no newline after the last city.
func WriteTour(w io.Writer, cs *CitySet, t Tour) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.FormatFloat(t.Distance(cs), 'f', -1, 64))
	for _, id := range t {
		bw.WriteByte('\n')
		bw.WriteString(cs.City(id).String())
	}
	return bw.Flush()
}
