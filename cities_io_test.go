package genetic_tsp

import (
	"bytes"
	"errors"
	"strings"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCities(t *test.T) {
	input := "3\n0 0 0\n  1 2 3\n\n-4 5\t6\n"
	cities, err := ReadCities(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []City{{0, 0, 0}, {1, 2, 3}, {-4, 5, 6}}, cities)
}

func TestReadCitiesIgnoresTrailingLines(t *test.T) {
	cities, err := ReadCities(strings.NewReader("2\n1 1 1\n2 2 2\n3 3 3\n"))
	require.NoError(t, err)
	assert.Len(t, cities, 2)
}

func TestReadCitiesMalformed(t *test.T) {
	cases := map[string]string{
		"empty":          "",
		"blank":          "\n\n",
		"bad count":      "three\n1 2 3\n",
		"negative count": "-1\n",
		"short":          "3\n1 2 3\n4 5 6\n",
		"two coords":     "1\n1 2\n",
		"four coords":    "1\n1 2 3 4\n",
		"not an integer": "1\n1 2 x\n",
		"float":          "1\n1 2 3.5\n",
	}
	for name, input := range cases {
		if _, err := ReadCities(strings.NewReader(input)); !errors.Is(err, ErrInputFormat) {
			t.Errorf("%s: ReadCities(%q) error = %v, want ErrInputFormat", name, input, err)
		}
	}
}

func TestReadCitiesReportsLine(t *test.T) {
	_, err := ReadCities(strings.NewReader("2\n1 2 3\n\n1 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestWriteTour(t *test.T) {
	cs := squareSet(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTour(&buf, cs, Tour{0, 1, 2, 3, 0}))
	assert.Equal(t, "40\n0 0 0\n10 0 0\n10 10 0\n0 10 0\n0 0 0", buf.String())
}

func TestWriteTourRoundTrip(t *test.T) {
	cities := randomCities(6, 8)
	cs, err := NewCitySet(cities)
	require.NoError(t, err)
	tour := NewRandomTour(cs, NewRNG(8))

	var buf bytes.Buffer
	require.NoError(t, WriteTour(&buf, cs, tour))
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, len(tour)+1)
	for i, id := range tour {
		city, err := ParseCity(lines[i+1])
		require.NoError(t, err)
		assert.Equal(t, cs.City(id), city)
	}
}
