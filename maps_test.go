package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterByCountryYear(t *testing.T) {
	ds := &Dataset{
		Countries: []string{"France", "France", "Brazil"},
		Years:     []int{2019, 2020, 2019},
	}
	byYear := clusterByCountryYear(ds, []int{0, 1, 2})

	require.Len(t, byYear, 2)
	assert.Equal(t, map[string]int{"France": 0, "Brazil": 2}, byYear[2019])
	assert.Equal(t, map[string]int{"France": 1}, byYear[2020])
}

func TestCreateClusterMap(t *testing.T) {
	world, err := loadWorldGeometry(writeTestGeoJSON(t))
	require.NoError(t, err)
	matched, _ := world.matchCountries([]string{"France", "Russian Federation", "Atlantis"})

	assignment := map[string]int{
		"France":             0,
		"Russian Federation": 1,
		"Atlantis":           2, // no geometry, silently skipped
	}

	path := filepath.Join(t.TempDir(), "map_2020.png")
	require.NoError(t, createClusterMap(2020, assignment, matched, 4, path))
	assertOutputWritten(t, path)
}
