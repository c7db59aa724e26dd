package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticDataset builds a non-degenerate Dataset for tests that need
// realistic numeric columns without a spreadsheet on disk.
func syntheticDataset(t *testing.T, n int) *Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(11))

	ds := &Dataset{
		Countries: make([]string, n),
		Years:     make([]int, n),
		Matrix:    make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		ds.Countries[i] = fmt.Sprintf("Country %d", i%10)
		ds.Years[i] = 2000 + i/10
		row := make([]float64, len(indicatorColumns))
		for j := range row {
			row[j] = rng.NormFloat64()*float64(j+1) + float64(i)
		}
		ds.Matrix[i] = row
	}
	return ds
}

func testRecords() [][]string {
	header := []string{
		"Country Name", "Year",
		"GDP (current US$)", "GDP growth (annual %)", "GDP per capita (current US$)",
		"Inflation, consumer prices (annual %)", "Unemployment, total (% of total labor force)",
		"Exports of goods and services (% of GDP)", "Imports of goods and services (% of GDP)",
		"Foreign direct investment, net inflows (% of GDP)", "Population, total",
		"Population growth (annual %)", "Life expectancy at birth, total (years)",
		"Fertility rate, total (births per woman)", "Mortality rate, infant (per 1,000 live births)",
		"School enrollment, secondary (% gross)", "Individuals using the Internet (% of population)",
		"Access to electricity (% of population)", "Current health expenditure (% of GDP)",
	}
	records := [][]string{header}
	for i := 0; i < 4; i++ {
		row := []string{fmt.Sprintf("Country %c", 'A'+i), strconv.Itoa(2019 + i%2)}
		for j := 0; j < len(indicatorColumns); j++ {
			row = append(row, fmt.Sprintf("%d.5", (i+1)*(j+2)))
		}
		records = append(records, row)
	}
	return records
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "gdp", cleanHeader("GDP (current US$)"))
	assert.Equal(t, "country", cleanHeader("Country Name"))
	assert.Equal(t, "some_other_column", cleanHeader("Some OTHER column!"))
	assert.Equal(t, "co2_emissions_kt", cleanHeader("CO2 emissions (kt)"))
	assert.Equal(t, "x_1990", cleanHeader("  x 1990 "))
}

func TestBuildDataset(t *testing.T) {
	ds, err := buildDataset(testRecords())
	require.NoError(t, err)

	assert.Len(t, ds.Countries, 4)
	assert.Equal(t, "Country A", ds.Countries[0])
	assert.Equal(t, []int{2019, 2020, 2019, 2020}, ds.Years)
	assert.Equal(t, 0, ds.Imputed)

	require.Len(t, ds.Matrix, 4)
	require.Len(t, ds.Matrix[0], len(indicatorColumns))
	// Row 1, gdp column: (0+1)*(0+2) + .5
	assert.Equal(t, 2.5, ds.Matrix[0][columnIndex("gdp")])
	assert.Equal(t, []int{2019, 2020}, ds.yearSet())
}

func TestBuildDatasetImputesZero(t *testing.T) {
	records := testRecords()
	records[1][2] = ""       // empty gdp cell
	records[2][4] = ".."     // World Bank NA marker
	records[3][5] = "n/a"    // unparseable
	records[4][6] = "   "

	ds, err := buildDataset(records)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Imputed)
	assert.Equal(t, 0.0, ds.Matrix[0][columnIndex("gdp")])
	assert.Equal(t, 0.0, ds.Matrix[1][columnIndex("gdp_per_capita")])
}

func TestBuildDatasetMissingColumn(t *testing.T) {
	records := testRecords()
	records[0][2] = "Mystery column"

	_, err := buildDataset(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gdp")
}

func TestBuildDatasetBadYear(t *testing.T) {
	records := testRecords()
	records[2][1] = "not-a-year"

	_, err := buildDataset(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad year")
}

func TestDatasetColumn(t *testing.T) {
	ds := syntheticDataset(t, 5)
	gdp := ds.column("gdp")
	require.Len(t, gdp, 5)
	for i := range gdp {
		assert.Equal(t, ds.Matrix[i][columnIndex("gdp")], gdp[i])
	}
	assert.Equal(t, -1, columnIndex("not_a_column"))
}
