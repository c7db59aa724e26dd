package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// indicatorColumns is the fixed feature order used everywhere downstream:
// the scaled matrix, the clustering runs and the regression design matrix
// all index columns by position in this slice.
var indicatorColumns = []string{
	"gdp",
	"gdp_growth",
	"gdp_per_capita",
	"inflation",
	"unemployment",
	"exports_gdp",
	"imports_gdp",
	"fdi_inflows",
	"population",
	"pop_growth",
	"life_expectancy",
	"fertility_rate",
	"infant_mortality",
	"school_enrollment",
	"internet_usage",
	"electricity_access",
	"health_expenditure",
}

// columnRenames maps the World Bank export headers to working names.
var columnRenames = map[string]string{
	"Country Name":                                      "country",
	"Year":                                              "year",
	"GDP (current US$)":                                 "gdp",
	"GDP growth (annual %)":                             "gdp_growth",
	"GDP per capita (current US$)":                      "gdp_per_capita",
	"Inflation, consumer prices (annual %)":             "inflation",
	"Unemployment, total (% of total labor force)":      "unemployment",
	"Exports of goods and services (% of GDP)":          "exports_gdp",
	"Imports of goods and services (% of GDP)":          "imports_gdp",
	"Foreign direct investment, net inflows (% of GDP)": "fdi_inflows",
	"Population, total":                                 "population",
	"Population growth (annual %)":                      "pop_growth",
	"Life expectancy at birth, total (years)":           "life_expectancy",
	"Fertility rate, total (births per woman)":          "fertility_rate",
	"Mortality rate, infant (per 1,000 live births)":    "infant_mortality",
	"School enrollment, secondary (% gross)":            "school_enrollment",
	"Individuals using the Internet (% of population)":  "internet_usage",
	"Access to electricity (% of population)":           "electricity_access",
	"Current health expenditure (% of GDP)":             "health_expenditure",
}

// Dataset is the cleaned indicator table plus the numeric views the
// clustering and regression stages consume.
type Dataset struct {
	Frame     dataframe.DataFrame
	Countries []string
	Years     []int
	Matrix    [][]float64 // one row per (country, year), columns per indicatorColumns
	Imputed   int         // cells replaced with zero
}

func loadIndicatorRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	// excelize trims trailing empty cells per row, so pad back to the
	// header width before handing the records to gota.
	width := len(rows[0])
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}
	return rows, nil
}

// cleanHeader normalizes a column header that has no entry in columnRenames:
// lowercase, punctuation stripped, spaces collapsed to underscores.
func cleanHeader(h string) string {
	if renamed, ok := columnRenames[h]; ok {
		return renamed
	}
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// buildDataset turns raw sheet records into the cleaned table: headers
// renamed, indicator columns coerced to float, NAs imputed with zero.
func buildDataset(records [][]string) (*Dataset, error) {
	header := records[0]
	for i, h := range header {
		header[i] = cleanHeader(h)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("loading records: %w", df.Err)
	}

	names := df.Names()
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, col := range append([]string{"country", "year"}, indicatorColumns...) {
		if !have[col] {
			return nil, fmt.Errorf("spreadsheet is missing column %q", col)
		}
	}

	ds := &Dataset{}

	// Numeric coercion and zero imputation in one pass: gota parses
	// unparseable cells and empty strings to NaN, which we then replace.
	for _, col := range indicatorColumns {
		vals := df.Col(col).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
				ds.Imputed++
			}
		}
		df = df.Mutate(series.New(vals, series.Float, col))
		if df.Err != nil {
			return nil, fmt.Errorf("coercing column %q: %w", col, df.Err)
		}
	}

	countries := df.Col("country").Records()
	yearStrs := df.Col("year").Records()
	years := make([]int, len(yearStrs))
	for i, ys := range yearStrs {
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad year %q", i+2, ys)
		}
		years[i] = y
	}

	n := df.Nrow()
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, len(indicatorColumns))
	}
	for j, col := range indicatorColumns {
		vals := df.Col(col).Float()
		for i, v := range vals {
			matrix[i][j] = v
		}
	}

	ds.Frame = df
	ds.Countries = countries
	ds.Years = years
	ds.Matrix = matrix
	return ds, nil
}

func loadDataset(path string) (*Dataset, error) {
	records, err := loadIndicatorRecords(path)
	if err != nil {
		return nil, err
	}
	return buildDataset(records)
}

// columnIndex returns the position of an indicator in the matrix columns.
func columnIndex(name string) int {
	for i, c := range indicatorColumns {
		if c == name {
			return i
		}
	}
	return -1
}

// column extracts one indicator column from the raw matrix.
func (ds *Dataset) column(name string) []float64 {
	j := columnIndex(name)
	vals := make([]float64, len(ds.Matrix))
	for i, row := range ds.Matrix {
		vals[i] = row[j]
	}
	return vals
}

// yearSet returns the distinct years present, ascending.
func (ds *Dataset) yearSet() []int {
	seen := map[int]bool{}
	var years []int
	for _, y := range ds.Years {
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}
