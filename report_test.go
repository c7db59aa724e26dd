package main

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.50T", formatNumber(1.5e12))
	assert.Equal(t, "2.30B", formatNumber(2.3e9))
	assert.Equal(t, "4.00M", formatNumber(4e6))
	assert.Equal(t, "9.5K", formatNumber(9500))
	assert.Equal(t, "42", formatNumber(42.4))
}

func TestFormatPValue(t *testing.T) {
	assert.Equal(t, "<0.001", formatPValue(0.0004))
	assert.Equal(t, "0.050", formatPValue(0.05))
	assert.Equal(t, "-", formatPValue(math.NaN()))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "12/7/3", joinInts([]int{12, 7, 3}))
	assert.Equal(t, "", joinInts(nil))
}

func TestClusterSizes(t *testing.T) {
	assert.Equal(t, []int{2, 1, 3}, clusterSizes([]int{0, 2, 1, 2, 0, 2}, 3))
}

func reportFixtures(t *testing.T) (*Dataset, KMeansResult, []ElbowPoint, []SilhouettePoint, []GridRun, []*Regression) {
	t.Helper()
	ds := syntheticDataset(t, 40)
	scaled, _, _ := standardize(ds.Matrix)
	selected := kMeans(scaled, 2, kmeansRestarts, kmeansMaxIter, rand.New(rand.NewSource(1)))

	elbow := []ElbowPoint{{K: 2, WSS: 120}, {K: 3, WSS: 80}}
	sil := []SilhouettePoint{{K: 2, Score: 0.41}, {K: 3, Score: 0.38}}
	grid := []GridRun{
		{Method: "kmeans", K: 2, Sizes: clusterSizes(selected.Labels, 2), Silhouette: 0.41},
		{Method: "hclust/complete", K: 2, Sizes: []int{25, 15}, Silhouette: 0.36},
	}
	fits, errs := clusterRegressions(ds, selected.Labels, 2)
	for c := range fits {
		if errs[c] != nil {
			fits[c] = nil
		}
	}
	return ds, selected, elbow, sil, grid, fits
}

func TestCreateResultsWorkbook(t *testing.T) {
	ds, selected, elbow, sil, grid, fits := reportFixtures(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, createResultsWorkbook(ds, selected, elbow, sil, grid, fits, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Cluster_Dashboard")
	assert.Contains(t, sheets, "Diagnostics")
	assert.Contains(t, sheets, "Clustering_Grid")
	assert.Contains(t, sheets, "Regression_Cluster_1")
	assert.Contains(t, sheets, "Regression_Cluster_2")

	country, err := f.GetCellValue("Cluster_Dashboard", "A2")
	require.NoError(t, err)
	assert.Equal(t, ds.Countries[0], country)
}

func TestCreateMarkdownReport(t *testing.T) {
	ds, selected, elbow, sil, grid, fits := reportFixtures(t)
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, createMarkdownReport(ds, selected, elbow, sil, grid, fits, []string{"Atlantis"}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(raw)
	assert.Contains(t, report, "# COUNTRY CLUSTER ANALYSIS")
	assert.Contains(t, report, "CLUSTER COUNT DIAGNOSTICS")
	assert.Contains(t, report, "hclust/complete")
	assert.Contains(t, report, "PER-CLUSTER GDP REGRESSIONS")
	assert.Contains(t, report, "Atlantis")
}
