package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// selectedK is the cluster count carried into the maps and regressions.
// It is a manual choice read off the elbow and silhouette charts, kept
// as a constant rather than derived programmatically.
const selectedK = 4

var candidateKs = []int{3, 4, 5}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var (
		dataPath string
		geoPath  string
		outDir   string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "wdiclusters",
		Short: "Cluster World Bank country indicators and regress GDP per cluster",
		Long: `wdiclusters loads a World Development Indicators spreadsheet, standardizes
the numeric columns, groups country-year observations with k-means and
agglomerative clustering, renders per-year cluster maps, and fits one OLS
regression of GDP inside each cluster of the selected k-means run.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(dataPath, geoPath, outDir, seed)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "data/wdi_indicators.xlsx", "indicator spreadsheet")
	cmd.Flags().StringVar(&geoPath, "geo", "data/world_countries.geojson", "world geometry file")
	cmd.Flags().StringVar(&outDir, "out", "output", "output directory")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for k-means restarts")
	return cmd
}

func runPipeline(dataPath, geoPath, outDir string, seed int64) error {
	fmt.Println("🌍 COUNTRY CLUSTER ANALYSIS: WORLD DEVELOPMENT INDICATORS")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ds, err := loadDataset(dataPath)
	if err != nil {
		return err
	}
	fmt.Printf("📊 Data loaded: %d country-year rows, %d indicators, %d cells imputed with zero\n",
		len(ds.Countries), len(indicatorColumns), ds.Imputed)

	scaled, _, _ := standardize(ds.Matrix)
	fmt.Println("⚖️  Indicators standardized (mean 0, sd 1)")

	rng := rand.New(rand.NewSource(seed))

	elbow := elbowCurve(scaled, 2, 8, rng)
	sil := silhouetteCurve(scaled, 2, 8, rng)
	if err := createElbowChart(elbow, filepath.Join(outDir, "elbow.png")); err != nil {
		return err
	}
	if err := createSilhouetteChart(sil, filepath.Join(outDir, "silhouette.png")); err != nil {
		return err
	}
	fmt.Println("📈 Cluster count diagnostics rendered: elbow.png, silhouette.png")

	grid, selected := runClusteringGrid(scaled, rng)
	fmt.Printf("🧩 Clustering grid complete: %d runs, selected k-means k=%d (WSS %.1f)\n",
		len(grid), selected.K, selected.WSS)

	if err := createClusterScatterChart(scaled, selected.Labels, selected.K, filepath.Join(outDir, "cluster_scatter.png")); err != nil {
		return err
	}

	world, err := loadWorldGeometry(geoPath)
	if err != nil {
		return err
	}
	matched, missing := world.matchCountries(ds.Countries)
	fmt.Printf("🗺️  Geometry joined: %d countries mapped, %d without a polygon match\n",
		len(matched), len(missing))

	byYear := clusterByCountryYear(ds, selected.Labels)
	years := ds.yearSet()
	bar := progressbar.NewOptions(len(years),
		progressbar.OptionSetDescription("rendering maps"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	for _, year := range years {
		path := filepath.Join(outDir, fmt.Sprintf("map_%d.png", year))
		if err := createClusterMap(year, byYear[year], matched, selected.K, path); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	fits, fitErrs := clusterRegressions(ds, selected.Labels, selected.K)
	for c, fitErr := range fitErrs {
		if fitErr != nil {
			fmt.Printf("⚠️  Cluster %d regression skipped: %v\n", c+1, fitErr)
			continue
		}
		path := filepath.Join(outDir, fmt.Sprintf("residuals_cluster_%d.png", c+1))
		if err := createResidualChart(fits[c], c, path); err != nil {
			return err
		}
	}
	fmt.Println("📉 Per-cluster GDP regressions fitted, residual plots rendered")

	if err := createResultsWorkbook(ds, selected, elbow, sil, grid, fits, filepath.Join(outDir, "clusters_wdi.xlsx")); err != nil {
		return err
	}
	if err := createMarkdownReport(ds, selected, elbow, sil, grid, fits, missing, filepath.Join(outDir, "report.md")); err != nil {
		return err
	}

	printConsoleSummary(selected, fits)

	fmt.Println("\n✅ ANALYSIS COMPLETE")
	fmt.Println("📁 Output files:")
	fmt.Printf("   - %s\n", filepath.Join(outDir, "clusters_wdi.xlsx"))
	fmt.Printf("   - %s\n", filepath.Join(outDir, "report.md"))
	fmt.Printf("   - elbow.png, silhouette.png, cluster_scatter.png, map_<year>.png, residuals_cluster_<n>.png in %s\n", outDir)
	return nil
}

// runClusteringGrid runs k-means for each candidate k plus every
// hierarchical linkage at each candidate k, and returns the comparison
// grid together with the selected k-means run.
func runClusteringGrid(scaled [][]float64, rng *rand.Rand) ([]GridRun, KMeansResult) {
	totalRuns := len(candidateKs) * (1 + len(allLinkages))
	bar := progressbar.NewOptions(totalRuns,
		progressbar.OptionSetDescription("clustering"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	var grid []GridRun
	var selected KMeansResult
	for _, k := range candidateKs {
		res := kMeans(scaled, k, kmeansRestarts, kmeansMaxIter, rng)
		if k == selectedK {
			selected = res
		}
		grid = append(grid, GridRun{
			Method:     "kmeans",
			K:          k,
			Sizes:      clusterSizes(res.Labels, k),
			Silhouette: meanSilhouette(scaled, res.Labels, k),
		})
		bar.Add(1)

		for _, link := range allLinkages {
			h := hierarchical(scaled, link, k)
			grid = append(grid, GridRun{
				Method:     "hclust/" + link.String(),
				K:          k,
				Sizes:      clusterSizes(h.Labels, k),
				Silhouette: meanSilhouette(scaled, h.Labels, k),
			})
			bar.Add(1)
		}
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	return grid, selected
}
