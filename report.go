package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"
)

// GridRun is one entry of the clustering comparison grid: a k-means run
// or one hierarchical linkage, at one k.
type GridRun struct {
	Method     string
	K          int
	Sizes      []int
	Silhouette float64
}

func clusterSizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

func createResultsWorkbook(ds *Dataset, selected KMeansResult, elbow []ElbowPoint, sil []SilhouettePoint, grid []GridRun, fits []*Regression, path string) error {
	f := excelize.NewFile()

	const dashboard = "Cluster_Dashboard"
	f.SetSheetName("Sheet1", dashboard)

	headers := []string{"Country", "Year", "Cluster", "GDP (US$)", "GDP per Capita (US$)",
		"Population", "Life Expectancy", "Internet Usage (%)", "Unemployment (%)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(dashboard, cell, header)
		f.SetColWidth(dashboard, cell, cell, 18)
	}

	gdp := ds.column("gdp")
	gdpPC := ds.column("gdp_per_capita")
	pop := ds.column("population")
	life := ds.column("life_expectancy")
	internet := ds.column("internet_usage")
	unemp := ds.column("unemployment")

	for i := range ds.Countries {
		row := i + 2
		f.SetCellValue(dashboard, fmt.Sprintf("A%d", row), ds.Countries[i])
		f.SetCellValue(dashboard, fmt.Sprintf("B%d", row), ds.Years[i])
		f.SetCellValue(dashboard, fmt.Sprintf("C%d", row), selected.Labels[i]+1)
		f.SetCellValue(dashboard, fmt.Sprintf("D%d", row), formatNumber(gdp[i]))
		f.SetCellValue(dashboard, fmt.Sprintf("E%d", row), formatNumber(gdpPC[i]))
		f.SetCellValue(dashboard, fmt.Sprintf("F%d", row), formatNumber(pop[i]))
		f.SetCellValue(dashboard, fmt.Sprintf("G%d", row), fmt.Sprintf("%.1f", life[i]))
		f.SetCellValue(dashboard, fmt.Sprintf("H%d", row), fmt.Sprintf("%.1f%%", internet[i]))
		f.SetCellValue(dashboard, fmt.Sprintf("I%d", row), fmt.Sprintf("%.1f%%", unemp[i]))
	}

	const diag = "Diagnostics"
	f.NewSheet(diag)
	diagHeaders := []string{"k", "WSS", "Mean Silhouette"}
	for i, header := range diagHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(diag, cell, header)
		f.SetColWidth(diag, cell, cell, 16)
	}
	for i, pt := range elbow {
		row := i + 2
		f.SetCellValue(diag, fmt.Sprintf("A%d", row), pt.K)
		f.SetCellValue(diag, fmt.Sprintf("B%d", row), fmt.Sprintf("%.1f", pt.WSS))
		if i < len(sil) {
			f.SetCellValue(diag, fmt.Sprintf("C%d", row), fmt.Sprintf("%.3f", sil[i].Score))
		}
	}

	const gridSheet = "Clustering_Grid"
	f.NewSheet(gridSheet)
	gridHeaders := []string{"Method", "k", "Cluster Sizes", "Mean Silhouette"}
	for i, header := range gridHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(gridSheet, cell, header)
		f.SetColWidth(gridSheet, cell, cell, 20)
	}
	for i, run := range grid {
		row := i + 2
		f.SetCellValue(gridSheet, fmt.Sprintf("A%d", row), run.Method)
		f.SetCellValue(gridSheet, fmt.Sprintf("B%d", row), run.K)
		f.SetCellValue(gridSheet, fmt.Sprintf("C%d", row), joinInts(run.Sizes))
		f.SetCellValue(gridSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.3f", run.Silhouette))
	}

	for c, reg := range fits {
		sheet := fmt.Sprintf("Regression_Cluster_%d", c+1)
		f.NewSheet(sheet)
		if reg == nil {
			f.SetCellValue(sheet, "A1", "Cluster too small for the regression formula")
			continue
		}
		f.SetCellValue(sheet, "A1", fmt.Sprintf("OLS: gdp ~ %s", strings.Join(reg.Predictors, " + ")))
		f.SetCellValue(sheet, "A2", fmt.Sprintf("n = %d, R2 = %.4f, adjusted R2 = %.4f", reg.N, reg.R2, reg.AdjR2))

		coefHeaders := []string{"Term", "Estimate", "Std Error", "t value", "p value"}
		for i, header := range coefHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 4)
			f.SetCellValue(sheet, cell, header)
			f.SetColWidth(sheet, cell, cell, 18)
		}
		terms := append([]string{"(Intercept)"}, reg.Predictors...)
		for i, term := range terms {
			row := i + 5
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), term)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%.6g", reg.Coef[i]))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.6g", reg.StdErr[i]))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.3f", reg.TValues[i]))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), formatPValue(reg.PValues[i]))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func createMarkdownReport(ds *Dataset, selected KMeansResult, elbow []ElbowPoint, sil []SilhouettePoint, grid []GridRun, fits []*Regression, missing []string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	report := `# COUNTRY CLUSTER ANALYSIS
## World Development Indicators

### DATA

`
	years := ds.yearSet()
	report += fmt.Sprintf("- **Observations**: %d country-year rows\n", len(ds.Countries))
	report += fmt.Sprintf("- **Indicators**: %d numeric columns\n", len(indicatorColumns))
	if len(years) > 0 {
		report += fmt.Sprintf("- **Years**: %d-%d\n", years[0], years[len(years)-1])
	}
	report += fmt.Sprintf("- **Cells imputed with zero**: %d\n", ds.Imputed)
	report += fmt.Sprintf("- **Countries without map geometry**: %d\n", len(missing))

	report += "\n### CLUSTER COUNT DIAGNOSTICS\n\n"
	report += "| k | WSS | Mean silhouette |\n"
	report += "|---|-----|------------------|\n"
	for i, pt := range elbow {
		score := ""
		if i < len(sil) {
			score = fmt.Sprintf("%.3f", sil[i].Score)
		}
		report += fmt.Sprintf("| %d | %.1f | %s |\n", pt.K, pt.WSS, score)
	}

	report += "\n### CLUSTERING COMPARISON GRID\n\n"
	report += "| Method | k | Cluster sizes | Mean silhouette |\n"
	report += "|--------|---|---------------|------------------|\n"
	for _, run := range grid {
		report += fmt.Sprintf("| %s | %d | %s | %.3f |\n", run.Method, run.K, joinInts(run.Sizes), run.Silhouette)
	}

	report += fmt.Sprintf("\n### SELECTED CLUSTERING\n\nK-means with k=%d (%d restarts, %d iterations), chosen from the diagnostics above. Cluster sizes: %s.\n",
		selected.K, kmeansRestarts, kmeansMaxIter, joinInts(clusterSizes(selected.Labels, selected.K)))

	report += "\n### PER-CLUSTER GDP REGRESSIONS\n\n"
	report += fmt.Sprintf("Formula: `gdp ~ %s`\n\n", strings.Join(regressionPredictors, " + "))
	report += "| Cluster | n | R2 | Adjusted R2 |\n"
	report += "|---------|---|-----|-------------|\n"
	for c, reg := range fits {
		if reg == nil {
			report += fmt.Sprintf("| %d | - | - | - |\n", c+1)
			continue
		}
		report += fmt.Sprintf("| %d | %d | %.4f | %.4f |\n", c+1, reg.N, reg.R2, reg.AdjR2)
	}
	report += "\nResidual-versus-fitted plots per cluster accompany this report; fan-shaped spreads there indicate heteroskedasticity and should temper any reading of the coefficient p-values.\n"

	if len(missing) > 0 {
		report += fmt.Sprintf("\n### UNMAPPED COUNTRIES\n\n%s\n", strings.Join(missing, ", "))
	}

	report += fmt.Sprintf("\n---\n*Generated %s*\n", time.Now().Format("2 January 2006"))

	_, err = file.WriteString(report)
	return err
}

// printConsoleSummary mirrors the workbook's regression sheets on the
// terminal.
func printConsoleSummary(selected KMeansResult, fits []*Regression) {
	header := color.New(color.FgCyan, color.Bold)
	header.Printf("\nSelected clustering: k-means k=%d, cluster sizes %s\n",
		selected.K, joinInts(clusterSizes(selected.Labels, selected.K)))

	for c, reg := range fits {
		fmt.Println()
		if reg == nil {
			header.Printf("Cluster %d: too few observations for the regression formula\n", c+1)
			continue
		}
		header.Printf("Cluster %d: n=%d  R2=%.4f  adjusted R2=%.4f\n", c+1, reg.N, reg.R2, reg.AdjR2)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Term", "Estimate", "Std Error", "t", "p"})
		terms := append([]string{"(Intercept)"}, reg.Predictors...)
		for i, term := range terms {
			table.Append([]string{
				term,
				fmt.Sprintf("%.6g", reg.Coef[i]),
				fmt.Sprintf("%.6g", reg.StdErr[i]),
				fmt.Sprintf("%.3f", reg.TValues[i]),
				formatPValue(reg.PValues[i]),
			})
		}
		table.Render()
	}
}

func formatNumber(num float64) string {
	switch {
	case num >= 1e12:
		return fmt.Sprintf("%.2fT", num/1e12)
	case num >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case num >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case num >= 1e3:
		return fmt.Sprintf("%.1fK", num/1e3)
	}
	return fmt.Sprintf("%.0f", num)
}

func formatPValue(p float64) string {
	if p != p { // NaN
		return "-"
	}
	if p < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("%.3f", p)
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, "/")
}
