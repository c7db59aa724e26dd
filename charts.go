package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// clusterPalette colors clusters consistently across the scatter chart,
// the choropleth maps and the workbook legend.
var clusterPalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

func clusterColor(c int) color.RGBA {
	return clusterPalette[c%len(clusterPalette)]
}

func createElbowChart(points []ElbowPoint, path string) error {
	p := plot.New()
	p.Title.Text = "ELBOW DIAGNOSTIC: WSS BY CLUSTER COUNT"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "k"
	p.Y.Label.Text = "Within-cluster sum of squares"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.K)
		xys[i].Y = pt.WSS
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	line.Width = vg.Points(2)

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, scatter, plotter.NewGrid())

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

func createSilhouetteChart(points []SilhouettePoint, path string) error {
	p := plot.New()
	p.Title.Text = "MEAN SILHOUETTE WIDTH BY CLUSTER COUNT"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "k"
	p.Y.Label.Text = "Mean silhouette width"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.K)
		xys[i].Y = pt.Score
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	line.Width = vg.Points(2)

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(line, scatter, plotter.NewGrid())
	p.Y.Min = 0
	p.Y.Max = 1

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// createClusterScatterChart plots the selected clustering over two
// standardized indicators, one colored scatter per cluster.
func createClusterScatterChart(scaled [][]float64, labels []int, k int, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("COUNTRY CLUSTERS (K-MEANS, K=%d)", k)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "GDP per capita (standardized)"
	p.Y.Label.Text = "Life expectancy (standardized)"

	xCol := columnIndex("gdp_per_capita")
	yCol := columnIndex("life_expectancy")

	for c := 0; c < k; c++ {
		var xys plotter.XYs
		for i, l := range labels {
			if l != c {
				continue
			}
			xys = append(xys, plotter.XY{X: scaled[i][xCol], Y: scaled[i][yCol]})
		}
		if len(xys) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = clusterColor(c)
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("cluster %d", c+1), scatter)
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	return p.Save(12*vg.Inch, 9*vg.Inch, path)
}

// createResidualChart renders the residual-vs-fitted diagnostic for one
// per-cluster regression.
func createResidualChart(reg *Regression, cluster int, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("RESIDUALS VS FITTED: CLUSTER %d", cluster+1)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Fitted GDP"
	p.Y.Label.Text = "Residual"

	xys := make(plotter.XYs, len(reg.Fitted))
	for i := range reg.Fitted {
		xys[i].X = reg.Fitted[i]
		xys[i].Y = reg.Residuals[i]
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = clusterColor(cluster)
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	zero := plotter.NewFunction(func(x float64) float64 { return 0 })
	zero.Color = color.RGBA{A: 255}
	zero.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(scatter, zero, plotter.NewGrid())

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}
