package main

import (
	"fmt"
	"image/color"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// clusterByCountryYear rearranges the flat label slice into per-year
// country lookups for map rendering.
func clusterByCountryYear(ds *Dataset, labels []int) map[int]map[string]int {
	byYear := make(map[int]map[string]int)
	for i, l := range labels {
		y := ds.Years[i]
		if byYear[y] == nil {
			byYear[y] = make(map[string]int)
		}
		byYear[y][ds.Countries[i]] = l
	}
	return byYear
}

// createClusterMap renders one year's choropleth: every mappable
// country filled with its cluster color, unmatched countries absent.
func createClusterMap(year int, assignment map[string]int, shapes map[string][]*geom.Polygon, k int, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("COUNTRY CLUSTERS %d (K-MEANS, K=%d)", year, k)
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.HideAxes()

	for country, cluster := range assignment {
		polys, ok := shapes[country]
		if !ok {
			continue
		}
		for _, poly := range polys {
			filled, err := polygonPlotter(poly, clusterColor(cluster))
			if err != nil {
				return fmt.Errorf("rendering %s for %d: %w", country, year, err)
			}
			p.Add(filled)
		}
	}

	// Fixed world extent so every year's map lines up frame for frame.
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -60, 85

	return p.Save(20*vg.Inch, 11*vg.Inch, path)
}

// polygonPlotter converts a geometry exterior ring into a filled plot
// polygon. Interior rings (lakes) are ignored at map scale.
func polygonPlotter(poly *geom.Polygon, fill color.RGBA) (*plotter.Polygon, error) {
	if poly.NumLinearRings() == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}
	coords := poly.LinearRing(0).Coords()
	xys := make(plotter.XYs, len(coords))
	for i, c := range coords {
		xys[i].X = c.X()
		xys[i].Y = c.Y()
	}

	filled, err := plotter.NewPolygon(xys)
	if err != nil {
		return nil, err
	}
	filled.Color = fill
	filled.LineStyle.Color = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	filled.LineStyle.Width = vg.Points(0.5)
	return filled, nil
}
