package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// countryNameFixes maps World Bank country names to the names used in
// the world GeoJSON file. Kept as a manual substitution list; anything
// not covered here and not matching verbatim is dropped from the maps.
var countryNameFixes = map[string]string{
	"Bahamas, The":              "The Bahamas",
	"Brunei Darussalam":         "Brunei",
	"Congo, Dem. Rep.":          "Democratic Republic of the Congo",
	"Congo, Rep.":               "Republic of the Congo",
	"Cote d'Ivoire":             "Ivory Coast",
	"Czechia":                   "Czech Republic",
	"Egypt, Arab Rep.":          "Egypt",
	"Gambia, The":               "Gambia",
	"Iran, Islamic Rep.":        "Iran",
	"Korea, Dem. People's Rep.": "North Korea",
	"Korea, Rep.":               "South Korea",
	"Kyrgyz Republic":           "Kyrgyzstan",
	"Lao PDR":                   "Laos",
	"North Macedonia":           "Macedonia",
	"Russian Federation":        "Russia",
	"Serbia":                    "Republic of Serbia",
	"Slovak Republic":           "Slovakia",
	"Syrian Arab Republic":      "Syria",
	"Tanzania":                  "United Republic of Tanzania",
	"Turkiye":                   "Turkey",
	"United States":             "United States of America",
	"Venezuela, RB":             "Venezuela",
	"Viet Nam":                  "Vietnam",
	"Yemen, Rep.":               "Yemen",
}

// WorldGeometry holds country polygons keyed by the map file's own
// country names.
type WorldGeometry struct {
	Shapes map[string][]*geom.Polygon
}

func loadWorldGeometry(path string) (*WorldGeometry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading geometry file %s: %w", path, err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("decoding geometry file %s: %w", path, err)
	}

	shapes := make(map[string][]*geom.Polygon, len(fc.Features))
	for _, feat := range fc.Features {
		name := featureName(feat.Properties)
		if name == "" {
			continue
		}
		switch g := feat.Geometry.(type) {
		case *geom.Polygon:
			shapes[name] = append(shapes[name], g)
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				shapes[name] = append(shapes[name], g.Polygon(i))
			}
		}
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("geometry file %s contains no named polygons", path)
	}
	return &WorldGeometry{Shapes: shapes}, nil
}

func featureName(props map[string]interface{}) string {
	for _, key := range []string{"name", "NAME", "ADMIN", "admin"} {
		if v, ok := props[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// lookup resolves a World Bank country name to its polygons, applying
// the substitution list first.
func (w *WorldGeometry) lookup(country string) ([]*geom.Polygon, bool) {
	name := country
	if fixed, ok := countryNameFixes[country]; ok {
		name = fixed
	}
	polys, ok := w.Shapes[name]
	return polys, ok
}

// matchCountries partitions a country list into mappable and unmapped
// names. Unmapped countries are silently left off the maps; the caller
// reports the count.
func (w *WorldGeometry) matchCountries(countries []string) (matched map[string][]*geom.Polygon, missing []string) {
	matched = make(map[string][]*geom.Polygon)
	seen := map[string]bool{}
	for _, c := range countries {
		if seen[c] {
			continue
		}
		seen[c] = true
		if polys, ok := w.lookup(c); ok {
			matched[c] = polys
		} else {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return matched, missing
}
