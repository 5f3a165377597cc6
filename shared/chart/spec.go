// Package chart derives figures from a query result: grouped bar charts,
// pivoted heatmaps and raw line/scatter plots, rendered with gonum/plot.
package chart

import (
	"fmt"
	"strings"

	"github.com/dracory/weeviz/shared/constants"
)

// Kind selects how a figure is built.
type Kind string

const (
	KindBar     Kind = "Bar"
	KindHeatmap Kind = "Heatmap"
	KindLine    Kind = "Line"
	KindScatter Kind = "Scatter"
)

// Kinds lists the chart kinds in the order selectors offer them.
var Kinds = []Kind{KindBar, KindHeatmap, KindLine, KindScatter}

// ParseKind matches a kind name case-insensitively. An empty name is Bar.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KindBar, nil
	}
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported chart type: %q", s)
}

// Spec is built fresh for every chart request.
type Spec struct {
	X          string `json:"x"`
	Y          string `json:"y"`
	Kind       Kind   `json:"kind"`
	ShowGrid   bool   `json:"show_grid"`
	ShowLabels bool   `json:"show_labels"`
	Title      string `json:"title"`
	MarkerSize int    `json:"marker_size"`
}

// markerSize clamps the marker size into the selectable range.
func (s Spec) markerSize() float64 {
	switch {
	case s.MarkerSize <= 0:
		return constants.DefaultMarkerSize
	case s.MarkerSize < constants.MinMarkerSize:
		return constants.MinMarkerSize
	case s.MarkerSize > constants.MaxMarkerSize:
		return constants.MaxMarkerSize
	}
	return float64(s.MarkerSize)
}

// title returns the custom title or the given default.
func (s Spec) title(fallback string) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	return fallback
}
