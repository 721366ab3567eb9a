// Package chart renders category frequency tables as PNG bar charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when there is nothing to draw
var ErrEmptySeries = errors.New("series has no categories")

// Series is one chart: bars are drawn in the order of Labels
type Series struct {
	Title   string
	Labels  []string
	Values  []float64
	Palette []string // hex colors, cycled across bars
}

// Renderer draws bar charts at a fixed raster size
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer. Non-positive sizes fall back to 900x560.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 560
	}
	return &Renderer{width: width, height: height}
}

// Render draws the series and returns PNG bytes
func (r *Renderer) Render(s Series) ([]byte, error) {
	if len(s.Labels) == 0 {
		return nil, ErrEmptySeries
	}
	if len(s.Labels) != len(s.Values) {
		return nil, fmt.Errorf("series %q: %d labels but %d values", s.Title, len(s.Labels), len(s.Values))
	}

	bars := make([]chart.Value, len(s.Labels))
	for i, label := range s.Labels {
		color := colorAt(s.Palette, i)
		bars[i] = chart.Value{
			Label: label,
			Value: s.Values[i],
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color.WithAlpha(255),
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:      s.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Width:      r.width,
		Height:     r.height,
		BarWidth:   r.barWidth(len(bars)),
		BarSpacing: r.barSpacing(len(bars)),
		XAxis:      r.xAxisStyle(s.Labels),
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue(s.Values) * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", s.Title, err)
	}
	return buf.Bytes(), nil
}

// barWidth spreads the bars over about 70% of the canvas
func (r *Renderer) barWidth(n int) int {
	w := int(float64(r.width) * 0.7 / float64(n))
	if w > 80 {
		w = 80
	}
	if w < 8 {
		w = 8
	}
	return w
}

func (r *Renderer) barSpacing(n int) int {
	s := int(float64(r.width) * 0.2 / float64(n))
	if s < 4 {
		s = 4
	}
	return s
}

// xAxisStyle tilts long category labels so they do not overlap
func (r *Renderer) xAxisStyle(labels []string) chart.Style {
	style := chart.Style{FontSize: 8}
	longest := 0
	for _, l := range labels {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	if longest*len(labels) > 60 {
		style.TextRotationDegrees = 45.0
	}
	return style
}

func maxValue(values []float64) float64 {
	max := 1.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

func colorAt(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(palette[i%len(palette)])
}
