// Package chart builds compact Plotly figure descriptors for embedding
// in self-contained HTML documents.
//
// A Figure is a serializable trace+layout structure; all drawing is done
// client-side by plotly.js, so this package never rasterizes anything.
// Every constructor applies the same compact styling contract (white
// template, 200px height, fixed margins, small fonts) so that charts of
// any type render consistently inside small iframes.
package chart

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DefaultHeight is the fixed figure height in pixels. Charts are embedded
// in small iframes, so the height is capped rather than responsive.
const DefaultHeight = 200

// Figure is the serializable chart descriptor consumed by plotly.js.
// It is produced by the constructors in this package and embedded as JSON
// into a document's script block at render time.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace holds the data series for one chart. Only the fields relevant to
// the trace's Type are populated; everything else is omitted from JSON.
type Trace struct {
	Type       string      `json:"type"`
	X          []any       `json:"x,omitempty"`
	Y          []any       `json:"y,omitempty"`
	Z          [][]float64 `json:"z,omitempty"`
	Labels     []string    `json:"labels,omitempty"`
	Values     []float64   `json:"values,omitempty"`
	Mode       string      `json:"mode,omitempty"`
	Hole       float64     `json:"hole,omitempty"`
	NBinsX     int         `json:"nbinsx,omitempty"`
	Colorscale string      `json:"colorscale,omitempty"`
	Line       *LineStyle  `json:"line,omitempty"`
	Marker     *Marker     `json:"marker,omitempty"`
	TextFont   *Font       `json:"textfont,omitempty"`
}

// Layout carries the figure-level styling. Margin and Height are always
// serialized: the compact embedding contract depends on them.
type Layout struct {
	Title      *Title  `json:"title,omitempty"`
	XAxis      *Axis   `json:"xaxis,omitempty"`
	YAxis      *Axis   `json:"yaxis,omitempty"`
	Template   string  `json:"template,omitempty"`
	Margin     Margin  `json:"margin"`
	Height     int     `json:"height"`
	ShowLegend *bool   `json:"showlegend,omitempty"`
	Legend     *Legend `json:"legend,omitempty"`
	Font       *Font   `json:"font,omitempty"`
}

// Title is a chart title with its font.
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Axis describes one axis (label and tick font).
type Axis struct {
	Title    string `json:"title,omitempty"`
	TickFont *Font  `json:"tickfont,omitempty"`
}

// Legend positions and sizes the chart legend.
type Legend struct {
	Font        *Font   `json:"font,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Y           float64 `json:"y"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Font sets a font size in pixels.
type Font struct {
	Size int `json:"size,omitempty"`
}

// LineStyle styles a line trace.
type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Marker styles trace markers.
type Marker struct {
	Color   string  `json:"color,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// JSON serializes the figure with minimal separators and without escaping
// HTML-significant runes, matching the shape plotly.js parses from the
// embedded script block. Returns an error if the figure contains values
// JSON cannot represent (e.g. NaN or Inf data points).
func (f *Figure) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
