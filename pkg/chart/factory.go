package chart

import (
	"github.com/matzehuels/quizframe/pkg/errors"
)

// Default trace colors per chart kind.
const (
	colorBar       = "#3498db"
	colorLine      = "#e74c3c"
	colorScatter   = "#9b59b6"
	colorHistogram = "#f39c12"
	colorBox       = "#1abc9c"
)

// DefaultBins is the histogram bin count used when the caller passes
// bins <= 0.
const DefaultBins = 15

// Option configures a figure constructor.
type Option func(*options)

type options struct {
	title  string
	xLabel string
	yLabel string
	color  string
}

// WithTitle sets the chart title (14px font).
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithXLabel sets the x-axis label.
func WithXLabel(label string) Option { return func(o *options) { o.xLabel = label } }

// WithYLabel sets the y-axis label.
func WithYLabel(label string) Option { return func(o *options) { o.yLabel = label } }

// WithColor overrides the default trace color.
func WithColor(color string) Option { return func(o *options) { o.color = color } }

func buildOptions(defaultColor string, opts []Option) options {
	o := options{color: defaultColor}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bar creates a compact bar chart from category labels and values.
func Bar(labels []string, values []float64, opts ...Option) (*Figure, error) {
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "bar chart requires at least one category")
	}
	if len(labels) != len(values) {
		return nil, errors.New(errors.ErrCodeInvalidChart, "bar chart labels/values length mismatch: %d != %d", len(labels), len(values))
	}
	o := buildOptions(colorBar, opts)
	return &Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      stringsToAny(labels),
			Y:      floatsToAny(values),
			Marker: &Marker{Color: o.color},
		}},
		Layout: axisLayout(o, Margin{L: 40, R: 20, T: 40, B: 40}),
	}, nil
}

// Line creates a compact line chart with markers at each point.
func Line(x, y []float64, opts ...Option) (*Figure, error) {
	if len(x) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "line chart requires at least one point")
	}
	if len(x) != len(y) {
		return nil, errors.New(errors.ErrCodeInvalidChart, "line chart x/y length mismatch: %d != %d", len(x), len(y))
	}
	o := buildOptions(colorLine, opts)
	return &Figure{
		Data: []Trace{{
			Type:   "scatter",
			X:      floatsToAny(x),
			Y:      floatsToAny(y),
			Mode:   "lines+markers",
			Line:   &LineStyle{Color: o.color, Width: 2},
			Marker: &Marker{Size: 4, Color: o.color},
		}},
		Layout: axisLayout(o, Margin{L: 40, R: 20, T: 40, B: 40}),
	}, nil
}

// Pie creates a compact donut-style pie chart with a horizontal legend.
func Pie(labels []string, values []float64, opts ...Option) (*Figure, error) {
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "pie chart requires at least one slice")
	}
	if len(labels) != len(values) {
		return nil, errors.New(errors.ErrCodeInvalidChart, "pie chart labels/values length mismatch: %d != %d", len(labels), len(values))
	}
	o := buildOptions("", opts)
	show := true
	return &Figure{
		Data: []Trace{{
			Type:     "pie",
			Labels:   labels,
			Values:   values,
			Hole:     0.3,
			TextFont: &Font{Size: 10},
		}},
		Layout: Layout{
			Title:      titleFor(o),
			Template:   "plotly_white",
			Margin:     Margin{L: 20, R: 20, T: 40, B: 20},
			Height:     DefaultHeight,
			ShowLegend: &show,
			Legend:     &Legend{Font: &Font{Size: 9}, Orientation: "h", Y: -0.1},
		},
	}, nil
}

// Scatter creates a compact scatter plot.
func Scatter(x, y []float64, opts ...Option) (*Figure, error) {
	if len(x) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "scatter plot requires at least one point")
	}
	if len(x) != len(y) {
		return nil, errors.New(errors.ErrCodeInvalidChart, "scatter plot x/y length mismatch: %d != %d", len(x), len(y))
	}
	o := buildOptions(colorScatter, opts)
	return &Figure{
		Data: []Trace{{
			Type:   "scatter",
			X:      floatsToAny(x),
			Y:      floatsToAny(y),
			Mode:   "markers",
			Marker: &Marker{Size: 6, Color: o.color, Opacity: 0.7},
		}},
		Layout: axisLayout(o, Margin{L: 40, R: 20, T: 40, B: 40}),
	}, nil
}

// Histogram creates a compact histogram. The y-axis is always labeled
// "Frequency"; bins <= 0 falls back to DefaultBins.
func Histogram(values []float64, bins int, opts ...Option) (*Figure, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "histogram requires at least one value")
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	o := buildOptions(colorHistogram, opts)
	o.yLabel = "Frequency"
	return &Figure{
		Data: []Trace{{
			Type:   "histogram",
			X:      floatsToAny(values),
			NBinsX: bins,
			Marker: &Marker{Color: o.color},
		}},
		Layout: axisLayout(o, Margin{L: 40, R: 20, T: 40, B: 40}),
	}, nil
}

// Box creates a compact box plot of a single series.
func Box(values []float64, opts ...Option) (*Figure, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "box plot requires at least one value")
	}
	o := buildOptions(colorBox, opts)
	hide := false
	return &Figure{
		Data: []Trace{{
			Type:   "box",
			Y:      floatsToAny(values),
			Marker: &Marker{Color: o.color},
		}},
		Layout: Layout{
			Title:      titleFor(o),
			YAxis:      &Axis{Title: o.yLabel, TickFont: &Font{Size: 10}},
			Template:   "plotly_white",
			Margin:     Margin{L: 40, R: 20, T: 40, B: 40},
			Height:     DefaultHeight,
			ShowLegend: &hide,
		},
	}, nil
}

// Heatmap creates a compact heatmap with the Viridis colorscale.
// z is indexed [row][column]; xLabels and yLabels name the columns and
// rows respectively and must match the z dimensions.
func Heatmap(z [][]float64, xLabels, yLabels []string, opts ...Option) (*Figure, error) {
	if len(z) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "heatmap requires at least one row")
	}
	if len(yLabels) != len(z) {
		return nil, errors.New(errors.ErrCodeInvalidChart, "heatmap y labels/rows length mismatch: %d != %d", len(yLabels), len(z))
	}
	for i, row := range z {
		if len(xLabels) != len(row) {
			return nil, errors.New(errors.ErrCodeInvalidChart, "heatmap x labels/row %d length mismatch: %d != %d", i, len(xLabels), len(row))
		}
	}
	o := buildOptions("", opts)
	return &Figure{
		Data: []Trace{{
			Type:       "heatmap",
			Z:          z,
			X:          stringsToAny(xLabels),
			Y:          stringsToAny(yLabels),
			Colorscale: "Viridis",
		}},
		Layout: Layout{
			Title:    titleFor(o),
			XAxis:    &Axis{TickFont: &Font{Size: 9}},
			YAxis:    &Axis{TickFont: &Font{Size: 9}},
			Template: "plotly_white",
			Margin:   Margin{L: 60, R: 20, T: 40, B: 40},
			Height:   DefaultHeight,
		},
	}, nil
}

// axisLayout builds the shared layout for x/y-axis charts.
func axisLayout(o options, margin Margin) Layout {
	return Layout{
		Title:    titleFor(o),
		XAxis:    &Axis{Title: o.xLabel, TickFont: &Font{Size: 10}},
		YAxis:    &Axis{Title: o.yLabel, TickFont: &Font{Size: 10}},
		Template: "plotly_white",
		Margin:   margin,
		Height:   DefaultHeight,
	}
}

func titleFor(o options) *Title {
	if o.title == "" {
		return nil
	}
	return &Title{Text: o.title, Font: &Font{Size: 14}}
}

func stringsToAny(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func floatsToAny(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
