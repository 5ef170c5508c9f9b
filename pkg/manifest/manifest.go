// Package manifest reads and writes JSON document descriptions.
//
// A manifest is the serializable form of a composed document: a title,
// optional custom CSS/JS, and an ordered list of blocks. Chart blocks
// describe figures declaratively by kind and data; the figure itself is
// built through the chart constructors at load time.
package manifest

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/quizframe/pkg/chart"
	"github.com/matzehuels/quizframe/pkg/content"
	"github.com/matzehuels/quizframe/pkg/document"
	"github.com/matzehuels/quizframe/pkg/errors"
)

// Document is a serializable document description.
type Document struct {
	Title     string  `json:"title"`
	CustomCSS string  `json:"custom_css,omitempty"`
	CustomJS  string  `json:"custom_js,omitempty"`
	Blocks    []Block `json:"blocks"`
}

// Block is one manifest entry. Type selects which fields apply.
type Block struct {
	Type        string         `json:"type"`
	Content     string         `json:"content,omitempty"`
	ContentType string         `json:"content_type,omitempty"`
	Chart       *Chart         `json:"chart,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Headers     []string       `json:"headers,omitempty"`
	Rows        [][]any        `json:"rows,omitempty"`
}

// Chart declaratively describes a figure. Kind selects the constructor;
// the data fields it reads depend on the kind (bar and pie use labels
// and values, line and scatter use x and y, histogram and box use
// values, heatmap uses z with axis labels).
type Chart struct {
	Kind    string      `json:"kind"`
	Title   string      `json:"title,omitempty"`
	XLabel  string      `json:"x_label,omitempty"`
	YLabel  string      `json:"y_label,omitempty"`
	Color   string      `json:"color,omitempty"`
	Labels  []string    `json:"labels,omitempty"`
	X       []float64   `json:"x,omitempty"`
	Y       []float64   `json:"y,omitempty"`
	Values  []float64   `json:"values,omitempty"`
	Z       [][]float64 `json:"z,omitempty"`
	XLabels []string    `json:"x_labels,omitempty"`
	YLabels []string    `json:"y_labels,omitempty"`
	Bins    int         `json:"bins,omitempty"`
}

// Read decodes a manifest from r.
func Read(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to decode manifest")
	}
	return &d, nil
}

// ReadFile decodes a manifest from the file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to open manifest: %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the manifest to w as indented JSON without HTML
// escaping, so LaTeX and inline markup stay readable in the file.
func (d *Document) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode manifest")
	}
	return nil
}

// Composer builds a document composer from the manifest. Every block is
// validated; the first invalid block fails the whole load since a
// manifest is authored content, not untrusted render input.
func (d *Document) Composer() (*document.Composer, error) {
	var opts []document.ComposerOption
	if d.CustomCSS != "" {
		opts = append(opts, document.WithCustomCSS(d.CustomCSS))
	}
	if d.CustomJS != "" {
		opts = append(opts, document.WithCustomJS(d.CustomJS))
	}
	c := document.NewComposer(d.Title, opts...)

	for i, b := range d.Blocks {
		switch b.Type {
		case "text":
			ct, err := parseContentType(b.ContentType)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "block %d", i+1)
			}
			c.AddContent(b.Content, ct)
		case "chart":
			if b.Chart == nil {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "block %d: chart block without a chart description", i+1)
			}
			fig, err := b.Chart.Figure()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "block %d", i+1)
			}
			c.AddChart(fig, b.Config)
		case "table":
			c.AddTable(b.Headers, b.Rows)
		default:
			return nil, errors.New(errors.ErrCodeInvalidManifest, "block %d: unknown block type %q", i+1, b.Type)
		}
	}
	return c, nil
}

func parseContentType(s string) (content.Type, error) {
	switch content.Type(s) {
	case "", content.TypeGeneral:
		return content.TypeGeneral, nil
	case content.TypeQuestion:
		return content.TypeQuestion, nil
	case content.TypeOption:
		return content.TypeOption, nil
	}
	return "", errors.New(errors.ErrCodeInvalidManifest, "unknown content type %q", s)
}

// Figure builds the figure through the matching chart constructor.
func (ch *Chart) Figure() (*chart.Figure, error) {
	opts := ch.options()
	switch ch.Kind {
	case "bar":
		return chart.Bar(ch.Labels, ch.Values, opts...)
	case "line":
		return chart.Line(ch.X, ch.Y, opts...)
	case "pie":
		return chart.Pie(ch.Labels, ch.Values, opts...)
	case "scatter":
		return chart.Scatter(ch.X, ch.Y, opts...)
	case "histogram":
		return chart.Histogram(ch.Values, ch.Bins, opts...)
	case "box":
		return chart.Box(ch.Values, opts...)
	case "heatmap":
		return chart.Heatmap(ch.Z, ch.XLabels, ch.YLabels, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown chart kind %q", ch.Kind)
}

func (ch *Chart) options() []chart.Option {
	var opts []chart.Option
	if ch.Title != "" {
		opts = append(opts, chart.WithTitle(ch.Title))
	}
	if ch.XLabel != "" {
		opts = append(opts, chart.WithXLabel(ch.XLabel))
	}
	if ch.YLabel != "" {
		opts = append(opts, chart.WithYLabel(ch.YLabel))
	}
	if ch.Color != "" {
		opts = append(opts, chart.WithColor(ch.Color))
	}
	return opts
}
