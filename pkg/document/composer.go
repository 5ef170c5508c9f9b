package document

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"html"

	"github.com/matzehuels/quizframe/pkg/chart"
	"github.com/matzehuels/quizframe/pkg/content"
	"github.com/matzehuels/quizframe/pkg/errors"
)

// DefaultTitle is used when a composer is created without a title.
const DefaultTitle = "Rendered HTML"

// Composer assembles an ordered list of content blocks into one HTML
// document, or into standalone per-block pages. Blocks render in the
// order they were added; a block that fails to render becomes a visible
// error fragment at its position without affecting its siblings.
type Composer struct {
	title     string
	customCSS string
	customJS  string
	blocks    []content.Block
}

// ComposerOption configures a Composer at construction.
type ComposerOption func(*Composer)

// WithCustomCSS appends extra CSS inside the document's style block.
func WithCustomCSS(css string) ComposerOption {
	return func(c *Composer) { c.customCSS = css }
}

// WithCustomJS appends extra JavaScript to the document's
// DOMContentLoaded handler.
func WithCustomJS(js string) ComposerOption {
	return func(c *Composer) { c.customJS = js }
}

// NewComposer creates an empty composer. An empty title falls back to
// DefaultTitle.
func NewComposer(title string, opts ...ComposerOption) *Composer {
	if title == "" {
		title = DefaultTitle
	}
	c := &Composer{title: title}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Title returns the document title.
func (c *Composer) Title() string { return c.title }

// Len returns the number of blocks added so far.
func (c *Composer) Len() int { return len(c.blocks) }

// AddContent appends a text block. Text is trusted markup and may
// contain inline HTML and LaTeX delimiters. An empty contentType
// defaults to general.
func (c *Composer) AddContent(text string, contentType content.Type) *Composer {
	c.blocks = append(c.blocks, content.NewText(text, contentType))
	return c
}

// AddChart appends a chart block. A nil config defaults to a responsive
// chart.
func (c *Composer) AddChart(fig *chart.Figure, config map[string]any) *Composer {
	c.blocks = append(c.blocks, content.NewChart(fig, config))
	return c
}

// AddTable appends a table block. Cells are stringified and
// HTML-escaped at render time.
func (c *Composer) AddTable(headers []string, rows [][]any) *Composer {
	c.blocks = append(c.blocks, content.NewTable(headers, rows))
	return c
}

// RenderDocument renders every block into one full HTML document.
// With compact set, whitespace runs collapse to single spaces.
func (c *Composer) RenderDocument(compact bool) string {
	doc := c.renderFull()
	if compact {
		doc = compactWhitespace(doc)
	}
	return doc
}

// RenderJSON renders the full document and wraps it as {"html": ...}
// with minimal separators and no HTML escaping.
func (c *Composer) RenderJSON(compact bool) (string, error) {
	return marshalCompact(map[string]string{"html": c.RenderDocument(compact)})
}

// RenderCompressed renders the compact document, compresses it with
// zlib, and wraps the base64 bytes as {"html_compressed": ...}.
func (c *Composer) RenderCompressed() (string, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(c.RenderDocument(true))); err != nil {
		zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return marshalCompact(map[string]string{
		"html_compressed": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}

// RenderBlocks renders every block as its own self-contained page.
// Text pages always carry KaTeX; chart and table pages carry only what
// they need. Page titles are numbered by block position.
func (c *Composer) RenderBlocks() []string {
	pages := make([]string, 0, len(c.blocks))
	for i, b := range c.blocks {
		pages = append(pages, c.renderBlockPage(i, b))
	}
	return pages
}

func (c *Composer) renderBlockPage(i int, b content.Block) string {
	switch b.Kind {
	case content.KindText:
		title := fmt.Sprintf("%s – Text %d", c.title, i+1)
		return RenderPage(title, b.Text, WithMath(), WithContentType(b.ContentType))
	case content.KindChart:
		if _, err := b.Figure.JSON(); err != nil {
			return c.errorPage(i, err)
		}
		title := fmt.Sprintf("%s – Chart %d", c.title, i+1)
		return RenderPage(title, "", WithChart(b.Figure, b.Config))
	case content.KindTable:
		title := fmt.Sprintf("%s – Table %d", c.title, i+1)
		return RenderPage(title, tableHTML(b.Headers, b.Rows))
	default:
		return c.errorPage(i, errors.New(errors.ErrCodeInvalidBlock, "unsupported block kind %q", b.Kind))
	}
}

func (c *Composer) errorPage(i int, err error) string {
	title := fmt.Sprintf("%s – Error %d", c.title, i+1)
	return RenderPage(title, errorFragment(i, err))
}

func errorFragment(i int, err error) string {
	return fmt.Sprintf(`<div style="color: red; padding: 10px; border: 1px solid red; border-radius: 4px;">Error rendering block %d: %s</div>`,
		i+1, html.EscapeString(errors.UserMessage(err)))
}

// chartEmbed is one successfully serialized chart, keyed by its block
// index so div ids stay positional.
type chartEmbed struct {
	index  int
	figure string
	config string
}

func (c *Composer) renderFull() string {
	needMath := false
	needCharts := false
	for _, b := range c.blocks {
		switch b.Kind {
		case content.KindText:
			needMath = true
		case content.KindChart:
			needCharts = true
		}
	}

	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n    <meta charset=\"UTF-8\">\n    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&buf, "    <title>%s</title>\n", html.EscapeString(c.title))
	if needMath {
		buf.WriteString(katexStylesheet())
		buf.WriteString("\n")
	}
	buf.WriteString(docStyle)
	if c.customCSS != "" {
		buf.WriteString("\n        ")
		buf.WriteString(c.customCSS)
	}
	buf.WriteString("\n    </style>\n</head>\n<body>\n    <div class=\"main-container\">\n")

	embeds := c.writeBlocks(&buf)

	buf.WriteString("    </div>\n")
	if needMath {
		buf.WriteString(katexScripts())
		buf.WriteString("\n")
	}
	if needCharts {
		buf.WriteString(plotlyScript())
		buf.WriteString("\n")
	}
	buf.WriteString("    <script>\n        document.addEventListener(\"DOMContentLoaded\", function() {\n")
	if needMath {
		buf.WriteString(mathRenderGuardedJS)
		buf.WriteString("\n")
	}
	for _, e := range embeds {
		fmt.Fprintf(&buf, docChartJS, e.index, e.figure, e.config)
	}
	if len(embeds) > 0 {
		buf.WriteString("            window.addEventListener(\"resize\", function() {\n                if (typeof Plotly !== \"undefined\" && Plotly.Plots) {\n")
		for _, e := range embeds {
			fmt.Fprintf(&buf, docChartResizeJS, e.index)
		}
		buf.WriteString("                }\n            });\n")
	}
	if c.customJS != "" {
		fmt.Fprintf(&buf, "            %s\n", c.customJS)
	}
	buf.WriteString("        });\n    </script>\n</body>\n</html>")

	return buf.String()
}

// writeBlocks emits the body fragment for every block and returns the
// charts that serialized cleanly. A chart whose figure or config cannot
// be serialized becomes an error fragment in place of its container.
func (c *Composer) writeBlocks(buf *bytes.Buffer) []chartEmbed {
	var embeds []chartEmbed
	for i, b := range c.blocks {
		switch b.Kind {
		case content.KindText:
			fmt.Fprintf(buf, "        <div class=\"content-container content-%s\">\n            <div class=\"content-text\">\n                %s\n            </div>\n        </div>\n", b.ContentType, b.Text)
		case content.KindChart:
			figJSON, err := b.Figure.JSON()
			if err != nil {
				buf.WriteString("        " + errorFragment(i, err) + "\n")
				continue
			}
			cfgJSON, err := marshalCompact(mergeConfig(defaultDocumentConfig(), b.Config))
			if err != nil {
				buf.WriteString("        " + errorFragment(i, err) + "\n")
				continue
			}
			fmt.Fprintf(buf, "        <div class=\"plotly-container\">\n            <div id=\"plotly-div-%d\" class=\"loading\">Loading chart...</div>\n        </div>\n", i)
			embeds = append(embeds, chartEmbed{index: i, figure: figJSON, config: cfgJSON})
		case content.KindTable:
			buf.WriteString("        " + tableHTML(b.Headers, b.Rows) + "\n")
		default:
			err := errors.New(errors.ErrCodeInvalidBlock, "unsupported block kind %q", b.Kind)
			buf.WriteString("        " + errorFragment(i, err) + "\n")
		}
	}
	return embeds
}

const docChartJS = `            try {
                if (typeof Plotly !== "undefined") {
                    const plotlyData_%[1]d = %[2]s;
                    const plotlyConfig_%[1]d = %[3]s;
                    Plotly.newPlot("plotly-div-%[1]d", plotlyData_%[1]d.data, plotlyData_%[1]d.layout, plotlyConfig_%[1]d);
                } else {
                    console.error("Plotly library not loaded");
                    document.getElementById("plotly-div-%[1]d").innerHTML = "<div style=\"text-align:center;padding:20px;color:#666;font-size:12px;\">Plotly library not available</div>";
                }
            } catch (e) {
                console.error("Error rendering plotly chart %[1]d:", e);
                document.getElementById("plotly-div-%[1]d").innerHTML = "<div style=\"text-align:center;padding:20px;color:#666;font-size:12px;\">Error rendering chart</div>";
            }
`

const docChartResizeJS = `                    try {
                        Plotly.Plots.resize("plotly-div-%[1]d");
                    } catch (e) {
                        console.warn("Error resizing chart %[1]d:", e);
                    }
`

// Full-document styles. Content types are styled through per-type
// classes since one document mixes several types.
const docStyle = `    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 16px;
            background-color: #f4f4f9;
            color: #333;
        }
        .main-container {
            max-width: 800px;
            margin: 0 auto;
            background-color: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
        }
        .content-container {
            margin-bottom: 16px;
            padding: 12px;
            border-radius: 6px;
            border: 1px solid #e0e0e0;
        }
        .content-question {
            border-left: 3px solid #007bff;
            background: linear-gradient(135deg, #f8f9ff 0%, #ffffff 100%);
        }
        .content-question .content-text {
            font-weight: 500;
            color: #2c3e50;
        }
        .content-question::before {
            content: "Q";
            display: inline-block;
            font-size: 10px;
            font-weight: bold;
            background: #007bff;
            color: white;
            padding: 2px 6px;
            border-radius: 3px;
            margin-bottom: 6px;
            margin-right: 6px;
        }
        .content-option {
            border-left: 3px solid #28a745;
            background: linear-gradient(135deg, #f8fff8 0%, #ffffff 100%);
        }
        .content-option .content-text {
            color: #2c3e50;
        }
        .content-option::before {
            content: "A";
            display: inline-block;
            font-size: 10px;
            font-weight: bold;
            background: #28a745;
            color: white;
            padding: 2px 6px;
            border-radius: 3px;
            margin-bottom: 6px;
            margin-right: 6px;
        }
        .content-general {
            border-left: 3px solid #6c757d;
        }
        .plotly-container {
            margin: 16px 0;
            padding: 12px;
            background-color: #fafafa;
            border-radius: 4px;
            border: 1px solid #e8e8e8;
        }
        .table-container {
            margin: 16px 0;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 8px;
            text-align: left;
        }
        th {
            background-color: #f2f2f2;
        }
        .loading {
            text-align: center;
            padding: 20px;
            color: #666;
            font-size: 14px;
        }
        .plotly-div {
            aspect-ratio: 16 / 9;
            width: 100%;
            min-height: 240px;
            height: auto !important;
        }`
