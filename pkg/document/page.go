package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"

	"github.com/matzehuels/quizframe/pkg/chart"
	"github.com/matzehuels/quizframe/pkg/content"
)

// page collects everything one standalone block page needs.
type page struct {
	title       string
	content     string
	contentType content.Type
	math        bool
	figure      *chart.Figure
	config      map[string]any
	customCSS   string
	customJS    string
}

// PageOption configures a standalone page render.
type PageOption func(*page)

// WithMath includes KaTeX assets and auto-renders LaTeX delimiters.
func WithMath() PageOption { return func(p *page) { p.math = true } }

// WithChart embeds a Plotly figure below the text content. The config
// is merged over the compact page defaults; config keys win.
func WithChart(fig *chart.Figure, config map[string]any) PageOption {
	return func(p *page) {
		p.figure = fig
		p.config = config
	}
}

// WithContentType selects the visual accent (question, option, general).
func WithContentType(t content.Type) PageOption {
	return func(p *page) {
		if t != "" {
			p.contentType = t
		}
	}
}

// WithPageCSS appends extra CSS inside the page's style block.
func WithPageCSS(css string) PageOption { return func(p *page) { p.customCSS = css } }

// WithPageJS appends extra JavaScript to the DOMContentLoaded handler.
func WithPageJS(js string) PageOption { return func(p *page) { p.customJS = js } }

// RenderPage renders a single self-contained HTML page around one piece
// of content. contentHTML is trusted markup and is embedded verbatim;
// callers escape untrusted input before passing it in.
func RenderPage(title, contentHTML string, opts ...PageOption) string {
	p := page{title: title, content: contentHTML, contentType: content.TypeGeneral}
	for _, opt := range opts {
		opt(&p)
	}

	var buf bytes.Buffer
	p.writeHead(&buf)
	p.writeBody(&buf)
	p.writeScripts(&buf)
	buf.WriteString("</body>\n</html>")
	return buf.String()
}

func (p *page) writeHead(buf *bytes.Buffer) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n    <meta charset=\"UTF-8\">\n    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(buf, "    <title>%s</title>\n", html.EscapeString(p.title))
	if p.math {
		buf.WriteString(katexStylesheet())
		buf.WriteString("\n")
	}
	buf.WriteString(pageStyleHead)
	buf.WriteString("\n")
	buf.WriteString(contentTypeStyle(p.contentType))
	buf.WriteString("\n")
	buf.WriteString(pageStyleTail)
	if p.customCSS != "" {
		buf.WriteString("\n        ")
		buf.WriteString(p.customCSS)
	}
	buf.WriteString("\n    </style>\n</head>\n")
}

func (p *page) writeBody(buf *bytes.Buffer) {
	buf.WriteString("<body>\n    <div class=\"content-container\">\n        <div class=\"content-text\">\n")
	fmt.Fprintf(buf, "            %s\n", p.content)
	buf.WriteString("        </div>\n")
	if p.figure != nil {
		buf.WriteString("        <div class=\"plotly-container\">\n            <div id=\"plotly-div\" class=\"loading\">Loading chart...</div>\n        </div>\n")
	}
	buf.WriteString("    </div>\n")
}

func (p *page) writeScripts(buf *bytes.Buffer) {
	if p.math {
		buf.WriteString(katexScripts())
		buf.WriteString("\n")
	}
	if p.figure != nil {
		buf.WriteString(plotlyScript())
		buf.WriteString("\n")
	}
	buf.WriteString("    <script>\n        document.addEventListener(\"DOMContentLoaded\", function() {\n")
	if p.math {
		buf.WriteString(mathRenderJS)
		buf.WriteString("\n")
	}
	if p.figure != nil {
		p.writeChartJS(buf)
	}
	if p.customJS != "" {
		fmt.Fprintf(buf, "            %s\n", p.customJS)
	}
	buf.WriteString("        });\n    </script>\n")
}

// writeChartJS emits the inline script that draws the page's figure.
// If the figure or its config cannot be serialized, the page still
// renders and the placeholder reports the failure at load time.
func (p *page) writeChartJS(buf *bytes.Buffer) {
	figJSON, err := p.figure.JSON()
	if err != nil {
		fmt.Fprintf(buf, pageChartFailJS, jsQuote(err.Error()))
		return
	}
	cfgJSON, err := marshalCompact(mergeConfig(defaultPageConfig(), p.config))
	if err != nil {
		fmt.Fprintf(buf, pageChartFailJS, jsQuote(err.Error()))
		return
	}
	fmt.Fprintf(buf, pageChartJS, figJSON, cfgJSON)
}

// jsQuote makes s safe inside a double-quoted JS string literal,
// including newlines and control characters in error text.
func jsQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}

// Client-side layout overrides keep any figure compact regardless of
// what the server put in its layout, except that an explicit
// showlegend: false is honored.
const pageChartJS = `            try {
                const plotlyData = %s;
                const plotlyConfig = %s;

                if (plotlyData.layout) {
                    plotlyData.layout.margin = plotlyData.layout.margin || {};
                    Object.assign(plotlyData.layout.margin, {l: 40, r: 20, t: 30, b: 40});
                    plotlyData.layout.height = 200;
                    plotlyData.layout.font = plotlyData.layout.font || {};
                    plotlyData.layout.font.size = 11;
                    if (plotlyData.layout.showlegend !== false) {
                        plotlyData.layout.legend = plotlyData.layout.legend || {};
                        Object.assign(plotlyData.layout.legend, {
                            font: {size: 10},
                            orientation: "h",
                            y: -0.2
                        });
                    }
                }

                Plotly.newPlot("plotly-div", plotlyData.data, plotlyData.layout, plotlyConfig);

                window.addEventListener("resize", function() {
                    if (typeof Plotly !== "undefined" && Plotly.Plots) {
                        Plotly.Plots.resize("plotly-div");
                    }
                });
            } catch (error) {
                console.error("Error rendering Plotly chart:", error);
                const plotlyDiv = document.getElementById("plotly-div");
                if (plotlyDiv) {
                    plotlyDiv.innerHTML = "<div style=\"text-align:center;padding:20px;color:#666;font-size:12px;\">Chart unavailable</div>";
                }
            }
`

const pageChartFailJS = `            console.error("Error preparing Plotly chart:", "%s");
            const plotlyDiv = document.getElementById("plotly-div");
            if (plotlyDiv) {
                plotlyDiv.innerHTML = "<div style=\"text-align:center;padding:20px;color:#666;font-size:12px;\">Chart generation failed</div>";
            }
`

// contentTypeStyle returns the accent CSS for a standalone page. Each
// type styles .content-container directly since a page holds one block.
func contentTypeStyle(t content.Type) string {
	switch t {
	case content.TypeQuestion:
		return questionStyle
	case content.TypeOption:
		return optionStyle
	default:
		return generalStyle
	}
}

const pageStyleHead = `    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 8px;
            line-height: 1.4;
            color: #333;
            background-color: transparent;
            font-size: 14px;
        }
        .content-container {
            max-width: 100%;
            margin: 0;
            padding: 12px;
            background-color: white;
            border-radius: 6px;
            box-shadow: 0 1px 4px rgba(0,0,0,0.1);
            border: 1px solid #e0e0e0;
        }`

const questionStyle = `        .content-container {
            border-left: 3px solid #007bff;
            background: linear-gradient(135deg, #f8f9ff 0%, #ffffff 100%);
        }
        .content-text {
            font-weight: 500;
            color: #2c3e50;
        }
        .content-container::before {
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
        }`

const optionStyle = `        .content-container {
            border-left: 3px solid #28a745;
            background: linear-gradient(135deg, #f8fff8 0%, #ffffff 100%);
        }
        .content-text {
            color: #2c3e50;
        }
        .content-container::before {
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
        }`

const generalStyle = `        .content-container {
            border-left: 3px solid #6c757d;
        }`

const pageStyleTail = `        .plotly-container {
            margin: 8px 0;
            padding: 8px;
            background-color: #fafafa;
            border-radius: 4px;
            border: 1px solid #e8e8e8;
        }
        .katex-display {
            margin: 0.8em 0;
        }
        .katex {
            font-size: 1em;
        }
        .content-text {
            font-size: 14px;
            line-height: 1.5;
            margin: 0;
        }
        .content-text h3 {
            margin: 0 0 8px 0;
            font-size: 14px;
            font-weight: 600;
        }
        .content-text p {
            margin: 6px 0;
        }
        .loading {
            text-align: center;
            padding: 8px;
            color: #666;
            font-size: 10px;
        }
        #plotly-div {
            aspect-ratio: 16 / 9;
            width: 100%;
            min-height: 180px;
            height: auto !important;
        }`
