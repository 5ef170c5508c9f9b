package document

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/quizframe/pkg/chart"
	"github.com/matzehuels/quizframe/pkg/content"
)

func barFigure(t *testing.T) *chart.Figure {
	t.Helper()
	fig, err := chart.Bar([]string{"A", "B"}, []float64{3, 5})
	if err != nil {
		t.Fatalf("Bar() error: %v", err)
	}
	return fig
}

func badFigure() *chart.Figure {
	return &chart.Figure{Data: []chart.Trace{{Type: "bar", Y: []any{func() {}}}}}
}

func TestNewComposerDefaults(t *testing.T) {
	c := NewComposer("")
	if c.Title() != DefaultTitle {
		t.Errorf("Title() = %q, want %q", c.Title(), DefaultTitle)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestRenderDocumentStructure(t *testing.T) {
	c := NewComposer("Quiz").
		AddContent("What is $x^2$ when $x=3$?", content.TypeQuestion).
		AddContent("$9$", content.TypeOption).
		AddChart(barFigure(t), nil).
		AddChart(barFigure(t), nil).
		AddTable([]string{"n", "n^2"}, [][]any{{1, 1}, {2, 4}})

	doc := c.RenderDocument(false)

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") || !strings.HasSuffix(doc, "</html>") {
		t.Error("document should be a complete HTML page")
	}
	if !strings.Contains(doc, "<title>Quiz</title>") {
		t.Error("document should carry the composer title")
	}

	// Library tags are deduplicated across blocks.
	if n := strings.Count(doc, "katex.min.css"); n != 1 {
		t.Errorf("katex stylesheet count = %d, want 1", n)
	}
	if n := strings.Count(doc, "plotly.min.js"); n != 1 {
		t.Errorf("plotly script count = %d, want 1", n)
	}

	// Blocks appear in insertion order with positional chart ids.
	qIdx := strings.Index(doc, "content-container content-question")
	oIdx := strings.Index(doc, "content-container content-option")
	c2Idx := strings.Index(doc, `id="plotly-div-2"`)
	c3Idx := strings.Index(doc, `id="plotly-div-3"`)
	tIdx := strings.Index(doc, "table-container")
	if qIdx < 0 || oIdx < 0 || c2Idx < 0 || c3Idx < 0 || tIdx < 0 {
		t.Fatal("document should contain all five blocks")
	}
	if !(qIdx < oIdx && oIdx < c2Idx && c2Idx < c3Idx && c3Idx < tIdx) {
		t.Error("blocks should render in insertion order")
	}

	// One newPlot call per chart and a shared resize handler.
	if n := strings.Count(doc, "Plotly.newPlot("); n != 2 {
		t.Errorf("newPlot count = %d, want 2", n)
	}
	if n := strings.Count(doc, "Plotly.Plots.resize("); n != 2 {
		t.Errorf("resize count = %d, want 2", n)
	}
	if n := strings.Count(doc, `window.addEventListener("resize"`); n != 1 {
		t.Errorf("resize listener count = %d, want 1", n)
	}

	// The guarded math renderer, without the standalone error color.
	if !strings.Contains(doc, `typeof renderMathInElement !== "undefined"`) {
		t.Error("full document should guard the math renderer")
	}
	if strings.Contains(doc, "errorColor") {
		t.Error("full document math renderer does not set an error color")
	}

	// Question styling survives in the full document.
	if !strings.Contains(doc, `content: "Q"`) {
		t.Error("question blocks should keep their badge in full documents")
	}
}

func TestRenderDocumentLibraryInclusion(t *testing.T) {
	chartOnly := NewComposer("c").AddChart(barFigure(t), nil).RenderDocument(false)
	if strings.Contains(chartOnly, "katex") {
		t.Error("chart-only document should not load KaTeX")
	}
	if !strings.Contains(chartOnly, "plotly.min.js") {
		t.Error("chart-only document should load plotly.js")
	}

	textOnly := NewComposer("t").AddContent("hi", "").RenderDocument(false)
	if !strings.Contains(textOnly, "katex.min.js") {
		t.Error("text-only document should load KaTeX")
	}
	if strings.Contains(textOnly, "plotly.min.js") {
		t.Error("text-only document should not load plotly.js")
	}

	tableOnly := NewComposer("tb").AddTable(nil, [][]any{{"x"}}).RenderDocument(false)
	if strings.Contains(tableOnly, "katex") || strings.Contains(tableOnly, "plotly.min.js") {
		t.Error("table-only document should not load any chart or math library")
	}
}

func TestRenderDocumentTableEscaping(t *testing.T) {
	doc := NewComposer("t").
		AddTable([]string{"<b>Name</b>"}, [][]any{{"a & b"}}).
		RenderDocument(false)

	if !strings.Contains(doc, "<th>&lt;b&gt;Name&lt;/b&gt;</th>") {
		t.Error("table headers should be escaped")
	}
	if !strings.Contains(doc, "<td>a &amp; b</td>") {
		t.Error("table cells should be escaped")
	}
	if strings.Contains(doc, "<b>Name</b>") {
		t.Error("raw header markup should not survive")
	}
}

func TestRenderDocumentChartConfig(t *testing.T) {
	doc := NewComposer("t").AddChart(barFigure(t), nil).RenderDocument(false)
	if !strings.Contains(doc, `{"displayModeBar":true,"responsive":true}`) {
		t.Error("full-document charts default to a visible mode bar")
	}

	doc = NewComposer("t").
		AddChart(barFigure(t), map[string]any{"displayModeBar": false}).
		RenderDocument(false)
	if !strings.Contains(doc, `{"displayModeBar":false,"responsive":true}`) {
		t.Error("caller config should override the document default")
	}
}

func TestRenderDocumentChartFailureIsolated(t *testing.T) {
	c := NewComposer("t").
		AddContent("intro", "").
		AddChart(badFigure(), nil).
		AddChart(barFigure(t), nil)

	doc := c.RenderDocument(false)

	if !strings.Contains(doc, "Error rendering block 2:") {
		t.Error("failed chart should become an error fragment at its position")
	}
	if !strings.Contains(doc, "border: 1px solid red") {
		t.Error("error fragment should be visibly red-bordered")
	}
	if strings.Contains(doc, `id="plotly-div-1"`) {
		t.Error("failed chart should not leave a placeholder container")
	}

	// The sibling chart keeps its positional id and still plots.
	if !strings.Contains(doc, `id="plotly-div-2"`) {
		t.Error("sibling chart should keep its positional id")
	}
	if n := strings.Count(doc, "Plotly.newPlot("); n != 1 {
		t.Errorf("newPlot count = %d, want 1 for the surviving chart", n)
	}
	if !strings.Contains(doc, "intro") {
		t.Error("text sibling should be unaffected")
	}
}

func TestRenderDocumentUnknownKind(t *testing.T) {
	c := NewComposer("t").AddContent("ok", "")
	c.blocks = append(c.blocks, content.Block{Kind: "video"})

	doc := c.RenderDocument(false)

	if !strings.Contains(doc, "Error rendering block 2:") {
		t.Error("unknown block kinds should render as error fragments")
	}
	if !strings.Contains(doc, "unsupported block kind &#34;video&#34;") {
		t.Error("error fragment should name the kind, escaped")
	}
	if !strings.Contains(doc, "ok") {
		t.Error("known siblings should still render")
	}
}

func TestRenderDocumentCompact(t *testing.T) {
	c := NewComposer("Quiz").
		AddContent("What is $x$?", content.TypeQuestion).
		AddChart(barFigure(t), nil)

	doc := c.RenderDocument(true)

	if strings.Contains(doc, "\n") || strings.Contains(doc, "\t") {
		t.Error("compact output should contain no newlines or tabs")
	}
	if strings.Contains(doc, "  ") {
		t.Error("compact output should contain no double spaces")
	}
	if strings.TrimSpace(doc) != doc {
		t.Error("compact output should be trimmed")
	}
	if !strings.Contains(doc, "What is $x$?") {
		t.Error("compaction should preserve content")
	}

	full := c.RenderDocument(false)
	if len(doc) >= len(full) {
		t.Error("compact output should be smaller than the full render")
	}
}

func TestRenderJSON(t *testing.T) {
	c := NewComposer("t").AddContent("a <b> & $x$", "")

	out, err := c.RenderJSON(false)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.HasPrefix(out, `{"html":"`) {
		t.Errorf("JSON should wrap under the html key: %s", out[:20])
	}
	if strings.Contains(out, "\\u003c") {
		t.Error("JSON should not escape HTML runes")
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if decoded["html"] != c.RenderDocument(false) {
		t.Error("decoded html should round-trip to the document render")
	}

	compactOut, err := c.RenderJSON(true)
	if err != nil {
		t.Fatalf("RenderJSON(compact) error: %v", err)
	}
	if len(compactOut) >= len(out) {
		t.Error("compact JSON should be smaller")
	}
}

func TestRenderCompressedRoundTrip(t *testing.T) {
	c := NewComposer("Quiz").
		AddContent("What is $x^2$?", content.TypeQuestion).
		AddChart(barFigure(t), nil).
		AddTable([]string{"h"}, [][]any{{"v"}})

	out, err := c.RenderCompressed()
	if err != nil {
		t.Fatalf("RenderCompressed() error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(decoded["html_compressed"])
	if err != nil {
		t.Fatalf("payload should be valid base64: %v", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload should be zlib-compressed: %v", err)
	}
	inflated, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompression failed: %v", err)
	}
	zr.Close()

	if string(inflated) != c.RenderDocument(true) {
		t.Error("decompressed payload should equal the compact render")
	}
}

func TestRenderBlocks(t *testing.T) {
	c := NewComposer("Quiz").
		AddContent("What is $x$?", content.TypeQuestion).
		AddChart(barFigure(t), nil).
		AddTable([]string{"h"}, [][]any{{"v"}})

	pages := c.RenderBlocks()
	if len(pages) != 3 {
		t.Fatalf("page count = %d, want 3", len(pages))
	}

	if !strings.Contains(pages[0], "<title>Quiz – Text 1</title>") {
		t.Error("text page should be titled by position")
	}
	if !strings.Contains(pages[0], "katex.min.js") {
		t.Error("text pages always carry KaTeX")
	}
	if !strings.Contains(pages[0], `content: "Q"`) {
		t.Error("text page should keep its question accent")
	}

	if !strings.Contains(pages[1], "<title>Quiz – Chart 2</title>") {
		t.Error("chart page should be titled by position")
	}
	if !strings.Contains(pages[1], "Plotly.newPlot") {
		t.Error("chart page should plot its figure")
	}
	if strings.Contains(pages[1], "katex") {
		t.Error("chart pages should not carry KaTeX")
	}

	if !strings.Contains(pages[2], "<title>Quiz – Table 3</title>") {
		t.Error("table page should be titled by position")
	}
	if !strings.Contains(pages[2], "<td>v</td>") {
		t.Error("table page should carry the table fragment")
	}

	for _, p := range pages {
		if !strings.HasPrefix(p, "<!DOCTYPE html>") || !strings.HasSuffix(p, "</html>") {
			t.Error("every block page should be a complete HTML document")
		}
	}
}

func TestRenderBlocksChartFailure(t *testing.T) {
	c := NewComposer("Quiz").
		AddChart(badFigure(), nil).
		AddContent("still here", "")

	pages := c.RenderBlocks()
	if len(pages) != 2 {
		t.Fatalf("page count = %d, want 2", len(pages))
	}

	if !strings.Contains(pages[0], "<title>Quiz – Error 1</title>") {
		t.Error("failed block should render as an error page")
	}
	if !strings.Contains(pages[0], "Error rendering block 1:") {
		t.Error("error page should name the failed block")
	}
	if !strings.Contains(pages[1], "still here") {
		t.Error("later blocks should render normally")
	}
}
