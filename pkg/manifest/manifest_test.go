package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/quizframe/pkg/errors"
)

const quizManifest = `{
  "title": "Quiz",
  "blocks": [
    {"type": "text", "content": "What is $x^2$ when $x=3$?", "content_type": "question"},
    {"type": "chart", "chart": {"kind": "bar", "title": "Values", "labels": ["A", "B"], "values": [3, 9]}},
    {"type": "text", "content": "$9$", "content_type": "option"},
    {"type": "table", "headers": ["x", "x^2"], "rows": [[2, 4], [3, 9]]}
  ]
}`

func TestReadAndCompose(t *testing.T) {
	d, err := Read(strings.NewReader(quizManifest))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if d.Title != "Quiz" {
		t.Errorf("Title = %q, want Quiz", d.Title)
	}
	if len(d.Blocks) != 4 {
		t.Fatalf("block count = %d, want 4", len(d.Blocks))
	}

	c, err := d.Composer()
	if err != nil {
		t.Fatalf("Composer() error: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("composer block count = %d, want 4", c.Len())
	}

	doc := c.RenderDocument(false)
	if !strings.Contains(doc, "<title>Quiz</title>") {
		t.Error("document should carry the manifest title")
	}
	if !strings.Contains(doc, "content-container content-question") {
		t.Error("question block should keep its content type")
	}
	if !strings.Contains(doc, `id="plotly-div-1"`) {
		t.Error("chart block should render at its position")
	}
	if !strings.Contains(doc, "<td>9</td>") {
		t.Error("table block should render its rows")
	}
}

func TestReadInvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("Read() should fail for malformed JSON")
	}
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %q, want INVALID_MANIFEST", errors.GetCode(err))
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("ReadFile() should fail for a missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, []byte(quizManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if d.Title != "Quiz" {
		t.Errorf("Title = %q, want Quiz", d.Title)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	d, err := Read(strings.NewReader(quizManifest))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"content": "What is $x^2$ when $x=3$?"`) {
		t.Error("written manifest should keep content readable")
	}

	again, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() after Write() error: %v", err)
	}
	if again.Title != d.Title || len(again.Blocks) != len(d.Blocks) {
		t.Error("manifest should round-trip through Write")
	}
}

func TestComposerValidation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"unknown block type", `{"title":"t","blocks":[{"type":"video"}]}`},
		{"chart without description", `{"title":"t","blocks":[{"type":"chart"}]}`},
		{"unknown chart kind", `{"title":"t","blocks":[{"type":"chart","chart":{"kind":"radar"}}]}`},
		{"invalid chart data", `{"title":"t","blocks":[{"type":"chart","chart":{"kind":"bar","labels":["A"],"values":[1,2]}}]}`},
		{"unknown content type", `{"title":"t","blocks":[{"type":"text","content":"x","content_type":"answer"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(strings.NewReader(tt.manifest))
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if _, err := d.Composer(); !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("Composer() error = %v, want INVALID_MANIFEST", err)
			}
		})
	}
}

func TestChartFigureKinds(t *testing.T) {
	tests := []struct {
		name  string
		chart Chart
	}{
		{"bar", Chart{Kind: "bar", Labels: []string{"A"}, Values: []float64{1}}},
		{"line", Chart{Kind: "line", X: []float64{1}, Y: []float64{2}}},
		{"pie", Chart{Kind: "pie", Labels: []string{"A"}, Values: []float64{1}}},
		{"scatter", Chart{Kind: "scatter", X: []float64{1}, Y: []float64{2}}},
		{"histogram", Chart{Kind: "histogram", Values: []float64{1, 2}}},
		{"box", Chart{Kind: "box", Values: []float64{1, 2}}},
		{"heatmap", Chart{Kind: "heatmap", Z: [][]float64{{1}}, XLabels: []string{"c"}, YLabels: []string{"r"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := tt.chart.Figure()
			if err != nil {
				t.Fatalf("Figure() error: %v", err)
			}
			if len(fig.Data) != 1 {
				t.Errorf("trace count = %d, want 1", len(fig.Data))
			}
		})
	}
}
