package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/quizframe/pkg/document"
	"github.com/matzehuels/quizframe/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{FormatHTML}},
		{"json", []string{"json"}},
		{"html,json,jsonz", []string{"html", "json", "jsonz"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"html", "json", "jsonz"}); err != nil {
		t.Errorf("validateFormats(valid) error: %v", err)
	}

	err := validateFormats([]string{"html", "pdf"})
	if err == nil {
		t.Fatal("validateFormats should reject pdf")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "quiz.json", "quiz"},
		{"", "dir/quiz.json", "dir/quiz"},
		{"out.html", "quiz.json", "out"},
		{"out.jsonz", "quiz.json", "out"},
		{"out", "quiz.json", "out"},
		{"report.pdf", "quiz.json", "report.pdf"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("custom.html", "quiz.json", FormatHTML, false); got != "custom.html" {
		t.Errorf("single-format output = %q, want custom.html", got)
	}
	if got := outputPath("", "quiz.json", FormatHTML, false); got != "quiz.html" {
		t.Errorf("derived output = %q, want quiz.html", got)
	}
	if got := outputPath("out.html", "quiz.json", FormatJSONZ, true); got != "out.jsonz" {
		t.Errorf("multi-format output = %q, want out.jsonz", got)
	}
}

func TestRenderFormat(t *testing.T) {
	c := document.NewComposer("t").AddContent("hi", "")

	html, err := renderFormat(c, FormatHTML, false)
	if err != nil {
		t.Fatalf("renderFormat(html) error: %v", err)
	}
	if html != c.RenderDocument(false) {
		t.Error("html format should match the document render")
	}

	jsonOut, err := renderFormat(c, FormatJSON, true)
	if err != nil {
		t.Fatalf("renderFormat(json) error: %v", err)
	}
	if jsonOut[:9] != `{"html":"` {
		t.Errorf("json format prefix = %q", jsonOut[:9])
	}

	jsonz, err := renderFormat(c, FormatJSONZ, false)
	if err != nil {
		t.Fatalf("renderFormat(jsonz) error: %v", err)
	}
	if jsonz[:20] != `{"html_compressed":"` {
		t.Errorf("jsonz format prefix = %q", jsonz[:20])
	}

	if _, err := renderFormat(c, "pdf", false); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("renderFormat(pdf) error = %v, want INVALID_FORMAT", err)
	}
}
