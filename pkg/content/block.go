// Package content defines the block model a composed document is built
// from. A document is an ordered list of blocks; each block is text,
// a chart, or a table.
package content

import "github.com/matzehuels/quizframe/pkg/chart"

// Kind identifies what a block holds.
type Kind string

const (
	KindText  Kind = "text"
	KindChart Kind = "chart"
	KindTable Kind = "table"
)

// Type classifies text content for styling. Questions and answer options
// get distinct visual accents; everything else renders as general text.
type Type string

const (
	TypeQuestion Type = "question"
	TypeOption   Type = "option"
	TypeGeneral  Type = "general"
)

// Block is one unit of document content. Exactly the fields relevant to
// its Kind are set; the renderer dispatches on Kind.
type Block struct {
	Kind Kind

	// Text blocks.
	Text        string
	ContentType Type

	// Chart blocks.
	Figure *chart.Figure
	Config map[string]any

	// Table blocks.
	Headers []string
	Rows    [][]any
}

// NewText creates a text block. An empty contentType defaults to general.
func NewText(text string, contentType Type) Block {
	if contentType == "" {
		contentType = TypeGeneral
	}
	return Block{Kind: KindText, Text: text, ContentType: contentType}
}

// NewChart creates a chart block. A nil config defaults to a responsive
// chart; pass an explicit config to override per-chart Plotly behavior.
func NewChart(fig *chart.Figure, config map[string]any) Block {
	if config == nil {
		config = map[string]any{"responsive": true}
	}
	return Block{Kind: KindChart, Figure: fig, Config: config}
}

// NewTable creates a table block. Headers may be empty for a headerless
// table. Cells may be any displayable value; they are stringified and
// escaped at render time.
func NewTable(headers []string, rows [][]any) Block {
	return Block{Kind: KindTable, Headers: headers, Rows: rows}
}
