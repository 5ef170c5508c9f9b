package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

// defaultPageConfig is the Plotly config for standalone block pages.
// The mode bar and most interactions are stripped so the chart reads as
// a quiet embed while staying responsive.
func defaultPageConfig() map[string]any {
	return map[string]any{
		"displayModeBar":          false,
		"responsive":              true,
		"staticPlot":              false,
		"doubleClick":             false,
		"showTips":                false,
		"showAxisDragHandles":     false,
		"showAxisRangeEntryBoxes": false,
		"modeBarButtonsToRemove":  []string{"pan2d", "select2d", "lasso2d", "resetScale2d", "zoomIn2d", "zoomOut2d"},
	}
}

// defaultDocumentConfig is the Plotly config for charts embedded in a
// full document, where the mode bar stays available.
func defaultDocumentConfig() map[string]any {
	return map[string]any{
		"displayModeBar": true,
		"responsive":     true,
	}
}

// mergeConfig overlays override onto base. Override keys win; neither
// input is modified.
func mergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// marshalCompact serializes v with minimal separators and without
// escaping HTML-significant runes. Map keys serialize in sorted order,
// so the output is deterministic for a given input.
func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
