package document

import "testing"

func TestCompactWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newlines and indentation", "<div>\n    <p>hi</p>\n</div>", "<div> <p>hi</p> </div>"},
		{"tabs", "a\t\tb", "a b"},
		{"leading and trailing", "  padded  ", "padded"},
		{"already compact", "<p>one two</p>", "<p>one two</p>"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compactWhitespace(tt.in); got != tt.want {
				t.Errorf("compactWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
