package document

import (
	"fmt"
	"html"
	"strings"
)

// tableHTML renders a table fragment with every cell stringified and
// HTML-escaped. The thead is omitted entirely when headers is empty.
func tableHTML(headers []string, rows [][]any) string {
	var b strings.Builder
	b.WriteString(`<div class="table-container"><table>`)

	if len(headers) > 0 {
		b.WriteString("<thead><tr>")
		for _, h := range headers {
			fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
		}
		b.WriteString("</tr></thead>")
	}

	b.WriteString("<tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(fmt.Sprint(cell)))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></div>")

	return b.String()
}
