package content

import (
	"strings"
	"unicode"
)

const (
	// MinTableLines is the minimum number of piped lines a table needs.
	MinTableLines = 2

	// MinTableRatio is the minimum share of non-blank lines that must be piped.
	MinTableRatio = 0.4

	// MinPipeFields is the number of fields a line must split into on '|'
	// to count as a piped line.
	MinPipeFields = 2
)

// IsTableContent reports whether s looks like pipe-delimited tabular data.
func IsTableContent(s string) bool {
	lines := nonBlankLines(s)
	if len(lines) < MinTableLines {
		return false
	}

	piped := 0
	for _, line := range lines {
		if hasPipes(line) {
			piped++
		}
	}

	return piped >= MinTableLines && float64(piped)/float64(len(lines)) >= MinTableRatio
}

// ParseTable splits pipe-delimited content into rows of trimmed cells.
// Blank lines, separator lines and lines without a pipe are dropped.
func ParseTable(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") || isSeparator(line) {
			continue
		}
		if cells := splitCells(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// FormatAsTable renders pipe-delimited content as an HTML table. Content
// that yields no rows is returned escaped.
func FormatAsTable(s string) string {
	rows := ParseTable(s)
	if len(rows) == 0 {
		return Escape(s)
	}
	var sb strings.Builder
	writeTable(&sb, rows)
	return sb.String()
}

func writeTable(sb *strings.Builder, rows [][]string) {
	sb.WriteString(`<div class="table-container"><table>`)
	for i, row := range rows {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<" + tag + ">")
			sb.WriteString(Escape(cell))
			sb.WriteString("</" + tag + ">")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table></div>")
}

// splitCells drops an empty first and an empty last cell, the artifacts of
// a row bounded by pipes. Empty interior cells are kept.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	last := len(parts) - 1
	cells := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && (i == 0 || i == last) {
			continue
		}
		cells = append(cells, p)
	}
	return cells
}

func hasPipes(line string) bool {
	line = strings.TrimSpace(line)
	if isSeparator(line) {
		return false
	}
	return strings.Count(line, "|")+1 >= MinPipeFields
}

// isSeparator matches header rules such as "|---|---|": only pipes, dashes
// and whitespace, with at least one pipe.
func isSeparator(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	for _, r := range line {
		if r != '|' && r != '-' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
