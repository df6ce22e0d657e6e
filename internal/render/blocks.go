package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/diogo/chatpanel/internal/content"
)

// Code renders a fenced code block through glamour.
func Code(body, lang string, opts Options) (string, error) {
	r, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, r)

	out, err := r.Render("```" + lang + "\n" + body + "\n```\n")
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Table renders rows as a bordered terminal table; the first row is the header.
func Table(rows [][]string, opts Options, pal Palette) string {
	if len(rows) == 0 {
		return ""
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	padded := make([][]string, len(rows))
	for i, r := range rows {
		padded[i] = append(append([]string(nil), r...), make([]string, cols-len(r))...)
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(pal.User).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(pal.Text).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(pal.Border)).
		Headers(padded[0]...).
		Rows(padded[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	if opts.TableWrap && opts.Width > 0 && lipgloss.Width(t.String()) > opts.Width {
		t = t.Width(opts.Width)
	}
	return t.String()
}

// Blocks renders a classified message for the terminal. Plain text and
// inline code are wrapped to opts.Width; code blocks and tables stand on
// their own lines.
func Blocks(blocks []content.Block, opts Options, pal Palette) (string, error) {
	inlineCode := lipgloss.NewStyle().Foreground(pal.Code).Background(pal.Surface)
	flow := lipgloss.NewStyle().Foreground(pal.Text)
	if opts.Width > 0 {
		flow = flow.Width(opts.Width)
	}

	var parts []string
	var line strings.Builder
	flush := func() {
		if line.Len() == 0 {
			return
		}
		text := strings.Trim(line.String(), "\n")
		if strings.TrimSpace(text) != "" {
			parts = append(parts, flow.Render(text))
		}
		line.Reset()
	}

	for _, b := range blocks {
		switch b.Kind {
		case content.PlainText:
			line.WriteString(b.Text)
		case content.InlineCode:
			line.WriteString(inlineCode.Render(b.Text))
		case content.CodeBlock:
			flush()
			out, err := Code(b.Text, b.Lang, opts)
			if err != nil {
				return "", err
			}
			parts = append(parts, out)
		case content.Table:
			flush()
			if len(b.Rows) == 0 {
				line.WriteString(b.Text)
				continue
			}
			parts = append(parts, Table(b.Rows, opts, pal))
		}
	}
	flush()

	return strings.Join(parts, "\n"), nil
}
