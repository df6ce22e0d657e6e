package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// findAll returns every element node matching tag and, when class is
// non-empty, carrying that class attribute.
func findAll(t *testing.T, fragment, tag, class string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<div>" + fragment + "</div>"))
	require.NoError(t, err)

	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			if class == "" {
				out = append(out, n)
			} else {
				for _, a := range n.Attr {
					if a.Key == "class" && a.Val == class {
						out = append(out, n)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func assertCovers(t *testing.T, text string, blocks []Block) {
	t.Helper()
	if text == "" {
		assert.Empty(t, blocks)
		return
	}
	require.NotEmpty(t, blocks)
	assert.Equal(t, 0, blocks[0].Start)
	for i := 1; i < len(blocks); i++ {
		assert.Equal(t, blocks[i-1].End, blocks[i].Start, "gap or overlap before block %d", i)
	}
	assert.Equal(t, len(text), blocks[len(blocks)-1].End)
}

func TestFormat_FencedCode(t *testing.T) {
	out := Format("```js\nalert('hi')\n```")

	assert.Equal(t, `<div class="code-block">alert('hi')</div>`, out)

	blocks := findAll(t, out, "div", "code-block")
	require.Len(t, blocks, 1)
	assert.Equal(t, "alert('hi')", textOf(blocks[0]))
}

func TestFormat_FencedCodeEscapesBody(t *testing.T) {
	body := `if a < b && c > d { fmt.Println("<tag>") }`
	out := Format("```go\n  " + body + "  \n```")

	assert.Contains(t, out, Escape(body))
	assert.NotContains(t, out, "<tag>")

	blocks := findAll(t, out, "div", "code-block")
	require.Len(t, blocks, 1)
	assert.Equal(t, body, textOf(blocks[0]))
}

func TestParse_FenceLanguage(t *testing.T) {
	blocks := Parse("before\n```python\nprint(1)\n```\nafter")

	require.Len(t, blocks, 3)
	assert.Equal(t, PlainText, blocks[0].Kind)
	assert.Equal(t, CodeBlock, blocks[1].Kind)
	assert.Equal(t, "python", blocks[1].Lang)
	assert.Equal(t, "print(1)", blocks[1].Text)
	assert.Equal(t, PlainText, blocks[2].Kind)
	assert.Equal(t, "\nafter", blocks[2].Text)
}

func TestParse_UnclosedFenceIsPlainText(t *testing.T) {
	text := "```js\nconsole.log(1)"
	blocks := Parse(text)

	require.Len(t, blocks, 1)
	assert.Equal(t, PlainText, blocks[0].Kind)
	assert.Equal(t, Escape(text), Format(text))
}

func TestFormat_FencesClassifiedIndependently(t *testing.T) {
	text := "Data:\n```\nname | qty\napple | 3\npear | 5\n```\nCode:\n```sh\nls -la\n```"
	out := Format(text)

	assert.Len(t, findAll(t, out, "div", "table-container"), 1)
	codes := findAll(t, out, "div", "code-block")
	require.Len(t, codes, 1)
	assert.Equal(t, "ls -la", textOf(codes[0]))

	headers := findAll(t, out, "th", "")
	require.Len(t, headers, 2)
	assert.Equal(t, "name", textOf(headers[0]))
	assert.Equal(t, "qty", textOf(headers[1]))
	assert.Len(t, findAll(t, out, "td", ""), 4)
}

func TestFormat_BackticksInsideFenceStayLiteral(t *testing.T) {
	out := Format("```\nuse `x` here\n```")

	assert.Empty(t, findAll(t, out, "code", ""))
	assert.Equal(t, "<div class=\"code-block\">use `x` here</div>", out)
}

func TestFormat_InlineCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "run `go test` now", "run <code>go test</code> now"},
		{"trimmed", "a ` x ` b", "a <code>x</code> b"},
		{"escaped", "see `<b>`", "see <code>&lt;b&gt;</code>"},
		{"two spans", "`a` and `b`", "<code>a</code> and <code>b</code>"},
		{"across newline", "a `b\nc` d", "a `b\nc` d"},
		{"empty span", "a `` b", "a `` b"},
		{"unterminated", "a `b", "a `b"},
		{"inside tag", "<a href=`x`>", "&lt;a href=`x`&gt;"},
		{"followed by tag end", "`x` y>", "`x` y&gt;"},
		{"after closed tag", "<i> `x`", "&lt;i&gt; <code>x</code>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input))
		})
	}
}

func TestFormat_ScriptIsEscaped(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"```\n<script>alert(1)</script>\n```",
		"`<script>`",
		"a | <script>\nb | <img src=x onerror=alert(1)>",
	}
	for _, in := range inputs {
		out := Format(in)
		assert.Empty(t, findAll(t, out, "script", ""), "input %q", in)
		assert.Empty(t, findAll(t, out, "img", ""), "input %q", in)
	}
}

func TestIsTableContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"three piped lines", "a | b\n1 | 2\n3 | 4", true},
		{"only one piped line", "a | b\nhello", false},
		{"single line", "a | b | c", false},
		{"empty", "", false},
		{"blank lines ignored", "a | b\n\n\n1 | 2", true},
		{"separator does not count", "| a | b |\n|---|---|\nplain", false},
		{"markdown table", "| h1 | h2 |\n|----|----|\n| 1 | 2 |", true},
		{"ratio at 0.4", "a|b\nc|d\nx\ny\nz", true},
		{"ratio below 0.4", "a|b\nc|d\nx\ny\nz\nw", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTableContent(tt.input))
		})
	}
}

func TestParseTable(t *testing.T) {
	rows := ParseTable("| a | | c |\n|---|---|---|\n| 1 | 2 | 3 |\n\nno pipes here")

	assert.Equal(t, [][]string{
		{"a", "", "c"},
		{"1", "2", "3"},
	}, rows)
}

func TestFormatAsTable(t *testing.T) {
	out := FormatAsTable("| h1 | h2 |\n|----|----|\n| 1 | <2> |")

	assert.Equal(t,
		`<div class="table-container"><table>`+
			`<tr><th>h1</th><th>h2</th></tr>`+
			`<tr><td>1</td><td>&lt;2&gt;</td></tr>`+
			`</table></div>`,
		out)
}

func TestFormatAsTable_NoRowsEscapesInput(t *testing.T) {
	assert.Equal(t, "&lt;x&gt;\n|---|", FormatAsTable("<x>\n|---|"))
}

func TestFormat_WholeMessageTable(t *testing.T) {
	out := Format("a | b\n1 | 2\n3 | 4")

	assert.Len(t, findAll(t, out, "table", ""), 1)
	assert.Len(t, findAll(t, out, "th", ""), 2)
	assert.Len(t, findAll(t, out, "tr", ""), 3)
}

func TestFormat_NonTableFallsThroughToPlainText(t *testing.T) {
	text := "a | b\nhello & bye"
	assert.Equal(t, "a | b\nhello &amp; bye", Format(text))
}

func TestFormat_NoWholeMessageTableWhenFenced(t *testing.T) {
	text := "x | y\n1 | 2\n```\ncode\n```"
	out := Format(text)

	assert.Empty(t, findAll(t, out, "table", ""))
	assert.Len(t, findAll(t, out, "div", "code-block"), 1)
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(""))
	assert.Nil(t, Parse(""))
}

func TestParse_CoversInput(t *testing.T) {
	inputs := []string{
		"plain",
		"run `go test` now",
		"```js\nalert('hi')\n```",
		"head ```a``` mid `b` tail ```\nc | d\ne | f\n``` end",
		"a | b\n1 | 2\n3 | 4",
		"``````",
		"````x```",
		"<a href=`x`> and `y`",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assertCovers(t, in, Parse(in))
		})
	}
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "text", PlainText.String())
	assert.Equal(t, "code", CodeBlock.String())
	assert.Equal(t, "table", Table.String())
	assert.Equal(t, "inline-code", InlineCode.String())
	assert.Equal(t, "unknown", BlockKind(42).String())
}
