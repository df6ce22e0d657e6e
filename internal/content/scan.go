package content

import "strings"

const fence = "```"

type fenceSpan struct {
	start int
	end   int
	lang  string
	body  string
}

// Parse classifies text into blocks covering the entire input in order.
func Parse(text string) []Block {
	if text == "" {
		return nil
	}

	var blocks []Block
	pos := 0
	fenced := false
	for {
		span, ok := nextFence(text, pos)
		if !ok {
			break
		}
		fenced = true
		blocks = appendInline(blocks, text, pos, span.start)
		blocks = append(blocks, fencedBlock(span))
		pos = span.end
	}

	if !fenced && IsTableContent(text) {
		if rows := ParseTable(text); len(rows) > 0 {
			return []Block{{
				Kind:  Table,
				Start: 0,
				End:   len(text),
				Text:  strings.TrimSpace(text),
				Rows:  rows,
			}}
		}
	}

	return appendInline(blocks, text, pos, len(text))
}

// nextFence finds the first complete fenced span at or after from. An
// optional language tag directly follows the opening fence, then at most
// one newline; the body ends at the nearest closing fence.
func nextFence(text string, from int) (fenceSpan, bool) {
	i := strings.Index(text[from:], fence)
	if i < 0 {
		return fenceSpan{}, false
	}
	open := from + i

	p := open + len(fence)
	q := p
	for q < len(text) && isWordByte(text[q]) {
		q++
	}
	lang := text[p:q]

	bodyStart := q
	if bodyStart < len(text) && text[bodyStart] == '\n' {
		bodyStart++
	}

	// No closing fence after this opening means none after any later one.
	j := strings.Index(text[bodyStart:], fence)
	if j < 0 {
		return fenceSpan{}, false
	}
	closeAt := bodyStart + j

	return fenceSpan{
		start: open,
		end:   closeAt + len(fence),
		lang:  lang,
		body:  text[bodyStart:closeAt],
	}, true
}

func fencedBlock(span fenceSpan) Block {
	body := strings.TrimSpace(span.body)
	b := Block{
		Kind:  CodeBlock,
		Start: span.start,
		End:   span.end,
		Text:  body,
		Lang:  span.lang,
	}
	if IsTableContent(body) {
		b.Kind = Table
		b.Rows = ParseTable(body)
	}
	return b
}

// appendInline splits text[start:end] into plain text and inline code spans.
func appendInline(blocks []Block, text string, start, end int) []Block {
	if start >= end {
		return blocks
	}
	seg := text[start:end]

	last := 0
	for i := 0; i < len(seg); i++ {
		if seg[i] != '`' {
			continue
		}
		j := i + 1
		for j < len(seg) && seg[j] != '`' && seg[j] != '\n' {
			j++
		}
		if j >= len(seg) || seg[j] != '`' || j == i+1 {
			continue
		}
		if insideTag(seg, last, i) || followedByTagEnd(seg, j+1) {
			continue
		}

		if i > last {
			blocks = append(blocks, plainBlock(text, start+last, start+i))
		}
		blocks = append(blocks, Block{
			Kind:  InlineCode,
			Start: start + i,
			End:   start + j + 1,
			Text:  strings.TrimSpace(seg[i+1 : j]),
		})
		last = j + 1
		i = j
	}

	if last < len(seg) {
		blocks = append(blocks, plainBlock(text, start+last, end))
	}
	return blocks
}

// insideTag reports whether position i sits after an unclosed '<'. The scan
// stops at floor: everything before it has already been emitted as a
// closed element.
func insideTag(seg string, floor, i int) bool {
	for k := i - 1; k >= floor; k-- {
		switch seg[k] {
		case '<':
			return true
		case '>':
			return false
		}
	}
	return false
}

// followedByTagEnd reports whether a '>' occurs from k on before any '<'.
func followedByTagEnd(seg string, k int) bool {
	for ; k < len(seg); k++ {
		switch seg[k] {
		case '<':
			return false
		case '>':
			return true
		}
	}
	return false
}

func plainBlock(text string, start, end int) Block {
	return Block{Kind: PlainText, Start: start, End: end, Text: text[start:end]}
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
