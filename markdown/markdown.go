// Package markdown renders the restricted markdown dialect used by course
// blocks. Parse produces a flat node list; Markdown wraps the HTML rendering
// of that list as a templ component. The renderer is total: anything it does
// not recognize passes through as literal text.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// NodeKind identifies a block-level node.
type NodeKind int

const (
	NodeParagraph NodeKind = iota
	NodeHeading
	NodeQuote
	NodeListItem
	NodeOrderedItem
	NodeTaskItem
	NodeDivider
	NodeBreak
	NodeCode
	NodeTable
)

// SpanKind identifies an inline span within a text-bearing node.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanStrike
	SpanCode
	SpanLink
)

// Span is one styled run of inline text. URL is set for SpanLink only.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// Cell is one table cell's inline content.
type Cell []Span

// Node is one block-level element. Only the fields relevant to Kind are set:
// Level for headings, Checked for task items, Lang/Literal for fenced code,
// Head/Rows for tables, Spans for everything else that carries text.
type Node struct {
	Kind    NodeKind
	Level   int
	Checked bool
	Lang    string
	Literal string
	Spans   []Span
	Head    []Cell
	Rows    [][]Cell
}

var (
	reOrderedItem = regexp.MustCompile(`^\d+\. `)
	// Alternatives ordered so that links and code win over emphasis and
	// bold wins over italic. Non-greedy per span; spans never nest.
	reInline = regexp.MustCompile("\\[[^\\]]*?\\]\\([^)]*?\\)|`[^`]+`|\\*\\*.*?\\*\\*|\\*[^*]+\\*|~~.*?~~")
	reLink   = regexp.MustCompile(`^\[([^\]]*?)\]\(([^)]*?)\)$`)
)

// Parse converts md into its node list. It never fails; malformed syntax
// degrades to literal text and empty input yields no nodes.
func Parse(md string) []Node {
	if md == "" {
		return nil
	}

	var nodes []Node

	inCode := false
	codeLang := ""
	var codeLines []string

	inTable := false
	separatorSeen := false
	var tableHead []Cell
	var tableRows [][]Cell

	flushTable := func() {
		if inTable {
			nodes = append(nodes, Node{Kind: NodeTable, Head: tableHead, Rows: tableRows})
			inTable = false
			separatorSeen = false
			tableHead = nil
			tableRows = nil
		}
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				nodes = append(nodes, Node{
					Kind:    NodeCode,
					Lang:    codeLang,
					Literal: strings.Join(codeLines, "\n"),
				})
				inCode = false
				codeLang = ""
				codeLines = nil
			} else {
				flushTable()
				inCode = true
				codeLang = strings.TrimSpace(line[3:])
			}
			continue
		}
		if inCode {
			// Blank lines inside a fence stay inside the fence.
			codeLines = append(codeLines, line)
			continue
		}

		if strings.HasPrefix(line, "|") {
			cells := parseTableCells(line)
			switch {
			case !inTable:
				inTable = true
				tableHead = cellSpans(cells)
			case !separatorSeen && len(tableRows) == 0 && isTableSeparator(line):
				// Only the row directly under the header is a divider.
				separatorSeen = true
			default:
				tableRows = append(tableRows, cellSpans(cells))
			}
			continue
		}
		flushTable()

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "# "):
			nodes = append(nodes, Node{Kind: NodeHeading, Level: 1, Spans: ParseSpans(strings.TrimSpace(line[2:]))})
		case strings.HasPrefix(line, "## "):
			nodes = append(nodes, Node{Kind: NodeHeading, Level: 2, Spans: ParseSpans(strings.TrimSpace(line[3:]))})
		case strings.HasPrefix(line, "### "):
			nodes = append(nodes, Node{Kind: NodeHeading, Level: 3, Spans: ParseSpans(strings.TrimSpace(line[4:]))})
		case strings.HasPrefix(line, "> "):
			nodes = append(nodes, Node{Kind: NodeQuote, Spans: ParseSpans(strings.TrimSpace(line[2:]))})
		case strings.HasPrefix(line, "- [ ] "):
			nodes = append(nodes, Node{Kind: NodeTaskItem, Spans: ParseSpans(strings.TrimSpace(line[6:]))})
		case strings.HasPrefix(line, "- [x] "):
			nodes = append(nodes, Node{Kind: NodeTaskItem, Checked: true, Spans: ParseSpans(strings.TrimSpace(line[6:]))})
		case strings.HasPrefix(line, "- "):
			nodes = append(nodes, Node{Kind: NodeListItem, Spans: ParseSpans(strings.TrimSpace(line[2:]))})
		case reOrderedItem.MatchString(line):
			rest := reOrderedItem.ReplaceAllString(line, "")
			nodes = append(nodes, Node{Kind: NodeOrderedItem, Spans: ParseSpans(strings.TrimSpace(rest))})
		case trimmed == "---":
			nodes = append(nodes, Node{Kind: NodeDivider})
		case trimmed == "":
			nodes = append(nodes, Node{Kind: NodeBreak})
		default:
			nodes = append(nodes, Node{Kind: NodeParagraph, Spans: ParseSpans(line)})
		}
	}

	// An unterminated fence still renders what it gathered.
	if inCode {
		nodes = append(nodes, Node{Kind: NodeCode, Lang: codeLang, Literal: strings.Join(codeLines, "\n")})
	}
	flushTable()
	return nodes
}

// ParseSpans splits text into styled inline spans: links, inline code, bold,
// italic, strikethrough, with unmatched runs passing through as plain text.
// Unterminated markers stay literal.
func ParseSpans(text string) []Span {
	if text == "" {
		return nil
	}
	var spans []Span
	last := 0
	for _, loc := range reInline.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Kind: SpanText, Text: text[last:loc[0]]})
		}
		spans = append(spans, classifySpan(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Kind: SpanText, Text: text[last:]})
	}
	return spans
}

func classifySpan(tok string) Span {
	switch {
	case strings.HasPrefix(tok, "["):
		m := reLink.FindStringSubmatch(tok)
		if m != nil {
			return Span{Kind: SpanLink, Text: m[1], URL: m[2]}
		}
	case strings.HasPrefix(tok, "`"):
		return Span{Kind: SpanCode, Text: tok[1 : len(tok)-1]}
	case strings.HasPrefix(tok, "**"):
		return Span{Kind: SpanBold, Text: tok[2 : len(tok)-2]}
	case strings.HasPrefix(tok, "~~"):
		return Span{Kind: SpanStrike, Text: tok[2 : len(tok)-2]}
	case strings.HasPrefix(tok, "*"):
		return Span{Kind: SpanItalic, Text: tok[1 : len(tok)-1]}
	}
	return Span{Kind: SpanText, Text: tok}
}

func parseTableCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	return strings.Contains(line, "---")
}

func cellSpans(cells []string) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell(ParseSpans(c))
	}
	return out
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderHTML(&buf, Parse(md))
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderHTML writes the HTML representation of nodes to buf. Consecutive
// list items are grouped into a single list element.
func RenderHTML(buf *bytes.Buffer, nodes []Node) {
	inList := false
	inOrderedList := false

	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	flushOrderedList := func() {
		if inOrderedList {
			buf.WriteString("</ol>")
			inOrderedList = false
		}
	}

	for _, n := range nodes {
		if n.Kind != NodeListItem {
			flushList()
		}
		if n.Kind != NodeOrderedItem {
			flushOrderedList()
		}
		switch n.Kind {
		case NodeHeading:
			tag := [...]string{"h1", "h2", "h3"}[n.Level-1]
			buf.WriteString("<" + tag + ">")
			writeSpans(buf, n.Spans)
			buf.WriteString("</" + tag + ">")
		case NodeQuote:
			buf.WriteString("<blockquote>")
			writeSpans(buf, n.Spans)
			buf.WriteString("</blockquote>")
		case NodeTaskItem:
			if n.Checked {
				buf.WriteString(`<div class="task-item task-done">`)
			} else {
				buf.WriteString(`<div class="task-item">`)
			}
			writeSpans(buf, n.Spans)
			buf.WriteString("</div>")
		case NodeListItem:
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>")
			writeSpans(buf, n.Spans)
			buf.WriteString("</li>")
		case NodeOrderedItem:
			if !inOrderedList {
				buf.WriteString("<ol>")
				inOrderedList = true
			}
			buf.WriteString("<li>")
			writeSpans(buf, n.Spans)
			buf.WriteString("</li>")
		case NodeDivider:
			buf.WriteString("<hr/>")
		case NodeBreak:
			buf.WriteString("<br/>")
		case NodeCode:
			if n.Lang != "" {
				escapedLang := html.EscapeString(n.Lang)
				buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang">` + escapedLang + "</span>")
				buf.WriteString(`<pre class="code-block"><code class="language-` + escapedLang + `">`)
				buf.WriteString(html.EscapeString(n.Literal))
				buf.WriteString("\n</code></pre></div>")
			} else {
				buf.WriteString(`<pre class="code-block"><code>`)
				buf.WriteString(html.EscapeString(n.Literal))
				buf.WriteString("\n</code></pre>")
			}
		case NodeTable:
			buf.WriteString("<table><thead><tr>")
			for _, cell := range n.Head {
				buf.WriteString("<th>")
				writeSpans(buf, cell)
				buf.WriteString("</th>")
			}
			buf.WriteString("</tr></thead><tbody>")
			for _, row := range n.Rows {
				buf.WriteString("<tr>")
				for _, cell := range row {
					buf.WriteString("<td>")
					writeSpans(buf, cell)
					buf.WriteString("</td>")
				}
				buf.WriteString("</tr>")
			}
			buf.WriteString("</tbody></table>")
		default:
			buf.WriteString("<p>")
			writeSpans(buf, n.Spans)
			buf.WriteString("</p>")
		}
	}
	flushList()
	flushOrderedList()
}

func writeSpans(buf *bytes.Buffer, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case SpanBold:
			buf.WriteString("<strong>" + html.EscapeString(s.Text) + "</strong>")
		case SpanItalic:
			buf.WriteString("<em>" + html.EscapeString(s.Text) + "</em>")
		case SpanStrike:
			buf.WriteString("<del>" + html.EscapeString(s.Text) + "</del>")
		case SpanCode:
			buf.WriteString("<code>" + html.EscapeString(s.Text) + "</code>")
		case SpanLink:
			href := SafeURL(s.URL)
			if href == "" {
				buf.WriteString(html.EscapeString(s.Text))
				continue
			}
			buf.WriteString(`<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + html.EscapeString(s.Text) + "</a>")
		default:
			buf.WriteString(html.EscapeString(s.Text))
		}
	}
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel", "data":
		return html.EscapeString(val)
	default:
		return ""
	}
}
