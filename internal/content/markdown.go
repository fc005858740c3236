package content

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor renders Markdown to plain text with goldmark. Headings,
// paragraphs, list items and code blocks each become one paragraph; soft line
// breaks are reflowed.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(data []byte) (string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var paragraphs []string
	markdownBlocks(doc, data, &paragraphs)
	return joinParagraphs(paragraphs), nil
}

func markdownBlocks(n ast.Node, src []byte, out *[]string) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			var buf strings.Builder
			markdownInline(c, src, &buf)
			*out = append(*out, buf.String())
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			var buf strings.Builder
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
			*out = append(*out, strings.TrimRight(buf.String(), "\n"))
		case *ast.ThematicBreak, *ast.HTMLBlock:
		default:
			markdownBlocks(c, src, out)
		}
	}
}

func markdownInline(n ast.Node, src []byte, buf *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() {
				buf.WriteByte('\n')
			} else if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.URL(src))
		case *ast.RawHTML:
		default:
			markdownInline(c, src, buf)
		}
	}
}
