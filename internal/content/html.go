package content

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// HTMLExtractor flattens an HTML document. Block elements start new
// paragraphs, <br> becomes a line break and inline whitespace collapses.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(data []byte) (string, error) {
	paragraphs, err := htmlParagraphs(data)
	if err != nil {
		return "", err
	}
	return joinParagraphs(paragraphs), nil
}

func htmlParagraphs(data []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	w := &htmlWalker{}
	if body := findElement(doc, "body"); body != nil {
		w.walk(body)
	} else {
		w.walk(doc)
	}
	w.flush()
	return w.paragraphs, nil
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "li": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
}

type htmlWalker struct {
	paragraphs []string
	cur        strings.Builder
	pre        int
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		if n.Data == "br" {
			w.cur.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		w.flush()
	}
	if n.Data == "pre" {
		w.pre++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if n.Data == "pre" {
		w.pre--
	}
	if block {
		w.flush()
	}
}

func (w *htmlWalker) text(s string) {
	if w.pre > 0 {
		w.cur.WriteString(s)
		return
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space()
		}
		return
	}
	if unicode.IsSpace(rune(s[0])) {
		w.space()
	}
	w.cur.WriteString(strings.Join(fields, " "))
	if unicode.IsSpace(rune(s[len(s)-1])) {
		w.space()
	}
}

func (w *htmlWalker) space() {
	if w.cur.Len() == 0 {
		return
	}
	if s := w.cur.String(); s[len(s)-1] != ' ' && s[len(s)-1] != '\n' {
		w.cur.WriteByte(' ')
	}
}

// flush closes the current paragraph. Blank lines inside it are dropped so a
// <pre> block stays a single paragraph.
func (w *htmlWalker) flush() {
	var lines []string
	for _, line := range strings.Split(w.cur.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		w.paragraphs = append(w.paragraphs, strings.Join(lines, "\n"))
	}
	w.cur.Reset()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
