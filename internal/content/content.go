// Package content turns ebook files into the plain text the pagination engine
// consumes: paragraphs separated by blank lines, "\n" line endings, NFC.
//
// Each supported format has an Extractor:
//
//	ex, format, err := content.ForFile("dune.epub")
//	text, err := ex.Extract(data)
//
// Loader resolves a book's file under the library directory, enforces the
// size limit and caches the extracted text until the file changes.
package content

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported ebook format")
	ErrNoFile            = errors.New("book has no ebook file")
	ErrTooLarge          = errors.New("ebook file exceeds the size limit")
	ErrOutsideLibrary    = errors.New("ebook path escapes the library directory")
	ErrDRMProtected      = errors.New("ebook is DRM protected")
)

// Format is a lower-case file extension without the dot.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatEPUB     Format = "epub"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// Extractor converts the raw bytes of one file format into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

var extractors = map[Format]Extractor{
	FormatText:     &TextExtractor{},
	FormatMarkdown: &MarkdownExtractor{},
	FormatHTML:     &HTMLExtractor{},
	FormatEPUB:     &EPUBExtractor{},
	FormatPDF:      &PDFExtractor{},
	FormatDOCX:     &DOCXExtractor{},
}

var formatAliases = map[string]Format{
	"text":     FormatText,
	"markdown": FormatMarkdown,
	"htm":      FormatHTML,
	"xhtml":    FormatHTML,
}

// SupportedFormats lists the canonical formats in a stable order.
func SupportedFormats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatEPUB, FormatPDF, FormatDOCX}
}

// ParseFormat canonicalizes a format name or extension ("HTM", ".md").
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	if _, ok := extractors[Format(name)]; ok {
		return Format(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ForFormat returns the extractor of a format name.
func ForFormat(format string) (Extractor, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return extractors[f], nil
}

// ForFile picks the extractor by file extension.
func ForFile(filename string) (Extractor, Format, error) {
	f, err := ParseFormat(filepath.Ext(filename))
	if err != nil {
		return nil, "", err
	}
	return extractors[f], f, nil
}

// Normalize converts line endings to "\n", drops a leading byte order mark,
// composes the text to NFC and trims surrounding whitespace.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n\n")
	return strings.TrimSpace(norm.NFC.String(text))
}

// joinParagraphs joins non-empty paragraphs with blank lines.
func joinParagraphs(paragraphs []string) string {
	kept := paragraphs[:0:0]
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
