package content

import (
	"bytes"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the text layer of a PDF. Each page becomes at least
// one paragraph; scanned pages without text are skipped.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(data []byte) (text string, err error) {
	// the pdf library panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract pdf text: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, pageText)
	}
	return joinParagraphs(pages), nil
}
