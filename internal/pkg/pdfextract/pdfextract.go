package pdfextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractFile opens the PDF at path and returns the plain text of every
// page in page order, pages separated by a newline.
func ExtractFile(path string) (text string, err error) {
	// The parser panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf failed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	return extractPages(reader)
}

func extractPages(reader *pdf.Reader) (string, error) {
	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d failed: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
