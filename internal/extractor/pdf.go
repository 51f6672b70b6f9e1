package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a statement PDF and returns the text of each page, in
// page order. Page order is a correctness requirement for the parser: the
// anchors that bound the charges region follow the credits region.
//
// Extraction failure is fatal for the whole parse; no partial results are
// returned.
func ExtractText(filePath string) ([]string, error) {
	pages, err := extractWithLibrary(filePath)
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w; the file may be image-based or use font encodings that cannot be decoded", err)
	}
	if !isReadableText(pages) {
		return nil, fmt.Errorf("no readable text could be extracted from %q; the file may be scanned or image-based", filePath)
	}
	return pages, nil
}

// extractWithLibrary pulls page text via ledongthuc/pdf, preferring row
// extraction and falling back to plain-text extraction for PDFs whose
// content streams the row walker cannot handle.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByPlainText(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	plain := extractByReaderPlainText(r)
	if plain != "" {
		return []string{plain}, nil
	}

	return pages, nil
}

func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var parts []string
		for _, row := range rows {
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					parts = append(parts, s)
				}
			}
		}
		// Statement renderers emit one positioned text item per token, so
		// joining with single spaces reproduces the line-item stream the
		// parser's patterns expect.
		pages = append(pages, strings.Join(parts, " "))
	}
	return pages
}

func extractByPlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fontNames := page.Fonts()
		fonts := make(map[string]*pdf.Font, len(fontNames))
		for _, name := range fontNames {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
