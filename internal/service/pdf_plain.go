package service

import (
	"context"
	"fmt"
	"strings"

	"wordmine-server/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PlainPDFExtractor extracts page text with the pure-Go ledongthuc/pdf reader.
// It is the backend for builds without MuPDF.
type PlainPDFExtractor struct {
	logger domain.Logger
}

func NewPlainPDFExtractor(logger domain.Logger) *PlainPDFExtractor {
	return &PlainPDFExtractor{logger: logger}
}

func (e *PlainPDFExtractor) Extract(ctx context.Context, path string) (pages []domain.Page, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages = make([]domain.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page_num", i, "total", numPages, "error", err)
			text = ""
		}
		pages = append(pages, domain.Page{
			Number: i,
			Text:   sanitizeText(strings.TrimSpace(text)),
		})
	}

	return pages, nil
}
