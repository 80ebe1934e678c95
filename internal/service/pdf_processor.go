package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wordmine-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// PDFProcessor extracts page text with MuPDF
type PDFProcessor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger, pageTimeout time.Duration) *PDFProcessor {
	if pageTimeout <= 0 {
		pageTimeout = 90 * time.Second
	}
	return &PDFProcessor{
		logger:      logger,
		pageTimeout: pageTimeout,
	}
}

// Extract returns one Page per PDF page, in order. A page that fails or times
// out is kept as an empty page so numbering stays aligned with the source.
func (p *PDFProcessor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]domain.Page, 0, numPages)

	type pageResult struct {
		text string
		err  error
	}

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			text, err = res.text, res.err
		case <-time.After(p.pageTimeout):
			p.logger.Warn("PDF page extraction timeout; using empty page", "page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			err = fmt.Errorf("timeout after %v", p.pageTimeout)
			go func() { <-resultCh }() // drain so goroutine can exit
		}
		if err != nil {
			p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", err)
			text = ""
		}

		pages = append(pages, domain.Page{
			Number: pageNum + 1,
			Text:   sanitizeText(strings.TrimSpace(text)),
		})
	}

	return pages, nil
}

// sanitizeText drops NUL, control characters other than tab/newline/CR, and
// surrogate code points so the text is safe to embed in a JSON prompt.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
			result.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			result.WriteRune(r)
		case r >= 0x7F && r <= 0x10FFFF && (r < 0xD800 || r > 0xDFFF):
			result.WriteRune(r)
		}
	}

	return result.String()
}
