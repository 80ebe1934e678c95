package service

import (
	"fmt"
	"strings"

	"wordmine-server/internal/domain"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	ChunkSize    = 2000
	ChunkOverlap = 200
)

// RecursiveChunker splits each page separately, so a window never spans two pages.
type RecursiveChunker struct {
	splitter textsplitter.RecursiveCharacter
}

func NewRecursiveChunker() *RecursiveChunker {
	return &RecursiveChunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(ChunkSize),
			textsplitter.WithChunkOverlap(ChunkOverlap),
		),
	}
}

func (c *RecursiveChunker) Split(pages []domain.Page) ([]string, error) {
	var chunks []string
	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		parts, err := c.splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("split page %d: %w", page.Number, err)
		}
		for _, part := range parts {
			if strings.TrimSpace(part) != "" {
				chunks = append(chunks, part)
			}
		}
	}
	return chunks, nil
}
