package service

import (
	"context"
	"fmt"
	"strings"

	"wordmine-server/internal/domain"
)

// MaxChunksPerDocument caps how many chunks of a document reach the model.
const MaxChunksPerDocument = 5

// BatchOrchestrator folds the vocabulary of consecutive chunks into one list.
type BatchOrchestrator struct {
	extractor domain.VocabularyExtractor
	logger    domain.Logger
}

func NewBatchOrchestrator(extractor domain.VocabularyExtractor, logger domain.Logger) *BatchOrchestrator {
	return &BatchOrchestrator{
		extractor: extractor,
		logger:    logger,
	}
}

// Process runs the first min(len(chunks), limit) chunks in order and keeps the
// first occurrence of every word, compared case-insensitively. An extractor
// error stops the batch and no partial result is returned.
func (o *BatchOrchestrator) Process(ctx context.Context, chunks []string, limit int) ([]domain.WordItem, error) {
	total := min(len(chunks), limit)

	words := make([]domain.WordItem, 0)
	seen := make(map[string]struct{})

	for i := 0; i < total; i++ {
		o.logger.Info("Analyzing chunk", "chunk", i+1, "total", total)

		list, err := o.extractor.ExtractWords(ctx, chunks[i])
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, total, err)
		}
		if list == nil {
			continue
		}

		for _, item := range list.Words {
			key := strings.ToLower(item.Word)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			words = append(words, item)
		}
	}

	return words, nil
}
