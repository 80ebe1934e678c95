package service

import (
	"context"

	"wordmine-server/internal/domain"
	apperrors "wordmine-server/pkg/errors"

	"golang.org/x/sync/semaphore"
)

// AnalysisService implements the upload-to-word-list pipeline
type AnalysisService struct {
	extractor    domain.TextExtractor
	validator    domain.PDFValidator
	chunker      domain.Chunker
	orchestrator *BatchOrchestrator
	slots        *semaphore.Weighted
	logger       domain.Logger
}

// NewAnalysisService creates a new analysis service instance. validator may be nil.
func NewAnalysisService(
	extractor domain.TextExtractor,
	validator domain.PDFValidator,
	chunker domain.Chunker,
	orchestrator *BatchOrchestrator,
	maxConcurrent int64,
	logger domain.Logger,
) *AnalysisService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &AnalysisService{
		extractor:    extractor,
		validator:    validator,
		chunker:      chunker,
		orchestrator: orchestrator,
		slots:        semaphore.NewWeighted(maxConcurrent),
		logger:       logger,
	}
}

// Analyze extracts the vocabulary of the PDF stored at path.
func (s *AnalysisService) Analyze(ctx context.Context, path string) ([]domain.WordItem, error) {
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, apperrors.NewInternalError("gave up waiting for an analysis slot", err)
	}
	defer s.slots.Release(1)

	if err := SniffPDF(path); err != nil {
		return nil, apperrors.NewExtractionError("upload is not a PDF", err)
	}
	if s.validator != nil {
		if err := s.validator.Validate(path); err != nil {
			return nil, apperrors.NewExtractionError("PDF validation failed", err)
		}
	}

	pages, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, apperrors.NewExtractionError("failed to extract text", err)
	}

	chunks, err := s.chunker.Split(pages)
	if err != nil {
		return nil, apperrors.NewExtractionError("failed to split text", err)
	}
	s.logger.Debug("Document chunked", "pages", len(pages), "chunks", len(chunks))
	if dropped := len(chunks) - MaxChunksPerDocument; dropped > 0 {
		s.logger.Warn("Document truncated to chunk limit", "chunks", len(chunks), "analyzed", MaxChunksPerDocument, "dropped", dropped)
	}

	words, err := s.orchestrator.Process(ctx, chunks, MaxChunksPerDocument)
	if err != nil {
		return nil, apperrors.NewModelError("vocabulary extraction failed", err)
	}
	return words, nil
}
