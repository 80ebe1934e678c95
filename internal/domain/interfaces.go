package domain

import (
	"context"
	"io"
)

// TextExtractor turns a PDF on disk into its ordered pages.
type TextExtractor interface {
	Extract(ctx context.Context, path string) ([]Page, error)
}

// PDFValidator checks the structure of a PDF before extraction.
type PDFValidator interface {
	Validate(path string) error
}

// Chunker splits pages into overlapping text windows.
type Chunker interface {
	Split(pages []Page) ([]string, error)
}

// LanguageModel sends a single prompt to an LLM backend and returns its text.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// WordListParser turns raw model output into a WordList.
type WordListParser interface {
	Parse(raw string) (*WordList, error)
}

// VocabularyExtractor extracts words from one chunk of text.
type VocabularyExtractor interface {
	ExtractWords(ctx context.Context, chunk string) (*WordList, error)
}

// AnalysisService runs the whole pipeline for a stored upload.
type AnalysisService interface {
	Analyze(ctx context.Context, path string) ([]WordItem, error)
}

// FileHandler defines the interface for request-scoped upload storage
type FileHandler interface {
	SaveUpload(file io.Reader, originalName string) (*FileInfo, error)
	CleanupTemporary(path string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerAddr() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetLLMProvider() string
	GetPDFBackend() string
}
