package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"wordmine-server/internal/domain"

	"github.com/stretchr/testify/require"
)

// Mock logger used by service package tests.
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+": "+msg)
}

func (m *MockLogger) Info(msg string, fields ...interface{})  { m.record("INFO", msg) }
func (m *MockLogger) Debug(msg string, fields ...interface{}) { m.record("DEBUG", msg) }
func (m *MockLogger) Warn(msg string, fields ...interface{})  { m.record("WARN", msg) }
func (m *MockLogger) Error(msg string, err error, fields ...interface{}) {
	m.record("ERROR", msg)
}

func (m *MockLogger) Has(entry string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg == entry {
			return true
		}
	}
	return false
}

// MockVocabularyExtractor replays canned responses per call and records the chunks it saw.
type MockVocabularyExtractor struct {
	responses []*domain.WordList
	errs      map[int]error
	calls     []string
}

func (m *MockVocabularyExtractor) ExtractWords(ctx context.Context, chunk string) (*domain.WordList, error) {
	idx := len(m.calls)
	m.calls = append(m.calls, chunk)
	if err, ok := m.errs[idx]; ok {
		return nil, err
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return &domain.WordList{}, nil
}

// MockLanguageModel returns responses[i] for the i-th call when set, else response.
type MockLanguageModel struct {
	response  string
	responses []string
	err       error
	prompts   []string
}

func (m *MockLanguageModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if idx := len(m.prompts) - 1; idx < len(m.responses) {
		return m.responses[idx], m.err
	}
	return m.response, m.err
}

type MockTextExtractor struct {
	pages   []domain.Page
	err     error
	started chan struct{}
	release chan struct{}
}

func (m *MockTextExtractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	return m.pages, m.err
}

type MockChunker struct {
	chunks []string
	err    error
}

func (m *MockChunker) Split(pages []domain.Page) ([]string, error) {
	return m.chunks, m.err
}

type MockValidator struct {
	err error
}

func (m *MockValidator) Validate(path string) error {
	return m.err
}

func chunkList(n int) []string {
	chunks := make([]string, n)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk-%d", i)
	}
	return chunks
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

// buildTestPDF produces a minimal valid PDF with one Helvetica text line per page.
func buildTestPDF(pageTexts ...string) []byte {
	var buf bytes.Buffer
	count := 3 + 2*len(pageTexts)
	offsets := make([]int, count+1)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")

	var kids bytes.Buffer
	for i := range pageTexts {
		fmt.Fprintf(&kids, "%d 0 R ", 4+2*i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pageTexts)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		writeObj(4+2*i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i,
		))
		writeObj(5+2*i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", count+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", count+1, xref)

	return buf.Bytes()
}
