package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"wordmine-server/internal/domain"

	"github.com/stretchr/testify/require"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *MockHandlerLogger) Debug(msg string, fields ...interface{}) {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})  {}

type mockAnalysisService struct {
	words []domain.WordItem
	err   error

	calledWith   string
	fileExisted  bool
	panicMessage string
}

func (m *mockAnalysisService) Analyze(ctx context.Context, path string) ([]domain.WordItem, error) {
	if m.panicMessage != "" {
		panic(m.panicMessage)
	}
	m.calledWith = path
	_, err := os.Stat(path)
	m.fileExisted = err == nil
	return m.words, m.err
}

func newUploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze_pdf", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
