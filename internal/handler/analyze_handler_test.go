package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"wordmine-server/internal/domain"
	"wordmine-server/internal/service"
	apperrors "wordmine-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n% sample\n")

type failingStorage struct{}

func (failingStorage) SaveUpload(file io.Reader, originalName string) (*domain.FileInfo, error) {
	return nil, errors.New("disk full")
}

func (failingStorage) CleanupTemporary(path string) error { return nil }

func newTestAnalyzeHandler(t *testing.T, analysis domain.AnalysisService, maxSize int64) (*AnalyzeHandler, string, *MockHandlerLogger) {
	t.Helper()
	dir := t.TempDir()
	logger := NewMockHandlerLogger()
	return NewAnalyzeHandler(analysis, service.NewTempStorage(dir, logger), maxSize, logger), dir, logger
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload dir should be empty")
}

func TestAnalyzePDF_Success(t *testing.T) {
	analysis := &mockAnalysisService{words: []domain.WordItem{
		{Word: "Ephemeral", Translation: "短暂的"},
		{Word: "Paradigm", Translation: "范式"},
	}}
	h, dir, _ := newTestAnalyzeHandler(t, analysis, 1<<20)

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "file", "paper.pdf", samplePDF))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"status":"success","result":[{"word":"Ephemeral","translation":"短暂的"},{"word":"Paradigm","translation":"范式"}]}`,
		rr.Body.String(),
	)
	assert.True(t, analysis.fileExisted, "upload should exist while analyzing")
	assert.True(t, strings.HasPrefix(analysis.calledWith, dir))
	assertDirEmpty(t, dir)
}

func TestAnalyzePDF_EmptyResult(t *testing.T) {
	h, _, _ := newTestAnalyzeHandler(t, &mockAnalysisService{}, 1<<20)

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "file", "paper.pdf", samplePDF))

	assert.JSONEq(t, `{"status":"success","result":[]}`, rr.Body.String())
}

func TestAnalyzePDF_PipelineErrorIsReportedInBody(t *testing.T) {
	analysis := &mockAnalysisService{err: apperrors.NewModelError("vocabulary extraction failed", errors.New("503 upstream"))}
	h, dir, logger := newTestAnalyzeHandler(t, analysis, 1<<20)

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "file", "paper.pdf", samplePDF))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body, "result")
	assert.Contains(t, body["detail"], "503 upstream")
	assert.NotEmpty(t, logger.errors)
	assertDirEmpty(t, dir)
}

func TestAnalyzePDF_MissingFileField(t *testing.T) {
	analysis := &mockAnalysisService{}
	h, _, _ := newTestAnalyzeHandler(t, analysis, 1<<20)

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "document", "paper.pdf", samplePDF))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, analysis.calledWith)
}

func TestAnalyzePDF_NotMultipart(t *testing.T) {
	h, _, _ := newTestAnalyzeHandler(t, &mockAnalysisService{}, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/analyze_pdf", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnalyzePDF_TooLarge(t *testing.T) {
	analysis := &mockAnalysisService{}
	h, _, _ := newTestAnalyzeHandler(t, analysis, 64)

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "file", "paper.pdf", make([]byte, 4096)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Empty(t, analysis.calledWith)
}

func TestAnalyzePDF_StorageFailure(t *testing.T) {
	analysis := &mockAnalysisService{}
	h := NewAnalyzeHandler(analysis, failingStorage{}, 1<<20, NewMockHandlerLogger())

	rr := httptest.NewRecorder()
	h.AnalyzePDF(rr, newUploadRequest(t, "file", "paper.pdf", samplePDF))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, analysis.calledWith)
}
