// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"wordmine-server/internal/domain"
)

const (
	uploadField     = "file"
	multipartMemory = 32 << 20
)

// AnalyzeHandler serves POST /analyze_pdf
type AnalyzeHandler struct {
	analysis    domain.AnalysisService
	files       domain.FileHandler
	maxFileSize int64
	logger      domain.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysis domain.AnalysisService, files domain.FileHandler, maxFileSize int64, logger domain.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysis:    analysis,
		files:       files,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// AnalyzePDF stores the uploaded file for the duration of the request and
// returns its vocabulary. Pipeline failures are reported in the body with
// status 200; only a malformed request gets a 4xx.
func (h *AnalyzeHandler) AnalyzePDF(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())

	if h.maxFileSize > 0 {
		if r.ContentLength > h.maxFileSize {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxFileSize))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	}

	file, header, err := r.FormFile(uploadField)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxFileSize))
			return
		}
		h.logger.Debug("Missing upload", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	info, err := h.files.SaveUpload(file, header.Filename)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", h.maxFileSize))
			return
		}
		h.logger.Error("Failed to store upload", err, "request_id", requestID, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer func() {
		if err := h.files.CleanupTemporary(info.Path); err != nil {
			h.logger.Error("Failed to remove temporary upload", err, "request_id", requestID, "path", info.Path)
		}
	}()

	h.logger.Info("Analyzing PDF", "request_id", requestID, "filename", info.Filename, "size", info.Size)

	words, err := h.analysis.Analyze(r.Context(), info.Path)
	if err != nil {
		h.logger.Error("PDF analysis failed", err, "request_id", requestID, "filename", info.Filename)
		writeJSON(w, http.StatusOK, domain.NewFailureResult(err))
		return
	}

	h.logger.Info("PDF analysis completed", "request_id", requestID, "filename", info.Filename, "words", len(words))
	writeJSON(w, http.StatusOK, domain.NewSuccessResult(words))
}
