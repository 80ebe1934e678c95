package service

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"wordmine-server/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const sniffLen = 512

// SniffPDF checks that the file content looks like a PDF.
func SniffPDF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if ct := http.DetectContentType(buf[:n]); ct != "application/pdf" {
		return fmt.Errorf("%w: detected %s", domain.ErrInvalidFile, ct)
	}
	return nil
}

// PDFCPUValidator runs pdfcpu's relaxed structural validation.
type PDFCPUValidator struct {
	conf *model.Configuration
}

func NewPDFCPUValidator() *PDFCPUValidator {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUValidator{conf: conf}
}

func (v *PDFCPUValidator) Validate(path string) error {
	if err := api.ValidateFile(path, v.conf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFile, err)
	}
	return nil
}
