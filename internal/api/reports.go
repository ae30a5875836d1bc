package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/garagepay/paytrack/internal/detect"
	"github.com/garagepay/paytrack/internal/normalize"
	"github.com/garagepay/paytrack/internal/sheet"
)

const (
	fieldRentFile = "rent_file"
	fieldBankFile = "bank_statement_file"
	fieldAsOf     = "as_of"
	fieldFormat   = "format"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultUploadMB = 32
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleGenerate accepts both spreadsheets as multipart uploads and returns
// the report as an xlsx attachment or JSON.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	maxMB := s.config.MaxUploadMB
	if maxMB <= 0 {
		maxMB = defaultUploadMB
	}
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxMB)<<20)
	if err := r.ParseMultipartForm(int64(maxMB) << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := strings.ToLower(strings.TrimSpace(r.FormValue(fieldFormat)))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "json" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q, use xlsx or json", format))
		return
	}

	var asOf time.Time
	if v := strings.TrimSpace(r.FormValue(fieldAsOf)); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid as_of %q, use YYYY-MM-DD", v))
			return
		}
		asOf = t
	}

	rentPath, cleanupRent, err := s.saveUpload(r, fieldRentFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupRent()
	bankPath, cleanupBank, err := s.saveUpload(r, fieldBankFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanupBank()

	rent, err := s.readers.OpenRent(rentPath)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	bank, err := s.readers.OpenBank(bankPath)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	rep, err := s.service.Generate(r.Context(), rent, bank, asOf)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	w.Header().Set("X-Report-ID", rep.ID)

	if format == "json" {
		var buf bytes.Buffer
		if err := sheet.WriteJSON(&buf, rep); err != nil {
			s.writeFailure(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}

	var buf bytes.Buffer
	if err := sheet.WriteXLSX(&buf, rep); err != nil {
		s.writeFailure(w, err)
		return
	}
	name := fmt.Sprintf("payment_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// saveUpload copies a form file to a temp file that keeps the original
// extension. The returned cleanup removes it.
func (s *Server) saveUpload(r *http.Request, field string) (string, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing file field %q", field)
	}
	defer file.Close()

	if _, err := s.readers.ForPath(header.Filename); err != nil {
		return "", nil, fmt.Errorf("%s: %w", field, err)
	}
	return copyToTemp(file, filepath.Ext(header.Filename))
}

func copyToTemp(file multipart.File, ext string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "paytrack-*"+strings.ToLower(ext))
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("saving upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("saving upload: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

// writeFailure maps pipeline errors to status codes.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var missing *detect.MissingColumnError
	var invalid *normalize.DataValidationError
	switch {
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &missing), errors.As(err, &invalid), errors.Is(err, sheet.ErrEmptySheet):
		s.logger.Warn("report input rejected", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("report generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("report generation failed: %v", err))
	}
}
