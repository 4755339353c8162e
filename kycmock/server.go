// Package kycmock is an in-process stand-in for the document verification
// service. It speaks the same HTTP contract but reads document text
// straight from the uploaded file instead of running OCR, which makes it
// usable for local development and integration tests.
package kycmock

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true, ".txt": true,
}

// Server implements the KYC service HTTP contract.
type Server struct {
	logger *slog.Logger
	router chi.Router
}

// NewServer builds the mock service. A nil logger falls back to
// slog.Default.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Get("/health", s.handleHealth)
	r.Post("/kyc/pan", s.handleExtract("pan"))
	r.Post("/kyc/aadhaar", s.handleExtract("aadhaar"))
	r.Post("/kyc/verify", s.handleVerify)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}

// handleExtract serves /kyc/pan and /kyc/aadhaar. Documents that parse but
// contain no valid number come back 422 with status FAILED.
func (s *Server) handleExtract(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, text, ok := s.readUpload(w, r, "file")
		if !ok {
			return
		}
		s.logger.Info("extraction request", "kind", kind, "file", name)

		var number, message string
		var fields map[string]string
		if kind == "pan" {
			number, message, fields = extractPAN(text)
		} else {
			number, message, fields = extractAadhaar(text)
		}

		status := "SUCCESS"
		code := http.StatusOK
		if number == "" {
			status = "FAILED"
			code = http.StatusUnprocessableEntity
		}
		body := map[string]any{
			"status":         status,
			"message":        message,
			"extracted_data": fields,
		}
		if kind == "pan" {
			body["pan"] = orNil(number)
		} else {
			body["aadhaar"] = orNil(number)
		}
		writeJSON(w, code, body)
	}
}

// handleVerify serves /kyc/verify: extracts both documents, scores them
// against the declared form fields and reports the combined result.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	_, panText, ok := s.readUpload(w, r, "pan_file")
	if !ok {
		return
	}
	_, aadhaarText, ok := s.readUpload(w, r, "aadhaar_file")
	if !ok {
		return
	}

	form := formData{
		Name:          r.FormValue("name"),
		PANNumber:     r.FormValue("pan_number"),
		AadhaarNumber: r.FormValue("aadhaar_number"),
		DateOfBirth:   r.FormValue("date_of_birth"),
		Address:       r.FormValue("address"),
	}
	if form.Name == "" || form.PANNumber == "" || form.AadhaarNumber == "" {
		writeDetail(w, http.StatusBadRequest, "name, pan_number and aadhaar_number are required")
		return
	}

	extracted := map[string]string{}
	_, _, panFields := extractPAN(panText)
	for k, v := range panFields {
		extracted[k] = v
	}
	_, _, aadhaarFields := extractAadhaar(aadhaarText)
	for k, v := range aadhaarFields {
		extracted[k] = v
	}

	result := verifyAndScore(extracted, form)
	s.logger.Info("verification request",
		"overall_match", result.OverallMatch,
		"overall_score", result.OverallScore,
	)

	status := "SUCCESS"
	if !result.OverallMatch {
		status = "FAILED"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              status,
		"verification_result": result,
		"timestamp":           time.Now().Format(time.RFC3339),
	})
}

// readUpload pulls one file out of the multipart form and returns its text.
// On failure it writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (string, string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart form")
		return "", "", false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No file provided")
		return "", "", false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeDetail(w, http.StatusBadRequest, "Invalid file type: "+ext)
		return "", "", false
	}
	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "failed to read upload")
		return "", "", false
	}
	return header.Filename, string(content), true
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
