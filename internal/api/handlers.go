package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"maganghub-radar/internal/ai"
	"maganghub-radar/internal/core"
	"maganghub-radar/internal/observability"
)

// Uploads larger than this are rejected outright.
const maxUploadBytes = 10 << 20

// handleListVacancies serves the full vacancy listing: cached (or freshly
// fetched) records, classified when AI is available, sorted best odds first.
// An empty upstream result is an empty array, never an error.
func (s *Server) handleListVacancies(w http.ResponseWriter, r *http.Request) {
	records := s.cache.GetOrRefresh(r.Context())
	core.SortVacancies(records)

	if s.ai.Enabled() && len(records) > 0 {
		items := make([]ai.ClassifyItem, len(records))
		for i, rec := range records {
			items[i] = ai.ClassifyItem{
				ID:          rec.ID,
				Position:    rec.Position,
				Description: rec.Description,
			}
		}

		categories, err := s.ai.Classify(r.Context(), items)
		if err != nil {
			// Classification is best-effort; the listing ships anyway.
			s.logger.Warn("classification failed", zap.Error(err))
		}
		core.ApplyCategories(records, categories)
	}

	respondJSON(w, http.StatusOK, records)
}

// handleRecommend accepts a resume PDF and returns AI-ranked vacancy
// matches. Input validation happens before any external call; the temp file
// is removed on every path.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("cv_file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "cv_file is required")
		return
	}
	defer file.Close()

	if !isPDFUpload(header.Header.Get("Content-Type"), header.Filename) {
		respondError(w, http.StatusBadRequest, "cv_file must be a PDF document")
		return
	}

	if !s.ai.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "AI recommendations are not configured")
		return
	}

	tmp, err := os.CreateTemp("", "cv-*.pdf")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = io.Copy(tmp, file)
	tmp.Close()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	if !isParseablePDF(tmpPath) {
		respondError(w, http.StatusBadRequest, "cv_file is not a readable PDF")
		return
	}

	records := s.cache.GetOrRefresh(r.Context())
	core.SortVacancies(records)

	picks, err := s.ai.Recommend(r.Context(), tmpPath, core.Manifest(records))
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			respondError(w, http.StatusServiceUnavailable, "AI recommendations are not configured")
			return
		}
		s.logger.Error("recommendation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "recommendation failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, core.BuildRecommendations(picks, records))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func isPDFUpload(contentType, filename string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// isParseablePDF rejects uploads that merely claim to be PDFs.
func isParseablePDF(path string) bool {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return reader.NumPage() >= 0
}
