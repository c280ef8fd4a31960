package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/models"
	"github.com/meur/healthguide/internal/search"
)

// diseaseSummary is a list entry annotated with the bookmark state
type diseaseSummary struct {
	models.Summary
	IsSaved bool `json:"is_saved"`
}

type diseaseDetail struct {
	models.Summary
	MedicalReviewDate string                `json:"medical_review_date,omitempty"`
	ReviewedBy        string                `json:"reviewed_by,omitempty"`
	EstimatedReadTime string                `json:"estimated_read_time,omitempty"`
	Language          string                `json:"language"`
	Content           models.DiseaseContent `json:"content"`
	IsSaved           bool                  `json:"is_saved"`
}

// handleGetLanguages returns the supported content languages
func (s *Server) handleGetLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalog.Languages())
}

// handleGetDiseases returns diseases matching ?q= and ?filter=
func (s *Server) handleGetDiseases(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	selector := search.ParseSelector(r.URL.Query().Get("filter"))

	snapshot := search.NewIDSet(s.saved.IDs()...)
	results := search.Filter(s.catalog.Records(), query, selector, snapshot, s.fields...)

	items := make([]diseaseSummary, 0, len(results))
	for _, d := range results {
		items = append(items, diseaseSummary{Summary: d.Summary(), IsSaved: snapshot.IsSaved(d.ID)})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
		"filter":      selector,
	})
}

// handleGetDisease returns a single disease with content in ?lang=,
// falling back to English when no translation exists
func (s *Server) handleGetDisease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, ok := s.catalog.GetByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Disease not found")
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.language
	}
	content, effective := d.LocalizedContent(lang)

	respondJSON(w, http.StatusOK, diseaseDetail{
		Summary:           d.Summary(),
		MedicalReviewDate: d.MedicalReviewDate,
		ReviewedBy:        d.ReviewedBy,
		EstimatedReadTime: d.EstimatedReadTime,
		Language:          effective,
		Content:           content,
		IsSaved:           s.saved.IsSaved(d.ID),
	})
}
