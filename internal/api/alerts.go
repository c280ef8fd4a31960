package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/healthguide/internal/alerts"
)

// handleGetAlerts returns alerts selected by ?filter= and the unread count
func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	filter := alerts.ParseFilter(r.URL.Query().Get("filter"))
	list := s.alerts.List(filter)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alerts":       list,
		"total_count":  len(list),
		"unread_count": s.alerts.UnreadCount(),
		"filter":       filter,
	})
}

func (s *Server) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.alerts.MarkAsRead(id) {
		respondError(w, http.StatusNotFound, "Alert not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":           id,
		"unread_count": s.alerts.UnreadCount(),
	})
}

func (s *Server) handleMarkAllAlertsRead(w http.ResponseWriter, r *http.Request) {
	s.alerts.MarkAllAsRead()
	respondJSON(w, http.StatusOK, map[string]int{"unread_count": 0})
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.alerts.Delete(id) {
		respondError(w, http.StatusNotFound, "Alert not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
