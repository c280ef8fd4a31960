package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/meur/healthguide/internal/models"
	"github.com/meur/healthguide/internal/search"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type savedFrame struct {
	IDs []string `json:"ids"`
}

// handleGetSaved returns the bookmarked diseases in catalog order
func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	ids := s.saved.IDs()
	snapshot := search.NewIDSet(ids...)

	items := make([]models.Summary, 0, len(ids))
	for _, d := range search.Filter(s.catalog.Records(), "", search.SelectorSaved, snapshot) {
		items = append(items, d.Summary())
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ids":         ids,
		"items":       items,
		"total_count": len(items),
	})
}

// handleToggleSaved flips the bookmark for a disease
func (s *Server) handleToggleSaved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.catalog.Has(id) {
		respondError(w, http.StatusNotFound, "Disease not found")
		return
	}

	isSaved, err := s.saved.Toggle(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save bookmark")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":    id,
		"saved": isSaved,
	})
}

// handleSavedStream pushes the bookmark list over a websocket, first the
// current list and then every change.
func (s *Server) handleSavedStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("saved stream: websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := s.saved.Subscribe()
	defer cancel()

	// The client never sends data; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.log.WithError(err).Debug("saved stream: read")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ids, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(savedFrame{IDs: ids}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// checkOrigin accepts requests without an Origin header and origins allowed
// by the CORS settings.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.origins {
		if originMatches(allowed, origin) {
			return true
		}
	}
	return false
}

// originMatches supports a single "*" wildcard, like the CORS handler.
func originMatches(pattern, origin string) bool {
	if pattern == "*" || pattern == origin {
		return true
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' {
			prefix, suffix := pattern[:i], pattern[i+1:]
			return len(origin) >= len(prefix)+len(suffix) &&
				origin[:len(prefix)] == prefix &&
				origin[len(origin)-len(suffix):] == suffix
		}
	}
	return false
}
