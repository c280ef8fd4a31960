package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/meur/healthguide/internal/alerts"
	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/saved"
	"github.com/meur/healthguide/internal/storage"
)

type brokenStore struct{}

func (brokenStore) Load(context.Context) []string { return nil }

func (brokenStore) Save(context.Context, []string) error { return errors.New("disk full") }

func newTestServer(t *testing.T, store saved.Persister) (*Server, *saved.Registry) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if store == nil {
		store = storage.NewSavedList(storage.NewMemory(), nil)
	}
	reg := saved.NewRegistry(store, nil)
	reg.Hydrate(context.Background())

	s := New(Options{
		Catalog: c,
		Saved:   reg,
		Alerts:  alerts.NewBoard(alerts.Seed()),
	})
	return s, reg
}

func do(t *testing.T, s *Server, method, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decoding %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec
}

type listResponse struct {
	Items []struct {
		ID      string `json:"id"`
		IsSaved bool   `json:"is_saved"`
	} `json:"items"`
	TotalCount int `json:"total_count"`
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetDiseases(t *testing.T) {
	s, _ := newTestServer(t, nil)

	var all listResponse
	do(t, s, http.MethodGet, "/api/diseases", &all)
	if all.TotalCount != 8 || len(all.Items) != 8 {
		t.Fatalf("expected 8 diseases, got %d", all.TotalCount)
	}
	if all.Items[0].ID != "hiv-aids" {
		t.Fatalf("first item %s", all.Items[0].ID)
	}

	var found listResponse
	do(t, s, http.MethodGet, "/api/diseases?q=blood+pressure", &found)
	if found.TotalCount != 1 || found.Items[0].ID != "hypertension" {
		t.Fatalf("search: %+v", found)
	}

	var none listResponse
	do(t, s, http.MethodGet, "/api/diseases?q=blood+pressure&filter=communicable", &none)
	if none.TotalCount != 0 || none.Items == nil {
		t.Fatalf("expected empty list, got %+v", none)
	}

	rec := do(t, s, http.MethodGet, "/api/diseases?filter=saved", nil)
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("empty saved list not encoded as []: %s", rec.Body.String())
	}
}

func TestGetDisease(t *testing.T) {
	s, _ := newTestServer(t, nil)

	var detail struct {
		ID       string `json:"id"`
		Language string `json:"language"`
		Content  struct {
			Overview string   `json:"overview"`
			Symptoms []string `json:"symptoms"`
		} `json:"content"`
	}
	rec := do(t, s, http.MethodGet, "/api/diseases/malaria?lang=tw", &detail)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if detail.ID != "malaria" || detail.Language != "en" {
		t.Fatalf("got id=%s lang=%s", detail.ID, detail.Language)
	}
	if detail.Content.Overview == "" || len(detail.Content.Symptoms) == 0 {
		t.Fatal("content missing")
	}

	rec = do(t, s, http.MethodGet, "/api/diseases/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("error body: %s", rec.Body.String())
	}
}

func TestGetLanguages(t *testing.T) {
	s, _ := newTestServer(t, nil)
	var langs []struct {
		Code string `json:"code"`
	}
	do(t, s, http.MethodGet, "/api/languages", &langs)
	if len(langs) != 5 || langs[0].Code != "en" {
		t.Fatalf("got %+v", langs)
	}
}

func TestToggleSaved(t *testing.T) {
	s, reg := newTestServer(t, nil)

	var toggled struct {
		ID    string `json:"id"`
		Saved bool   `json:"saved"`
	}
	do(t, s, http.MethodPost, "/api/saved/stroke/toggle", &toggled)
	if toggled.ID != "stroke" || !toggled.Saved {
		t.Fatalf("got %+v", toggled)
	}
	do(t, s, http.MethodPost, "/api/saved/cholera/toggle", nil)
	do(t, s, http.MethodPost, "/api/saved/hiv-aids/toggle", nil)

	var savedList struct {
		IDs   []string `json:"ids"`
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	do(t, s, http.MethodGet, "/api/saved", &savedList)
	if strings.Join(savedList.IDs, ",") != "stroke,cholera,hiv-aids" {
		t.Fatalf("ids: %v", savedList.IDs)
	}
	var order []string
	for _, it := range savedList.Items {
		order = append(order, it.ID)
	}
	if strings.Join(order, ",") != "hiv-aids,stroke,cholera" {
		t.Fatalf("items not in catalog order: %v", order)
	}

	var list listResponse
	do(t, s, http.MethodGet, "/api/diseases?filter=saved", &list)
	if list.TotalCount != 3 || !list.Items[0].IsSaved {
		t.Fatalf("saved filter: %+v", list)
	}

	do(t, s, http.MethodPost, "/api/saved/stroke/toggle", &toggled)
	if toggled.Saved || reg.IsSaved("stroke") {
		t.Fatal("stroke still saved")
	}

	if rec := do(t, s, http.MethodPost, "/api/saved/unknown/toggle", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status %d", rec.Code)
	}
	if reg.IsSaved("unknown") {
		t.Fatal("unknown id was saved")
	}
}

func TestToggleSavedWriteFailure(t *testing.T) {
	s, reg := newTestServer(t, brokenStore{})

	rec := do(t, s, http.MethodPost, "/api/saved/malaria/toggle", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
	if reg.IsSaved("malaria") {
		t.Fatal("state changed after failed write")
	}
}

func TestAlerts(t *testing.T) {
	s, _ := newTestServer(t, nil)

	type alertList struct {
		Alerts []struct {
			ID     string `json:"id"`
			Type   string `json:"type"`
			IsRead bool   `json:"is_read"`
		} `json:"alerts"`
		UnreadCount int `json:"unread_count"`
	}

	var all alertList
	do(t, s, http.MethodGet, "/api/alerts", &all)
	if len(all.Alerts) != 5 || all.UnreadCount != 3 {
		t.Fatalf("got %d alerts, %d unread", len(all.Alerts), all.UnreadCount)
	}

	var emergency alertList
	do(t, s, http.MethodGet, "/api/alerts?filter=emergency", &emergency)
	if len(emergency.Alerts) != 1 || emergency.Alerts[0].Type != "emergency" {
		t.Fatalf("emergency: %+v", emergency.Alerts)
	}

	first := all.Alerts[0].ID
	if rec := do(t, s, http.MethodPost, "/api/alerts/"+first+"/read", nil); rec.Code != http.StatusOK {
		t.Fatalf("mark read: %d", rec.Code)
	}
	var unread alertList
	do(t, s, http.MethodGet, "/api/alerts?filter=unread", &unread)
	if len(unread.Alerts) != 2 || unread.UnreadCount != 2 {
		t.Fatalf("unread: %+v", unread)
	}

	if rec := do(t, s, http.MethodDelete, "/api/alerts/"+first, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/alerts/"+first, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/alerts/missing/read", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("mark unknown: %d", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/alerts/read-all", nil)
	var after alertList
	do(t, s, http.MethodGet, "/api/alerts", &after)
	if len(after.Alerts) != 4 || after.UnreadCount != 0 {
		t.Fatalf("after read-all: %d alerts, %d unread", len(after.Alerts), after.UnreadCount)
	}
}

func TestSavedStream(t *testing.T) {
	s, reg := newTestServer(t, nil)
	reg.Toggle(context.Background(), "malaria")

	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/saved/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() []string {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var frame savedFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read: %v", err)
		}
		return frame.IDs
	}

	if got := read(); strings.Join(got, ",") != "malaria" {
		t.Fatalf("initial frame: %v", got)
	}

	resp, err := http.Post(ts.URL+"/api/saved/stroke/toggle", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := read(); strings.Join(got, ",") != "malaria,stroke" {
		t.Fatalf("update frame: %v", got)
	}
}

func TestSavedStreamRejectsForeignOrigin(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/saved/stream"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Fatal("expected handshake to fail")
	}
}

func TestOriginMatches(t *testing.T) {
	cases := []struct {
		pattern, origin string
		want            bool
	}{
		{"http://localhost:*", "http://localhost:5173", true},
		{"http://localhost:*", "http://localhost.evil:80", false},
		{"https://*.example.org", "https://app.example.org", true},
		{"https://*.example.org", "https://example.com", false},
		{"*", "anything", true},
		{"https://guide.example", "https://guide.example", true},
		{"https://guide.example", "https://other.example", false},
	}
	for _, c := range cases {
		if got := originMatches(c.pattern, c.origin); got != c.want {
			t.Errorf("originMatches(%q, %q) = %v", c.pattern, c.origin, got)
		}
	}
}
