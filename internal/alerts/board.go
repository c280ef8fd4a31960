// Package alerts holds the public health notices and their read state.
package alerts

import (
	"strings"
	"sync"

	"github.com/meur/healthguide/internal/models"
)

// Filter narrows the alert list
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUnread    Filter = "unread"
	FilterEmergency Filter = "emergency"
)

// ParseFilter maps unknown values to FilterAll
func ParseFilter(s string) Filter {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterUnread, FilterEmergency:
		return f
	}
	return FilterAll
}

// Board is the shared alert list. Order is preserved across updates.
type Board struct {
	mu     sync.RWMutex
	alerts []models.Alert
}

// NewBoard copies seed into a new board
func NewBoard(seed []models.Alert) *Board {
	return &Board{alerts: append([]models.Alert(nil), seed...)}
}

// List returns the alerts selected by f
func (b *Board) List(f Filter) []models.Alert {
	f = ParseFilter(string(f))

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Alert, 0, len(b.alerts))
	for _, a := range b.alerts {
		switch {
		case f == FilterUnread && a.IsRead:
			continue
		case f == FilterEmergency && a.Type != models.AlertEmergency:
			continue
		}
		out = append(out, a)
	}
	return out
}

// UnreadCount returns the number of unread alerts
func (b *Board) UnreadCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, a := range b.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n
}

// MarkAsRead marks one alert read. Returns false if id is unknown.
func (b *Board) MarkAsRead(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts[i].IsRead = true
			return true
		}
	}
	return false
}

func (b *Board) MarkAllAsRead() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.alerts {
		b.alerts[i].IsRead = true
	}
}

// Delete removes an alert. Returns false if id is unknown.
func (b *Board) Delete(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.alerts {
		if b.alerts[i].ID == id {
			b.alerts = append(b.alerts[:i], b.alerts[i+1:]...)
			return true
		}
	}
	return false
}
