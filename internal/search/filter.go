// Package search implements the canonical free-text and selector filter
// used by every disease listing.
package search

import (
	"strings"

	"github.com/meur/healthguide/internal/models"
)

// Selector is the categorical or boolean filter applied after text search
type Selector string

const (
	SelectorAll             Selector = "all"
	SelectorCommunicable    Selector = "communicable"
	SelectorNonCommunicable Selector = "non-communicable"
	SelectorEmergency       Selector = "emergency"
	SelectorSaved           Selector = "saved"
	SelectorOffline         Selector = "offline"
)

// Selectors lists the known selectors in display order
var Selectors = []Selector{
	SelectorAll,
	SelectorCommunicable,
	SelectorNonCommunicable,
	SelectorEmergency,
	SelectorSaved,
	SelectorOffline,
}

// ParseSelector maps s to a known selector. Unknown values select everything.
func ParseSelector(s string) Selector {
	sel := Selector(strings.TrimSpace(s))
	for _, known := range Selectors {
		if sel == known {
			return sel
		}
	}
	return SelectorAll
}

// SavedSet answers bookmark membership
type SavedSet interface {
	IsSaved(id string) bool
}

// IDSet is an immutable-by-convention snapshot of saved ids
type IDSet map[string]struct{}

// NewIDSet builds a set from ids
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// IsSaved implements SavedSet
func (s IDSet) IsSaved(id string) bool {
	_, ok := s[id]
	return ok
}

// Filter returns the items matching query and sel, in their original order.
// A blank query matches everything. With no fields given, DeepFields are searched.
// A nil saved set is treated as empty.
func Filter(items []models.Disease, query string, sel Selector, saved SavedSet, fields ...Field) []models.Disease {
	needle := normalize(query)
	sel = ParseSelector(string(sel))
	if len(fields) == 0 {
		fields = DeepFields
	}

	out := make([]models.Disease, 0, len(items))
	for _, d := range items {
		if needle != "" && !matches(d, needle, fields) {
			continue
		}
		if !selected(d, sel, saved) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Matches reports whether query occurs in any of the given fields of d.
// A blank query always matches.
func Matches(d models.Disease, query string, fields ...Field) bool {
	needle := normalize(query)
	if needle == "" {
		return true
	}
	if len(fields) == 0 {
		fields = DeepFields
	}
	return matches(d, needle, fields)
}

func matches(d models.Disease, needle string, fields []Field) bool {
	for _, f := range fields {
		for _, text := range f.Extract(d) {
			if strings.Contains(strings.ToLower(text), needle) {
				return true
			}
		}
	}
	return false
}

func selected(d models.Disease, sel Selector, saved SavedSet) bool {
	switch sel {
	case SelectorAll:
		return true
	case SelectorSaved:
		return saved != nil && saved.IsSaved(d.ID)
	case SelectorOffline:
		return d.IsOfflineAvailable
	default:
		return string(d.Category) == string(sel)
	}
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
