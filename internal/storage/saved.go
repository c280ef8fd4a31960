package storage

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
)

// SavedKey holds the whole bookmark list as a JSON array
const SavedKey = "savedDiseases"

// SavedList persists bookmarked disease ids in a KV
type SavedList struct {
	kv  KV
	log logrus.FieldLogger
}

// NewSavedList wraps kv. A nil logger discards warnings.
func NewSavedList(kv KV, log logrus.FieldLogger) *SavedList {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &SavedList{kv: kv, log: log}
}

// Load returns the stored ids. Missing, unreadable or malformed values
// yield an empty list.
func (s *SavedList) Load(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, SavedKey)
	if err != nil {
		s.log.WithError(err).Warn("reading saved diseases failed, starting empty")
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.WithError(err).WithField("value", raw).Warn("saved diseases are malformed, starting empty")
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// Save overwrites the stored list with ids
func (s *SavedList) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, SavedKey, string(data))
}
