// Package saved keeps the bookmarked disease ids in memory and mirrors every
// change to a Persister. One Registry is shared by the whole process.
package saved

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Persister stores the full bookmark list
type Persister interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, ids []string) error
}

// Registry is the in-memory bookmark set
type Registry struct {
	store Persister
	log   logrus.FieldLogger

	mu    sync.RWMutex
	ids   []string
	index map[string]struct{}

	subMu   sync.Mutex
	subs    map[int]chan []string
	nextSub int
}

// NewRegistry returns an empty registry backed by store. Call Hydrate to
// read existing bookmarks.
func NewRegistry(store Persister, log logrus.FieldLogger) *Registry {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Registry{
		store: store,
		log:   log,
		ids:   []string{},
		index: make(map[string]struct{}),
		subs:  make(map[int]chan []string),
	}
}

// Hydrate replaces the in-memory set with the persisted list, keeping the
// first occurrence of any duplicated id.
func (r *Registry) Hydrate(ctx context.Context) {
	loaded := r.store.Load(ctx)

	ids := make([]string, 0, len(loaded))
	index := make(map[string]struct{}, len(loaded))
	for _, id := range loaded {
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = struct{}{}
		ids = append(ids, id)
	}

	r.mu.Lock()
	r.ids = ids
	r.index = index
	r.publish(ids)
	r.mu.Unlock()

	r.log.WithField("count", len(ids)).Debug("saved diseases hydrated")
}

// IsSaved reports whether id is bookmarked
func (r *Registry) IsSaved(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[id]
	return ok
}

// IDs returns a copy of the bookmarked ids in the order they were added
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.ids)
}

// Toggle adds id if absent and removes it otherwise, returning whether it is
// saved afterwards. The new list is persisted before it becomes visible; if
// the write fails nothing changes and the error is returned.
func (r *Registry) Toggle(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()

	_, wasSaved := r.index[id]
	next := make([]string, 0, len(r.ids)+1)
	for _, existing := range r.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	if !wasSaved {
		next = append(next, id)
	}

	if err := r.store.Save(ctx, next); err != nil {
		r.mu.Unlock()
		r.log.WithError(err).WithField("id", id).Error("bookmark write failed")
		return wasSaved, fmt.Errorf("saving bookmarks: %w", err)
	}

	if wasSaved {
		delete(r.index, id)
	} else {
		r.index[id] = struct{}{}
	}
	r.ids = next
	r.publish(next)
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{"id": id, "saved": !wasSaved}).Info("bookmark toggled")
	return !wasSaved, nil
}

// Subscribe returns a channel that first receives the current list and then
// every committed change. A slow reader only sees the latest list. cancel
// closes the channel.
func (r *Registry) Subscribe() (<-chan []string, func()) {
	ch := make(chan []string, 1)

	r.mu.RLock()
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	ch <- clone(r.ids)
	r.subMu.Unlock()
	r.mu.RUnlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			close(ch)
			r.subMu.Unlock()
		})
	}
	return ch, cancel
}

// publish must be called with r.mu held so subscribers see commits in order.
func (r *Registry) publish(ids []string) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	for _, ch := range r.subs {
		// Drop the unread value so the send below never blocks.
		select {
		case <-ch:
		default:
		}
		ch <- clone(ids)
	}
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
