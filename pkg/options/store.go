// Package options keeps the site's configuration as seen by a scan session:
// the options as stored by the site and local modifications not yet saved.
package options

import (
	"context"
	"fmt"
	"reflect"
	"sitescan/pkg/domain"
	"sitescan/pkg/logger"
	"sitescan/pkg/wp"
	"sync"

	"go.uber.org/zap"
)

// Store holds original and modified options. It is safe for concurrent use.
type Store struct {
	api wp.OptionsAPI

	mu       sync.RWMutex
	original domain.Options
	modified domain.Options

	subsMu  sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an empty store backed by api. Call Refresh to load the stored options.
func New(api wp.OptionsAPI) *Store {
	return &Store{
		api:      api,
		original: domain.Options{},
		modified: domain.Options{},
		subs:     make(map[int]chan struct{}),
	}
}

// Refresh loads the stored options from the site. Local modifications are kept.
func (s *Store) Refresh(ctx context.Context) error {
	opts, err := s.api.Options(ctx)
	if err != nil {
		return fmt.Errorf("could not refresh options: %w", err)
	}

	s.mu.Lock()
	s.original = deepCopy(opts)
	s.dropUnchangedLocked()
	s.mu.Unlock()

	logger.Get(ctx).Debug("options refreshed", zap.Int("count", len(opts)))
	s.notify()

	return nil
}

// Set records a local modification of key. Setting a key back to its stored
// value drops the modification.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	if orig, ok := s.original[key]; ok && reflect.DeepEqual(orig, value) {
		delete(s.modified, key)
	} else {
		s.modified[key] = deepCopyValue(value)
	}
	s.mu.Unlock()

	s.notify()
}

// Update records several modifications at once and notifies subscribers once.
func (s *Store) Update(updates domain.Options) {
	s.mu.Lock()
	for key, value := range updates {
		if orig, ok := s.original[key]; ok && reflect.DeepEqual(orig, value) {
			delete(s.modified, key)

			continue
		}
		s.modified[key] = deepCopyValue(value)
	}
	s.mu.Unlock()

	s.notify()
}

// Save persists local modifications. On success the stored options returned
// by the site replace the originals and modifications are cleared.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	updates := deepCopy(s.modified)
	s.mu.RUnlock()

	if len(updates) == 0 {
		return nil
	}

	stored, err := s.api.UpdateOptions(ctx, updates)
	if err != nil {
		return fmt.Errorf("could not save options: %w", err)
	}

	s.mu.Lock()
	s.original = deepCopy(stored)
	for key, value := range updates {
		if reflect.DeepEqual(s.modified[key], value) {
			delete(s.modified, key)
		}
	}
	s.mu.Unlock()

	logger.Get(ctx).Info("options saved", zap.Int("count", len(updates)))
	s.notify()

	return nil
}

// Snapshot returns copies of the original and modified options.
func (s *Store) Snapshot() domain.OptionsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.OptionsSnapshot{
		ModifiedOptions: deepCopy(s.modified),
		OriginalOptions: deepCopy(s.original),
	}
}

// ModifiedOptions returns a copy of the local modifications.
func (s *Store) ModifiedOptions() domain.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return deepCopy(s.modified)
}

// ThemeSupport returns the stored theme support mode.
func (s *Store) ThemeSupport() domain.ThemeSupport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.original.ThemeSupport()
}

// Subscribe returns a channel that receives a value whenever the options
// change, and a function that removes the subscription. Notifications are
// coalesced: a subscriber that is behind sees a single pending value.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// dropUnchangedLocked removes modifications that match the stored values.
func (s *Store) dropUnchangedLocked() {
	for key, value := range s.modified {
		if orig, ok := s.original[key]; ok && reflect.DeepEqual(orig, value) {
			delete(s.modified, key)
		}
	}
}

func deepCopy(o domain.Options) domain.Options {
	out := make(domain.Options, len(o))
	for k, v := range o {
		out[k] = deepCopyValue(v)
	}

	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopyValue(vv)
		}

		return out
	case domain.Options:
		return deepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopyValue(vv)
		}

		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
