// Package curation persists the user's boards, followed tags, theme, notes,
// acquisition tasks and reader library in the local KV store.
package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/store"
)

// Storage keys.
const (
	KeyFollowedTags = "lumina_followed_tags"
	KeyTheme        = "lumina_theme"
	KeySavedBoards  = "lumina_saved_boards"
	KeyDrafts       = "lumina_drafts"
	KeyTasks        = "lumina_acquisition_tasks"
	KeyLibrary      = "lumina_library"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTheme is returned for an unknown theme.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidInput is returned when a required field is empty.
	ErrInvalidInput = errors.New("invalid input")
)

// Store reads and writes curation state. A mutex serializes read-modify-write
// cycles so concurrent API requests do not lose updates.
type Store struct {
	kv     store.KV
	logger *slog.Logger
	mu     sync.Mutex
	now    func() time.Time
	newID  func() string
}

// New creates a curation store on top of kv.
func New(kv store.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// load decodes key into a T, falling back to def when the key is absent or
// the stored JSON is unreadable.
func load[T any](ctx context.Context, s *Store, key string, def func() T) T {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("reading curation state, using defaults", "key", key, "error", err)
		}
		return def()
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.Inc(metrics.StoreCorruptEntries)
		s.logger.Warn("corrupt curation state, using defaults", "key", key, "error", err)
		return def()
	}
	return v
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

