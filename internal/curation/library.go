package curation

import (
	"context"
	"strings"

	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/models"
)

func (s *Store) library(ctx context.Context) []models.LibraryItem {
	return load(ctx, s, KeyLibrary, func() []models.LibraryItem { return fixtures.Library(s.now()) })
}

// Library lists library items. An empty status lists all of them.
func (s *Store) Library(ctx context.Context, status models.LibraryStatus) []models.LibraryItem {
	items := s.library(ctx)
	if status == "" {
		return items
	}
	out := make([]models.LibraryItem, 0, len(items))
	for i := range items {
		if items[i].Status == status {
			out = append(out, items[i])
		}
	}
	return out
}

// LibraryItem returns the library item with id.
func (s *Store) LibraryItem(ctx context.Context, id string) (models.LibraryItem, error) {
	for _, it := range s.library(ctx) {
		if it.ID == id {
			return it, nil
		}
	}
	return models.LibraryItem{}, ErrNotFound
}

// AddHighlight marks a passage of a library item.
func (s *Store) AddHighlight(ctx context.Context, itemID, text, note string) (models.Highlight, error) {
	if strings.TrimSpace(text) == "" {
		return models.Highlight{}, ErrInvalidInput
	}
	h := models.Highlight{
		ID:        "hl-" + s.newID(),
		Text:      text,
		Note:      note,
		Timestamp: s.now().UnixMilli(),
	}
	_, err := s.updateLibrary(ctx, itemID, func(it *models.LibraryItem) {
		it.Highlights = append(it.Highlights, h)
	})
	if err != nil {
		return models.Highlight{}, err
	}
	return h, nil
}

// SetLibraryStatus changes the reading state of a library item.
func (s *Store) SetLibraryStatus(ctx context.Context, itemID string, status models.LibraryStatus) (models.LibraryItem, error) {
	if !status.IsValid() {
		return models.LibraryItem{}, ErrInvalidStatus
	}
	return s.updateLibrary(ctx, itemID, func(it *models.LibraryItem) { it.Status = status })
}

func (s *Store) updateLibrary(ctx context.Context, id string, fn func(*models.LibraryItem)) (models.LibraryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.library(ctx)
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
			if err := s.put(ctx, KeyLibrary, items); err != nil {
				return models.LibraryItem{}, err
			}
			return items[i], nil
		}
	}
	return models.LibraryItem{}, ErrNotFound
}
