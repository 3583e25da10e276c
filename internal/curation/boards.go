package curation

import (
	"context"
	"strings"

	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/models"
)

// DefaultBoardName is suggested when nothing distinctive is selected.
const DefaultBoardName = "My Custom Feed"

// SuggestBoardName proposes a board name for f: persons joined with " & ",
// else tags joined with ", ", else DefaultBoardName.
func SuggestBoardName(f models.FilterState) string {
	if len(f.Persons) > 0 {
		return strings.Join(f.Persons, " & ")
	}
	if len(f.Tags) > 0 {
		return strings.Join(f.Tags, ", ")
	}
	return DefaultBoardName
}

// Boards returns the saved boards, newest first.
func (s *Store) Boards(ctx context.Context) []models.SavedBoard {
	return load(ctx, s, KeySavedBoards, fixtures.Boards)
}

// Board returns the board with id.
func (s *Store) Board(ctx context.Context, id string) (models.SavedBoard, error) {
	for _, b := range s.Boards(ctx) {
		if b.ID == id {
			return b, nil
		}
	}
	return models.SavedBoard{}, ErrNotFound
}

// SaveBoard snapshots f under name and prepends it to the board list. An
// empty name uses SuggestBoardName.
func (s *Store) SaveBoard(ctx context.Context, name string, f models.FilterState) (models.SavedBoard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = SuggestBoardName(f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := models.SavedBoard{
		ID:        s.newID(),
		Name:      name,
		Filters:   f.Clone(),
		CreatedAt: s.now().UnixMilli(),
	}
	boards := append([]models.SavedBoard{b}, s.Boards(ctx)...)
	if err := s.put(ctx, KeySavedBoards, boards); err != nil {
		return models.SavedBoard{}, err
	}
	s.logger.Info("board saved", "id", b.ID, "name", b.Name)
	return b, nil
}

// DeleteBoard removes the board with id.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := s.Boards(ctx)
	out := boards[:0]
	for _, b := range boards {
		if b.ID != id {
			out = append(out, b)
		}
	}
	if len(out) == len(boards) {
		return ErrNotFound
	}
	return s.put(ctx, KeySavedBoards, out)
}
