package curation

import (
	"context"
	"strings"

	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/models"
)

const (
	newDraftTitle   = "Untitled Note"
	newDraftContent = "# New Note\n\nStart writing..."
)

// Drafts returns the notes, newest first.
func (s *Store) Drafts(ctx context.Context) []models.Draft {
	return load(ctx, s, KeyDrafts, func() []models.Draft { return fixtures.Drafts(s.now()) })
}

// CreateDraft prepends an empty idea note.
func (s *Store) CreateDraft(ctx context.Context) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Draft{
		ID:           "draft-" + s.newID(),
		Title:        newDraftTitle,
		Content:      newDraftContent,
		LastModified: s.now().UnixMilli(),
		Status:       models.DraftIdea,
		Type:         models.DraftWisdom,
		Tags:         []string{},
	}
	drafts := append([]models.Draft{d}, s.Drafts(ctx)...)
	if err := s.put(ctx, KeyDrafts, drafts); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// UpdateDraftContent replaces the content of a note and bumps its
// modification time.
func (s *Store) UpdateDraftContent(ctx context.Context, id, content string) (models.Draft, error) {
	return s.updateDraft(ctx, id, func(d *models.Draft) {
		d.Content = content
		d.LastModified = s.now().UnixMilli()
	})
}

// SetDraftStatus moves a note through the writing pipeline.
func (s *Store) SetDraftStatus(ctx context.Context, id string, status models.DraftStatus) (models.Draft, error) {
	if !status.IsValid() {
		return models.Draft{}, ErrInvalidStatus
	}
	return s.updateDraft(ctx, id, func(d *models.Draft) { d.Status = status })
}

func (s *Store) updateDraft(ctx context.Context, id string, fn func(*models.Draft)) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.Drafts(ctx)
	for i := range drafts {
		if drafts[i].ID == id {
			fn(&drafts[i])
			if err := s.put(ctx, KeyDrafts, drafts); err != nil {
				return models.Draft{}, err
			}
			return drafts[i], nil
		}
	}
	return models.Draft{}, ErrNotFound
}

// DeleteDraft removes a note.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := s.Drafts(ctx)
	out := drafts[:0]
	for _, d := range drafts {
		if d.ID != id {
			out = append(out, d)
		}
	}
	if len(out) == len(drafts) {
		return ErrNotFound
	}
	return s.put(ctx, KeyDrafts, out)
}

// Tasks returns the acquisition tasks.
func (s *Store) Tasks(ctx context.Context) []models.AcquisitionTask {
	return load(ctx, s, KeyTasks, fixtures.Tasks)
}

// AddTask appends t, assigning an id and defaulting the status to wishlist
// and the priority to medium.
func (s *Store) AddTask(ctx context.Context, t models.AcquisitionTask) (models.AcquisitionTask, error) {
	if strings.TrimSpace(t.ResourceName) == "" {
		return models.AcquisitionTask{}, ErrInvalidInput
	}
	if t.Status == "" {
		t.Status = models.AcquisitionWishlist
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if !t.Status.IsValid() {
		return models.AcquisitionTask{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = "task-" + s.newID()
	tasks := append(s.Tasks(ctx), t)
	if err := s.put(ctx, KeyTasks, tasks); err != nil {
		return models.AcquisitionTask{}, err
	}
	return t, nil
}

// SetTaskStatus moves a task to another column.
func (s *Store) SetTaskStatus(ctx context.Context, id string, status models.AcquisitionStatus) (models.AcquisitionTask, error) {
	if !status.IsValid() {
		return models.AcquisitionTask{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.Tasks(ctx)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Status = status
			if err := s.put(ctx, KeyTasks, tasks); err != nil {
				return models.AcquisitionTask{}, err
			}
			return tasks[i], nil
		}
	}
	return models.AcquisitionTask{}, ErrNotFound
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.Tasks(ctx)
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	if len(out) == len(tasks) {
		return ErrNotFound
	}
	return s.put(ctx, KeyTasks, out)
}
