package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ajitpratap0/lumina/internal/ai"
	"github.com/ajitpratap0/lumina/internal/curation"
	"github.com/ajitpratap0/lumina/internal/feed"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/source"
)

// feedResponse is returned by POST /v1/feed. Retry is set when nothing was
// found so the client can offer to refresh.
type feedResponse struct {
	Items  []models.FeedItem `json:"items"`
	Origin feed.Origin       `json:"origin"`
	Retry  bool              `json:"retry,omitempty"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	f := models.InitialFilters()
	if err := decodeJSON(w, r, &f); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if f.SortBy == "" {
		f.SortBy = models.SortRandom
	}
	if !f.SortBy.IsValid() {
		s.writeError(w, http.StatusBadRequest, "invalid sortBy")
		return
	}

	res := s.svc.Feed.Refresh(r.Context(), f)
	s.writeJSON(w, http.StatusOK, feedResponse{
		Items:  res.Items,
		Origin: res.Origin,
		Retry:  res.Origin == feed.OriginEmpty,
	})
}

func (s *Server) handleThread(w http.ResponseWriter, r *http.Request) {
	permalink := strings.TrimSpace(r.URL.Query().Get("permalink"))
	if permalink == "" {
		s.writeError(w, http.StatusBadRequest, "permalink is required")
		return
	}
	body := r.URL.Query().Get("body")
	s.writeJSON(w, http.StatusOK, s.svc.Threads.ThreadContext(r.Context(), permalink, body))
}

type parseSourceRequest struct {
	Input string `json:"input"`
}

type parseSourceResponse struct {
	Source *source.Descriptor `json:"source"`
	Valid  bool               `json:"valid"`
}

func (s *Server) handleParseSource(w http.ResponseWriter, r *http.Request) {
	var req parseSourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, ok := source.Parse(req.Input)
	if !ok {
		s.writeJSON(w, http.StatusOK, parseSourceResponse{})
		return
	}
	s.writeJSON(w, http.StatusOK, parseSourceResponse{Source: &d, Valid: true})
}

type chatRequest struct {
	History  []ai.Message `json:"history"`
	Question string       `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	item, err := s.svc.Curation.LibraryItem(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}

	answer, err := s.svc.Reader.Ask(r.Context(), item, req.History, req.Question)
	switch {
	case errors.Is(err, ai.ErrUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, "AI provider not configured")
		return
	case err != nil:
		s.logger.Error("reader chat failed", "item", item.ID, "error", err)
		s.writeError(w, http.StatusBadGateway, "Error connecting to AI.")
		return
	}
	s.writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

// writeCurationError maps curation sentinel errors to status codes.
func (s *Server) writeCurationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, curation.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, curation.ErrInvalidTheme), errors.Is(err, curation.ErrInvalidStatus),
		errors.Is(err, curation.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("curation store failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "storage error")
	}
}
