package api

import (
	"net/http"

	"github.com/ajitpratap0/lumina/internal/models"
)

type saveBoardRequest struct {
	Name    string             `json:"name"`
	Filters models.FilterState `json:"filters"`
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Curation.Boards(r.Context()))
}

func (s *Server) handleSaveBoard(w http.ResponseWriter, r *http.Request) {
	var req saveBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b, err := s.svc.Curation.SaveBoard(r.Context(), req.Name, req.Filters)
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.Curation.Board(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Curation.DeleteBoard(r.Context(), r.PathValue("id")); err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Curation.FollowedTags(r.Context()))
}

func (s *Server) handleFollowTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tags, err := s.svc.Curation.FollowTag(r.Context(), req.Tag)
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleUnfollowTag(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.Curation.UnfollowTag(r.Context(), r.PathValue("tag"))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

type themeBody struct {
	Theme models.Theme `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, themeBody{Theme: s.svc.Curation.Theme(r.Context())})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.Curation.SetTheme(r.Context(), req.Theme); err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, req)
}

// --- drafts ---

type draftContentRequest struct {
	Content string `json:"content"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Curation.Drafts(r.Context()))
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Curation.CreateDraft(r.Context())
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req draftContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := s.svc.Curation.UpdateDraftContent(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSetDraftStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := s.svc.Curation.SetDraftStatus(r.Context(), r.PathValue("id"), models.DraftStatus(req.Status))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Curation.DeleteDraft(r.Context(), r.PathValue("id")); err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- acquisition tasks ---

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Curation.Tasks(r.Context()))
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var t models.AcquisitionTask
	if err := decodeJSON(w, r, &t); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	added, err := s.svc.Curation.AddTask(r.Context(), t)
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.svc.Curation.SetTaskStatus(r.Context(), r.PathValue("id"), models.AcquisitionStatus(req.Status))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Curation.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- library ---

type highlightRequest struct {
	Text string `json:"text"`
	Note string `json:"note"`
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	status := models.LibraryStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		s.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.Curation.Library(r.Context(), status))
}

func (s *Server) handleGetLibraryItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.svc.Curation.LibraryItem(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleAddHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h, err := s.svc.Curation.AddHighlight(r.Context(), r.PathValue("id"), req.Text, req.Note)
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleSetLibraryStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	it, err := s.svc.Curation.SetLibraryStatus(r.Context(), r.PathValue("id"), models.LibraryStatus(req.Status))
	if err != nil {
		s.writeCurationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, it)
}
