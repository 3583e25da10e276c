package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/ajitpratap0/lumina/internal/identity"
	"github.com/ajitpratap0/lumina/internal/models"
)

// identityETag derives a weak entity tag from the stored profiles, so writes
// made by another process sharing the store also change it.
func identityETag(profiles []models.IdentityProfile) (string, error) {
	data, err := json.Marshal(profiles)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return fmt.Sprintf(`W/"%x"`, h.Sum64()), nil
}

func (s *Server) handleListIdentities(w http.ResponseWriter, r *http.Request) {
	profiles := s.svc.Identities.List(r.Context())
	tag, err := identityETag(profiles)
	if err != nil {
		s.logger.Error("failed to tag identity list", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list identities")
		return
	}
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	s.writeJSON(w, http.StatusOK, profiles)
}

type identityMatch struct {
	Profile *models.IdentityProfile `json:"profile"`
	Found   bool                    `json:"found"`
}

func (s *Server) handleSearchIdentities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		s.writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	p, ok := s.svc.Identities.FindByText(r.Context(), q)
	s.writeJSON(w, http.StatusOK, identityMatch{Profile: p, Found: ok})
}

func (s *Server) handleExportIdentities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="lumina_graph_backup.json"`)
	if tag, err := identityETag(s.svc.Identities.List(r.Context())); err == nil {
		w.Header().Set("ETag", tag)
	}
	if err := s.svc.Identities.Export(r.Context(), w); err != nil {
		s.logger.Error("failed to export identity graph", "error", err)
	}
}

func (s *Server) handleImportIdentities(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := s.svc.Identities.Import(r.Context(), r.Body); err != nil {
		if errors.Is(err, identity.ErrNotObject) {
			s.writeError(w, http.StatusBadRequest, "document must be a JSON object keyed by identity id")
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.logger.Error("failed to import identity graph", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to import identity graph")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"profiles": len(s.svc.Identities.List(r.Context()))})
}

func (s *Server) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Identities.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "identity not found")
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutIdentity(w http.ResponseWriter, r *http.Request) {
	var p models.IdentityProfile
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := r.PathValue("id")
	if p.ID != "" && p.ID != id {
		s.writeError(w, http.StatusBadRequest, "body id does not match path")
		return
	}
	p.ID = id
	if err := s.svc.Identities.Put(r.Context(), p); err != nil {
		if errors.Is(err, identity.ErrInvalidProfile) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to save identity", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to save identity")
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.svc.Identities.Delete(r.Context(), id); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "identity not found")
			return
		}
		s.logger.Error("failed to delete identity", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete identity")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
