package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ajitpratap0/lumina/internal/ai"
	"github.com/ajitpratap0/lumina/internal/curation"
	"github.com/ajitpratap0/lumina/internal/feed"
	"github.com/ajitpratap0/lumina/internal/identity"
	"github.com/ajitpratap0/lumina/internal/models"
)

const maxBodyBytes = 1 << 20 // 1 MB

// FeedRefresher runs one feed refresh.
type FeedRefresher interface {
	Refresh(ctx context.Context, f models.FilterState) feed.Result
}

// ThreadLoader loads the discussion context of one item.
type ThreadLoader interface {
	ThreadContext(ctx context.Context, permalink, knownBody string) models.ThreadContext
}

// ReaderChat answers questions about a library item.
type ReaderChat interface {
	Ask(ctx context.Context, item models.LibraryItem, history []ai.Message, question string) (string, error)
}

// Services are the components the API exposes.
type Services struct {
	Feed       FeedRefresher
	Threads    ThreadLoader
	Identities *identity.Graph
	Curation   *curation.Store
	Reader     ReaderChat
}

// Server is an HTTP API server that exposes the dashboard's operations.
type Server struct {
	svc       Services
	logger    *slog.Logger
	authToken string // empty = no auth required

	unsubscribe func()
}

// NewServer creates a new Server with the given dependencies. The server
// subscribes to identity graph changes made through this process and logs
// them; call Close to release the subscription.
func NewServer(svc Services, logger *slog.Logger, authToken string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, logger: logger, authToken: authToken}
	if svc.Identities != nil {
		s.unsubscribe = svc.Identities.Subscribe(func(snap identity.Snapshot) {
			s.logger.Info("identity graph changed", "profiles", len(snap))
		})
	}
	return s
}

// Close releases the identity graph subscription.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics: no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	mux.HandleFunc("POST /v1/feed", s.auth(s.handleFeed))
	mux.HandleFunc("GET /v1/thread", s.auth(s.handleThread))
	mux.HandleFunc("POST /v1/sources/parse", s.auth(s.handleParseSource))

	mux.HandleFunc("GET /v1/identities", s.auth(s.handleListIdentities))
	mux.HandleFunc("GET /v1/identities/search", s.auth(s.handleSearchIdentities))
	mux.HandleFunc("GET /v1/identities/export", s.auth(s.handleExportIdentities))
	mux.HandleFunc("POST /v1/identities/import", s.auth(s.handleImportIdentities))
	mux.HandleFunc("GET /v1/identities/{id}", s.auth(s.handleGetIdentity))
	mux.HandleFunc("PUT /v1/identities/{id}", s.auth(s.handlePutIdentity))
	mux.HandleFunc("DELETE /v1/identities/{id}", s.auth(s.handleDeleteIdentity))

	mux.HandleFunc("GET /v1/boards", s.auth(s.handleListBoards))
	mux.HandleFunc("POST /v1/boards", s.auth(s.handleSaveBoard))
	mux.HandleFunc("GET /v1/boards/{id}", s.auth(s.handleGetBoard))
	mux.HandleFunc("DELETE /v1/boards/{id}", s.auth(s.handleDeleteBoard))

	mux.HandleFunc("GET /v1/tags", s.auth(s.handleListTags))
	mux.HandleFunc("POST /v1/tags", s.auth(s.handleFollowTag))
	mux.HandleFunc("DELETE /v1/tags/{tag}", s.auth(s.handleUnfollowTag))
	mux.HandleFunc("GET /v1/theme", s.auth(s.handleGetTheme))
	mux.HandleFunc("PUT /v1/theme", s.auth(s.handleSetTheme))

	mux.HandleFunc("GET /v1/drafts", s.auth(s.handleListDrafts))
	mux.HandleFunc("POST /v1/drafts", s.auth(s.handleCreateDraft))
	mux.HandleFunc("PUT /v1/drafts/{id}", s.auth(s.handleUpdateDraft))
	mux.HandleFunc("PUT /v1/drafts/{id}/status", s.auth(s.handleSetDraftStatus))
	mux.HandleFunc("DELETE /v1/drafts/{id}", s.auth(s.handleDeleteDraft))

	mux.HandleFunc("GET /v1/tasks", s.auth(s.handleListTasks))
	mux.HandleFunc("POST /v1/tasks", s.auth(s.handleAddTask))
	mux.HandleFunc("PUT /v1/tasks/{id}/status", s.auth(s.handleSetTaskStatus))
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.auth(s.handleDeleteTask))

	mux.HandleFunc("GET /v1/library", s.auth(s.handleListLibrary))
	mux.HandleFunc("GET /v1/library/{id}", s.auth(s.handleGetLibraryItem))
	mux.HandleFunc("POST /v1/library/{id}/highlights", s.auth(s.handleAddHighlight))
	mux.HandleFunc("PUT /v1/library/{id}/status", s.auth(s.handleSetLibraryStatus))
	mux.HandleFunc("POST /v1/library/{id}/chat", s.auth(s.handleChat))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- helpers ---

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
