package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tetris-arcade/internal/config"
	"github.com/vovakirdan/tetris-arcade/internal/games/tetris"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
)

// Handler serves the HTTP game API.
type Handler struct {
	sessions *Manager
	store    *storage.Store
	logger   *log.Logger
}

// NewHandler creates a Handler over a session manager and an optional store.
func NewHandler(sessions *Manager, store *storage.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{sessions: sessions, store: store, logger: logger}
}

// Routes configures all routes and returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/commands/{command}", h.Command)
			r.Post("/{id}/format", h.SetFormat)
			r.Get("/{id}/events", h.Events)
		})

		r.Get("/commands", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string][]string{"commands": CommandNames()})
		})
		r.Get("/scores", h.Scores)
		r.Get("/runs/recent", h.RecentRuns)
		r.Get("/stats", h.Stats)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

type formatRequest struct {
	Format string `json:"format"`
}

type sessionResponse struct {
	ID       string          `json:"id"`
	Snapshot tetris.Snapshot `json:"snapshot"`
}

type commandResponse struct {
	Applied  bool            `json:"applied"`
	Snapshot tetris.Snapshot `json:"snapshot"`
}

// CreateSession handles POST /api/sessions. An empty body selects the
// standard board.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id, snap := h.sessions.Create(config.ParseGridFormat(req.Format))
	respondJSON(w, http.StatusCreated, sessionResponse{ID: id, Snapshot: snap})
}

// GetSession handles GET /api/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{ID: id, Snapshot: snap})
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		h.respondSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Command handles POST /api/sessions/{id}/commands/{command}.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	applied, snap, err := h.sessions.Command(chi.URLParam(r, "id"), chi.URLParam(r, "command"))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, commandResponse{Applied: applied, Snapshot: snap})
}

// SetFormat handles POST /api/sessions/{id}/format.
func (h *Handler) SetFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	applied, snap, err := h.sessions.SetFormat(chi.URLParam(r, "id"), config.ParseGridFormat(req.Format))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, commandResponse{Applied: applied, Snapshot: snap})
}

// Events handles GET /api/sessions/{id}/events. Events are drained, so each
// one is returned once.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.sessions.Events(chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]EventView{"events": events})
}

// Scores handles GET /api/scores?format=&limit=.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage disabled")
		return
	}

	limit, ok := parseLimit(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	runs, err := h.store.TopRuns(formatParam(r), limit)
	if err != nil {
		h.logger.Error("failed to load scores", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if runs == nil {
		runs = []storage.RunRecord{}
	}
	respondJSON(w, http.StatusOK, map[string][]storage.RunRecord{"scores": runs})
}

// RecentRuns handles GET /api/runs/recent?limit=.
func (h *Handler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage disabled")
		return
	}

	limit, ok := parseLimit(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	runs, err := h.store.RecentRuns(limit)
	if err != nil {
		h.logger.Error("failed to load recent runs", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load runs")
		return
	}
	if runs == nil {
		runs = []storage.RunRecord{}
	}
	respondJSON(w, http.StatusOK, map[string][]storage.RunRecord{"runs": runs})
}

// Stats handles GET /api/stats. Without a format it returns every format
// keyed by name.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage disabled")
		return
	}

	if format := formatParam(r); format != "" {
		st, err := h.store.Stats(format)
		if err != nil {
			h.logger.Error("failed to load stats", "format", format, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}
		respondJSON(w, http.StatusOK, st)
		return
	}

	all, err := h.store.AllStats()
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, map[string]map[string]*storage.FormatStats{"stats": all})
}

// parseLimit reads the limit query parameter, capped at maxScoreLimit.
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultScoreLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, maxScoreLimit), true
}

// formatParam reads the format query parameter; unknown formats map to standard.
func formatParam(r *http.Request) string {
	format := r.URL.Query().Get("format")
	if format == "" {
		return ""
	}
	return string(config.ParseGridFormat(format))
}

func (h *Handler) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, ErrUnknownCommand):
		respondError(w, http.StatusBadRequest, "unknown command")
	default:
		h.logger.Error("session request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// requestLogger logs each request at debug level through the charm logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("encoding JSON", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
