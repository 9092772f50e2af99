// Package http hosts clicktree sessions over HTTP. Reports the component would
// send to an embedding frame are streamed to browsers as server-sent events.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/dto"
	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/internal/presentation/graph"
	"github.com/aretw0/clicktree/internal/presentation/html"
	"github.com/aretw0/clicktree/internal/presentation/markdown"
	"github.com/aretw0/clicktree/internal/presentation/text"
	"github.com/aretw0/clicktree/internal/sanitize"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
	"github.com/aretw0/clicktree/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves one component per session.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	spec        *openapi3.T
	gatherer    prometheus.Gatherer
	sessionOpts []session.Option
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessionOptions is passed on to the session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewServer creates a server persisting sessions to store.
func NewServer(ctx context.Context, store ports.StateStore, opts ...Option) (*Server, error) {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	spec, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	s.spec = spec

	s.Streams = NewStreamManager(s.logger)
	sessionOpts := append([]session.Option{session.WithLogger(s.logger)}, s.sessionOpts...)
	sessionOpts = append(sessionOpts, session.WithHosts(s.Streams.Host))
	s.Sessions = session.NewManager(store, sessionOpts...)
	return s, nil
}

// Handler builds the router.
func (s *Server) Handler() (http.Handler, error) {
	validate, err := validateRequests(s.spec, s.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Get("/sessions", s.ListSessions)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/render", s.Render)
			r.Post("/toggle", s.Toggle)
			r.Post("/select", s.Select)
			r.Get("/view", s.View)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrOptionsNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrNotGroup):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoTree):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotLeaf),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug(op+" rejected", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err)
}

// readBody enforces the payload limit. The schema middleware may already have
// consumed and replaced the body; either way the bytes end up here.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	limit := int64(sanitize.MaxPayloadSize())
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sanitize.ErrPayloadTooLarge, err)
	}
	if err := sanitize.Payload(data); err != nil {
		return nil, err
	}
	return data, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := readBody(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sanitize.ErrPayloadTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "clicktree-http",
		"version":     strings.TrimSpace(clicktree.Version),
		"api_version": apiVersion,
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, r, "List", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

// SessionView is the body of GET /sessions/{id}.
type SessionView struct {
	SessionID string       `json:"session_id"`
	Collapsed []string     `json:"collapsedState"`
	Tree      *domain.Tree `json:"tree"`
}

// current loads an existing session's tree. Unknown sessions are not created.
func (s *Server) current(ctx context.Context, id string) (SessionView, error) {
	if _, err := s.Sessions.Load(ctx, id); err != nil {
		return SessionView{}, err
	}
	view := SessionView{SessionID: id}
	err := s.Sessions.View(ctx, id, func(_ context.Context, c *clicktree.Component) error {
		view.Collapsed = c.Collapsed()
		view.Tree = c.Tree()
		return nil
	})
	return view, err
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.current(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderResult is the body of POST /sessions/{id}/render.
type RenderResult struct {
	Rendered bool         `json:"rendered"`
	Height   int          `json:"height"`
	Tree     *domain.Tree `json:"tree,omitempty"`
}

// Render handles POST /sessions/{id}/render.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !decodeBody(w, r, &raw) {
		return
	}
	cfg, err := dto.DecodeConfig(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var res RenderResult
	err = s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, c *clicktree.Component) error {
		tree, err := c.Render(ctx, cfg)
		if tree != nil {
			res = RenderResult{Rendered: true, Height: tree.Height, Tree: tree}
		}
		return err
	})
	if err != nil {
		s.fail(w, r, "Render", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ToggleRequest is the body of POST /sessions/{id}/toggle.
type ToggleRequest struct {
	Key string `json:"key"`
}

// Toggle handles POST /sessions/{id}/toggle.
func (s *Server) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var collapsed bool
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, c *clicktree.Component) error {
		var err error
		collapsed, err = c.Toggle(ctx, req.Key)
		return err
	})
	if err != nil {
		s.fail(w, r, "Toggle", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": req.Key, "collapsed": collapsed})
}

// SelectRequest is the body of POST /sessions/{id}/select. Index wins over ID.
type SelectRequest struct {
	Index *int   `json:"index,omitempty"`
	ID    string `json:"id,omitempty"`
}

// Select handles POST /sessions/{id}/select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Index == nil && req.ID == "" {
		writeError(w, http.StatusBadRequest, errors.New("select needs index or id"))
		return
	}

	var sel domain.Selection
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, c *clicktree.Component) error {
		var err error
		if req.Index != nil {
			sel, err = c.Select(ctx, *req.Index)
		} else {
			sel, err = c.SelectByID(ctx, req.ID)
		}
		return err
	})
	if err != nil {
		s.fail(w, r, "Select", err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// View handles GET /sessions/{id}/view.
func (s *Server) View(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := s.current(r.Context(), id)
	if err != nil {
		s.fail(w, r, "View", err)
		return
	}
	if view.Tree == nil {
		s.fail(w, r, "View", domain.ErrNoTree)
		return
	}

	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		err = text.Render(w, view.Tree, text.Options{Profile: termenv.Ascii, Indices: true})
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, err = io.WriteString(w, markdown.Markdown(view.Tree))
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, err = io.WriteString(w, graph.GenerateMermaid(view.Tree, nil))
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = html.Page(w, html.PageData{Title: "clicktree: " + id, SessionID: id, Tree: view.Tree})
	}
	if err != nil {
		s.logger.Error("View write failed", "session_id", id, "err", err)
	}
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	sessionID := chi.URLParam(r, "id")
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Debug("SSE: subscribed", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				s.logger.Error("SSE: encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, data)
			flusher.Flush()
		}
	}
}
