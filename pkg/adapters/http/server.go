package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/runner"
	"github.com/aretw0/stencil/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Catalog exposes the tools available to remote sessions.
type Catalog interface {
	Tools() []string
	Describe(id string) (string, error)
	Definition(id string) (*domain.Tool, error)
}

// Server serves remote sketch sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Catalog  Catalog
	Streams  *StreamManager
	Logger   *slog.Logger
	Metrics  http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates the HTTP handler for the session API.
func NewHandler(sessions *session.Manager, catalog Catalog, opts ...Option) http.Handler {
	s := &Server{
		Sessions: sessions,
		Catalog:  catalog,
		Streams:  NewStreamManager(),
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.Logger
	return s.Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	r.Route("/tools", func(r chi.Router) {
		r.Get("/", s.ListTools)
		r.Get("/{tool}", s.GetTool)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/document", s.GetDocument)
			r.Get("/stream", s.Stream)
			r.Post("/invoke", s.Invoke)
			r.Post("/events", s.Events)
			r.Post("/execute", s.Execute)
			r.Post("/select", s.Select)
			r.Post("/cancel", s.Cancel)
		})
	})
	return r
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

// ToolSummary is one entry of GET /tools.
type ToolSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Doc   string `json:"doc,omitempty"`
}

// StateSummary describes one state of a tool.
type StateSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Kinds       string `json:"kinds,omitempty"`
	Property    string `json:"property,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
}

// ToolDetail is the body of GET /tools/{tool}.
type ToolDetail struct {
	ToolSummary
	Description string         `json:"description"`
	States      []StateSummary `json:"states"`
}

// ListTools handles GET /tools.
func (s *Server) ListTools(w http.ResponseWriter, r *http.Request) {
	ids := s.Catalog.Tools()
	out := make([]ToolSummary, 0, len(ids))
	for _, id := range ids {
		t, err := s.Catalog.Definition(id)
		if err != nil {
			s.fail(w, err)
			return
		}
		out = append(out, ToolSummary{ID: id, Label: t.DisplayName(), Doc: t.Doc})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTool handles GET /tools/{tool}.
func (s *Server) GetTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tool")
	t, err := s.Catalog.Definition(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	desc, err := s.Catalog.Describe(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	detail := ToolDetail{
		ToolSummary: ToolSummary{ID: id, Label: t.DisplayName(), Doc: t.Doc},
		Description: desc,
	}
	for _, st := range t.Table.States() {
		sum := StateSummary{
			Name:        st.Name,
			Description: st.Description.Resolve(nil),
			Property:    st.Property.Resolve(nil),
			Optional:    st.Optional,
		}
		if st.HasPointer() {
			sum.Kinds = st.Pointer.String()
		}
		detail.States = append(detail.States, sum)
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	sort.Strings(ids)
	writeJSON(w, http.StatusOK, ids)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.Sessions.Info(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GetDocument handles GET /sessions/{id}/document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Sessions.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvokeRequest is the body of POST /sessions/{id}/invoke.
type InvokeRequest struct {
	Tool  string         `json:"tool"`
	Event map[string]any `json:"event"`
}

// Invoke handles POST /sessions/{id}/invoke.
func (s *Server) Invoke(w http.ResponseWriter, r *http.Request) {
	var body InvokeRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Tool == "" {
		s.badRequest(w, errors.New("missing tool"))
		return
	}
	ev := domain.Event{}
	if body.Event != nil {
		cmds, err := runner.Decode(body.Event)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		if len(cmds) != 1 || cmds[0].Kind != runner.CommandEvent {
			s.badRequest(w, errors.New("event must be a single input event"))
			return
		}
		ev = cmds[0].Event
	}

	id := chi.URLParam(r, "id")
	rep, err := s.Sessions.Invoke(r.Context(), id, body.Tool, ev)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.publish(id, rep)
	writeJSON(w, http.StatusOK, rep)
}

// Events handles POST /sessions/{id}/events. The body is one input command,
// which may expand to several events ("type"); one report is returned per event.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !s.decode(w, r, &body) {
		return
	}
	cmds, err := runner.Decode(body)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	reports := make([]domain.Report, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Kind != runner.CommandEvent {
			s.badRequest(w, fmt.Errorf("%q is not an input event", body["cmd"]))
			return
		}
		rep, err := s.Sessions.HandleEvent(r.Context(), id, cmd.Event)
		if err != nil {
			s.fail(w, err)
			return
		}
		s.publish(id, rep)
		reports = append(reports, rep)
	}
	writeJSON(w, http.StatusOK, reports)
}

// Execute handles POST /sessions/{id}/execute.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !s.decode(w, r, &body) {
		return
	}
	body["cmd"] = "exec"
	cmds, err := runner.Decode(body)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	rep, err := s.Sessions.Execute(r.Context(), id, cmds[0].Tool, cmds[0].Values)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.publish(id, rep)
	writeJSON(w, http.StatusOK, rep)
}

// Select handles POST /sessions/{id}/select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !s.decode(w, r, &body) {
		return
	}
	body["cmd"] = "select"
	cmds, err := runner.Decode(body)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	if err := s.Sessions.Select(r.Context(), chi.URLParam(r, "id"), cmds[0].Pointer); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /sessions/{id}/cancel.
func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := s.Sessions.Cancel(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.publish(id, rep)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) publish(id string, rep domain.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		s.Logger.Error("report encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(id, string(data))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.badRequest(w, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.Logger.Warn("bad request", "err", err)
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var cfgErr *domain.ToolConfigError
	switch {
	case errors.Is(err, domain.ErrToolNotFound), errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotRunning), errors.Is(err, session.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrIncomplete):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &cfgErr), errors.Is(err, domain.ErrUnknownElement):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
