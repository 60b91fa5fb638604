package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/executor"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunRequest is the body of POST /run.
// Definition is an inline definition document, decoded the same way as a JSON file.
type RunRequest struct {
	Program    string          `json:"program,omitempty"`
	Definition json.RawMessage `json:"definition,omitempty"`
	Tape       string          `json:"tape,omitempty"`
	MaxSteps   int             `json:"max_steps,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string        `json:"error"`
	State  domain.State  `json:"state,omitempty"`
	Symbol domain.Symbol `json:"symbol,omitempty"`
	Head   *int          `json:"head,omitempty"`
	Limit  int           `json:"limit,omitempty"`
}

// Server exposes an Executor over HTTP.
type Server struct {
	Executor *executor.Executor
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger configures request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the executor.
func NewHandler(exec *executor.Executor, opts ...Option) http.Handler {
	s := &Server{
		Executor: exec,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/programs", s.ListPrograms)
	r.Get("/programs/{name}", s.GetProgram)
	r.Get("/programs/{name}/graph", s.GetGraph)
	r.Get("/programs/{name}/trace", s.TraceProgram)
	r.Post("/run", s.Run)
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":      "turing",
		"version":   turing.Version,
		"max_steps": s.Executor.MaxSteps(),
	})
}

// ListPrograms handles GET /programs.
func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	list, err := s.Executor.List()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []executor.Summary{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

// GetProgram handles GET /programs/{name}.
func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	def, err := s.Executor.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// GetGraph handles GET /programs/{name}/graph and returns a Mermaid state diagram.
// With ?tape=... (or ?run=true for the default tape) the machine is run first and the
// diagram highlights the visited states and the state the run stopped in, even on a fault.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, err := s.Executor.Lookup(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	m, err := def.Build(nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	q := r.URL.Query()
	if q.Get("tape") != "" || q.Get("run") == "true" {
		req := executor.Request{Program: name, Tape: q.Get("tape")}
		if v := q.Get("max_steps"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "max_steps must be an integer"})
				return
			}
			req.MaxSteps = n
		}

		var rec graph.Recorder
		_, runErr := s.Executor.Trace(r.Context(), req, rec.Hooks())
		if overlay = rec.Overlay(); overlay == nil {
			s.writeError(w, runErr)
			return
		}
		if runErr != nil {
			s.Logger.Debug("GetGraph: run stopped early", "program", name, "err", runErr)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(graph.Diagram{
		Start:       m.InitialState(),
		Halting:     m.HaltingStates(),
		Blank:       m.Blank(),
		Transitions: m.Table().Transitions(),
	}, overlay)))
}

// Run handles POST /run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("Run: Invalid request body", "err", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req := executor.Request{
		Program:  body.Program,
		Tape:     body.Tape,
		MaxSteps: body.MaxSteps,
	}
	if len(body.Definition) > 0 {
		def, err := definition.Parse(body.Definition, definition.FormatJSON)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		req.Definition = def
	}

	res, err := s.Executor.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// TraceProgram handles GET /programs/{name}/trace?tape=...&max_steps=... (SSE).
// Every step is sent as a "step" event; the stream ends with a "halt" event carrying
// the result, or a "fault" event carrying the error.
func (s *Server) TraceProgram(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("TraceProgram: Streaming not supported")
		return
	}

	req := executor.Request{
		Program: chi.URLParam(r, "name"),
		Tape:    r.URL.Query().Get("tape"),
	}
	if v := r.URL.Query().Get("max_steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "max_steps must be an integer"})
			return
		}
		req.MaxSteps = n
	}

	// Check before committing to a stream so bad requests still get a status code.
	if err := executor.SanitizeTape(req.Tape); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := s.Executor.Resolve(req); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(event string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			s.Logger.Error("TraceProgram: encode failed", "event", event, "err", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			send("step", e)
		},
	}

	res, err := s.Executor.Trace(r.Context(), req, hooks)
	if err != nil {
		if r.Context().Err() != nil {
			return // client went away
		}
		_, body := errorResponse(err)
		send("fault", body)
		return
	}
	send("halt", res)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, body)
}

// errorResponse maps domain errors to HTTP statuses.
func errorResponse(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}

	var ute *domain.UndefinedTransitionError
	var sle *domain.StepLimitError
	switch {
	case errors.As(err, &ute):
		body.State, body.Symbol = ute.State, ute.Symbol
		head := ute.Head
		body.Head = &head
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &sle):
		body.State, body.Limit = sle.State, sle.Limit
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, domain.ErrProgramNotFound):
		return http.StatusNotFound, body
	case errors.Is(err, executor.ErrInvalidRequest):
		return http.StatusBadRequest, body
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, body
	default:
		return http.StatusInternalServerError, body
	}
}
