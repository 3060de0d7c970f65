// Package http hosts a machine over HTTP. The engine itself is strictly
// single-threaded; the server wraps every request in one mutex, which is
// exactly the external synchronization the core asks hosts to provide.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ratchet-dev/ratchet"
	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Server exposes spawn, send, run, stats and graph for one machine.
type Server struct {
	mu      sync.Mutex
	machine *ratchet.Machine
	handles map[int64]domain.Automaton
	nextID  int64

	stateNames []string
	msgNames   []string
	log        *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithNames sets the state and message name tables used by the graph
// endpoint.
func WithNames(stateNames, msgNames []string) Option {
	return func(s *Server) {
		s.stateNames = stateNames
		s.msgNames = msgNames
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewServer wraps a machine. The server assumes it is the only driver of the
// machine from then on.
func NewServer(m *ratchet.Machine, opts ...Option) *Server {
	s := &Server{
		machine: m,
		handles: make(map[int64]domain.Automaton),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/automatons", func(r chi.Router) {
		r.Post("/", s.spawn)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Delete("/", s.destroy)
			r.Post("/messages", s.send)
		})
	})
	r.Post("/run", s.run)
	r.Get("/stats", s.stats)
	r.Get("/graph", s.graph)

	return r
}

type spawnRequest struct {
	State   domain.StateID `json:"state"`
	Payload any            `json:"payload,omitempty"`
}

type automatonResponse struct {
	ID      int64          `json:"id"`
	State   domain.StateID `json:"state"`
	Status  string         `json:"status"`
	Pending int            `json:"pending"`
}

func (s *Server) spawn(w http.ResponseWriter, r *http.Request) {
	var body spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.log.Warn("spawn: invalid request body", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID + 1
	opts := []ratchet.SpawnOption{
		// Drop the handle as soon as the automaton dies, whichever side
		// initiates it, so completions do not leak map entries.
		ratchet.WithDestroyHook(func(any) { delete(s.handles, id) }),
	}
	if body.Payload != nil {
		opts = append(opts, ratchet.WithPayload(body.Payload))
	}

	a, err := s.machine.Spawn(body.State, opts...)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownState):
			http.Error(w, fmt.Sprintf("Spawn error: %v", err), http.StatusBadRequest)
		case errors.Is(err, domain.ErrClosed):
			http.Error(w, "Machine is closed", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Spawn error: %v", err), http.StatusInternalServerError)
		}
		s.log.Warn("spawn failed", "error", err, "state", body.State)
		return
	}
	s.nextID = id
	s.handles[id] = a
	s.log.Debug("spawned automaton", "id", id, "state", body.State)

	writeJSON(w, http.StatusCreated, automatonResponse{
		ID:      id,
		State:   a.Current(),
		Status:  a.Status().String(),
		Pending: a.Pending(),
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, a, ok := s.handle(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, automatonResponse{
		ID:      id,
		State:   a.Current(),
		Status:  a.Status().String(),
		Pending: a.Pending(),
	})
}

type sendRequest struct {
	Msg     domain.MsgType `json:"msg"`
	Payload any            `json:"payload,omitempty"`
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var body sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.log.Warn("send: invalid request body", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, a, ok := s.handle(w, r)
	if !ok {
		return
	}
	// A destroyed automaton cannot be reached here: its destroy hook removed
	// the handle, so the lookup above already answered 404.
	if err := a.Send(body.Msg, body.Payload); err != nil {
		http.Error(w, fmt.Sprintf("Send error: %v", err), http.StatusInternalServerError)
		s.log.Warn("send failed", "error", err, "id", id)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"pending": a.Pending()})
}

func (s *Server) destroy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, a, ok := s.handle(w, r)
	if !ok {
		return
	}
	a.Destroy()
	s.log.Debug("destroyed automaton", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

type runRequest struct {
	MaxPasses int `json:"max_passes"`
}

type runResponse struct {
	More   bool         `json:"more"`
	Passes int          `json:"passes"`
	Stats  domain.Stats `json:"stats"`
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	// The body is optional: absent or max_passes <= 0 means a single pass.
	var body runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.log.Warn("run: invalid request body", "error", err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		resp runResponse
		err  error
	)
	if body.MaxPasses > 0 {
		resp.Passes, err = s.machine.RunToIdle(body.MaxPasses)
		if errors.Is(err, domain.ErrPendingWork) {
			// Budget exhausted is not a dispatch fault; report it as work
			// remaining.
			resp.More = true
			err = nil
		}
	} else {
		resp.More, err = s.machine.Run()
		resp.Passes = 1
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Run error: %v", err), http.StatusInternalServerError)
		s.log.Error("run failed", "error", err)
		return
	}

	resp.Stats = s.machine.Stats()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.machine.Stats())
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dot := s.machine.Graph(s.stateNames, s.msgNames)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	fmt.Fprint(w, dot)
}

// handle resolves the {id} path parameter. Callers must hold s.mu.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) (int64, domain.Automaton, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid automaton id", http.StatusBadRequest)
		return 0, nil, false
	}
	a, ok := s.handles[id]
	if !ok {
		http.Error(w, "Automaton not found", http.StatusNotFound)
		return 0, nil, false
	}
	return id, a, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
