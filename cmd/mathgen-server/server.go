package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/njchilds90/gomathgen"
	"github.com/njchilds90/gomathgen/internal/config"
)

type server struct {
	cfg *config.Config

	// mu guards gen; *rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	gen *mathgen.Generator

	problems *problemStore
}

func newServer(cfg *config.Config, gen *mathgen.Generator) *server {
	return &server{cfg: cfg, gen: gen, problems: newProblemStore(cfg.Store.Capacity)}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.recovered("/tool", s.handleTool))
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/rand-problem", s.recovered("/rand-problem", s.handleRandProblem))
	mux.HandleFunc("/problem/", s.handleProblem)
	return mux
}

func (s *server) recovered(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", route, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		h(w, r)
	}
}

// POST /tool: handle a tool call
func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req mathgen.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return
	}
	if req.Tool == "simplify_fully" {
		if _, ok := req.Params["passes"]; !ok && req.Params != nil {
			req.Params["passes"] = float64(s.cfg.Simplifier.MaxPasses)
		}
	}

	resp := mathgen.HandleToolCall(req)
	if resp.Error != "" {
		log.Printf("tool %s: %s", req.Tool, resp.Error)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /schema: tool schema for agent registration
func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, mathgen.ToolSpec())
}

// GET /health: liveness check
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"problems": s.problems.Len(),
	})
}

// GET /rand-problem?level=N: generate, store and return a problem
func (s *server) handleRandProblem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	level := 1
	if q := r.URL.Query().Get("level"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("level must be an integer: %q", q))
			return
		}
		level = n
	}

	s.mu.Lock()
	p, err := s.gen.Problem(level)
	s.mu.Unlock()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mathgen.ErrInvalidLevel) {
			status = http.StatusBadRequest
		}
		log.Printf("rand-problem level %d: %v", level, err)
		writeError(w, status, err.Error())
		return
	}

	s.problems.Put(p)
	log.Printf("generated problem %s (level %d)", p.ID, p.Level)
	writeJSON(w, http.StatusOK, p)
}

// GET /problem/{id}: fetch a previously generated problem
func (s *server) handleProblem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/problem/")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid problem id %q", raw))
		return
	}
	p, ok := s.problems.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("problem %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
