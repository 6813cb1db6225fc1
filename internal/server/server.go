// Package server exposes the proof search over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/alvmarrod/hl3-confirmer/internal/analyzer"
	"github.com/alvmarrod/hl3-confirmer/internal/config"
	"github.com/alvmarrod/hl3-confirmer/internal/metrics"
	"github.com/alvmarrod/hl3-confirmer/internal/search"
	"github.com/alvmarrod/hl3-confirmer/internal/storage"
)

// Analyzer produces metrics for a question.
type Analyzer interface {
	Analyze(ctx context.Context, message string) analyzer.Result
}

// ProofStore records answered questions.
type ProofStore interface {
	SaveProof(p *storage.Proof) (int, error)
	GetProof(proofID int) (*storage.Proof, error)
	RecentProofs(limit int) ([]*storage.Proof, error)
}

// Server wires the analyzer, the search core and the proof history
type Server struct {
	cfg      *config.Config
	analyzer Analyzer
	store    ProofStore
	tracker  *metrics.Tracker
	router   chi.Router
}

const apiDocs = `HL3 confirmer API

GET /proof?question=<text>[&mode=bfs|dfs]
    Proves the question with arithmetic over its text metrics.
    Responds with a JSON array of steps; empty when no proof exists.
GET /proofs[?limit=N]
    Recently answered questions, newest first.
GET /proofs/{id}
    One answered question.
GET /stats
    Service counters.
`

// New creates a server. store may be nil to disable history.
func New(cfg *config.Config, an Analyzer, store ProofStore, tracker *metrics.Tracker) *Server {
	s := &Server{
		cfg:      cfg,
		analyzer: an,
		store:    store,
		tracker:  tracker,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDocs)
	r.Get("/proof", s.handleProof)
	r.Get("/proofs", s.handleRecentProofs)
	r.Get("/proofs/{id}", s.handleGetProof)
	r.Get("/stats", s.handleStats)

	s.router = r
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Prove analyzes question, searches for a proof in mode and records the outcome.
// Steps are human readable (underscores become spaces) and end with the
// configured trailer when a proof was found.
func (s *Server) Prove(ctx context.Context, question string, mode search.Mode) *storage.Proof {
	s.tracker.IncrementProofsRequested()

	analysis := s.analyzer.Analyze(ctx, question)
	if analysis.Fallback {
		s.tracker.IncrementAnalyzerFallbacks()
	}

	opts := []search.Option{search.WithMode(mode)}
	if s.cfg.StrictFrontier {
		opts = append(opts, search.WithStrictFrontier())
	}

	start := time.Now()
	res := search.Run(analysis.Metrics, s.cfg.Goal, opts...)
	elapsed := time.Since(start)
	s.tracker.RecordSearch(res, elapsed)

	logrus.Infof("Search %s for %q: %s after %d expansions (%v)",
		mode, question, res.State, res.Expanded, elapsed)

	proof := &storage.Proof{
		Question:  question,
		Mode:      mode.String(),
		Goal:      s.cfg.Goal,
		Steps:     Humanize(res.Steps, s.cfg.Trailer),
		Found:     res.Found(),
		Fallback:  analysis.Fallback,
		CreatedAt: time.Now(),
	}

	if s.store != nil {
		id, err := s.store.SaveProof(proof)
		if err != nil {
			logrus.Warnf("Failed to record proof: %v", err)
		} else {
			proof.ProofID = id
		}
	}

	return proof
}

// Humanize replaces underscores with spaces and appends trailer to a
// non-empty step list.
func Humanize(steps []string, trailer string) []string {
	out := make([]string, 0, len(steps)+1)
	for _, step := range steps {
		out = append(out, strings.ReplaceAll(step, "_", " "))
	}
	if len(out) > 0 && trailer != "" {
		out = append(out, trailer)
	}
	return out
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(apiDocs))
}

func (s *Server) handleProof(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("question") {
		writeError(w, http.StatusBadRequest, errors.New("question is required"))
		return
	}

	mode := s.cfg.SearchMode()
	if raw := query.Get("mode"); raw != "" {
		parsed, err := search.ParseMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		mode = parsed
	}

	proof := s.Prove(r.Context(), query.Get("question"), mode)
	writeJSON(w, http.StatusOK, proof.Steps)
}

func (s *Server) handleRecentProofs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []*storage.Proof{})
		return
	}

	limit := s.cfg.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		if n < limit {
			limit = n
		}
	}

	proofs, err := s.store.RecentProofs(limit)
	if err != nil {
		logrus.Errorf("Failed to load proofs: %v", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load proofs"))
		return
	}
	writeJSON(w, http.StatusOK, proofs)
}

func (s *Server) handleGetProof(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("id must be an integer"))
		return
	}
	if s.store == nil {
		writeError(w, http.StatusNotFound, errors.New("proof not found"))
		return
	}

	proof, err := s.store.GetProof(id)
	if err != nil {
		logrus.Errorf("Failed to load proof %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load proof"))
		return
	}
	if proof == nil {
		writeError(w, http.StatusNotFound, errors.New("proof not found"))
		return
	}
	writeJSON(w, http.StatusOK, proof)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.GetSnapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// requestLogger logs every request through logrus.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Info("Handled request")
	})
}
