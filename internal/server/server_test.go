package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvmarrod/hl3-confirmer/internal/analyzer"
	"github.com/alvmarrod/hl3-confirmer/internal/config"
	"github.com/alvmarrod/hl3-confirmer/internal/metrics"
	"github.com/alvmarrod/hl3-confirmer/internal/search"
	"github.com/alvmarrod/hl3-confirmer/internal/storage"
)

type stubAnalyzer struct {
	metrics  []search.Metric
	fallback bool
}

func (a stubAnalyzer) Analyze(_ context.Context, _ string) analyzer.Result {
	return analyzer.Result{Metrics: a.metrics, Fallback: a.fallback}
}

type memStore struct {
	mu     sync.Mutex
	proofs []*storage.Proof
	err    error
}

func (m *memStore) SaveProof(p *storage.Proof) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	cp := *p
	cp.ProofID = len(m.proofs) + 1
	m.proofs = append(m.proofs, &cp)
	return cp.ProofID, nil
}

func (m *memStore) GetProof(id int) (*storage.Proof, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if id < 1 || id > len(m.proofs) {
		return nil, nil
	}
	return m.proofs[id-1], nil
}

func (m *memStore) RecentProofs(limit int) ([]*storage.Proof, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*storage.Proof{}
	for i := len(m.proofs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.proofs[i])
	}
	return out, nil
}

func hl3Metrics(spaces float64) []search.Metric {
	return []search.Metric{
		{Name: "word_count", Value: 4},
		{Name: "character_count", Value: 18},
		{Name: "spaces", Value: spaces},
	}
}

func newTestServer(an Analyzer, store ProofStore) (*Server, *metrics.Tracker) {
	tracker := metrics.NewTracker()
	return New(config.Default(), an, store, tracker), tracker
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeSteps(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var steps []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &steps))
	return steps
}

func TestProof_DepthFirstByDefault(t *testing.T) {
	store := &memStore{}
	srv, tracker := newTestServer(stubAnalyzer{metrics: hl3Metrics(2)}, store)

	rec := get(t, srv.Handler(), "/proof?question=Is+HL3+coming+out%3F")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{
		"4 word count",
		"4 * 2 spaces = 8",
		"8 * 4 word count = 32",
		"32 reversed = 23",
		"23 mod 4 word count = 3",
		"HL3 confirmed.",
	}, decodeSteps(t, rec))

	require.Len(t, store.proofs, 1)
	assert.Equal(t, "Is HL3 coming out?", store.proofs[0].Question)
	assert.Equal(t, "depth-first", store.proofs[0].Mode)
	assert.True(t, store.proofs[0].Found)

	snap := tracker.GetSnapshot()
	assert.Equal(t, 1, snap.ProofsRequested)
	assert.Equal(t, 1, snap.ProofsFound)
}

func TestProof_ModeOverride(t *testing.T) {
	srv, _ := newTestServer(stubAnalyzer{metrics: hl3Metrics(2)}, &memStore{})

	rec := get(t, srv.Handler(), "/proof?question=x&mode=bfs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{
		"18 character count",
		"18 / 4 word count = 4.5",
		"4.5 * 2 spaces = 9",
		"9 + 18 character count = 27",
		"27 mod 4 word count = 3",
		"HL3 confirmed.",
	}, decodeSteps(t, rec))

	rec = get(t, srv.Handler(), "/proof?question=x&mode=astar")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProof_NoProofHasNoTrailer(t *testing.T) {
	an := stubAnalyzer{metrics: []search.Metric{{Name: "a", Value: 1}}, fallback: true}
	srv, tracker := newTestServer(an, &memStore{})

	rec := get(t, srv.Handler(), "/proof?question=a")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	snap := tracker.GetSnapshot()
	assert.Equal(t, 1, snap.ProofsExhausted)
	assert.Equal(t, 1, snap.AnalyzerFallbacks)
}

func TestProof_MissingQuestion(t *testing.T) {
	srv, _ := newTestServer(stubAnalyzer{}, &memStore{})

	rec := get(t, srv.Handler(), "/proof")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"question is required"}`, rec.Body.String())
}

func TestProof_StoreFailureStillAnswers(t *testing.T) {
	srv, _ := newTestServer(stubAnalyzer{metrics: hl3Metrics(3)}, &memStore{err: errors.New("disk full")})

	rec := get(t, srv.Handler(), "/proof?question=q")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"3 spaces", "HL3 confirmed."}, decodeSteps(t, rec))
}

func TestProofs_History(t *testing.T) {
	store := &memStore{}
	srv, _ := newTestServer(stubAnalyzer{metrics: hl3Metrics(3)}, store)
	h := srv.Handler()

	for _, q := range []string{"one", "two", "three"} {
		require.Equal(t, http.StatusOK, get(t, h, "/proof?question="+q).Code)
	}

	rec := get(t, h, "/proofs?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var recent []storage.Proof
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Question)
	assert.Equal(t, "two", recent[1].Question)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/proofs?limit=zero").Code)

	rec = get(t, h, "/proofs/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var one storage.Proof
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "one", one.Question)
	assert.Equal(t, []string{"3 spaces", "HL3 confirmed."}, one.Steps)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/proofs/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/proofs/abc").Code)
}

func TestDocsAndStats(t *testing.T) {
	srv, _ := newTestServer(stubAnalyzer{}, nil)
	h := srv.Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GET /proof?question=")

	rec = get(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap storage.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Zero(t, snap.ProofsRequested)

	rec = get(t, h, "/proofs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, []string{"3 spaces", "done"}, Humanize([]string{"3 spaces"}, "done"))
	assert.Equal(t, []string{"5 word count"}, Humanize([]string{"5 word_count"}, ""))
	assert.Equal(t, []string{}, Humanize(nil, "done"))
}
