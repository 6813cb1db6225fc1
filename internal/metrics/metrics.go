package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
	"github.com/alvmarrod/hl3-confirmer/internal/storage"
)

// Tracker holds and manages service metrics
type Tracker struct {
	mu                sync.Mutex
	data              storage.Metrics
	totalSearchTimeUs int64
	searchCount       int
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: storage.Metrics{
			StartTime: time.Now(),
		},
	}
}

// IncrementProofsRequested increments the requested proofs counter
func (t *Tracker) IncrementProofsRequested() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.ProofsRequested++
}

// IncrementAnalyzerFallbacks counts questions analyzed with fallback metrics
func (t *Tracker) IncrementAnalyzerFallbacks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.AnalyzerFallbacks++
}

// RecordSearch folds one search outcome and its duration into the totals
func (t *Tracker) RecordSearch(res *search.Result, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if res.Found() {
		t.data.ProofsFound++
	} else {
		t.data.ProofsExhausted++
	}
	t.data.NodesExpanded += res.Expanded
	t.data.NodesEnqueued += res.Enqueued
	t.totalSearchTimeUs += duration.Microseconds()
	t.searchCount++
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() storage.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.TotalSearchTimeUs = t.totalSearchTimeUs

	// Calculate average search time
	if t.searchCount > 0 {
		snapshot.AvgSearchTimeUs = t.totalSearchTimeUs / int64(t.searchCount)
	}

	return snapshot
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Finalize metrics
	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason
	t.data.TotalSearchTimeUs = t.totalSearchTimeUs

	if t.searchCount > 0 {
		t.data.AvgSearchTimeUs = t.totalSearchTimeUs / int64(t.searchCount)
	}

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress formats current metrics for periodic console updates
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Proofs: %d requested, %d found, %d exhausted | Analyzer fallbacks: %d | Nodes: %d expanded, %d enqueued",
		t.data.ProofsRequested,
		t.data.ProofsFound,
		t.data.ProofsExhausted,
		t.data.AnalyzerFallbacks,
		t.data.NodesExpanded,
		t.data.NodesEnqueued,
	)
}
