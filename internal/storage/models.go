package storage

import "time"

// Proof is one answered question together with the steps that were found
type Proof struct {
	ProofID   int       `json:"proof_id"`
	Question  string    `json:"question"`
	Mode      string    `json:"mode"`
	Goal      float64   `json:"goal"`
	Steps     []string  `json:"steps"`
	Found     bool      `json:"found"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// Metrics tracks service statistics for export on exit
type Metrics struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	ProofsRequested   int       `json:"proofs_requested"`
	ProofsFound       int       `json:"proofs_found"`
	ProofsExhausted   int       `json:"proofs_exhausted"`
	AnalyzerFallbacks int       `json:"analyzer_fallbacks"`
	NodesExpanded     int       `json:"nodes_expanded"`
	NodesEnqueued     int       `json:"nodes_enqueued"`
	TotalSearchTimeUs int64     `json:"total_search_time_us"`
	AvgSearchTimeUs   int64     `json:"avg_search_time_us"`
	TerminationReason string    `json:"termination_reason"`
}
