package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
)

var (
	// ErrMalformedResponse is returned when the analysis body is not the expected JSON.
	ErrMalformedResponse = errors.New("analyzer: malformed response")

	// ErrNoMetrics is returned when the response carries no metrics object.
	ErrNoMetrics = errors.New("analyzer: response has no metrics")
)

const percentageSuffix = "_percentage"

// DecodeMetrics extracts the numeric entries of the "metrics" object in body,
// keeping document order, and sanitizes them.
func DecodeMetrics(body []byte) ([]search.Metric, error) {
	var envelope struct {
		Metrics json.RawMessage `json:"metrics"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	raw := bytes.TrimSpace(envelope.Metrics)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrNoMetrics
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: metrics is not an object", ErrMalformedResponse)
	}

	var out []search.Metric
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		num, ok := value.(json.Number)
		if !ok {
			continue
		}
		f, err := num.Float64()
		if err != nil {
			continue
		}

		// a repeated key keeps its first position and its last value
		if i, seen := index[key]; seen {
			out[i].Value = f
			continue
		}
		index[key] = len(out)
		out = append(out, search.Metric{Name: key, Value: f})
	}

	return Sanitize(out), nil
}

// Sanitize scales *_percentage metrics from fractions to percent.
func Sanitize(metrics []search.Metric) []search.Metric {
	out := make([]search.Metric, len(metrics))
	for i, m := range metrics {
		if strings.HasSuffix(m.Name, percentageSuffix) {
			m.Value *= 100
		}
		out[i] = m
	}
	return out
}

// Fallback computes basic metrics locally when the analysis service is unavailable.
func Fallback(message string) []search.Metric {
	return []search.Metric{
		{Name: "word_count", Value: float64(len(strings.Fields(message)))},
		{Name: "character_count", Value: float64(utf8.RuneCountInString(message))},
		{Name: "spaces", Value: float64(strings.Count(message, " "))},
	}
}
