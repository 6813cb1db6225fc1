// Package search finds a chain of arithmetic steps that turns one of a set of
// named seed values into a numeric goal.
//
// The traversal is breadth-first or depth-first over a frontier of pending
// nodes. Candidates are pruned against the frontier itself rather than a
// visited set: a value or metric that has left the frontier may reappear.
// Distance (hop count plus per-operation surcharges) is bounded by
// MaxDistance and values by GoalFactor times the goal.
package search

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxDistance is the largest distance a queued node may carry.
	MaxDistance = 10

	// GoalFactor bounds queued values to goal*GoalFactor.
	GoalFactor = 15

	// NoParent is the Parent of a root node.
	NoParent = -1
)

// ErrUnknownMode is returned by ParseMode for an unrecognized selector.
var ErrUnknownMode = errors.New("search: unknown traversal mode")

// Metric is a named numeric seed supplied by the caller. Names are unique
// within one search.
type Metric struct {
	Name  string
	Value float64
}

// Node is one search state. Nodes are immutable once stored in an Arena.
type Node struct {
	ID       int
	Value    float64
	Metric   string
	Label    string
	Parent   int
	Distance int
}

// IsRoot reports whether n was seeded directly from a metric.
func (n Node) IsRoot() bool { return n.Parent == NoParent }

// Mode selects the traversal order.
type Mode int

const (
	BreadthFirst Mode = iota
	DepthFirst
)

func (m Mode) String() string {
	switch m {
	case BreadthFirst:
		return "breadth-first"
	case DepthFirst:
		return "depth-first"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "bfs", "breadth-first", "dfs" and "depth-first".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// State is the traversal state.
type State int

const (
	Running State = iota
	Succeeded
	Exhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of Run.
//   - Steps: labels from a root to the goal, empty (never nil) on exhaustion.
//   - Path: the nodes behind Steps.
//   - Expanded: nodes popped and expanded without matching the goal.
//   - Enqueued: nodes inserted into the frontier, roots included.
//   - Rejected: generated candidates dropped by validation.
type Result struct {
	State    State
	Steps    []string
	Path     []Node
	Expanded int
	Enqueued int
	Rejected int
}

// Found reports whether the goal was reached.
func (r *Result) Found() bool { return r.State == Succeeded }
