package search

import "fmt"

// Rejection names the first rule a candidate node violates.
type Rejection int

const (
	Accepted Rejection = iota
	DuplicateValue
	DuplicateMetric
	SameValue
	SameMetric
	ZeroValue
	NegativeValue
	AboveBound
	TooFar
)

var rejectionNames = [...]string{
	Accepted:        "accepted",
	DuplicateValue:  "value already queued",
	DuplicateMetric: "metric already queued",
	SameValue:       "value unchanged",
	SameMetric:      "metric unchanged",
	ZeroValue:       "zero value",
	NegativeValue:   "negative value",
	AboveBound:      "value above bound",
	TooFar:          "distance above limit",
}

func (r Rejection) String() string {
	if r < 0 || int(r) >= len(rejectionNames) {
		return fmt.Sprintf("Rejection(%d)", int(r))
	}
	return rejectionNames[r]
}

// Queue is the view of pending nodes that validation checks against.
type Queue interface {
	HasValue(v float64) bool
	HasMetric(name string) bool
}

// Validate decides whether neighbor, generated from current, may enter the
// frontier. It returns Accepted or the first violated rule.
func Validate(current, neighbor Node, goal float64, queued Queue) Rejection {
	switch {
	case queued.HasValue(neighbor.Value):
		return DuplicateValue
	case queued.HasMetric(neighbor.Metric):
		return DuplicateMetric
	case neighbor.Value == current.Value:
		return SameValue
	case neighbor.Metric == current.Metric:
		return SameMetric
	case neighbor.Value == 0:
		return ZeroValue
	case neighbor.Value < 0:
		return NegativeValue
	case neighbor.Value > goal*GoalFactor:
		return AboveBound
	case neighbor.Distance > MaxDistance:
		return TooFar
	}
	return Accepted
}
