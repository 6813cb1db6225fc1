package search

import (
	"fmt"
	"math"
	"strings"
)

// Kind tags an entry of the operation catalog.
type Kind int

const (
	Multiply Kind = iota
	Divide
	Modulo
	Add
	Subtract
	Reverse
	RoundDown
	RoundUp
)

var kindNames = [...]string{
	Multiply:  "multiply",
	Divide:    "divide",
	Modulo:    "modulo",
	Add:       "add",
	Subtract:  "subtract",
	Reverse:   "reverse",
	RoundDown: "round-down",
	RoundUp:   "round-up",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// percentageSuffix marks metrics whose right-hand operand prints with a "%".
const percentageSuffix = "_percentage"

// Operation describes one transformation of a left operand l by a metric
// value r. Binary operations print as "l <symbol> r name"; unary ones ignore r
// and print as "l <symbol>".
type Operation struct {
	Kind      Kind
	Symbol    string
	Binary    bool
	Guard     func(l, r float64) bool // nil means always applicable
	Apply     func(l, r float64) float64
	ExtraCost int
}

// Candidate is an applicable operation evaluated against concrete operands.
type Candidate struct {
	Kind        Kind
	Value       float64
	Description string
	ExtraCost   int
}

func nonZeroDivisor(_, r float64) bool { return r != 0 }

// roundsUp applies the add-one-half-then-floor test.
func roundsUp(l float64) bool {
	return math.Floor(l+0.5) != math.Floor(l)
}

// catalog is evaluated in order; candidate order is significant for the
// frontier insertion order.
var catalog = [...]Operation{
	{
		Kind: Multiply, Symbol: "*", Binary: true,
		Apply: func(l, r float64) float64 { return l * r },
	},
	{
		Kind: Divide, Symbol: "/", Binary: true,
		Guard: nonZeroDivisor,
		Apply: func(l, r float64) float64 { return l / r },
	},
	{
		Kind: Modulo, Symbol: "mod", Binary: true,
		Guard: nonZeroDivisor,
		Apply: floorMod,
	},
	{
		Kind: Add, Symbol: "+", Binary: true,
		Apply: func(l, r float64) float64 { return l + r },
	},
	{
		Kind: Subtract, Symbol: "-", Binary: true,
		Apply: func(l, r float64) float64 { return l - r },
	},
	{
		Kind: Reverse, Symbol: "reversed",
		Guard: func(l, _ float64) bool {
			return IsIntegral(l) && floorMod(l, 10) != 0
		},
		Apply:     func(l, _ float64) float64 { return reverseDigits(l) },
		ExtraCost: 1,
	},
	{
		Kind: RoundDown, Symbol: "rounded down",
		Guard: func(l, _ float64) bool {
			return !IsIntegral(l) && !roundsUp(l)
		},
		Apply:     func(l, _ float64) float64 { return math.Floor(l) },
		ExtraCost: 1,
	},
	{
		Kind: RoundUp, Symbol: "rounded up",
		Guard: func(l, _ float64) bool {
			return !IsIntegral(l) && roundsUp(l)
		},
		Apply:     func(l, _ float64) float64 { return math.Floor(l + 0.5) },
		ExtraCost: 1,
	},
}

// Operations returns a copy of the catalog in evaluation order.
func Operations() []Operation {
	ops := make([]Operation, len(catalog))
	copy(ops, catalog[:])
	return ops
}

// Candidates evaluates the catalog against left operand l and metric m and
// returns every candidate whose guard holds. Results are normalized.
func Candidates(l float64, m Metric) []Candidate {
	r := Normalize(m.Value)
	out := make([]Candidate, 0, len(catalog))
	for _, op := range catalog {
		if op.Guard != nil && !op.Guard(l, r) {
			continue
		}
		out = append(out, Candidate{
			Kind:        op.Kind,
			Value:       Normalize(op.Apply(l, r)),
			Description: op.describe(l, r, m.Name),
			ExtraCost:   op.ExtraCost,
		})
	}
	return out
}

func (op Operation) describe(l, r float64, name string) string {
	if !op.Binary {
		return Format(l) + " " + op.Symbol
	}
	rhs := Format(r)
	if strings.HasSuffix(name, percentageSuffix) {
		rhs += "%"
	}
	return fmt.Sprintf("%s %s %s %s", Format(l), op.Symbol, rhs, name)
}
