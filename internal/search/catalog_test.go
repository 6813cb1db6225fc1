package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
)

func kinds(cs []search.Candidate) []search.Kind {
	out := make([]search.Kind, len(cs))
	for i, c := range cs {
		out[i] = c.Kind
	}
	return out
}

func find(cs []search.Candidate, k search.Kind) (search.Candidate, bool) {
	for _, c := range cs {
		if c.Kind == k {
			return c, true
		}
	}
	return search.Candidate{}, false
}

func TestCandidates_IntegralOperand(t *testing.T) {
	cs := search.Candidates(5, search.Metric{Name: "word_count", Value: 5})

	require.Equal(t, []search.Kind{
		search.Multiply, search.Divide, search.Modulo,
		search.Add, search.Subtract, search.Reverse,
	}, kinds(cs))

	wantValues := []float64{25, 1, 0, 10, 0, 5}
	wantDesc := []string{
		"5 * 5 word_count",
		"5 / 5 word_count",
		"5 mod 5 word_count",
		"5 + 5 word_count",
		"5 - 5 word_count",
		"5 reversed",
	}
	for i, c := range cs {
		assert.Equal(t, wantValues[i], c.Value, "value of %s", c.Kind)
		assert.Equal(t, wantDesc[i], c.Description)
	}

	rev, _ := find(cs, search.Reverse)
	assert.Equal(t, 1, rev.ExtraCost)
	mul, _ := find(cs, search.Multiply)
	assert.Equal(t, 0, mul.ExtraCost)
}

func TestCandidates_ZeroDivisorGuards(t *testing.T) {
	cs := search.Candidates(7, search.Metric{Name: "spaces", Value: 0})
	_, hasDiv := find(cs, search.Divide)
	_, hasMod := find(cs, search.Modulo)
	assert.False(t, hasDiv)
	assert.False(t, hasMod)
	assert.Len(t, cs, 4) // multiply, add, subtract, reverse
}

func TestCandidates_RealDivisionAndFlooredModulo(t *testing.T) {
	cs := search.Candidates(1, search.Metric{Name: "n", Value: 4})
	div, ok := find(cs, search.Divide)
	require.True(t, ok)
	assert.Equal(t, 0.25, div.Value)
	assert.Equal(t, "1 / 4 n = 0.25", div.Description+" = "+search.Format(div.Value))

	cs = search.Candidates(7, search.Metric{Name: "n", Value: -3})
	mod, ok := find(cs, search.Modulo)
	require.True(t, ok)
	assert.Equal(t, -2.0, mod.Value)
}

func TestCandidates_ReverseOnlyForIntegersNotDivisibleByTen(t *testing.T) {
	m := search.Metric{Name: "m", Value: 3}

	for _, l := range []float64{10, 20, 100, 1.5, 0.25} {
		_, ok := find(search.Candidates(l, m), search.Reverse)
		assert.False(t, ok, "no reversal expected for %v", l)
	}

	c, ok := find(search.Candidates(21, m), search.Reverse)
	require.True(t, ok)
	assert.Equal(t, 12.0, c.Value)
	assert.Equal(t, "21 reversed", c.Description)
}

func TestCandidates_ExactlyOneRoundingForNonIntegral(t *testing.T) {
	m := search.Metric{Name: "m", Value: 2}
	cases := []struct {
		l    float64
		kind search.Kind
		want float64
	}{
		{0.25, search.RoundDown, 0},
		{0.5, search.RoundUp, 1},
		{1.25, search.RoundDown, 1},
		{2.5, search.RoundUp, 3},
		{2.4999, search.RoundDown, 2},
		{7.75, search.RoundUp, 8},
	}
	for _, tc := range cases {
		cs := search.Candidates(tc.l, m)
		_, down := find(cs, search.RoundDown)
		_, up := find(cs, search.RoundUp)
		assert.True(t, down != up, "exactly one rounding for %v", tc.l)

		c, ok := find(cs, tc.kind)
		require.True(t, ok, "%v should offer %s", tc.l, tc.kind)
		assert.Equal(t, tc.want, c.Value)
		assert.Equal(t, 1, c.ExtraCost)
	}

	for _, l := range []float64{1, 2, 15} {
		cs := search.Candidates(l, m)
		_, down := find(cs, search.RoundDown)
		_, up := find(cs, search.RoundUp)
		assert.False(t, down || up, "integral %v gets no rounding", l)
	}
}

func TestCandidates_PercentageSuffix(t *testing.T) {
	cs := search.Candidates(2, search.Metric{Name: "ratio_percentage", Value: 50})
	assert.Equal(t, "2 * 50% ratio_percentage", cs[0].Description)

	cs = search.Candidates(2, search.Metric{Name: "percentage_of_words", Value: 50})
	assert.Equal(t, "2 * 50 percentage_of_words", cs[0].Description)
}

func TestOperations_CatalogOrder(t *testing.T) {
	ops := search.Operations()
	require.Len(t, ops, 8)
	for i, op := range ops {
		assert.Equal(t, search.Kind(i), op.Kind)
	}
	assert.Equal(t, "round-up", search.RoundUp.String())
}
