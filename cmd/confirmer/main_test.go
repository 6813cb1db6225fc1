package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvmarrod/hl3-confirmer/internal/search"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseMetrics(t *testing.T) {
	got, err := parseMetrics([]string{"word_count=5", " sentence_count = 1 ", "ratio=0.5"})
	require.NoError(t, err)
	assert.Equal(t, []search.Metric{
		{Name: "word_count", Value: 5},
		{Name: "sentence_count", Value: 1},
		{Name: "ratio", Value: 0.5},
	}, got)

	for _, bad := range [][]string{
		{"word_count"},
		{"=5"},
		{"a=x"},
		{"a=1", "a=2"},
	} {
		_, err := parseMetrics(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestSolveCommand(t *testing.T) {
	out, err := run(t, "solve", "-m", "x=2", "-m", "y=3", "--goal", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "depth-first: succeeded")
	assert.Contains(t, out, "  1. 2 x\n  2. 2 * 3 y = 6\n  3. 6 * 2 x = 12\n")

	out, err = run(t, "solve", "-m", "a=1", "--goal", "1000000", "--mode", "bfs")
	require.NoError(t, err)
	assert.Contains(t, out, "breadth-first: exhausted")

	_, err = run(t, "solve", "-m", "a=1", "--mode", "sideways")
	assert.ErrorIs(t, err, search.ErrUnknownMode)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "-m", "x=2", "-m", "y=3", "--goal", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "breadth-first: succeeded")
	assert.Contains(t, out, "  5. 36 / 3 y = 12\n")
	assert.Contains(t, out, "depth-first: succeeded")
	assert.Contains(t, out, "  3. 6 * 2 x = 12\n")
}

func TestAskCommandOffline(t *testing.T) {
	out, err := run(t, "ask", "--offline", "Is", "HL3", "coming", "out?")
	require.NoError(t, err)
	assert.Equal(t, "3 spaces\nHL3 confirmed.\n", out)

	out, err = run(t, "ask", "--offline", "")
	require.NoError(t, err)
	assert.Equal(t, "No proof found. Please ask something else.\n", out)
}
