package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestParseAssignments(t *testing.T) {
	p, err := parseAssignments([]string{"selling_price=120", " var_cost = 90.5"})
	require.NoError(t, err)
	assert.Equal(t, 120.0, p["selling_price"])
	assert.Equal(t, 90.5, p["var_cost"])

	for _, bad := range []string{"selling_price", "=3", "demand=abc"} {
		_, err := parseAssignments([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in   string
		name string
		want []float64
	}{
		{"selling_price=80:141:10", "selling_price", []float64{80, 90, 100, 110, 120, 130, 140}},
		{"demand=100,200, 300", "demand", []float64{100, 200, 300}},
		{"demand=0:10:3#", "demand", []float64{0, 5, 10}},
		{"x=5:0:-2", "x", []float64{5, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in, err := parseInput(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.name, in.Name)
			assert.InDeltaSlice(t, tt.want, in.Values, 1e-9)
		})
	}

	for _, bad := range []string{"demand", "demand=", "demand=1:2", "demand=0:10:0", "demand=1,x", "demand=0:1e16:1"} {
		_, err := parseInput(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitPreset(t *testing.T) {
	m, p := splitPreset("breakeven/volume", "single_product_spf")
	assert.Equal(t, "breakeven", m)
	assert.Equal(t, "volume", p)

	m, p = splitPreset("notebook", "single_product_spf")
	assert.Equal(t, "single_product_spf", m)
	assert.Equal(t, "notebook", p)
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "eval", "breakeven", "--outputs", "unit_margin")
	require.NoError(t, err)
	assert.Contains(t, out, "unit_margin")
	assert.Contains(t, out, "15.00")

	_, err = execute(t, "eval", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")

	_, err = execute(t, "eval", "breakeven", "--set", "colour=1")
	assert.Error(t, err)

	_, err = execute(t, "eval", "breakeven", "--set", "demand=NaN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite")
}

func TestTableCommandCSV(t *testing.T) {
	out, err := execute(t, "table", "breakeven", "--input", "demand=0,100", "--outputs", "profit", "--csv")
	require.NoError(t, err)
	assert.Equal(t, "demand,profit\n0,-5000\n100,-3500\n", out)
}

func TestSeekCommand(t *testing.T) {
	out, err := execute(t, "seek", "single_product_spf")
	require.NoError(t, err)
	assert.Contains(t, out, "demand = 333.33")
	assert.Contains(t, out, "converged")

	_, err = execute(t, "seek", "breakeven", "--by", "demand", "--lower", "0", "--upper", "1", "--set", "selling_price=101")
	assert.Error(t, err)
}

func TestRunListExport(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "run", "--preset", "breakeven/volume")
	require.NoError(t, err)
	assert.Contains(t, out, "break_even_units")
	assert.Contains(t, out, "saved: breakeven_")
	assert.Less(t, strings.Index(out, "unit_margin"), strings.Index(out, "total_revenue"), "outputs follow the model's order")
	assert.Less(t, strings.Index(out, "profit"), strings.Index(out, "break_even_units"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	runID := entries[0].Name()
	assert.FileExists(t, filepath.Join(dir, runID, "metadata.json"))

	out, err = execute(t, "--data", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "--data", dir, "export-csv", runID, "demand")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "demand,total_revenue,total_cost,profit", lines[0])
	assert.Len(t, lines, 12)

	out, err = execute(t, "--data", dir, "export-json", runID)
	require.NoError(t, err)
	assert.Contains(t, out, `"model": "breakeven"`)

	jsonPath := filepath.Join(t.TempDir(), "run.json")
	_, err = execute(t, "--data", dir, "export-json", runID, "-o", jsonPath)
	require.NoError(t, err)
	assert.FileExists(t, jsonPath)

	out, err = execute(t, "--data", dir, "show", runID)
	require.NoError(t, err)
	assert.Contains(t, out, runID)
}

func TestRunNoSaveAndUnknownPreset(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--data", dir, "run", "--preset", "premium", "--no-save")
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = execute(t, "--data", dir, "run", "--preset", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "--data", filepath.Join(t.TempDir(), "none"), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no runs found")
}

func TestInitThenRunConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")

	_, err := execute(t, "init", path, "--preset", "breakeven/pricing", "--set", "fixed_cost=6000")
	require.NoError(t, err)
	assert.FileExists(t, path)

	out, err := execute(t, "--data", dir, "run", "--config", path, "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "break_even_price")
	assert.Contains(t, out, "selling_price = 124.00")
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)
	assert.Contains(t, out, "single_product_spf")
	assert.Contains(t, out, "breakeven")
	assert.Contains(t, out, "spf_quadratic")
}

func TestOutputOrder(t *testing.T) {
	got := outputOrder("breakeven", map[string]float64{"profit": 1, "unit_margin": 2, "extra": 3, "another": 4})
	assert.Equal(t, []string{"unit_margin", "profit", "another", "extra"}, got)

	got = outputOrder("unknown", map[string]float64{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b"}, got)
}
