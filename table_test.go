package lsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"
)

func mustRule(t *testing.T, pred, body string) *ProductionRule {
	t.Helper()
	r, err := ParseRule(pred, body)
	require.NoError(t, err)
	return r
}

func TestAddRuleRejectsNonPositiveWeights(t *testing.T) {
	table := NewProductionTable()
	err := table.AddRule(mustRule(t, "F", "-1 A; 2 B"))
	var ge *GrammarError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ProbabilityMismatch, ge.Code)
}

func TestFinalizeRejectsMismatchedSums(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "F", "0.5 A; 0.6 B")))
	err := table.Finalize(false)
	var ge *GrammarError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ProbabilityMismatch, ge.Code)
	assert.Equal(t, Token("F"), ge.Token)
}

func TestFinalizeNormalizes(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "F", "1 A; 3 B")))
	require.NoError(t, table.Finalize(true))
	rules := table.Rules("F")
	require.Len(t, rules, 1)
	assert.InDelta(t, 0.25, rules[0].Weights[0].Probability, 1e-12)
	assert.InDelta(t, 0.75, rules[0].Weights[1].Probability, 1e-12)
}

func TestFinalizeGroupsByContext(t *testing.T) {
	// same predecessor, different contexts: separate weight groups
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "B < A", "X")))
	require.NoError(t, table.AddRule(mustRule(t, "A", "Y")))
	assert.NoError(t, table.Finalize(false))
}

func TestAddRuleAfterFinalize(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "F", "A")))
	require.NoError(t, table.Finalize(false))
	assert.Error(t, table.AddRule(mustRule(t, "G", "B")))
}

func TestDeterministic(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "F", "F+F")))
	assert.True(t, table.Deterministic())
	require.NoError(t, table.AddRule(mustRule(t, "A", "0.5 A; 0.5 AA")))
	assert.False(t, table.Deterministic())

	// several rules for one predecessor count as stochastic even with
	// disjoint contexts
	multi := NewProductionTable()
	require.NoError(t, multi.AddRule(mustRule(t, "B < A", "X")))
	require.NoError(t, multi.AddRule(mustRule(t, "A", "Y")))
	assert.False(t, multi.Deterministic())
}

func TestLookupContextPrecedence(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "B < A > C", "X")))
	require.NoError(t, table.AddRule(mustRule(t, "A", "Y")))
	require.NoError(t, table.Finalize(false))
	rng := rand.New(1)

	w, ok, err := table.Lookup(Sym("A"), "B", "C", rng)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "X", w.String())

	w, ok, err = table.Lookup(Sym("A"), "", "C", rng)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Y", w.String())
}

func TestLookupGuardFiltering(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "A(x) : x > 2", "B")))
	require.NoError(t, table.AddRule(mustRule(t, "A(x) : x <= 2", "C")))
	require.NoError(t, table.Finalize(false))
	rng := rand.New(1)

	w, ok, err := table.Lookup(Sym("A", 5), "", "", rng)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", w.String())

	w, ok, err = table.Lookup(Sym("A", 1), "", "", rng)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "C", w.String())
}

func TestLookupNoMatch(t *testing.T) {
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "B < A", "X")))
	require.NoError(t, table.Finalize(false))
	rng := rand.New(1)

	_, ok, err := table.Lookup(Sym("A"), "Z", "", rng)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = table.Lookup(Sym("Q"), "", "", rng)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupAcrossGuardedRulesIsWeighted(t *testing.T) {
	// two context-free rules share the predecessor; the draw spans
	// both rules' weights
	table := NewProductionTable()
	require.NoError(t, table.AddRule(mustRule(t, "F", "0.5 A")))
	require.NoError(t, table.AddRule(mustRule(t, "F", "0.5 B")))
	require.NoError(t, table.Finalize(false))

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		w, ok, err := table.Lookup(Sym("F"), "", "", rand.New(uint64(i)))
		require.NoError(t, err)
		require.True(t, ok)
		counts[w.String()]++
	}
	assert.InDelta(t, 0.5, float64(counts["A"])/2000, 0.05)
}
