package lsystem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyseGrowth(t *testing.T) {
	g := mustGrammar(t, "F", map[string]string{"F": "FF"})
	ls := New(g, 1)
	profile, err := ls.AnalyseGrowth(3)
	require.NoError(t, err)
	require.Len(t, profile.Samples, 4)

	lengths := []int{1, 2, 4, 8}
	for i, s := range profile.Samples {
		assert.Equal(t, i, s.Generation)
		assert.Equal(t, lengths[i], s.Length)
		assert.Equal(t, lengths[i], s.Drawable)
		if i > 0 {
			assert.InDelta(t, 2, s.Expansion, 1e-12)
		}
	}
}

func TestAnalyseGrowthCountsDrawableOnly(t *testing.T) {
	g := mustGrammar(t, "X", map[string]string{"X": "F[+X][-X]"})
	ls := New(g, 1)
	profile, err := ls.AnalyseGrowth(1)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Samples[0].Drawable)
	assert.Equal(t, 1, profile.Samples[1].Drawable)
}

func TestAnalyseGrowthPropagatesErrors(t *testing.T) {
	g := mustGrammar(t, "A", map[string]string{"A": "AA"}, WithMaxLength(100))
	ls := New(g, 1)
	_, err := ls.AnalyseGrowth(10)
	var re *ResourceExceededError
	assert.ErrorAs(t, err, &re)
}

func TestRenderCharts(t *testing.T) {
	g := mustGrammar(t, "F", map[string]string{"F": "F[+F]F"})
	ls := New(g, 1)
	profile, err := ls.AnalyseGrowth(4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, profile.RenderChart(&buf))
	assert.Contains(t, buf.String(), "Derivation Growth")

	buf.Reset()
	require.NoError(t, profile.RenderExpansionChart(&buf))
	assert.Contains(t, buf.String(), "Expansion Ratio")
}
