package hmm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViterbiToy(t *testing.T) {
	m := toyModel(t)
	path, prob, err := Viterbi(m, obsSeq("GGCACTGAA"))
	require.NoError(t, err)
	assert.Equal(t, labelSeq("HHHLLLLLL"), path)

	// The lecture notes round log2(prob) to two decimals.
	assert.InDelta(t, -24.49, math.Log2(prob), 0.005)
	assert.InEpsilon(t, 4.251528e-8, prob, 1e-6)
}

func TestViterbiBruteForce(t *testing.T) {
	gen := rand.New(rand.NewSource(99))
	states := []Label{"p", "q", "r"}
	symbols := []Obs{0, 1, 2}
	for trial := 0; trial < 20; trial++ {
		m, err := RandomModel(gen, states, symbols)
		require.NoError(t, err)
		obs := make([]Obs, 1+trial%6)
		for i := range obs {
			obs[i] = symbols[gen.Intn(len(symbols))]
		}
		total, expectedPath, expectedProb := bruteForce(m, obs)
		path, prob, err := Viterbi(m, obs)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, path)
		assert.InEpsilon(t, expectedProb, prob, 1e-9)
		assert.LessOrEqual(t, prob, total)
	}
}

func TestMostLikely(t *testing.T) {
	m := testingModel(t)
	obs := obsSeq("xzyx")
	_, expected, _ := bruteForce(m, obs)
	assert.Equal(t, expected, MostLikely(m, obs))
	assert.Nil(t, MostLikely(m, nil))
}

func TestViterbiTieBreak(t *testing.T) {
	m := NewModel()
	for _, s := range []string{"b", "a"} {
		require.NoError(t, m.AddInitialState(s, 1))
		require.NoError(t, m.AddEmission(s, "x", 1))
		require.NoError(t, m.AddTransition(s, "a", 1))
		require.NoError(t, m.AddTransition(s, "b", 1))
	}
	for i := 0; i < 5; i++ {
		path, prob, err := Viterbi(m, obsSeq("xxx"))
		require.NoError(t, err)
		assert.Equal(t, labelSeq("bbb"), path, "first-inserted state wins ties")
		assert.InDelta(t, 0.125, prob, 1e-12)
	}
}

func TestViterbiImpossible(t *testing.T) {
	m := testingModel(t)
	path, prob, err := Viterbi(m, obsSeq("xxw"))
	require.NoError(t, err)
	assert.Nil(t, path)
	assert.Equal(t, 0.0, prob)
}

func BenchmarkViterbi(b *testing.B) {
	m, obs := benchmarkingModel(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Viterbi(m, obs)
	}
}
