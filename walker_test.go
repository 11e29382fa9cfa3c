package hmm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStopExcluded(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddInitialState("s", 1))
	require.NoError(t, m.AddTransition("s", "s", 1))
	require.NoError(t, m.AddEmission("s", "a", 1))
	require.NoError(t, m.AddEmission("s", "stop", 1))

	gen := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		var steps int
		seq, err := m.Generate(gen, func(step int, o Obs) bool {
			assert.Equal(t, steps, step)
			steps++
			return o == "stop"
		})
		require.NoError(t, err)
		assert.NotContains(t, seq, "stop")
		assert.Len(t, seq, steps-1)
	}
}

func TestGenerateN(t *testing.T) {
	m := testingModel(t)
	seq, err := m.GenerateN(rand.New(rand.NewSource(2)), 25, nil)
	require.NoError(t, err)
	assert.Len(t, seq, 25)

	seq, err = m.GenerateN(nil, 25, func(step int, o Obs) bool {
		return step == 3
	})
	require.NoError(t, err)
	assert.Len(t, seq, 3)
}

func TestSampleLenFollowsTopology(t *testing.T) {
	m := testingModel(t)
	gen := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		states, obs, err := m.SampleLen(gen, 6)
		require.NoError(t, err)
		require.Len(t, states, 6)
		assert.Greater(t, m.InitialProbability(states[0]), 0.0)
		for j := range states {
			assert.Greater(t, m.EmitProbability(states[j], obs[j]), 0.0)
			if j > 0 {
				assert.Greater(t, m.TransitionProbability(states[j-1], states[j]), 0.0)
			}
		}
	}
}

func TestWalkerIndependent(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddInitialState(0, 1))
	for i := 0; i < 5; i++ {
		require.NoError(t, m.AddTransition(i, i+1, 1))
		require.NoError(t, m.AddEmission(i, i, 1))
	}
	require.NoError(t, m.AddEmission(5, 5, 1))

	w1 := m.NewWalker(nil)
	w2 := m.NewWalker(nil)
	_, ok := w1.State()
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		o, err := w1.Next()
		require.NoError(t, err)
		assert.Equal(t, i, o)
	}
	o, err := w2.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, o)

	state, ok := w1.State()
	assert.True(t, ok)
	assert.Equal(t, 2, state)

	w1.Reset()
	o, err = w1.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, o)
}

func TestWalkerEmptyDistributions(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddEmission("a", "x", 1))
	_, err := m.NewWalker(nil).Next()
	assert.ErrorIs(t, err, ErrDistributionEmpty)

	require.NoError(t, m.AddInitialState("a", 1))
	w := m.NewWalker(nil)
	_, err = w.Next()
	require.NoError(t, err)
	_, err = w.Next()
	assert.ErrorIs(t, err, ErrDistributionEmpty, "a has no transitions")
}
