package hmm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testingModel is a four-state model with a sparse
// topology: D only loops back to itself and emits "x".
func testingModel(t *testing.T) *Model {
	m := NewModel()
	add := func(err error) {
		require.NoError(t, err)
	}
	add(m.AddInitialState("A", 0.4))
	add(m.AddInitialState("C", 0.5))
	add(m.AddInitialState("D", 0.1))

	add(m.AddTransition("A", "A", 0.3))
	add(m.AddTransition("A", "B", 0.2))
	add(m.AddTransition("A", "C", 0.5))

	add(m.AddTransition("B", "A", 0.5))
	add(m.AddTransition("B", "B", 0.1))
	add(m.AddTransition("B", "C", 0.2))
	add(m.AddTransition("B", "D", 0.2))

	add(m.AddTransition("C", "A", 0.3))
	add(m.AddTransition("C", "B", 0.1))
	add(m.AddTransition("C", "C", 0.1))
	add(m.AddTransition("C", "D", 0.5))

	add(m.AddTransition("D", "D", 1))

	add(m.AddEmission("A", "x", 0.3))
	add(m.AddEmission("A", "z", 0.7))
	add(m.AddEmission("B", "x", 0.01))
	add(m.AddEmission("B", "y", 0.69))
	add(m.AddEmission("B", "z", 0.3))
	add(m.AddEmission("C", "x", 0.8))
	add(m.AddEmission("C", "y", 0.1))
	add(m.AddEmission("C", "z", 0.1))
	add(m.AddEmission("D", "x", 1))
	return m
}

// weatherModel is the classic Healthy/Fever example.
func weatherModel(t *testing.T) *Model {
	m := NewModel()
	add := func(err error) {
		require.NoError(t, err)
	}
	add(m.AddInitialState("Healthy", 0.6))
	add(m.AddInitialState("Fever", 0.4))

	add(m.AddTransition("Healthy", "Healthy", 0.69))
	add(m.AddTransition("Healthy", "Fever", 0.3))
	add(m.AddTransition("Fever", "Healthy", 0.4))
	add(m.AddTransition("Fever", "Fever", 0.59))

	add(m.AddEmission("Healthy", "normal", 0.5))
	add(m.AddEmission("Healthy", "cold", 0.4))
	add(m.AddEmission("Healthy", "dizzy", 0.1))
	add(m.AddEmission("Fever", "normal", 0.1))
	add(m.AddEmission("Fever", "cold", 0.3))
	add(m.AddEmission("Fever", "dizzy", 0.6))
	m.Normalize()
	return m
}

// toyModel is the two-state H/L model over DNA bases from
// the lecture notes at
// http://homepages.ulb.ac.be/~dgonze/TEACHING/viterbi.pdf.
func toyModel(t *testing.T) *Model {
	m := NewModel()
	add := func(err error) {
		require.NoError(t, err)
	}
	add(m.AddInitialState("H", 0.5))
	add(m.AddInitialState("L", 0.5))

	add(m.AddTransition("H", "L", 0.5))
	add(m.AddTransition("H", "H", 0.5))
	add(m.AddTransition("L", "L", 0.6))
	add(m.AddTransition("L", "H", 0.4))

	for _, e := range []struct {
		base string
		h, l float64
	}{{"A", 0.2, 0.3}, {"C", 0.3, 0.2}, {"G", 0.3, 0.2}, {"T", 0.2, 0.3}} {
		add(m.AddEmission("H", e.base, e.h))
		add(m.AddEmission("L", e.base, e.l))
	}
	return m
}

func benchmarkingModel(b *testing.B) (*Model, []Obs) {
	states := make([]Label, 100)
	obses := make([]Obs, 100)
	for i := 0; i < 100; i++ {
		states[i] = i
		obses[i] = i
	}
	m, err := RandomModel(rand.New(rand.NewSource(1337)), states, obses)
	require.NoError(b, err)
	return m, []Obs{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
}

func obsSeq(s string) []Obs {
	res := make([]Obs, len(s))
	for i, ch := range s {
		res[i] = string(ch)
	}
	return res
}

func labelSeq(s string) []Label {
	res := make([]Label, len(s))
	for i, ch := range s {
		res[i] = string(ch)
	}
	return res
}

// bruteForce enumerates every hidden path, returning the
// total probability of obs and the most probable path.
func bruteForce(m *Model, obs []Obs) (total float64, best []Label, bestProb float64) {
	labels := m.Labels()
	path := make([]int, len(obs))
	var visit func(t int)
	visit = func(t int) {
		if t == len(obs) {
			p := m.InitialProbability(labels[path[0]]) * m.EmitProbability(labels[path[0]], obs[0])
			for i := 1; i < len(obs); i++ {
				p *= m.TransitionProbability(labels[path[i-1]], labels[path[i]]) *
					m.EmitProbability(labels[path[i]], obs[i])
			}
			total += p
			if p > bestProb {
				bestProb = p
				best = make([]Label, len(path))
				for i, s := range path {
					best[i] = labels[s]
				}
			}
			return
		}
		for s := range labels {
			path[t] = s
			visit(t + 1)
		}
	}
	visit(0)
	return
}
