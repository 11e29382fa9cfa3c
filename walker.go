package hmm

import (
	"fmt"
	"math/rand"
)

// A Walker is a generation session over a Model.
//
// Each Walker keeps its own cursor, so many Walkers may
// walk the same Model at once, provided they do not share
// a *rand.Rand.
type Walker struct {
	model   *Model
	gen     *rand.Rand
	current int
}

// NewWalker creates a Walker positioned before the first
// state.
//
// If gen is nil, the global source in package rand is
// used.
func (m *Model) NewWalker(gen *rand.Rand) *Walker {
	return &Walker{model: m, gen: gen, current: -1}
}

// Next moves to the next hidden state and returns the
// observation it emits.
//
// The first call draws from the initial distribution;
// later calls follow a transition from the current state.
func (w *Walker) Next() (Obs, error) {
	var next int
	var err error
	if w.current < 0 {
		next, err = w.model.initial.Sample(w.gen)
		if err != nil {
			return nil, fmt.Errorf("sample initial state: %w", err)
		}
	} else {
		next, err = w.model.states[w.current].Transition(w.gen)
		if err != nil {
			return nil, fmt.Errorf("transition from %v: %w", w.model.states[w.current].label, err)
		}
	}
	w.current = next
	o, err := w.model.states[next].Emit(w.gen)
	if err != nil {
		return nil, fmt.Errorf("emit from %v: %w", w.model.states[next].label, err)
	}
	return o, nil
}

// State returns the label of the current state.
// The second result is false before the first step.
func (w *Walker) State() (Label, bool) {
	if w.current < 0 {
		return nil, false
	}
	return w.model.states[w.current].label, true
}

// Reset moves the Walker back before the first state.
func (w *Walker) Reset() {
	w.current = -1
}

// Generate samples observations until stop returns true.
//
// stop receives the index of each step and the observation
// emitted at it.
// The observation which triggers the stop is not included
// in the result.
func (m *Model) Generate(gen *rand.Rand, stop func(step int, o Obs) bool) ([]Obs, error) {
	return m.GenerateN(gen, -1, stop)
}

// GenerateN is like Generate, but it also stops after n
// observations.
// If n is negative, there is no limit.
// If stop is nil, only n limits the sequence.
func (m *Model) GenerateN(gen *rand.Rand, n int, stop func(step int, o Obs) bool) ([]Obs, error) {
	w := m.NewWalker(gen)
	var res []Obs
	for step := 0; n < 0 || step < n; step++ {
		o, err := w.Next()
		if err != nil {
			return res, err
		}
		if stop != nil && stop(step, o) {
			break
		}
		res = append(res, o)
	}
	return res, nil
}

// SampleLen samples n hidden states along with the
// observations they emit.
func (m *Model) SampleLen(gen *rand.Rand, n int) ([]Label, []Obs, error) {
	w := m.NewWalker(gen)
	states := make([]Label, 0, n)
	obs := make([]Obs, 0, n)
	for i := 0; i < n; i++ {
		o, err := w.Next()
		if err != nil {
			return states, obs, err
		}
		state, _ := w.State()
		states = append(states, state)
		obs = append(obs, o)
	}
	return states, obs, nil
}
