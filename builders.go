package hmm

import (
	"fmt"
	"math/rand"
)

// Uniform creates a fully connected Model in which every
// initial state, transition, and emission is equally
// likely.
//
// Uniform models are a common starting point for
// Train.
func Uniform(states []Label, obs []Obs) (*Model, error) {
	res := NewModel()
	for _, state := range states {
		if err := res.AddInitialState(state, 1); err != nil {
			return nil, err
		}
		for _, o := range obs {
			if err := res.AddEmission(state, o, 1); err != nil {
				return nil, err
			}
		}
	}
	for _, from := range states {
		for _, to := range states {
			if err := res.AddTransition(from, to, 1); err != nil {
				return nil, err
			}
		}
	}
	res.Normalize()
	return res, nil
}

// LeftRight creates a Model whose states form a chain.
//
// The chain starts in the first state.
// Each state stays put with probability selfLoop and
// otherwise moves to the next state; the last state
// always stays put.
// Emissions are uniform.
func LeftRight(states []Label, obs []Obs, selfLoop float64) (*Model, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrInvalidLabel)
	}
	if !(selfLoop > 0 && selfLoop < 1) {
		return nil, fmt.Errorf("%w: self-loop probability %v", ErrInvalidWeight, selfLoop)
	}
	res := NewModel()
	if err := res.AddInitialState(states[0], 1); err != nil {
		return nil, err
	}
	for i, state := range states {
		if i+1 < len(states) {
			if err := res.AddTransition(state, state, selfLoop); err != nil {
				return nil, err
			}
			if err := res.AddTransition(state, states[i+1], 1-selfLoop); err != nil {
				return nil, err
			}
		} else if err := res.AddTransition(state, state, 1); err != nil {
			return nil, err
		}
		for _, o := range obs {
			if err := res.AddEmission(state, o, 1); err != nil {
				return nil, err
			}
		}
	}
	res.Normalize()
	return res, nil
}

// RandomModel creates a fully connected Model with random
// parameters.
//
// If gen is non-nil, it is used to generate all of the
// random parameters.
//
// RandomModel may be used to generate starting points
// for Train.
func RandomModel(gen *rand.Rand, states []Label, obs []Obs) (*Model, error) {
	res := NewModel()
	for _, state := range states {
		if _, err := res.AddState(state); err != nil {
			return nil, err
		}
	}
	for i, prob := range randomDist(gen, len(states)) {
		if err := res.AddInitialState(states[i], prob); err != nil {
			return nil, err
		}
	}
	for _, state := range states {
		for i, prob := range randomDist(gen, len(states)) {
			if err := res.AddTransition(state, states[i], prob); err != nil {
				return nil, err
			}
		}
		for i, prob := range randomDist(gen, len(obs)) {
			if err := res.AddEmission(state, obs[i], prob); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
