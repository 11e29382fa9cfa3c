package hmm

import (
	"fmt"
	"math/rand"
)

// A Label identifies a hidden state.
// Labels must be comparable with the == operator.
type Label interface{}

// An Obs is an observation for a single timestep.
// Observations must be comparable with the == operator.
type Obs interface{}

// A State is a hidden state in a Model.
//
// Transitions refer to other states by their index in
// the owning Model.
type State struct {
	label       Label
	transitions *Sampler[int]
	emissions   *Sampler[Obs]
}

func newState(label Label) *State {
	return &State{
		label:       label,
		transitions: NewSampler[int](),
		emissions:   NewSampler[Obs](),
	}
}

// Label returns the label of the state.
func (s *State) Label() Label {
	return s.label
}

// Transition samples the index of the next state.
func (s *State) Transition(gen *rand.Rand) (int, error) {
	return s.transitions.Sample(gen)
}

// Emit samples an observation.
func (s *State) Emit(gen *rand.Rand) (Obs, error) {
	return s.emissions.Sample(gen)
}

// TransitionProbability returns the probability of
// moving to the state with the given index.
func (s *State) TransitionProbability(target int) float64 {
	return s.transitions.ProbabilityOf(target)
}

// EmitProbability returns the probability of emitting o.
// Unknown observations have probability 0.
func (s *State) EmitProbability(o Obs) float64 {
	if !usable(o) {
		return 0
	}
	return s.emissions.ProbabilityOf(o)
}

// Transitions returns the outgoing transitions, keyed by
// target index, in insertion order.
func (s *State) Transitions() []Entry[int] {
	return s.transitions.Entries()
}

// Emissions returns the emissions in insertion order.
func (s *State) Emissions() []Entry[Obs] {
	return s.emissions.Entries()
}

// Model is a discrete hidden Markov model.
//
// States are created the first time a label is used and
// are stored in insertion order.
// Every algorithm in this package visits states in that
// order, which makes tie-breaking deterministic.
//
// A Model may be used concurrently once it is no longer
// being modified.
type Model struct {
	states  []*State
	index   map[Label]int
	initial *Sampler[int]

	symbols   []Obs
	symbolSet map[Obs]struct{}
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		index:     map[Label]int{},
		initial:   NewSampler[int](),
		symbolSet: map[Obs]struct{}{},
	}
}

// AddState registers a state and returns its index.
// If the state already exists, its index is returned.
func (m *Model) AddState(label Label) (int, error) {
	if !usable(label) {
		return 0, fmt.Errorf("%w: state %v", ErrInvalidLabel, label)
	}
	if i, ok := m.index[label]; ok {
		return i, nil
	}
	i := len(m.states)
	m.states = append(m.states, newState(label))
	m.index[label] = i
	return i, nil
}

// AddInitialState adds weight to the probability of
// starting in the given state.
func (m *Model) AddInitialState(label Label, weight float64) error {
	if err := checkWeight(weight); err != nil {
		return err
	}
	i, err := m.AddState(label)
	if err != nil {
		return err
	}
	return m.initial.Add(i, weight)
}

// AddTransition adds weight to the transition between two
// states.
func (m *Model) AddTransition(from, to Label, weight float64) error {
	if err := checkWeight(weight); err != nil {
		return err
	}
	if !usable(from) || !usable(to) {
		return fmt.Errorf("%w: transition %v -> %v", ErrInvalidLabel, from, to)
	}
	fromIdx, _ := m.AddState(from)
	toIdx, _ := m.AddState(to)
	return m.states[fromIdx].transitions.Add(toIdx, weight)
}

// AddEmission adds weight to the probability that a
// state emits o.
func (m *Model) AddEmission(label Label, o Obs, weight float64) error {
	if err := checkWeight(weight); err != nil {
		return err
	}
	if !usable(o) {
		return fmt.Errorf("%w: observation %v", ErrInvalidLabel, o)
	}
	i, err := m.AddState(label)
	if err != nil {
		return err
	}
	if _, ok := m.symbolSet[o]; !ok {
		m.symbolSet[o] = struct{}{}
		m.symbols = append(m.symbols, o)
	}
	return m.states[i].emissions.Add(o, weight)
}

// Normalize turns every weight into a probability by
// normalizing the initial distribution and each state's
// transitions and emissions independently.
func (m *Model) Normalize() {
	m.initial.Normalize()
	for _, s := range m.states {
		s.transitions.Normalize()
		s.emissions.Normalize()
	}
}

// NumStates returns the number of states.
func (m *Model) NumStates() int {
	return len(m.states)
}

// Index returns the index of the labeled state.
func (m *Model) Index(label Label) (int, bool) {
	if !usable(label) {
		return 0, false
	}
	i, ok := m.index[label]
	return i, ok
}

// State returns the state at index i.
func (m *Model) State(i int) *State {
	return m.states[i]
}

// StateByLabel returns the labeled state, or nil.
func (m *Model) StateByLabel(label Label) *State {
	if i, ok := m.Index(label); ok {
		return m.states[i]
	}
	return nil
}

// Labels returns the state labels in index order.
func (m *Model) Labels() []Label {
	res := make([]Label, len(m.states))
	for i, s := range m.states {
		res[i] = s.label
	}
	return res
}

// Symbols returns every observation that was ever given
// an emission, in the order they were first added.
func (m *Model) Symbols() []Obs {
	return append([]Obs{}, m.symbols...)
}

// Initial returns the initial distribution in insertion
// order.
func (m *Model) Initial() []Entry[Label] {
	var res []Entry[Label]
	m.initial.Each(func(i int, w float64) {
		res = append(res, Entry[Label]{Item: m.states[i].label, Weight: w})
	})
	return res
}

// InitialProbability returns the probability of starting
// in the labeled state.
func (m *Model) InitialProbability(label Label) float64 {
	i, ok := m.Index(label)
	if !ok {
		return 0
	}
	return m.initial.ProbabilityOf(i)
}

// TransitionProbability returns the probability of
// moving from one labeled state to another.
func (m *Model) TransitionProbability(from, to Label) float64 {
	fromIdx, ok1 := m.Index(from)
	toIdx, ok2 := m.Index(to)
	if !ok1 || !ok2 {
		return 0
	}
	return m.states[fromIdx].TransitionProbability(toIdx)
}

// EmitProbability returns the probability that the
// labeled state emits o.
func (m *Model) EmitProbability(label Label, o Obs) float64 {
	i, ok := m.Index(label)
	if !ok {
		return 0
	}
	return m.states[i].EmitProbability(o)
}
