// Package hmmio reads and writes hmm Models.
//
// Models can be stored as JSON or YAML documents, or as
// binary blobs through github.com/unixpickle/serializer.
package hmmio

import (
	"encoding/json"
	"fmt"
	"math"

	hmm "github.com/unixpickle/discrete-hmm"
)

// A Document is the plain-data form of a Model.
//
// States are listed in model order, so decoding a
// Document reproduces the state order, and with it the
// tie-breaking behavior of the decoded Model.
type Document struct {
	InitialStates []Weight        `json:"initial_states" yaml:"initial_states"`
	States        []StateDocument `json:"states" yaml:"states"`
}

// A Weight pairs a state label with a probability.
type Weight struct {
	Label interface{} `json:"label" yaml:"label"`
	Prob  float64     `json:"prob" yaml:"prob"`
}

// An Emission pairs an observation with a probability.
type Emission struct {
	Symbol interface{} `json:"symbol" yaml:"symbol"`
	Prob   float64     `json:"prob" yaml:"prob"`
}

// A StateDocument lists one state's outgoing
// transitions and emissions.
type StateDocument struct {
	Label       interface{} `json:"label" yaml:"label"`
	Transitions []Weight    `json:"transitions" yaml:"transitions"`
	Emissions   []Emission  `json:"emissions" yaml:"emissions"`
}

// FromModel converts a Model into a Document.
// Every weight is stored as a probability.
func FromModel(m *hmm.Model) *Document {
	doc := &Document{}
	for _, entry := range m.Initial() {
		doc.InitialStates = append(doc.InitialStates, Weight{
			Label: entry.Item,
			Prob:  m.InitialProbability(entry.Item),
		})
	}
	for i := 0; i < m.NumStates(); i++ {
		state := m.State(i)
		stateDoc := StateDocument{Label: state.Label()}
		for _, entry := range state.Transitions() {
			stateDoc.Transitions = append(stateDoc.Transitions, Weight{
				Label: m.State(entry.Item).Label(),
				Prob:  state.TransitionProbability(entry.Item),
			})
		}
		for _, entry := range state.Emissions() {
			stateDoc.Emissions = append(stateDoc.Emissions, Emission{
				Symbol: entry.Item,
				Prob:   state.EmitProbability(entry.Item),
			})
		}
		doc.States = append(doc.States, stateDoc)
	}
	return doc
}

// Model builds the Model described by d.
//
// Entries with probability 0 are skipped, since they
// describe edges that do not exist.
func (d *Document) Model() (*hmm.Model, error) {
	m := hmm.NewModel()
	for _, state := range d.States {
		if _, err := m.AddState(normalizeLabel(state.Label)); err != nil {
			return nil, err
		}
	}
	for _, w := range d.InitialStates {
		if err := checkProb(w.Prob); err != nil {
			return nil, fmt.Errorf("initial state %v: %w", w.Label, err)
		} else if w.Prob == 0 {
			continue
		}
		if err := m.AddInitialState(normalizeLabel(w.Label), w.Prob); err != nil {
			return nil, err
		}
	}
	for _, state := range d.States {
		from := normalizeLabel(state.Label)
		for _, w := range state.Transitions {
			if err := checkProb(w.Prob); err != nil {
				return nil, fmt.Errorf("transition %v -> %v: %w", from, w.Label, err)
			} else if w.Prob == 0 {
				continue
			}
			if err := m.AddTransition(from, normalizeLabel(w.Label), w.Prob); err != nil {
				return nil, err
			}
		}
		for _, e := range state.Emissions {
			if err := checkProb(e.Prob); err != nil {
				return nil, fmt.Errorf("emission %v -> %v: %w", from, e.Symbol, err)
			} else if e.Prob == 0 {
				continue
			}
			if err := m.AddEmission(from, normalizeLabel(e.Symbol), e.Prob); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func checkProb(p float64) error {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: %v", hmm.ErrInvalidWeight, p)
	}
	return nil
}

// normalizeLabel maps decoded numbers onto Go's natural
// types, so that a label written as 3 decodes as int(3)
// regardless of the format.
func normalizeLabel(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return normalizeLabel(f)
		}
		return v.String()
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int(v)
		}
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return v
}
