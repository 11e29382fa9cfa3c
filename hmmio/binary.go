package hmmio

import (
	"errors"
	"fmt"

	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Serializable{}).SerializerType(),
		DeserializeSerializable)
}

// Serializable wraps a Model so that it can be encoded
// with the serializer package.
//
// Every label and observation in the Model must
// implement serializer.Serializer.
type Serializable struct {
	*hmm.Model
}

// DeserializeSerializable deserializes a Serializable.
func DeserializeSerializable(d []byte) (s *Serializable, err error) {
	defer essentials.AddCtxTo("deserialize Model", &err)

	var states []serializer.Serializer
	var initStates []serializer.Serializer
	var initProbs []float64
	var transStates []serializer.Serializer
	var transProbs []float64
	var emitStates []serializer.Serializer
	var emitObs []serializer.Serializer
	var emitProbs []float64
	err = serializer.DeserializeAny(d, &states, &initStates, &initProbs,
		&transStates, &transProbs, &emitStates, &emitObs, &emitProbs)
	if err != nil {
		return nil, err
	}
	if len(transStates)%2 != 0 || len(transProbs) != len(transStates)/2 ||
		len(initProbs) != len(initStates) || len(emitStates) != len(emitObs) ||
		len(emitProbs) != len(emitObs) {
		return nil, errors.New("invalid slice size")
	}

	m := hmm.NewModel()
	for _, state := range states {
		if _, err := m.AddState(state); err != nil {
			return nil, err
		}
	}
	for i, state := range initStates {
		if err := m.AddInitialState(state, initProbs[i]); err != nil {
			return nil, err
		}
	}
	for i, prob := range transProbs {
		if err := m.AddTransition(transStates[i*2], transStates[i*2+1], prob); err != nil {
			return nil, err
		}
	}
	for i, prob := range emitProbs {
		if err := m.AddEmission(emitStates[i], emitObs[i], prob); err != nil {
			return nil, err
		}
	}
	return &Serializable{Model: m}, nil
}

// SerializerType returns the unique ID used to serialize
// a Model with the serializer package.
func (s *Serializable) SerializerType() string {
	return "github.com/unixpickle/discrete-hmm.Model"
}

// Serialize serializes the Model.
//
// Weights are stored as raw weights, so the decoded Model
// is normalized exactly when s.Model was.
func (s *Serializable) Serialize() (data []byte, err error) {
	defer essentials.AddCtxTo("serialize Model", &err)

	m := s.Model
	var states []serializer.Serializer
	var initStates []serializer.Serializer
	var initProbs []float64
	var transStates []serializer.Serializer
	var transProbs []float64
	var emitStates []serializer.Serializer
	var emitObs []serializer.Serializer
	var emitProbs []float64

	for i := 0; i < m.NumStates(); i++ {
		stateSer, err := asSerializer(m.State(i).Label())
		if err != nil {
			return nil, err
		}
		states = append(states, stateSer)
	}
	for _, entry := range m.Initial() {
		initStates = append(initStates, entry.Item.(serializer.Serializer))
		initProbs = append(initProbs, entry.Weight)
	}
	for i := 0; i < m.NumStates(); i++ {
		state := m.State(i)
		for _, entry := range state.Transitions() {
			transStates = append(transStates, states[i], states[entry.Item])
			transProbs = append(transProbs, entry.Weight)
		}
		for _, entry := range state.Emissions() {
			obsSer, err := asSerializer(entry.Item)
			if err != nil {
				return nil, err
			}
			emitStates = append(emitStates, states[i])
			emitObs = append(emitObs, obsSer)
			emitProbs = append(emitProbs, entry.Weight)
		}
	}
	return serializer.SerializeAny(states, initStates, initProbs, transStates, transProbs,
		emitStates, emitObs, emitProbs)
}

func asSerializer(x interface{}) (serializer.Serializer, error) {
	res, ok := x.(serializer.Serializer)
	if !ok {
		return nil, fmt.Errorf("not a Serializer: %T", x)
	}
	return res, nil
}
