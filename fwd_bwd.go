package hmm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// A Trellis stores a probability for every timestep and
// every state of a Model.
//
// A Trellis is never modified after it is returned.
type Trellis struct {
	model  *Model
	values [][]float64
}

// Len returns the number of timesteps.
func (t *Trellis) Len() int {
	return len(t.values)
}

// AtIndex returns the entry for the state with the given
// index.
func (t *Trellis) AtIndex(step, state int) float64 {
	return t.values[step][state]
}

// At returns the entry for the labeled state.
// Unknown labels yield 0.
func (t *Trellis) At(step int, label Label) float64 {
	i, ok := t.model.Index(label)
	if !ok {
		return 0
	}
	return t.values[step][i]
}

// Row returns the entries for one timestep as a map from
// labels to probabilities.
// Every state is present, even if its probability is 0.
func (t *Trellis) Row(step int) map[Label]float64 {
	res := make(map[Label]float64, len(t.values[step]))
	for i, p := range t.values[step] {
		res[t.model.states[i].label] = p
	}
	return res
}

// Forward computes, for each timestep t and state s, the
// joint probability of the first t+1 observations and of
// being in s at time t.
func Forward(m *Model, obs []Obs) (*Trellis, error) {
	if err := checkSequence(obs); err != nil {
		return nil, err
	}
	c := newModelCache(m)
	return forward(c, c.EmissionTable(obs)), nil
}

// Backward computes, for each timestep t and state s, the
// probability of the observations after t given that the
// model is in s at time t.
//
// The entries for the final timestep are 1.
func Backward(m *Model, obs []Obs) (*Trellis, error) {
	if err := checkSequence(obs); err != nil {
		return nil, err
	}
	c := newModelCache(m)
	return backward(c, c.EmissionTable(obs)), nil
}

// ProbabilityOfObserved computes the probability that the
// model produces obs.
//
// A valid sequence which the model cannot produce has
// probability 0 and no error.
func ProbabilityOfObserved(m *Model, obs []Obs) (float64, error) {
	alpha, err := Forward(m, obs)
	if err != nil {
		return 0, err
	}
	return totalProb(alpha), nil
}

// LogLikelihood is like ProbabilityOfObserved, but the
// result is in the log domain.
func LogLikelihood(m *Model, obs []Obs) (float64, error) {
	p, err := ProbabilityOfObserved(m, obs)
	if err != nil {
		return 0, err
	}
	return math.Log(p), nil
}

// ForwardBackward bundles the forward and backward
// tables for a single observation sequence.
type ForwardBackward struct {
	Forward  *Trellis
	Backward *Trellis

	// Probability is the probability of the observations.
	Probability float64

	obs   []Obs
	cache *modelCache
	emit  [][]float64
}

// NewForwardBackward runs both recursions on obs.
func NewForwardBackward(m *Model, obs []Obs) (*ForwardBackward, error) {
	if err := checkSequence(obs); err != nil {
		return nil, err
	}
	c := newModelCache(m)
	emit := c.EmissionTable(obs)
	alpha := forward(c, emit)
	return &ForwardBackward{
		Forward:     alpha,
		Backward:    backward(c, emit),
		Probability: totalProb(alpha),
		obs:         obs,
		cache:       c,
		emit:        emit,
	}, nil
}

// LogLikelihood returns the log of f.Probability.
func (f *ForwardBackward) LogLikelihood() float64 {
	return math.Log(f.Probability)
}

// Dist computes the posterior distribution over states at
// timestep t.
// If the observations are impossible, every entry is 0.
func (f *ForwardBackward) Dist(t int) map[Label]float64 {
	res := map[Label]float64{}
	for i, state := range f.cache.Model.states {
		var p float64
		if f.Probability > 0 {
			p = f.Forward.values[t][i] * f.Backward.values[t][i] / f.Probability
		}
		res[state.label] = p
	}
	return res
}

func forward(c *modelCache, emit [][]float64) *Trellis {
	alpha := newTable(len(emit), c.NumStates())
	for s, p := range c.Init {
		alpha[0][s] = p * emit[0][s]
	}
	for t := 1; t < len(emit); t++ {
		for s, incoming := range c.Incoming {
			var sum float64
			for _, trans := range incoming {
				sum += alpha[t-1][trans.From] * trans.Prob
			}
			alpha[t][s] = emit[t][s] * sum
		}
	}
	return &Trellis{model: c.Model, values: alpha}
}

func backward(c *modelCache, emit [][]float64) *Trellis {
	numSteps := len(emit)
	beta := newTable(numSteps, c.NumStates())
	for s := range beta[numSteps-1] {
		beta[numSteps-1][s] = 1
	}
	for t := numSteps - 2; t >= 0; t-- {
		for s, outgoing := range c.Outgoing {
			var sum float64
			for _, trans := range outgoing {
				sum += trans.Prob * emit[t+1][trans.To] * beta[t+1][trans.To]
			}
			beta[t][s] = sum
		}
	}
	return &Trellis{model: c.Model, values: beta}
}

func totalProb(alpha *Trellis) float64 {
	return floats.Sum(alpha.values[len(alpha.values)-1])
}
