package hmm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// An Estimate stores re-estimated parameters for the
// edges of a Model.
//
// Estimates computed against the same Model can be summed
// with Merge, and a new Model can be built from the sums.
type Estimate struct {
	model *Model

	// init[i] is the initial weight of state i.
	init []float64

	// trans[i][k] is the weight of the k-th transition of
	// state i, in the source Model's insertion order.
	trans [][]float64

	// emit[i][k] is the weight of the k-th emission of
	// state i.
	emit [][]float64
}

func newEstimate(m *Model) *Estimate {
	res := &Estimate{
		model: m,
		init:  make([]float64, len(m.states)),
		trans: make([][]float64, len(m.states)),
		emit:  make([][]float64, len(m.states)),
	}
	for i, state := range m.states {
		res.trans[i] = make([]float64, state.transitions.Len())
		res.emit[i] = make([]float64, state.emissions.Len())
	}
	return res
}

// BaumWelch computes one step of Baum-Welch re-estimation
// for a single observation sequence.
//
// Only transitions and emissions which exist in m are
// re-estimated.
// Parameters whose expected counts have a zero
// denominator are estimated as 0, and a sequence which m
// cannot produce yields an all-zero Estimate.
func BaumWelch(m *Model, obs []Obs) (*Estimate, error) {
	est, _, err := baumWelch(m, obs)
	return est, err
}

func baumWelch(m *Model, obs []Obs) (*Estimate, float64, error) {
	fb, err := NewForwardBackward(m, obs)
	if err != nil {
		return nil, 0, err
	}
	est := newEstimate(m)
	prob := fb.Probability
	if prob == 0 {
		return est, fb.LogLikelihood(), nil
	}

	c := fb.cache
	alpha, beta := fb.Forward.values, fb.Backward.values
	numSteps := len(obs)

	gamma := newTable(numSteps, c.NumStates())
	xiSums := make([][]float64, c.NumStates())
	for i, outgoing := range c.Outgoing {
		xiSums[i] = make([]float64, len(outgoing))
	}
	for t := 0; t < numSteps-1; t++ {
		for i, outgoing := range c.Outgoing {
			for k, trans := range outgoing {
				xi := alpha[t][i] * trans.Prob * fb.emit[t+1][trans.To] *
					beta[t+1][trans.To] / prob
				xiSums[i][k] += xi
				gamma[t][i] += xi
			}
		}
	}
	for i := range gamma[numSteps-1] {
		gamma[numSteps-1][i] = alpha[numSteps-1][i] / prob
	}

	copy(est.init, gamma[0])

	for i := range m.states {
		var fromTotal float64
		for t := 0; t < numSteps-1; t++ {
			fromTotal += gamma[t][i]
		}
		if fromTotal > 0 {
			for k, xiSum := range xiSums[i] {
				est.trans[i][k] = xiSum / fromTotal
			}
		}
	}

	for i, state := range m.states {
		var total float64
		for t, o := range obs {
			total += gamma[t][i]
			if k, ok := state.emissions.index[o]; ok {
				est.emit[i][k] += gamma[t][i]
			}
		}
		if total > 0 {
			floats.Scale(1/total, est.emit[i])
		}
	}

	return est, fb.LogLikelihood(), nil
}

// Merge adds the parameters of other to e.
//
// Both estimates must have been computed against the same
// Model.
func (e *Estimate) Merge(other *Estimate) error {
	if e.model != other.model {
		return ErrTopologyMismatch
	}
	floats.Add(e.init, other.init)
	for i := range e.trans {
		floats.Add(e.trans[i], other.trans[i])
		floats.Add(e.emit[i], other.emit[i])
	}
	return nil
}

// InitialProbability returns the estimated initial weight
// of the labeled state.
func (e *Estimate) InitialProbability(label Label) float64 {
	if i, ok := e.model.Index(label); ok {
		return e.init[i]
	}
	return 0
}

// TransitionProbability returns the estimated weight of
// a transition.
func (e *Estimate) TransitionProbability(from, to Label) float64 {
	fromIdx, ok1 := e.model.Index(from)
	toIdx, ok2 := e.model.Index(to)
	if !ok1 || !ok2 {
		return 0
	}
	if k, ok := e.model.states[fromIdx].transitions.index[toIdx]; ok {
		return e.trans[fromIdx][k]
	}
	return 0
}

// EmitProbability returns the estimated weight of an
// emission.
func (e *Estimate) EmitProbability(label Label, o Obs) float64 {
	i, ok := e.model.Index(label)
	if !ok || !usable(o) {
		return 0
	}
	if k, ok := e.model.states[i].emissions.index[o]; ok {
		return e.emit[i][k]
	}
	return 0
}

// Model builds a normalized Model from the estimated
// parameters.
//
// The new Model has the same states, in the same order,
// as the Model the estimate was computed against.
// Edges whose estimated weight is 0 are left out.
func (e *Estimate) Model() (*Model, error) {
	src := e.model
	res := NewModel()
	for _, state := range src.states {
		if _, err := res.AddState(state.label); err != nil {
			return nil, err
		}
	}
	for _, o := range src.symbols {
		res.symbolSet[o] = struct{}{}
		res.symbols = append(res.symbols, o)
	}
	for i, w := range e.init {
		if w > 0 {
			if err := res.initial.Add(i, w); err != nil {
				return nil, err
			}
		}
	}
	for i, state := range src.states {
		dst := res.states[i]
		for k, to := range state.transitions.items {
			if w := e.trans[i][k]; w > 0 {
				if err := dst.transitions.Add(to, w); err != nil {
					return nil, err
				}
			}
		}
		for k, o := range state.emissions.items {
			if w := e.emit[i][k]; w > 0 {
				if err := dst.emissions.Add(o, w); err != nil {
					return nil, err
				}
			}
		}
	}
	if res.initial.Total() == 0 {
		return nil, fmt.Errorf("%w: no initial state has positive weight", ErrDistributionEmpty)
	}
	res.Normalize()
	return res, nil
}
