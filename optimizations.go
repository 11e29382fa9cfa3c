package hmm

// modelCache is a dense, index-based view of a Model.
// It is built once per call by the dynamic programming
// routines and never shared between calls.
type modelCache struct {
	Model *Model

	// Init stores the initial probability of each state.
	Init []float64

	// Outgoing lists each state's transitions in insertion
	// order.
	Outgoing [][]fastTransition

	// Incoming lists the transitions into each state,
	// ordered by source index.
	Incoming [][]fastTransition
}

// fastTransition is a transition between two state
// indices along with its probability.
type fastTransition struct {
	From int
	To   int
	Prob float64
}

func newModelCache(m *Model) *modelCache {
	n := len(m.states)
	res := &modelCache{
		Model:    m,
		Init:     make([]float64, n),
		Outgoing: make([][]fastTransition, n),
		Incoming: make([][]fastTransition, n),
	}
	for i := range m.states {
		res.Init[i] = m.initial.ProbabilityOf(i)
	}
	for from, state := range m.states {
		total := state.transitions.Total()
		state.transitions.Each(func(to int, w float64) {
			t := fastTransition{From: from, To: to, Prob: w / total}
			res.Outgoing[from] = append(res.Outgoing[from], t)
			res.Incoming[to] = append(res.Incoming[to], t)
		})
	}
	return res
}

// NumStates returns the number of states.
func (c *modelCache) NumStates() int {
	return len(c.Init)
}

// EmissionTable computes, for each timestep t and state
// s, the probability that s emits obs[t].
func (c *modelCache) EmissionTable(obs []Obs) [][]float64 {
	res := make([][]float64, len(obs))
	for t, o := range obs {
		row := make([]float64, c.NumStates())
		for s, state := range c.Model.states {
			row[s] = state.emissions.ProbabilityOf(o)
		}
		res[t] = row
	}
	return res
}

// newTable allocates a zeroed T by S table.
func newTable(numSteps, numStates int) [][]float64 {
	backing := make([]float64, numSteps*numStates)
	res := make([][]float64, numSteps)
	for t := range res {
		res[t] = backing[t*numStates : (t+1)*numStates]
	}
	return res
}
