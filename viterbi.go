package hmm

// Viterbi computes the most probable sequence of hidden
// states given the observations, along with the joint
// probability of that path and the observations.
//
// Ties are broken in favor of the state with the lowest
// index, i.e. the state that was added to the model
// first.
//
// If no hidden sequence can explain the observations, the
// path is nil and the probability is 0.
func Viterbi(m *Model, obs []Obs) ([]Label, float64, error) {
	if err := checkSequence(obs); err != nil {
		return nil, 0, err
	}
	c := newModelCache(m)
	emit := c.EmissionTable(obs)
	numSteps, numStates := len(obs), c.NumStates()

	prob := newTable(numSteps, numStates)
	back := make([][]int, numSteps)
	for t := range back {
		back[t] = make([]int, numStates)
	}

	for s, p := range c.Init {
		prob[0][s] = p * emit[0][s]
		back[0][s] = -1
	}
	for t := 1; t < numSteps; t++ {
		for s, incoming := range c.Incoming {
			best, bestFrom := 0.0, -1
			for _, trans := range incoming {
				if p := prob[t-1][trans.From] * trans.Prob; p > best {
					best, bestFrom = p, trans.From
				}
			}
			prob[t][s] = best * emit[t][s]
			back[t][s] = bestFrom
		}
	}

	last, lastProb := -1, 0.0
	for s, p := range prob[numSteps-1] {
		if p > lastProb {
			last, lastProb = s, p
		}
	}
	if last < 0 {
		return nil, 0, nil
	}

	path := make([]Label, numSteps)
	state := last
	for t := numSteps - 1; t >= 0; t-- {
		path[t] = m.states[state].label
		state = back[t][state]
	}
	return path, lastProb, nil
}

// MostLikely is like Viterbi, but it only returns the
// path.
// It returns nil if the observations are malformed or
// cannot be explained.
func MostLikely(m *Model, obs []Obs) []Label {
	path, _, err := Viterbi(m, obs)
	if err != nil {
		return nil
	}
	return path
}
