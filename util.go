package hmm

import (
	"math/rand"
	"reflect"

	"gonum.org/v1/gonum/floats"
)

// uniform draws a number in [0, 1) from gen, or from the
// global source if gen is nil.
func uniform(gen *rand.Rand) float64 {
	if gen == nil {
		return rand.Float64()
	}
	return gen.Float64()
}

// usable checks that x can be used as a map key.
func usable(x interface{}) bool {
	return x != nil && reflect.TypeOf(x).Comparable()
}

// checkSequence rejects sequences that no algorithm can
// score.
func checkSequence(obs []Obs) error {
	if len(obs) == 0 {
		return &SequenceError{Index: -1, Reason: "empty sequence"}
	}
	for t, o := range obs {
		if !usable(o) {
			return &SequenceError{Index: t, Reason: "unusable observation"}
		}
	}
	return nil
}

// randomDist generates a random probability distribution
// over n outcomes.
// Every outcome gets positive probability.
func randomDist(gen *rand.Rand, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 0.05 + uniform(gen)
	}
	floats.Scale(1/floats.Sum(res), res)
	return res
}
