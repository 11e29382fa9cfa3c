// Package classify labels observation sequences by
// picking the most likely of several Models.
package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	hmm "github.com/unixpickle/discrete-hmm"
)

// ErrUnscoreable is returned when no Model can produce a
// sequence.
var ErrUnscoreable = errors.New("no model can produce the sequence")

// A Result describes the outcome of classifying one
// sequence.
type Result struct {
	Class string

	// Probability is the likelihood of the sequence under
	// the winning Model.
	Probability float64

	// Scores maps every class to its likelihood.
	Scores map[string]float64
}

// A Classifier holds one Model per class.
type Classifier struct {
	// Logger receives evaluation progress.
	// If it is nil, slog.Default() is used.
	Logger *slog.Logger

	classes []string
	models  map[string]*hmm.Model
}

// New creates a Classifier.
// The map is copied, but the Models are shared.
func New(models map[string]*hmm.Model) *Classifier {
	res := &Classifier{models: make(map[string]*hmm.Model, len(models))}
	for class, m := range models {
		res.classes = append(res.classes, class)
		res.models[class] = m
	}
	sort.Strings(res.classes)
	return res
}

// Classes returns the sorted class names.
func (c *Classifier) Classes() []string {
	return append([]string{}, c.classes...)
}

// Classify returns the class whose Model gives obs the
// highest likelihood.
// Ties go to the lexicographically smallest class.
func (c *Classifier) Classify(obs []hmm.Obs) (Result, error) {
	res := Result{Scores: make(map[string]float64, len(c.classes))}
	for _, class := range c.classes {
		p, err := hmm.ProbabilityOfObserved(c.models[class], obs)
		if err != nil {
			return Result{}, fmt.Errorf("class %s: %w", class, err)
		}
		res.Scores[class] = p
		if p > res.Probability {
			res.Class, res.Probability = class, p
		}
	}
	if res.Probability == 0 {
		return res, ErrUnscoreable
	}
	return res, nil
}
