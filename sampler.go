package hmm

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// An Entry is an item in a Sampler along with its raw
// weight.
type Entry[T comparable] struct {
	Item   T
	Weight float64
}

// A Sampler is an ordered collection of weighted items
// supporting weighted random draws and probability
// lookups.
//
// Raw weights are stored separately from the cumulative
// weights used for sampling, so Normalize is idempotent.
// Adding an item which is already present merges the new
// weight into the existing entry.
//
// A Sampler may be read concurrently, but it must not be
// modified while it is being read.
type Sampler[T comparable] struct {
	items      []T
	weights    []float64
	cumulative []float64
	index      map[T]int
}

// NewSampler creates an empty Sampler.
func NewSampler[T comparable]() *Sampler[T] {
	return &Sampler[T]{index: map[T]int{}}
}

// Add adds weight to the entry for item, appending a new
// entry if item is not yet present.
func (s *Sampler[T]) Add(item T, weight float64) error {
	if err := checkWeight(weight); err != nil {
		return err
	}
	if s.index == nil {
		s.index = map[T]int{}
	}
	if i, ok := s.index[item]; ok {
		s.weights[i] += weight
		for j := i; j < len(s.cumulative); j++ {
			s.cumulative[j] += weight
		}
		return nil
	}
	total := s.Total()
	s.index[item] = len(s.items)
	s.items = append(s.items, item)
	s.weights = append(s.weights, weight)
	s.cumulative = append(s.cumulative, total+weight)
	return nil
}

// Len returns the number of distinct items.
func (s *Sampler[T]) Len() int {
	return len(s.items)
}

// Total returns the sum of all the weights, or 0 if the
// Sampler is empty.
func (s *Sampler[T]) Total() float64 {
	if len(s.cumulative) == 0 {
		return 0
	}
	return s.cumulative[len(s.cumulative)-1]
}

// Weight returns the raw weight of item, or 0 if it is
// absent.
func (s *Sampler[T]) Weight(item T) float64 {
	if i, ok := s.index[item]; ok {
		return s.weights[i]
	}
	return 0
}

// ProbabilityOf returns the share of the total weight
// held by item.
// Absent items have probability 0.
func (s *Sampler[T]) ProbabilityOf(item T) float64 {
	i, ok := s.index[item]
	if !ok {
		return 0
	}
	total := s.Total()
	if total == 0 {
		return 0
	}
	return s.weights[i] / total
}

// Sample draws an item with probability proportional to
// its weight.
//
// If gen is nil, the global source in package rand is
// used.
func (s *Sampler[T]) Sample(gen *rand.Rand) (T, error) {
	total := s.Total()
	if total == 0 {
		var zero T
		return zero, ErrDistributionEmpty
	}
	r := uniform(gen) * total
	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > r
	})
	if i == len(s.items) {
		// Only reachable through rounding at the upper edge.
		i--
	}
	return s.items[i], nil
}

// Normalize rescales the raw weights so that they sum to
// 1.
// It has no effect on an empty Sampler.
func (s *Sampler[T]) Normalize() {
	total := floats.Sum(s.weights)
	if total == 0 {
		return
	}
	floats.Scale(1/total, s.weights)
	s.rebuild()
}

// Entries returns a copy of the entries in insertion
// order.
func (s *Sampler[T]) Entries() []Entry[T] {
	res := make([]Entry[T], len(s.items))
	for i, item := range s.items {
		res[i] = Entry[T]{Item: item, Weight: s.weights[i]}
	}
	return res
}

// Each calls f for every entry in insertion order.
func (s *Sampler[T]) Each(f func(item T, weight float64)) {
	for i, item := range s.items {
		f(item, s.weights[i])
	}
}

func checkWeight(weight float64) error {
	if !(weight > 0) || math.IsInf(weight, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	return nil
}

func (s *Sampler[T]) rebuild() {
	var total float64
	for i, w := range s.weights {
		total += w
		s.cumulative[i] = total
	}
}
