package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrDistributionEmpty is returned when sampling from a
	// distribution whose total weight is 0.
	ErrDistributionEmpty = errors.New("hmm: distribution is empty")

	// ErrInvalidWeight is returned when a weight is not a
	// positive, finite number.
	ErrInvalidWeight = errors.New("hmm: weight must be positive and finite")

	// ErrInvalidLabel is returned for nil or non-comparable
	// state labels and observations.
	ErrInvalidLabel = errors.New("hmm: label or observation not comparable")

	// ErrMalformedSequence is returned when an observation
	// sequence is empty or contains unusable observations.
	ErrMalformedSequence = errors.New("hmm: malformed observation sequence")

	// ErrTopologyMismatch is returned when merging estimates
	// that were computed against different models.
	ErrTopologyMismatch = errors.New("hmm: estimates come from different models")
)

// A SequenceError describes why an observation sequence
// was rejected.
// It matches ErrMalformedSequence with errors.Is.
type SequenceError struct {
	// Index is the offending timestep, or -1 if the
	// sequence as a whole is at fault.
	Index  int
	Reason string
}

func (s *SequenceError) Error() string {
	if s.Index < 0 {
		return ErrMalformedSequence.Error() + ": " + s.Reason
	}
	return fmt.Sprintf("%s: %s at timestep %d", ErrMalformedSequence, s.Reason, s.Index)
}

func (s *SequenceError) Unwrap() error {
	return ErrMalformedSequence
}
