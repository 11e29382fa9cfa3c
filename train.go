package hmm

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// TrainConfig configures Train.
type TrainConfig struct {
	// Epochs is the maximum number of Baum-Welch steps.
	Epochs int

	// Parallelism is the number of sequences to process
	// concurrently.
	// If it is 0, then GOMAXPROCS is used.
	Parallelism int

	// Tolerance stops training early once an epoch improves
	// the total log-likelihood by less than Tolerance.
	// If it is 0, every epoch runs.
	Tolerance float64

	// Logger receives per-epoch progress at Debug level.
	// If it is nil, slog.Default() is used.
	Logger *slog.Logger

	// Callback, if non-nil, is called after every epoch with
	// the total log-likelihood of the sequences under the
	// model that epoch started from.
	Callback func(epoch int, logLikelihood float64)
}

// DefaultTrainConfig returns the default configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Epochs: 3}
}

// Train runs Baum-Welch on a set of observation
// sequences.
//
// Each epoch re-estimates every sequence independently
// against the current model, sums the estimates in input
// order, and builds a single normalized Model from the
// sums, which becomes the input of the next epoch.
//
// The argument m is never modified.
func Train(m *Model, seqs [][]Obs, cfg TrainConfig) (*Model, error) {
	if len(seqs) == 0 {
		return nil, &SequenceError{Index: -1, Reason: "no training sequences"}
	}
	for i, seq := range seqs {
		if err := checkSequence(seq); err != nil {
			return nil, fmt.Errorf("training sequence %d: %w", i, err)
		}
	}
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "hmm_train"))

	prevLikelihood := math.Inf(-1)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		estimates := make([]*Estimate, len(seqs))
		likelihoods := make([]float64, len(seqs))
		var g errgroup.Group
		g.SetLimit(parallelism)
		for i, seq := range seqs {
			i, seq := i, seq
			g.Go(func() error {
				est, ll, err := baumWelch(m, seq)
				if err != nil {
					return fmt.Errorf("training sequence %d: %w", i, err)
				}
				estimates[i], likelihoods[i] = est, ll
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		merged := estimates[0]
		for _, est := range estimates[1:] {
			if err := merged.Merge(est); err != nil {
				return nil, err
			}
		}

		likelihood := floats.Sum(likelihoods)
		logger.Debug("epoch complete",
			slog.Int("epoch", epoch),
			slog.Int("sequences", len(seqs)),
			slog.Float64("log_likelihood", likelihood),
		)
		if cfg.Callback != nil {
			cfg.Callback(epoch, likelihood)
		}
		if cfg.Tolerance > 0 && epoch > 0 && likelihood-prevLikelihood < cfg.Tolerance {
			logger.Debug("converged",
				slog.Int("epoch", epoch),
				slog.Float64("improvement", likelihood-prevLikelihood),
			)
			break
		}
		prevLikelihood = likelihood

		next, err := merged.Model()
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		m = next
	}
	return m, nil
}

// TotalLogLikelihood sums the log-likelihood of every
// sequence.
func TotalLogLikelihood(m *Model, seqs [][]Obs) (float64, error) {
	var total float64
	for i, seq := range seqs {
		ll, err := LogLikelihood(m, seq)
		if err != nil {
			return 0, fmt.Errorf("sequence %d: %w", i, err)
		}
		total += ll
	}
	return total, nil
}
