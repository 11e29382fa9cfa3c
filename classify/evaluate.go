package classify

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"

	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/discrete-hmm/corpus"
	"golang.org/x/sync/errgroup"
)

// ClassStats counts the outcomes for one true class.
type ClassStats struct {
	Correct int
	Total   int
}

// A Report summarizes an evaluation run.
type Report struct {
	// Classes maps each true class to its counts.
	Classes map[string]*ClassStats

	// Unscoreable counts samples that no Model could
	// produce.
	Unscoreable int

	// Malformed counts samples that were not valid
	// observation sequences.
	Malformed int
}

// Total returns the number of evaluated samples.
func (r *Report) Total() int {
	var res int
	for _, stats := range r.Classes {
		res += stats.Total
	}
	return res
}

// Correct returns the number of correctly classified
// samples.
func (r *Report) Correct() int {
	var res int
	for _, stats := range r.Classes {
		res += stats.Correct
	}
	return res
}

// Accuracy returns the fraction of samples that were
// classified correctly, or 0 if there were none.
func (r *Report) Accuracy() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Correct()) / float64(total)
}

// SortedClasses returns the true classes in sorted order.
func (r *Report) SortedClasses() []string {
	res := make([]string, 0, len(r.Classes))
	for class := range r.Classes {
		res = append(res, class)
	}
	sort.Strings(res)
	return res
}

type outcome struct {
	class string
	err   error
}

// Evaluate classifies every sample and tallies the
// results.
//
// Up to parallelism samples are scored at once; if it is
// 0, GOMAXPROCS is used.
// Malformed and unscoreable samples count as incorrect.
// An error is only returned if ctx is done.
func (c *Classifier) Evaluate(ctx context.Context, samples []corpus.Sample,
	parallelism int) (*Report, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "classify_evaluate"))

	outcomes := make([]outcome, len(samples))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, sample := range samples {
		i, sample := i, sample
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := c.Classify(sample.Obs)
			outcomes[i] = outcome{class: res.Class, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Classes: map[string]*ClassStats{}}
	for i, sample := range samples {
		stats, ok := report.Classes[sample.Class]
		if !ok {
			stats = &ClassStats{}
			report.Classes[sample.Class] = stats
		}
		stats.Total++
		out := outcomes[i]
		switch {
		case errors.Is(out.err, hmm.ErrMalformedSequence):
			report.Malformed++
			logger.Debug("malformed sample", slog.Int("index", i), slog.Any("error", out.err))
		case errors.Is(out.err, ErrUnscoreable):
			report.Unscoreable++
			logger.Debug("unscoreable sample", slog.Int("index", i),
				slog.String("class", sample.Class))
		case out.err != nil:
			return nil, out.err
		case out.class == sample.Class:
			stats.Correct++
		}
	}
	logger.Info("evaluation complete",
		slog.Int("samples", len(samples)),
		slog.Float64("accuracy", report.Accuracy()),
		slog.Int("unscoreable", report.Unscoreable),
		slog.Int("malformed", report.Malformed),
	)
	return report, nil
}
