package tuner

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/Toalaah/CryptOpt/internal/cryptopt"
	"github.com/Toalaah/CryptOpt/internal/runlog"
)

// Evaluator runs one trial of the external optimizer for a candidate
// assignment of the tuned parameters.
type Evaluator interface {
	// Evaluate launches one run and returns its parsed result.
	Evaluate(params map[string]float64) (cryptopt.TrialResult, error)

	// Describe renders the full invocation field set for the run log.
	Describe(params map[string]float64) ([]runlog.Field, error)
}

// Aggregator reduces one candidate to a single noise-robust score by running
// a fixed number of trials and taking their geometric mean. The score
// CryptOpt reports is a ratio, so the run-to-run noise is multiplicative; the
// geometric mean is the matching central-tendency estimator and keeps
// aggregates comparable across differently sized field arithmetic.
type Aggregator struct {
	eval   Evaluator
	trials int
	log    *runlog.Log
}

// NewAggregator wires an aggregator to an evaluator and the run log.
func NewAggregator(eval Evaluator, trials int, log *runlog.Log) (*Aggregator, error) {
	if trials < 1 {
		return nil, fmt.Errorf("trials must be at least 1, got %d", trials)
	}

	return &Aggregator{eval: eval, trials: trials, log: log}, nil
}

// Aggregate evaluates the candidate the configured number of times and
// returns the geometric mean of the scores. Each trial is appended to the
// run log as it completes; the summary line is written only once every trial
// has succeeded. The first failed trial aborts the aggregation rather than
// averaging the survivors.
func (a *Aggregator) Aggregate(iteration int, params map[string]float64) (float64, error) {
	fields, err := a.eval.Describe(params)
	if err != nil {
		return 0, fmt.Errorf("rendering invocation fields: %w", err)
	}

	scores := make([]float64, 0, a.trials)

	for trial := 0; trial < a.trials; trial++ {
		res, err := a.eval.Evaluate(params)
		if err != nil {
			return 0, fmt.Errorf("trial %d/%d: %w", trial+1, a.trials, err)
		}

		if err := a.log.Trial(iteration, res.RunID, fields, res.Score); err != nil {
			return 0, err
		}

		scores = append(scores, res.Score)
	}

	aggregate := stat.GeometricMean(scores, nil)

	if err := a.log.Aggregate(a.trials, aggregate); err != nil {
		return 0, err
	}

	return aggregate, nil
}
