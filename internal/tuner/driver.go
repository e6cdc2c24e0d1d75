// Package tuner contains the search loop that turns CryptOpt into an
// objective function. A surrogate-model optimizer proposes candidate
// annealing parameters; the aggregator measures each candidate over repeated
// external runs and feeds the score back into the optimizer.
package tuner

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Toalaah/CryptOpt/internal/runlog"
)

// Optimizer is the surrogate-model search the driver consumes: it proposes
// the next candidate point and absorbs the measured outcome. Points use the
// driver's Space ordering. How an implementation balances exploration and
// exploitation is its own business; the driver only enforces the evaluation
// budget.
type Optimizer interface {
	// Suggest returns the next point to evaluate, within the space bounds.
	Suggest() []float64

	// Observe reports the aggregate score measured at a suggested point.
	Observe(point []float64, score float64)
}

// Result is the outcome of a completed run.
type Result struct {
	// Best is the highest-scoring parameter assignment found.
	Best map[string]float64

	// Score is the aggregate score of Best.
	Score float64

	// Iterations is the number of completed iterations.
	Iterations int
}

// Driver owns the search loop: a fixed number of suggest / measure / observe
// rounds over one parameter space. There is no checkpointing and no
// resumption; a failure mid-run leaves only what already reached the run
// log.
type Driver struct {
	space      *Space
	opt        Optimizer
	agg        *Aggregator
	log        *runlog.Log
	iterations int
}

// NewDriver assembles a driver for a fixed iteration budget.
func NewDriver(space *Space, opt Optimizer, agg *Aggregator, log *runlog.Log, iterations int) (*Driver, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d", iterations)
	}

	return &Driver{
		space:      space,
		opt:        opt,
		agg:        agg,
		log:        log,
		iterations: iterations,
	}, nil
}

// Run executes the full iteration budget and returns the best candidate
// found. The best is updated only on strict improvement, so earlier
// candidates win ties. The first trial failure aborts the run with the
// underlying error.
func (d *Driver) Run() (Result, error) {
	best := Result{Score: math.Inf(-1)}

	for i := 1; i <= d.iterations; i++ {
		point := d.opt.Suggest()
		params := d.space.Vector(point)

		score, err := d.agg.Aggregate(i, params)
		if err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", i, err)
		}

		d.opt.Observe(point, score)

		if score > best.Score {
			best.Best = params
			best.Score = score
		}
		best.Iterations = i

		logrus.WithFields(logrus.Fields{
			"iteration": i,
			"of":        d.iterations,
			"score":     score,
			"best":      best.Score,
		}).Info("iteration complete")
	}

	if err := d.log.Best(best.Best, best.Score); err != nil {
		return Result{}, err
	}

	return best, nil
}
