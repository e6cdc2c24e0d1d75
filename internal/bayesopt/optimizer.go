package bayesopt

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

//////
// Exported functionalities.
//////

// DefaultConfig returns a configuration that behaves well without tuning:
// UCB acquisition with moderate exploration, ten random samples to seed the
// model, fifty candidates per suggestion, and a time-seeded random state.
func DefaultConfig() Config {
	return Config{
		InitialSamples: 10,
		NumCandidates:  50,
		KernelWidth:    1.0,
		Acquisition:    UCB,
		AcqParams: AcquisitionParams{
			Beta:        2.0,
			Xi:          0.01,
			BestSoFar:   -math.MaxFloat64,
			RandomState: rand.New(rand.NewSource(time.Now().UnixNano())),
		},
	}
}

// Optimizer is a sequential model-based maximizer over a fixed box of
// bounds. Suggest proposes the next point to evaluate; Observe feeds the
// measured objective value back into the posterior. Safe for concurrent use,
// though suggestions interleaved by multiple goroutines share one evaluation
// history.
type Optimizer struct {
	cfg    Config
	bounds []Bounds

	gp *gaussianProcess

	// rngMu serializes draws from the shared random state.
	rngMu sync.Mutex

	// mu protects the observation count and the incumbent best.
	mu         sync.Mutex
	observed   int
	bestParams []float64
	bestScore  float64
}

// New creates an optimizer for the given bounds, one Bounds entry per
// dimension. Unset NumCandidates, KernelWidth, Acquisition and RandomState
// fall back to their DefaultConfig values. InitialSamples is taken as given;
// zero disables the random warm-up entirely.
func New(bounds []Bounds, cfg Config) *Optimizer {
	def := DefaultConfig()

	if cfg.NumCandidates <= 0 {
		cfg.NumCandidates = def.NumCandidates
	}

	if cfg.KernelWidth <= 0 {
		cfg.KernelWidth = def.KernelWidth
	}

	if cfg.Acquisition == nil {
		cfg.Acquisition = def.Acquisition
	}

	if cfg.AcqParams.RandomState == nil {
		cfg.AcqParams.RandomState = def.AcqParams.RandomState
	}

	gp := newGaussianProcess()
	gp.SetSigma(cfg.KernelWidth)

	return &Optimizer{
		cfg:       cfg,
		bounds:    append([]Bounds(nil), bounds...),
		gp:        gp,
		bestScore: math.Inf(-1),
	}
}

// Suggest returns the next point to evaluate. Until InitialSamples
// observations have been reported the point is a uniform random draw; after
// that, NumCandidates random points are scored against the posterior and the
// highest-scoring one is proposed. Every returned point lies within the
// bounds.
func (o *Optimizer) Suggest() []float64 {
	o.mu.Lock()
	observed := o.observed
	best := o.bestScore
	o.mu.Unlock()

	// Cold start: the posterior has no support yet, explore uniformly.
	if observed < o.cfg.InitialSamples {
		return o.randomPoint()
	}

	params := o.cfg.AcqParams
	params.BestSoFar = best

	var next []float64

	bestAcquisition := math.Inf(-1)

	for i := 0; i < o.cfg.NumCandidates; i++ {
		candidate := o.randomPoint()

		mean, variance := o.gp.Predict(o.toUnit(candidate))

		acquisition := o.cfg.Acquisition(mean, variance, params)

		if next == nil || acquisition > bestAcquisition {
			bestAcquisition = acquisition
			next = candidate
		}
	}

	return next
}

// Observe reports the measured objective value at a previously suggested
// point. The observation extends the posterior and, on strict improvement,
// replaces the incumbent best.
func (o *Optimizer) Observe(x []float64, y float64) {
	o.gp.Update(o.toUnit(x), y)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.observed++

	if y > o.bestScore {
		o.bestScore = y
		o.bestParams = append([]float64(nil), x...)
	}
}

// Best returns the highest-scoring point observed so far and its value. The
// score is negative infinity until the first observation arrives.
func (o *Optimizer) Best() ([]float64, float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]float64(nil), o.bestParams...), o.bestScore
}

//////
// Internals.
//////

// randomPoint draws a uniform point inside the bounds.
func (o *Optimizer) randomPoint() []float64 {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()

	p := make([]float64, len(o.bounds))
	for i, b := range o.bounds {
		p[i] = b.Min + o.cfg.AcqParams.RandomState.Float64()*(b.Max-b.Min)
	}

	return p
}

// toUnit rescales a point into the unit cube implied by the bounds, so the
// RBF kernel sees comparable distances no matter how differently the raw
// parameters are scaled.
func (o *Optimizer) toUnit(x []float64) []float64 {
	u := make([]float64, len(x))

	for i, b := range o.bounds {
		span := b.Max - b.Min
		if span == 0 {
			continue
		}

		u[i] = (x[i] - b.Min) / span
	}

	return u
}
