package bayesopt

import (
	"math"
	"sync"
)

//////
// Const, vars, types.
//////

// gaussianProcess is a thread-safe Gaussian Process regressor over
// multidimensional inputs. It carries the optimizer's belief about the
// objective: observed (point, score) pairs plus an RBF kernel that spreads
// each observation's influence to nearby points.
//
// Inputs are expected in the unit cube (the optimizer rescales them before
// calling in), so one sigma suits every parameter regardless of its raw
// scale.
type gaussianProcess struct {
	// mu protects all fields.
	mu sync.RWMutex

	// X holds the observed input points. All inner slices have the same
	// length.
	X [][]float64

	// Y holds the observed objective value at each point in X.
	Y []float64

	// sigma is the RBF kernel width.
	sigma float64
}

//////
// Methods.
//////

// RBFKernel measures the similarity of two points with the Radial Basis
// Function kernel:
//
//	k(x1, x2) = exp(-sum((x1 - x2)^2) / (2 * sigma^2))
//
// Identical points score 1.0 and the value decays toward 0.0 with squared
// distance. Panics if the vectors differ in length.
func (gp *gaussianProcess) RBFKernel(x1, x2 []float64) float64 {
	gp.mu.RLock()
	sigma := gp.sigma
	gp.mu.RUnlock()

	return rbf(x1, x2, sigma)
}

// rbf is the kernel itself, lock-free so Predict can call it while already
// holding the read lock.
func rbf(x1, x2 []float64, sigma float64) float64 {
	if len(x1) != len(x2) {
		panic("input vectors must have the same length")
	}

	var sum float64

	for i := range x1 {
		diff := x1[i] - x2[i]

		sum += diff * diff
	}

	return math.Exp(-sum / (2 * sigma * sigma))
}

// Predict estimates the objective at x from the observations seen so far.
//
// Returns:
// - mean: kernel-weighted average of the observed values
// - variance: uncertainty of the estimate; higher far from observations
//
// With no observations the flat prior (0, 1) is returned. The variance is
// clamped at zero: the kernel-sum estimate can drift slightly negative once
// many observations cluster together, and acquisition functions take its
// square root.
func (gp *gaussianProcess) Predict(x []float64) (mean, variance float64) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	if len(gp.X) == 0 {
		return 0, 1
	}

	k := make([]float64, len(gp.X))
	for i := range gp.X {
		k[i] = rbf(x, gp.X[i], gp.sigma)
	}

	var sum float64

	for i := range gp.X {
		sum += k[i] * gp.Y[i]
	}

	mean = sum / float64(len(gp.X))

	variance = 1.0

	for i := range gp.X {
		for j := range gp.X {
			variance -= k[i] * k[j] / float64(len(gp.X))
		}
	}

	if variance < 0 {
		variance = 0
	}

	return mean, variance
}

// Update adds one observation to the model. The input slice is deep-copied,
// so callers may reuse it.
func (gp *gaussianProcess) Update(x []float64, y float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	newX := make([]float64, len(x))
	copy(newX, x)

	gp.X = append(gp.X, newX)
	gp.Y = append(gp.Y, y)
}

// SetSigma replaces the kernel width. Affects every subsequent prediction;
// values must be positive (not validated here).
func (gp *gaussianProcess) SetSigma(sigma float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()
	gp.sigma = sigma
}

// GetSigma returns the current kernel width.
func (gp *gaussianProcess) GetSigma() float64 {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	return gp.sigma
}

//////
// Factory.
//////

// newGaussianProcess returns an empty model with sigma 1.0, a reasonable
// width for unit-scaled inputs.
func newGaussianProcess() *gaussianProcess {
	return &gaussianProcess{
		sigma: 1.0,
	}
}
