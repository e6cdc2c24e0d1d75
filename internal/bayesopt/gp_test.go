package bayesopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRBFKernelIdenticalPoints(t *testing.T) {
	gp := newGaussianProcess()

	k := gp.RBFKernel([]float64{0.2, 0.8}, []float64{0.2, 0.8})
	assert.InDelta(t, 1.0, k, 1e-12)
}

func TestRBFKernelDecaysWithDistance(t *testing.T) {
	gp := newGaussianProcess()

	near := gp.RBFKernel([]float64{0.5}, []float64{0.6})
	far := gp.RBFKernel([]float64{0.5}, []float64{5.0})

	assert.Greater(t, near, far)
	assert.Less(t, far, 0.01)
}

func TestRBFKernelLengthMismatchPanics(t *testing.T) {
	gp := newGaussianProcess()

	assert.Panics(t, func() {
		gp.RBFKernel([]float64{1}, []float64{1, 2})
	})
}

func TestPredictWithoutObservations(t *testing.T) {
	gp := newGaussianProcess()

	mean, variance := gp.Predict([]float64{0.5})
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 1.0, variance)
}

func TestPredictAtObservedPoint(t *testing.T) {
	gp := newGaussianProcess()
	gp.Update([]float64{0.5}, 2.0)

	mean, variance := gp.Predict([]float64{0.5})
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.InDelta(t, 0.0, variance, 1e-12)
}

func TestPredictUncertaintyGrowsWithDistance(t *testing.T) {
	gp := newGaussianProcess()
	gp.Update([]float64{0.5}, 2.0)

	_, nearVar := gp.Predict([]float64{0.5})
	_, farVar := gp.Predict([]float64{9.0})

	assert.Greater(t, farVar, nearVar)
}

func TestPredictVarianceNeverNegative(t *testing.T) {
	gp := newGaussianProcess()

	// Stacked identical observations drive the raw kernel-sum estimate below
	// zero; the clamp must catch it.
	for i := 0; i < 5; i++ {
		gp.Update([]float64{0.5}, 1.0)
	}

	_, variance := gp.Predict([]float64{0.5})
	assert.GreaterOrEqual(t, variance, 0.0)
}

func TestUpdateCopiesInput(t *testing.T) {
	gp := newGaussianProcess()

	x := []float64{0.2}
	gp.Update(x, 1.0)
	x[0] = 0.9

	mean, _ := gp.Predict([]float64{0.2})
	assert.InDelta(t, 1.0, mean, 1e-12)
}

func TestSigmaAccessors(t *testing.T) {
	gp := newGaussianProcess()
	assert.Equal(t, 1.0, gp.GetSigma())

	gp.SetSigma(0.25)
	assert.Equal(t, 0.25, gp.GetSigma())

	// A narrower kernel decays faster over the same distance.
	narrow := gp.RBFKernel([]float64{0}, []float64{1})
	gp.SetSigma(2.0)
	wide := gp.RBFKernel([]float64{0}, []float64{1})
	assert.Less(t, narrow, wide)
}
