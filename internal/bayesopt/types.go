package bayesopt

import "math/rand"

// Bounds is the inclusive search interval of one tuned parameter.
type Bounds struct {
	// Min is the lowest value the parameter may take.
	Min float64

	// Max is the highest value the parameter may take.
	Max float64
}

// AcquisitionFunc scores how promising a candidate point is, given the model
// posterior at that point. Higher values mark more promising candidates; the
// optimizer proposes the highest-scoring one.
//
// Parameters:
// - mean: predicted objective value at the point
// - variance: uncertainty of that prediction
// - params: shared acquisition state (incumbent best, trade-off knobs)
//
// Custom implementations must tolerate zero variance and must be safe to call
// once per candidate per suggestion.
type AcquisitionFunc func(mean, variance float64, params AcquisitionParams) float64

// AcquisitionParams carries the state acquisition functions need to balance
// exploring uncertain regions against exploiting known good ones.
type AcquisitionParams struct {
	// Beta weighs the uncertainty term in UCB. Higher values explore more;
	// 2.0 is a solid default.
	Beta float64

	// Xi is the minimum improvement over the incumbent that PI and EI look
	// for. Typical values are 0.01 to 0.1; larger values explore more.
	Xi float64

	// BestSoFar is the highest objective value observed so far. The optimizer
	// refreshes it before every suggestion; the initial value only matters
	// until the first observation arrives.
	BestSoFar float64

	// RandomState drives candidate sampling and Thompson draws. Must not be
	// nil and must not be shared between concurrent optimizers.
	RandomState *rand.Rand
}

// Config controls a single optimizer instance.
type Config struct {
	// InitialSamples is the number of uniform random suggestions made before
	// the surrogate model takes over. These seed the posterior; without them
	// every prediction is the flat prior.
	InitialSamples int

	// NumCandidates is the number of random points scored by the acquisition
	// function per suggestion. More candidates search each suggestion more
	// thoroughly at linear cost per prediction.
	NumCandidates int

	// KernelWidth is the RBF kernel sigma, applied to inputs rescaled into
	// the unit cube. Larger values smooth the posterior across the whole
	// space; smaller values keep each observation's influence local.
	KernelWidth float64

	// Acquisition selects the next-point strategy. See the package
	// documentation for the built-in choices.
	Acquisition AcquisitionFunc

	// AcqParams is the state handed to Acquisition on every call.
	AcqParams AcquisitionParams
}
