package bayesopt

import "math"

//////
// Built-in acquisition functions. Each one scores candidate points so the
// optimizer can balance exploring uncertain regions against exploiting known
// good ones. The objective is maximized, so higher acquisition values mark
// more promising candidates.
//////

// UCB is the Upper Confidence Bound acquisition: the predicted value plus a
// Beta-weighted uncertainty bonus.
//
//	ucb = mean + Beta * sqrt(variance)
//
// Beta is the exploration knob: high Beta chases uncertain regions, low Beta
// stays near the predicted optimum. Works well as a general-purpose default.
func UCB(mean, variance float64, params AcquisitionParams) float64 {
	return mean + params.Beta*math.Sqrt(variance)
}

// ProbabilityOfImprovement scores a point by the probability that it beats
// the incumbent best by at least Xi, under the posterior's normal
// distribution at that point.
//
// Conservative: it only cares whether a point is probably better, not by how
// much, so it tends to make many small, safe steps. Zero variance collapses
// to a 0/1 indicator of the mean clearing the incumbent.
func ProbabilityOfImprovement(mean, variance float64, params AcquisitionParams) float64 {
	sigma := math.Sqrt(variance)
	if sigma == 0 {
		if mean > params.BestSoFar+params.Xi {
			return 1
		}

		return 0
	}

	z := (mean - params.BestSoFar - params.Xi) / sigma

	return normalCDF(z)
}

// ExpectedImprovement weighs the probability of beating the incumbent by the
// size of the expected gain:
//
//	ei = (mean - best - Xi) * CDF(z) + sigma * PDF(z)
//	z  = (mean - best - Xi) / sigma
//
// The usual choice when the magnitude of improvement matters, not just its
// likelihood. Zero variance reduces to the plain predicted gain (floored at
// zero).
func ExpectedImprovement(mean, variance float64, params AcquisitionParams) float64 {
	sigma := math.Sqrt(variance)
	gain := mean - params.BestSoFar - params.Xi

	if sigma == 0 {
		return math.Max(gain, 0)
	}

	z := gain / sigma

	return gain*normalCDF(z) + sigma*normalPDF(z)
}

// ThompsonSampling draws one sample from the posterior at the point and uses
// it as the score. Randomness alone balances exploration and exploitation,
// so there is nothing to tune; params.RandomState must be set.
func ThompsonSampling(mean, variance float64, params AcquisitionParams) float64 {
	return mean + math.Sqrt(variance)*params.RandomState.NormFloat64()
}
