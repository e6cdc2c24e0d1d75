package bayesopt

import "math"

//////
// Helper functions.
//////

// normalCDF is the cumulative distribution function of the standard normal
// distribution, used by PI and EI.
func normalCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normalPDF is the density of the standard normal distribution at x, used by
// EI.
func normalPDF(x float64) float64 {
	return math.Exp(-x*x/2.0) / math.Sqrt(2.0*math.Pi)
}
