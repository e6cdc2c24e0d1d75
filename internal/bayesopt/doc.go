// Package bayesopt implements sequential model-based optimization with a
// Gaussian Process surrogate. It drives the search for CryptOpt annealing
// parameters that maximize the measured performance ratio, but it knows
// nothing about CryptOpt itself: callers hand it bounds and then alternate
// between asking for the next candidate and reporting the measured outcome.
//
// # Protocol
//
// The optimizer is an ask/tell oracle:
//
//	opt := bayesopt.New(bounds, bayesopt.DefaultConfig())
//
//	for i := 0; i < budget; i++ {
//	    x := opt.Suggest()        // next candidate, within bounds
//	    y := measure(x)           // caller-owned evaluation
//	    opt.Observe(x, y)         // refine the posterior
//	}
//
//	best, score := opt.Best()
//
// The first Config.InitialSamples suggestions are uniform random draws; they
// give the Gaussian Process enough support to make its predictions
// meaningful. Every later suggestion is chosen by scoring Config.NumCandidates
// random points with the acquisition function against the model posterior and
// proposing the highest scorer.
//
// # Acquisition Functions
//
// Four strategies are built in, all in maximization form (higher acquisition
// value = more promising candidate):
//
//   - UCB: mean plus Beta weighted uncertainty. The default; Beta trades
//     exploration against exploitation directly.
//   - ProbabilityOfImprovement: chance of beating the incumbent by at least
//     Xi. Conservative; favors small, reliable gains.
//   - ExpectedImprovement: probability of improvement weighted by its
//     magnitude. The usual choice when the size of the gain matters.
//   - ThompsonSampling: a random draw from the posterior at each point. No
//     parameters to tune; needs AcquisitionParams.RandomState.
//
// # Determinism
//
// All randomness flows through AcquisitionParams.RandomState. Two optimizers
// constructed with the same bounds, configuration, and seed produce the same
// suggestion sequence for the same observations, which is what makes tuning
// runs reproducible.
package bayesopt
