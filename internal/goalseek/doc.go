// Package goalseek finds the input value that drives a model output to a
// target, using bisection over a bracketing interval.
//
// The residual f(x) = output(input := x) - target must change sign between
// the bounds. When it does not, Solve returns a [whatif.NoBracketError]
// instead of guessing; when either bound already satisfies the tolerance it is
// returned as is. Running out of iterations yields a
// [whatif.ConvergenceError] carrying the best point seen.
//
//	res, err := goalseek.Solve(inst, goalseek.Spec{
//	    Output: "profit", Target: 0,
//	    Input: "demand", Lower: 0, Upper: 1000,
//	    MaxIterations: 1000,
//	})
package goalseek
