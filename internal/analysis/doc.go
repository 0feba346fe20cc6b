// Package analysis characterizes trajectories of Hamiltonian systems.
//
//   - [LargestLyapunov]: maximal Lyapunov exponent by two-trajectory
//     separation with renormalization
//   - [PoincareSection]: interpolated crossings of a coordinate level
//   - [PowerSpectrum], [DominantFrequency]: FFT of a sampled series
//
// A positive exponent indicates chaotic motion:
//
//	lambda, err := analysis.LargestLyapunov(sys, x0, 200, 0.01)
//	if err == nil && lambda > 0.05 {
//	    // chaotic
//	}
package analysis
