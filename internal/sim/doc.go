// Package sim runs many independent trajectories in parallel.
//
// An Ensemble takes a list of Jobs, evolves each on a bounded pool of
// goroutines and returns the Results in job order. Jobs share nothing, so
// the only coordination is the worker limit and context cancellation:
//
//	jobs, _ := sim.SweepJobs(grid, build)
//	results, err := sim.NewEnsemble(sim.WithWorkers(4)).Run(ctx, jobs)
//
// Grid enumerates the cartesian product of parameter values for sweeps.
package sim
