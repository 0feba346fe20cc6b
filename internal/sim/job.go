package sim

import (
	"time"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

// Job is one trajectory to integrate.
type Job struct {
	Name    string
	Params  map[string]float64
	System  *hamiltonian.System
	Initial dynamo.Point
	TMax    float64
	Dt      float64
	// Method defaults to velocity Verlet when empty.
	Method string
}

// Result is the outcome of a Job.
type Result struct {
	Job        Job
	Trajectory *hamiltonian.Trajectory
	// Energy is H at the initial point; Drift is the maximum relative
	// deviation from it along the trajectory.
	Energy  float64
	Drift   float64
	Elapsed time.Duration
}

func run(job Job) (Result, error) {
	var opts []hamiltonian.EvolveOption
	if job.Method != "" {
		opts = append(opts, hamiltonian.WithMethod(job.Method))
	}

	start := time.Now()
	traj, err := job.System.Evolve(job.Initial, job.TMax, job.Dt, opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Job:        job,
		Trajectory: traj,
		Energy:     job.System.Energy(job.Initial),
		Drift:      traj.MaxRelativeDrift(job.System.Hamiltonian),
		Elapsed:    time.Since(start),
	}, nil
}
