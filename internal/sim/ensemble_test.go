package sim

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

func oscillator(t *testing.T, k float64) *hamiltonian.System {
	t.Helper()
	sys, err := hamiltonian.New(1, func(q dynamo.Vector) float64 {
		return 0.5 * k * q[0] * q[0]
	}, hamiltonian.WithForce(func(q dynamo.Vector) dynamo.Vector {
		return dynamo.Vector{-k * q[0]}
	}))
	require.NoError(t, err)
	return sys
}

func oscillatorJobs(t *testing.T, n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{
			Name:    fmt.Sprintf("osc-%d", i),
			System:  oscillator(t, float64(i+1)),
			Initial: dynamo.Point{Q: dynamo.Vector{1}, P: dynamo.Vector{0}},
			TMax:    1,
			Dt:      0.01,
		}
	}
	return jobs
}

func TestEnsemble_PreservesJobOrder(t *testing.T) {
	jobs := oscillatorJobs(t, 12)
	results, err := NewEnsemble(WithWorkers(3)).Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, res := range results {
		assert.Equal(t, jobs[i].Name, res.Job.Name)
		assert.Equal(t, 101, res.Trajectory.Len())
		assert.InDelta(t, 0.5*float64(i+1), res.Energy, 1e-12)
		assert.Less(t, res.Drift, 1e-2)
	}
}

func TestEnsemble_MatchesSerialEvolution(t *testing.T) {
	jobs := oscillatorJobs(t, 4)
	results, err := NewEnsemble(WithWorkers(4)).Run(context.Background(), jobs)
	require.NoError(t, err)

	for i, job := range jobs {
		want, err := job.System.Evolve(job.Initial, job.TMax, job.Dt)
		require.NoError(t, err)
		assert.Equal(t, want.Final(), results[i].Trajectory.Final())
	}
}

func TestEnsemble_ReportsProgress(t *testing.T) {
	var calls atomic.Int32
	last := 0
	progress := func(done, total int) {
		calls.Add(1)
		assert.Equal(t, 5, total)
		assert.Equal(t, last+1, done)
		last = done
	}

	_, err := NewEnsemble(WithWorkers(2), WithProgress(progress)).Run(context.Background(), oscillatorJobs(t, 5))
	require.NoError(t, err)
	assert.Equal(t, int32(5), calls.Load())
}

func TestEnsemble_FailingJobAbortsRun(t *testing.T) {
	jobs := oscillatorJobs(t, 3)
	jobs[1].Dt = -1

	results, err := NewEnsemble(WithWorkers(1)).Run(context.Background(), jobs)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, dynamo.ErrConfiguration))
	assert.Contains(t, err.Error(), "osc-1")
}

func TestEnsemble_RejectsMissingSystem(t *testing.T) {
	jobs := oscillatorJobs(t, 2)
	jobs[0].System = nil

	_, err := NewEnsemble().Run(context.Background(), jobs)
	assert.ErrorIs(t, err, dynamo.ErrConfiguration)
}

func TestEnsemble_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewEnsemble().Run(ctx, oscillatorJobs(t, 4))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestEnsemble_UnknownMethod(t *testing.T) {
	jobs := oscillatorJobs(t, 1)
	jobs[0].Method = "euler"

	_, err := NewEnsemble().Run(context.Background(), jobs)
	assert.ErrorIs(t, err, dynamo.ErrUnknownMethod)
}

func TestEnsemble_EmptyJobs(t *testing.T) {
	results, err := NewEnsemble().Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewEnsemble_DefaultsWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, NewEnsemble(WithWorkers(0)).Workers(), 1)
	assert.Equal(t, 7, NewEnsemble(WithWorkers(7)).Workers())
}
