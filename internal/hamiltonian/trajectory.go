package hamiltonian

import (
	"math"

	"github.com/san-kum/hamsim/internal/dynamo"
)

// Trajectory holds evenly spaced samples of an evolution. Row i of Q and P
// is the state at Times[i]; row 0 is the initial state.
type Trajectory struct {
	Times []float64
	Q     []dynamo.Vector
	P     []dynamo.Vector
}

func newTrajectory(samples int) *Trajectory {
	return &Trajectory{
		Times: make([]float64, samples),
		Q:     make([]dynamo.Vector, samples),
		P:     make([]dynamo.Vector, samples),
	}
}

func (tr *Trajectory) record(i int, t float64, x dynamo.Point) {
	tr.Times[i] = t
	tr.Q[i] = x.Q
	tr.P[i] = x.P
}

// Len returns the number of samples.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns a copy of sample i.
func (tr *Trajectory) At(i int) dynamo.Point {
	return dynamo.Point{Q: tr.Q[i].Clone(), P: tr.P[i].Clone()}
}

// Final returns a copy of the last sample.
func (tr *Trajectory) Final() dynamo.Point {
	return tr.At(tr.Len() - 1)
}

// Energies evaluates h at every sample.
func (tr *Trajectory) Energies(h dynamo.EnergyFunc) []float64 {
	out := make([]float64, tr.Len())
	for i := range out {
		out[i] = h(tr.Q[i], tr.P[i])
	}
	return out
}

// MaxRelativeDrift returns max_t |H(t)-H(0)| / |H(0)|. When H(0) is zero the
// absolute drift is returned instead.
func (tr *Trajectory) MaxRelativeDrift(h dynamo.EnergyFunc) float64 {
	if tr.Len() == 0 {
		return 0
	}
	energies := tr.Energies(h)
	e0 := energies[0]
	scale := math.Abs(e0)
	if scale == 0 {
		scale = 1
	}

	maxDrift := 0.0
	for _, e := range energies[1:] {
		maxDrift = math.Max(maxDrift, math.Abs(e-e0)/scale)
	}
	return maxDrift
}

// Coordinate returns the time series of q_i.
func (tr *Trajectory) Coordinate(i int) []float64 {
	out := make([]float64, tr.Len())
	for k := range out {
		out[k] = tr.Q[k][i]
	}
	return out
}

// Momentum returns the time series of p_i.
func (tr *Trajectory) Momentum(i int) []float64 {
	out := make([]float64, tr.Len())
	for k := range out {
		out[k] = tr.P[k][i]
	}
	return out
}
