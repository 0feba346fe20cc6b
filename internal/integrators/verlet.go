package integrators

import "github.com/san-kum/hamsim/internal/dynamo"

// Verlet is the kick-drift-kick velocity-Verlet scheme:
//
//	p½   = p + ½·dt·F(q)
//	q'   = q + dt·p½/m
//	p'   = p½ + ½·dt·F(q')
//
// It remembers F(q') so the opening kick of the next step reuses it. The
// cache makes a Verlet value unsafe for concurrent use; create one per
// trajectory.
type Verlet struct {
	lastQ dynamo.Vector
	lastF dynamo.Vector
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return MethodVerlet }

func (v *Verlet) Step(f dynamo.ForceField, x dynamo.Point, dt float64) dynamo.Point {
	n := len(x.Q)
	mass := f.Mass()
	halfDt := 0.5 * dt

	force := v.cachedForce(x.Q)
	if force == nil {
		force = f.Force(x.Q)
	}

	q := make(dynamo.Vector, n)
	p := make(dynamo.Vector, n)
	for i := 0; i < n; i++ {
		p[i] = x.P[i] + halfDt*force[i]
	}
	for i := 0; i < n; i++ {
		q[i] = x.Q[i] + dt*p[i]/mass[i]
	}

	forceNew := f.Force(q)
	for i := 0; i < n; i++ {
		p[i] += halfDt * forceNew[i]
	}

	v.lastQ = q.Clone()
	v.lastF = forceNew.Clone()

	return dynamo.Point{Q: q, P: p}
}

func (v *Verlet) cachedForce(q dynamo.Vector) dynamo.Vector {
	if len(v.lastQ) != len(q) {
		return nil
	}
	for i := range q {
		if q[i] != v.lastQ[i] {
			return nil
		}
	}
	return v.lastF
}

// Leapfrog is the drift-kick-drift (position Verlet) scheme. It is the
// adjoint of Verlet and equally symplectic:
//
//	q½ = q + ½·dt·p/m
//	p' = p + dt·F(q½)
//	q' = q½ + ½·dt·p'/m
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return MethodLeapfrog }

func (l *Leapfrog) Step(f dynamo.ForceField, x dynamo.Point, dt float64) dynamo.Point {
	n := len(x.Q)
	mass := f.Mass()
	halfDt := 0.5 * dt

	q := make(dynamo.Vector, n)
	p := make(dynamo.Vector, n)
	for i := 0; i < n; i++ {
		q[i] = x.Q[i] + halfDt*x.P[i]/mass[i]
	}

	force := f.Force(q)
	for i := 0; i < n; i++ {
		p[i] = x.P[i] + dt*force[i]
		q[i] += halfDt * p[i] / mass[i]
	}

	return dynamo.Point{Q: q, P: p}
}
