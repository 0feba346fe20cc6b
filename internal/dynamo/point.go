package dynamo

// Point is a phase-space point. Q and P always have the same length.
type Point struct {
	Q Vector
	P Vector
}

// NewPoint copies q and p into a new point.
func NewPoint(q, p []float64) (Point, error) {
	if len(q) != len(p) {
		return Point{}, Configf("dynamo.NewPoint", "len(q)=%d != len(p)=%d", len(q), len(p))
	}
	return Point{Q: Vector(q).Clone(), P: Vector(p).Clone()}, nil
}

// DOF returns the number of degrees of freedom.
func (x Point) DOF() int { return len(x.Q) }

// Clone returns a deep copy that shares no storage with x.
func (x Point) Clone() Point {
	return Point{Q: x.Q.Clone(), P: x.P.Clone()}
}

// IsValid reports whether every component is finite.
func (x Point) IsValid() bool { return x.Q.IsValid() && x.P.IsValid() }

// Energy evaluates h at this point.
func (x Point) Energy(h EnergyFunc) float64 {
	return h(x.Q, x.P)
}

// Flatten returns [q..., p...].
func (x Point) Flatten() []float64 {
	out := make([]float64, 0, len(x.Q)+len(x.P))
	out = append(out, x.Q...)
	return append(out, x.P...)
}
