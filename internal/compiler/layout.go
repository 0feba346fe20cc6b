package compiler

import (
	"strings"

	"github.com/san-kum/hamsim/internal/dynamo"
)

// MomentumPrefix is prepended to a coordinate name to address its momentum.
const MomentumPrefix = "p"

// Ref is a resolved index into q or p.
type Ref int

// Layout is the name to index table of a compiled system.
type Layout struct {
	names    []string
	coords   map[string]Ref
	momentum map[string]Ref
}

// NewLayout validates the coordinate list and precomputes both lookup
// tables.
func NewLayout(coordinates []string) (*Layout, error) {
	const op = "compiler.NewLayout"
	if len(coordinates) == 0 {
		return nil, dynamo.Configf(op, "no coordinates")
	}

	l := &Layout{
		names:    append([]string(nil), coordinates...),
		coords:   make(map[string]Ref, len(coordinates)),
		momentum: make(map[string]Ref, len(coordinates)),
	}
	for i, name := range coordinates {
		if strings.TrimSpace(name) == "" {
			return nil, dynamo.Configf(op, "coordinate %d has an empty name", i)
		}
		if _, dup := l.coords[name]; dup {
			return nil, dynamo.Configf(op, "duplicate coordinate %q", name)
		}
		l.coords[name] = Ref(i)
		l.momentum[MomentumPrefix+name] = Ref(i)
	}
	return l, nil
}

// Len returns the number of degrees of freedom.
func (l *Layout) Len() int { return len(l.names) }

// Names returns the coordinate names in index order.
func (l *Layout) Names() []string { return append([]string(nil), l.names...) }

// MomentumNames returns the momentum names in index order.
func (l *Layout) MomentumNames() []string {
	out := make([]string, len(l.names))
	for i, name := range l.names {
		out[i] = MomentumPrefix + name
	}
	return out
}

// Coord resolves a coordinate name.
func (l *Layout) Coord(name string) (Ref, bool) {
	r, ok := l.coords[name]
	return r, ok
}

// Momentum resolves a momentum name such as "px".
func (l *Layout) Momentum(name string) (Ref, bool) {
	r, ok := l.momentum[name]
	return r, ok
}

// Vector builds a q (or p) vector from named values. Names not in the
// layout are rejected; missing names are zero.
func (l *Layout) Vector(values map[string]float64, momenta bool) (dynamo.Vector, error) {
	v := make(dynamo.Vector, l.Len())
	table := l.coords
	if momenta {
		table = l.momentum
	}
	for name, x := range values {
		r, ok := table[name]
		if !ok {
			return nil, dynamo.Configf("compiler.Layout.Vector", "unknown name %q", name)
		}
		v[r] = x
	}
	return v, nil
}
