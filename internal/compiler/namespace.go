package compiler

import (
	"fmt"

	"github.com/san-kum/hamsim/internal/dynamo"
)

// probe records names an energy function asked for but the system lacks.
type probe struct {
	unknown []string
}

func (p *probe) miss(kind, name string) float64 {
	if p == nil {
		panic(fmt.Sprintf("compiler: unknown %s %q", kind, name))
	}
	p.unknown = append(p.unknown, kind+" "+name)
	return 0
}

type scope struct {
	layout *Layout
	params map[string]float64
	probe  *probe
}

func (s scope) param(name string) float64 {
	v, ok := s.params[name]
	if !ok {
		return s.probe.miss("parameter", name)
	}
	return v
}

// Coords is the read-only coordinate namespace handed to potential and
// force functions. Get and Param panic on names the system does not define;
// Compile catches such names before a Coords ever reaches an integrator.
type Coords struct {
	scope
	q dynamo.Vector
}

func (c Coords) Get(name string) float64 {
	r, ok := c.layout.Coord(name)
	if !ok {
		return c.probe.miss("coordinate", name)
	}
	return c.q[r]
}

func (c Coords) At(r Ref) float64          { return c.q[r] }
func (c Coords) Param(name string) float64 { return c.param(name) }
func (c Coords) Len() int                  { return len(c.q) }

// Momenta is the read-only momentum namespace handed to kinetic functions.
type Momenta struct {
	scope
	p dynamo.Vector
}

// Get looks up a momentum by its prefixed name, e.g. "px".
func (m Momenta) Get(name string) float64 {
	r, ok := m.layout.Momentum(name)
	if !ok {
		return m.probe.miss("momentum", name)
	}
	return m.p[r]
}

func (m Momenta) At(r Ref) float64          { return m.p[r] }
func (m Momenta) Param(name string) float64 { return m.param(name) }
func (m Momenta) Len() int                  { return len(m.p) }
