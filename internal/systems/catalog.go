package systems

import (
	"maps"
	"sort"
	"sync"

	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
)

// Entry describes one catalog system.
type Entry struct {
	Name        string
	Description string
	// Define returns a fresh definition on every call.
	Define func() compiler.Definition
	Q0     map[string]float64
	P0     map[string]float64
}

// Model is a compiled system with its name table and default start point.
type Model struct {
	*hamiltonian.System
	Layout  *compiler.Layout
	Initial dynamo.Point
}

// Catalog maps names to entries. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Default returns a catalog holding the built-in systems.
func Default() *Catalog {
	c := NewCatalog()
	for _, e := range builtins() {
		if err := c.Register(e); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds e. Names must be unique and Define must be set.
func (c *Catalog) Register(e Entry) error {
	const op = "systems.Register"
	if e.Name == "" || e.Define == nil {
		return dynamo.Configf(op, "entry needs a name and a definition")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.entries[e.Name]; dup {
		return dynamo.Configf(op, "system %q already registered", e.Name)
	}
	c.entries[e.Name] = e
	return nil
}

func (c *Catalog) Get(name string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok {
		return Entry{}, dynamo.Wrapf("systems.Get", dynamo.ErrUnknownSystem, "%q (available: %v)", name, c.namesLocked())
	}
	return e, nil
}

// Names lists registered systems in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.namesLocked()
}

func (c *Catalog) namesLocked() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the default parameters of a system.
func (c *Catalog) Params(name string) (map[string]float64, error) {
	e, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return maps.Clone(e.Define().Params), nil
}

// Build compiles the named system and resolves its default initial state.
func (c *Catalog) Build(name string, opts ...compiler.CompileOption) (*Model, error) {
	e, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	def := e.Define()
	layout, err := def.Layout()
	if err != nil {
		return nil, err
	}
	sys, err := compiler.Compile(def, opts...)
	if err != nil {
		return nil, err
	}

	q, err := layout.Vector(e.Q0, false)
	if err != nil {
		return nil, err
	}
	p, err := layout.Vector(e.P0, true)
	if err != nil {
		return nil, err
	}
	return &Model{System: sys, Layout: layout, Initial: dynamo.Point{Q: q, P: p}}, nil
}
