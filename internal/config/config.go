package config

import (
	"fmt"
	"maps"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/integrators"
)

const (
	DefaultSystem   = "harmonic"
	DefaultDt       = 0.01
	DefaultDuration = 10.0
)

// Config describes one run. When Hamiltonian is set the run uses that
// expression over q0..q{DOF-1}, p0..p{DOF-1} and System is ignored.
type Config struct {
	System      string             `yaml:"system"`
	Method      string             `yaml:"method"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	Initial     InitialConfig      `yaml:"initial,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty"`
	Hamiltonian string             `yaml:"hamiltonian,omitempty"`
	DOF         int                `yaml:"dof,omitempty"`
}

// InitialConfig is a positional initial state. Empty means the system's
// default start point.
type InitialConfig struct {
	Q []float64 `yaml:"q,flow"`
	P []float64 `yaml:"p,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		System:   DefaultSystem,
		Method:   integrators.MethodVerlet,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads path over a copy of base, so fields the file leaves out
// keep base's values. base is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Initial.Q = slices.Clone(c.Initial.Q)
	out.Initial.P = slices.Clone(c.Initial.P)
	out.Params = maps.Clone(c.Params)
	return &out
}

// Validate checks the fields that can be checked without building the
// system.
func (c *Config) Validate() error {
	const op = "config.Validate"
	if math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) || c.Dt <= 0 {
		return dynamo.Configf(op, "dt must be positive and finite, got %g", c.Dt)
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) || c.Duration < 0 {
		return dynamo.Configf(op, "duration must be non-negative and finite, got %g", c.Duration)
	}
	if len(c.Initial.Q) != len(c.Initial.P) {
		return dynamo.Configf(op, "initial state has %d coordinates and %d momenta", len(c.Initial.Q), len(c.Initial.P))
	}
	if c.Method != "" {
		if _, err := integrators.New(c.Method); err != nil {
			return err
		}
	}
	for name, v := range c.Params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return dynamo.Configf(op, "parameter %q is not finite", name)
		}
	}
	if c.Hamiltonian != "" {
		if c.DOF < 1 {
			return dynamo.Configf(op, "hamiltonian expression needs dof >= 1, got %d", c.DOF)
		}
		if n := len(c.Initial.Q); n > 0 && n != c.DOF {
			return dynamo.Configf(op, "initial state has %d dof, expected %d", n, c.DOF)
		}
	} else if c.System == "" {
		return dynamo.Configf(op, "either system or hamiltonian must be set")
	}
	return nil
}

// InitialPoint returns the configured initial state, or fallback when none
// is configured.
func (c *Config) InitialPoint(fallback dynamo.Point) (dynamo.Point, error) {
	if len(c.Initial.Q) == 0 && len(c.Initial.P) == 0 {
		return fallback.Clone(), nil
	}
	x, err := dynamo.NewPoint(c.Initial.Q, c.Initial.P)
	if err != nil {
		return dynamo.Point{}, err
	}
	if x.DOF() != fallback.DOF() {
		return dynamo.Point{}, dynamo.Configf("config.InitialPoint", "initial state has %d dof, system has %d", x.DOF(), fallback.DOF())
	}
	return x, nil
}
