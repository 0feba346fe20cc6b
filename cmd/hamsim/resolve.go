package main

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/sim"
	"github.com/san-kum/hamsim/internal/symbolic"
	"github.com/san-kum/hamsim/internal/systems"
)

// runFlags are the flags shared by run, sweep and watch.
type runFlags struct {
	preset     string
	configFile string
	dt         float64
	duration   float64
	method     string
	params     []string
	q, p       []float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.preset, "preset", "", "start from a preset configuration")
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.Float64Var(&f.dt, "dt", config.DefaultDt, "timestep")
	fs.Float64Var(&f.duration, "time", config.DefaultDuration, "duration")
	fs.StringVar(&f.method, "method", "verlet", "integration method (verlet, leapfrog)")
	fs.StringArrayVar(&f.params, "param", nil, "system parameter as name=value (repeatable)")
	fs.Float64SliceVar(&f.q, "q", nil, "initial coordinates")
	fs.Float64SliceVar(&f.p, "p", nil, "initial momenta")
}

// resolve builds the run configuration. Later sources win: defaults,
// preset, config file, then flags the user set explicitly.
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	system := ""
	if len(args) > 0 {
		system = args[0]
		cfg.System = system
	}

	if f.preset != "" {
		if system == "" {
			return nil, fmt.Errorf("--preset needs a system argument")
		}
		p := config.GetPreset(system, f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", f.preset, config.ListPresets(system))
		}
		cfg = p
	}

	if f.configFile != "" {
		loaded, err := config.LoadInto(f.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if system != "" {
			cfg.System = system
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = f.dt
	}
	if flags.Changed("time") {
		cfg.Duration = f.duration
	}
	if flags.Changed("method") {
		cfg.Method = f.method
	}
	if flags.Changed("param") {
		params, err := parseParams(f.params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		maps.Copy(cfg.Params, params)
	}
	if flags.Changed("q") {
		cfg.Initial.Q = f.q
	}
	if flags.Changed("p") {
		cfg.Initial.P = f.p
	}
	if flags.Changed("q") != flags.Changed("p") {
		n := max(len(cfg.Initial.Q), len(cfg.Initial.P))
		cfg.Initial.Q = padZeros(cfg.Initial.Q, n)
		cfg.Initial.P = padZeros(cfg.Initial.P, n)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func padZeros(v []float64, n int) []float64 {
	for len(v) < n {
		v = append(v, 0)
	}
	return v
}

// parseParams reads name=value pairs.
func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pair, err)
		}
		out[name] = v
	}
	return out, nil
}

// parseSweep reads name=v1,v2,... axes.
func parseSweep(axes []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(axes))
	for _, axis := range axes {
		name, raw, ok := strings.Cut(axis, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || raw == "" {
			return nil, fmt.Errorf("sweep axis %q: want name=v1,v2,...", axis)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("sweep axis %q given twice", name)
		}
		for _, field := range strings.Split(raw, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("sweep axis %q: %w", axis, err)
			}
			out[name] = append(out[name], v)
		}
	}
	return out, nil
}

// model is a resolved, simulatable system plus its labels.
type model struct {
	*systems.Model
	symbolic *symbolic.Hamiltonian
	initial  dynamo.Point
}

// buildModel compiles the configured system and resolves the initial state.
func buildModel(cfg *config.Config) (*model, error) {
	var (
		m   *systems.Model
		h   *symbolic.Hamiltonian
		err error
	)
	if cfg.Hamiltonian != "" {
		m, h, err = systems.FromExpression(cfg.Hamiltonian, cfg.DOF, cfg.Params, hamiltonian.WithLogger(logger))
	} else {
		if err := checkParams(cfg.System, cfg.Params); err != nil {
			return nil, err
		}
		m, err = catalog.Build(cfg.System, compiler.WithParams(cfg.Params), compiler.WithLogger(logger))
	}
	if err != nil {
		return nil, err
	}

	x, err := cfg.InitialPoint(m.Initial)
	if err != nil {
		return nil, err
	}
	return &model{Model: m, symbolic: h, initial: x}, nil
}

// checkParams rejects parameter names the catalog system does not declare.
func checkParams(system string, params map[string]float64) error {
	known, err := catalog.Params(system)
	if err != nil {
		return err
	}
	for name := range params {
		if _, ok := known[name]; !ok {
			return dynamo.Configf("hamsim", "system %q has no parameter %q (known: %s)", system, name, sim.Label(known))
		}
	}
	return nil
}
