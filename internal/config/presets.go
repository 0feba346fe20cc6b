package config

import "sort"

func preset(system string, dt, duration float64, q, p []float64) *Config {
	return &Config{
		System:   system,
		Method:   "verlet",
		Dt:       dt,
		Duration: duration,
		Initial:  InitialConfig{Q: q, P: p},
	}
}

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"small": preset("harmonic", 0.01, 20, []float64{0.1}, []float64{0}),
		"large": preset("harmonic", 0.01, 20, []float64{3}, []float64{0}),
		"kick":  preset("harmonic", 0.01, 20, []float64{0}, []float64{2}),
	},
	"pendulum": {
		"small":    preset("pendulum", 0.01, 20, []float64{0.2}, []float64{0}),
		"large":    preset("pendulum", 0.01, 20, []float64{2.5}, []float64{0}),
		"spinning": preset("pendulum", 0.005, 30, []float64{0.1}, []float64{8}),
	},
	"double_well": {
		"trapped":  preset("double_well", 0.005, 20, []float64{1.1}, []float64{0}),
		"crossing": preset("double_well", 0.005, 20, []float64{1}, []float64{1.5}),
	},
	"henon_heiles": {
		"regular": preset("henon_heiles", 0.01, 200, []float64{0.1, -0.1}, []float64{0.3, 0.2}),
		"chaotic": preset("henon_heiles", 0.005, 200, []float64{0, 0}, []float64{0.4, 0.39}),
	},
	"chain": {
		"pulse": preset("chain", 0.01, 30, []float64{1, 0, 0, 0}, []float64{0, 0, 0, 0}),
		"mode":  preset("chain", 0.01, 30, []float64{0.5, 0.8, 0.8, 0.5}, []float64{0, 0, 0, 0}),
	},
	"kepler": {
		"circular":  preset("kepler", 0.001, 20, []float64{1, 0}, []float64{0, 1}),
		"eccentric": preset("kepler", 0.001, 30, []float64{1, 0}, []float64{0, 0.8}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(system, name string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of a system in sorted order, or nil.
func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
