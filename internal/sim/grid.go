package sim

import (
	"fmt"
	"sort"
	"strings"
)

// Grid returns the cartesian product of the given parameter values. Names
// vary slowest in sorted order, so the result is deterministic.
func Grid(values map[string][]float64) []map[string]float64 {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []map[string]float64
	var walk func(depth int, current map[string]float64)
	walk = func(depth int, current map[string]float64) {
		if depth == len(names) {
			out = append(out, current)
			return
		}
		name := names[depth]
		for _, v := range values[name] {
			next := make(map[string]float64, len(current)+1)
			for k, x := range current {
				next[k] = x
			}
			next[name] = v
			walk(depth+1, next)
		}
	}
	walk(0, map[string]float64{})
	return out
}

// Label formats a parameter set as "a=1 b=2" in sorted key order.
func Label(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, " ")
}

// SweepJobs builds one job per grid point. build receives the point's
// parameters and returns a job whose Name and Params are filled in here.
func SweepJobs(grid []map[string]float64, build func(params map[string]float64) (Job, error)) ([]Job, error) {
	jobs := make([]Job, 0, len(grid))
	for _, params := range grid {
		job, err := build(params)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", Label(params), err)
		}
		if job.Name == "" {
			job.Name = Label(params)
		}
		job.Params = params
		jobs = append(jobs, job)
	}
	return jobs, nil
}
