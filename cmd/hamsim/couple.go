package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/viz"
)

type coupleFlags struct {
	strength float64
	dt       float64
	duration float64
	method   string
	plot     bool
}

func newCoupleCmd() *cobra.Command {
	var f coupleFlags
	cmd := &cobra.Command{
		Use:   "couple <system> <system> [system...]",
		Short: "evolve catalog systems joined by springs between neighbours",
		Long: "Join catalog systems in a chain. Each neighbouring pair interacts through\n" +
			"V = ½(q_i[0] - q_j[0])² scaled by --strength; every system starts from its\n" +
			"catalog default state.",
		Example: `  hamsim couple harmonic harmonic --strength 0.2
  hamsim couple pendulum harmonic double_well --time 30`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return couple(cmd.OutOrStdout(), args, f)
		},
	}
	cmd.Flags().Float64Var(&f.strength, "strength", 0.1, "coupling strength λ between neighbours")
	cmd.Flags().Float64Var(&f.dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&f.duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&f.method, "method", "verlet", "integration method (verlet, leapfrog)")
	cmd.Flags().BoolVar(&f.plot, "plot", true, "plot the energy of each system")
	return cmd
}

// neighbourSpring is ½(qi[0] - qj[0])².
func neighbourSpring(qi, qj dynamo.Vector) float64 {
	d := qi[0] - qj[0]
	return 0.5 * d * d
}

func couple(w io.Writer, names []string, f coupleFlags) error {
	if math.IsNaN(f.strength) || math.IsInf(f.strength, 0) {
		return dynamo.Configf("hamsim.couple", "--strength must be finite")
	}

	n := len(names)
	parts := make([]*hamiltonian.System, n)
	initial := make([]dynamo.Point, n)
	for i, name := range names {
		m, err := catalog.Build(name, compiler.WithLogger(logger))
		if err != nil {
			return err
		}
		parts[i] = m.System
		initial[i] = m.Initial
	}

	lambda := make([][]float64, n)
	for i := range lambda {
		lambda[i] = make([]float64, n)
	}
	couplings := make([]hamiltonian.Coupling, 0, n-1)
	for i := 0; i+1 < n; i++ {
		lambda[i][i+1], lambda[i+1][i] = f.strength, f.strength
		couplings = append(couplings, hamiltonian.Coupling{I: i, J: i + 1, V: neighbourSpring})
	}

	sys, err := hamiltonian.Couple(parts, lambda, couplings, hamiltonian.WithLogger(logger))
	if err != nil {
		return err
	}
	x0, err := sys.Join(initial...)
	if err != nil {
		return err
	}
	traj, err := sys.Evolve(x0, f.duration, f.dt, hamiltonian.WithMethod(f.method))
	if err != nil {
		return err
	}

	series := make([][]float64, n)
	for i := range series {
		series[i] = make([]float64, traj.Len())
	}
	for k := 0; k < traj.Len(); k++ {
		for i, e := range sys.PartEnergies(traj.At(k)) {
			series[i][k] = e
		}
	}

	final := traj.Final()
	fmt.Fprintln(w, viz.Title().Render(sys.String()))
	fmt.Fprintln(w, viz.KeyValue("dof", sys.DOF()))
	fmt.Fprintln(w, viz.KeyValue("steps", traj.Len()-1))
	for i, name := range names {
		fmt.Fprintln(w, viz.KeyValue(fmt.Sprintf("H%d", i),
			fmt.Sprintf("%.6g -> %.6g  (%s)", series[i][0], series[i][traj.Len()-1], name)))
	}
	fmt.Fprintln(w, viz.KeyValue("interaction", fmt.Sprintf("%.6g", sys.InteractionEnergy(final.Q))))
	fmt.Fprintln(w, viz.Label().Render("max drift")+viz.Drift(traj.MaxRelativeDrift(sys.Hamiltonian)))
	if f.plot {
		fmt.Fprintln(w)
		fmt.Fprintln(w, viz.SeriesPlot(series, viz.PlotOptions{Caption: "H_i(t)"}))
	}
	return nil
}
