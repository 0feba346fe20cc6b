package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/viz"
)

func newRunCmd() *cobra.Command {
	var (
		flags    runFlags
		plot     string
		saveFile string
		expr     string
		dof      int
	)
	cmd := &cobra.Command{
		Use:   "run [system]",
		Short: "evolve a system and report energy drift",
		Long: "Evolve a catalog system, or an algebraic Hamiltonian given with --hamiltonian,\n" +
			"and print the energy drift with a plot of the trajectory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("hamiltonian") && len(args) > 0 {
				return fmt.Errorf("give either a system or --hamiltonian, not both")
			}
			if err := checkPlot(plot); err != nil {
				return err
			}
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("hamiltonian") {
				cfg.Hamiltonian = expr
				cfg.DOF = dof
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if saveFile != "" {
				if err := config.Save(saveFile, cfg); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			}
			return runOnce(cmd.OutOrStdout(), cfg, plot)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&plot, "plot", "energy", "plot to draw (energy, q, phase, none)")
	cmd.Flags().StringVar(&saveFile, "save", "", "write the resolved configuration to a yaml file")
	cmd.Flags().StringVar(&expr, "hamiltonian", "", "algebraic Hamiltonian over q0.., p0..")
	cmd.Flags().IntVar(&dof, "dof", 1, "degrees of freedom of --hamiltonian")
	return cmd
}

var plotKinds = []string{"energy", "q", "phase", "none"}

func checkPlot(plot string) error {
	if plot == "" || slices.Contains(plotKinds, plot) {
		return nil
	}
	return dynamo.Configf("hamsim.run", "unknown plot %q (%s)", plot, strings.Join(plotKinds, ", "))
}

func runOnce(w io.Writer, cfg *config.Config, plot string) error {
	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	traj, err := m.Evolve(m.initial, cfg.Duration, cfg.Dt, hamiltonian.WithMethod(cfg.Method))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	energies := traj.Energies(m.Hamiltonian)
	drift := traj.MaxRelativeDrift(m.Hamiltonian)
	final := traj.Final()

	fmt.Fprintln(w, viz.Title().Render(m.Name()))
	fmt.Fprintln(w, viz.KeyValue("method", cfg.Method))
	fmt.Fprintln(w, viz.KeyValue("dof", m.DOF()))
	fmt.Fprintln(w, viz.KeyValue("steps", traj.Len()-1))
	fmt.Fprintln(w, viz.KeyValue("elapsed", elapsed.Round(time.Microsecond)))
	fmt.Fprintln(w, viz.KeyValue("H(0)", fmt.Sprintf("%.10g", energies[0])))
	fmt.Fprintln(w, viz.KeyValue("H(end)", fmt.Sprintf("%.10g", energies[len(energies)-1])))
	fmt.Fprintln(w, viz.Label().Render("max drift")+viz.Drift(drift))
	fmt.Fprintln(w, viz.KeyValue("q(end)", formatFloats(final.Q)))
	fmt.Fprintln(w, viz.KeyValue("p(end)", formatFloats(final.P)))
	fmt.Fprintln(w)

	names := m.Layout.Names()
	switch plot {
	case "energy":
		fmt.Fprintln(w, viz.EnergyPlot(energies, viz.PlotOptions{}))
	case "q":
		series := make([][]float64, m.DOF())
		for i := range series {
			series[i] = traj.Coordinate(i)
		}
		fmt.Fprintln(w, viz.SeriesPlot(series, viz.PlotOptions{Caption: fmt.Sprint(names)}))
	case "phase":
		fmt.Fprintf(w, "phase portrait (%s, p_%s)\n", names[0], names[0])
		fmt.Fprint(w, viz.PhasePortrait(traj.Coordinate(0), traj.Momentum(0), 40, 12))
	default:
		return checkPlot(plot)
	}
	return nil
}
