package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/analysis"
	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/hamiltonian"
	"github.com/san-kum/hamsim/internal/viz"
)

type analyzeFlags struct {
	axis   int
	level  float64
	record int
}

func newAnalyzeCmd() *cobra.Command {
	var (
		flags runFlags
		af    analyzeFlags
	)
	cmd := &cobra.Command{
		Use:   "analyze <system>",
		Short: "estimate the Lyapunov exponent, frequencies and a Poincaré section",
		Example: `  hamsim analyze henon_heiles --preset chaotic
  hamsim analyze henon_heiles --section-axis 0 --section-record 1 --time 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return analyze(cmd.OutOrStdout(), cfg, af)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&af.axis, "section-axis", 0, "coordinate whose upward crossings define the section")
	cmd.Flags().Float64Var(&af.level, "section-level", 0, "crossing level of the section coordinate")
	cmd.Flags().IntVar(&af.record, "section-record", -1, "degree of freedom recorded at each crossing (default: the last)")
	return cmd
}

func analyze(w io.Writer, cfg *config.Config, af analyzeFlags) error {
	m, err := buildModel(cfg)
	if err != nil {
		return err
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("analyze needs a positive --time")
	}
	if af.record < 0 {
		af.record = m.DOF() - 1
	}

	traj, err := m.Evolve(m.initial, cfg.Duration, cfg.Dt, hamiltonian.WithMethod(cfg.Method))
	if err != nil {
		return err
	}
	lambda, err := analysis.LargestLyapunov(m.System, m.initial, cfg.Duration, cfg.Dt, analysis.WithMethod(cfg.Method))
	if err != nil {
		return err
	}

	names := m.Layout.Names()
	fmt.Fprintln(w, viz.Title().Render(m.Name()))
	fmt.Fprintln(w, viz.KeyValue("lyapunov", fmt.Sprintf("%.4g", lambda)))
	for i, name := range names {
		f, err := analysis.DominantFrequency(traj.Coordinate(i), cfg.Dt)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, viz.KeyValue("f("+name+")", fmt.Sprintf("%.4g", f)))
	}

	section, err := analysis.PoincareSection(traj, af.axis, af.level, af.record)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, viz.KeyValue("crossings", len(section)))
	if len(section) == 0 {
		return nil
	}
	qs := make([]float64, len(section))
	ps := make([]float64, len(section))
	for i, pt := range section {
		qs[i], ps[i] = pt.Q, pt.P
	}
	fmt.Fprintf(w, "\nsection %s = %g, (%s, p_%s)\n", names[af.axis], af.level, names[af.record], names[af.record])
	fmt.Fprint(w, viz.ScatterPlot(qs, ps, 40, 12))
	return nil
}
