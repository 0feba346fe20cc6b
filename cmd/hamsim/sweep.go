package main

import (
	"fmt"
	"maps"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/compiler"
	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/sim"
	"github.com/san-kum/hamsim/internal/viz"
)

func newSweepCmd() *cobra.Command {
	var (
		flags   runFlags
		axes    []string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "sweep <system>",
		Short: "evolve a system over a grid of parameters in parallel",
		Example: `  hamsim sweep pendulum --axis l=0.5,1,2 --axis g=9.81,1.62
  hamsim sweep henon_heiles --axis lambda=0,0.5,1 --time 100 --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			grid, err := parseSweep(axes)
			if err != nil {
				return err
			}
			if len(grid) == 0 {
				return fmt.Errorf("sweep needs at least one --axis")
			}
			jobs, err := sweepJobs(cfg, sim.Grid(grid))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errw := cmd.ErrOrStderr()
			ensemble := sim.NewEnsemble(
				sim.WithWorkers(workers),
				sim.WithLogger(logger),
				sim.WithProgress(func(done, total int) {
					fmt.Fprintf(errw, "\r%s %d/%d", viz.ProgressBar(float64(done)/float64(total), 30), done, total)
					if done == total {
						fmt.Fprintln(errw)
					}
				}),
			)
			logger.Info("sweep", "system", cfg.System, "jobs", len(jobs), "workers", ensemble.Workers())

			results, err := ensemble.Run(ctx, jobs)
			if err != nil {
				return err
			}
			viz.SweepTable(cmd.OutOrStdout(), results)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&axes, "axis", nil, "parameter axis as name=v1,v2,... (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	return cmd
}

// sweepJobs compiles one system per grid point. Grid values override the
// configured parameters.
func sweepJobs(cfg *config.Config, grid []map[string]float64) ([]sim.Job, error) {
	return sim.SweepJobs(grid, func(point map[string]float64) (sim.Job, error) {
		params := maps.Clone(cfg.Params)
		if params == nil {
			params = map[string]float64{}
		}
		maps.Copy(params, point)

		if err := checkParams(cfg.System, params); err != nil {
			return sim.Job{}, err
		}
		m, err := catalog.Build(cfg.System, compiler.WithParams(params), compiler.WithLogger(logger))
		if err != nil {
			return sim.Job{}, err
		}
		x, err := cfg.InitialPoint(m.Initial)
		if err != nil {
			return sim.Job{}, err
		}
		return sim.Job{
			System:  m.System,
			Initial: x,
			TMax:    cfg.Duration,
			Dt:      cfg.Dt,
			Method:  cfg.Method,
		}, nil
	})
}
