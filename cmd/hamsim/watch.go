package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/tui"
)

func newWatchCmd() *cobra.Command {
	var (
		flags    runFlags
		substeps int
	)
	cmd := &cobra.Command{
		Use:   "watch <system>",
		Short: "integrate a system live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			m, err := buildModel(cfg)
			if err != nil {
				return err
			}
			view, err := tui.NewModel(m.System, m.initial, tui.Options{
				Title:    m.Name(),
				Labels:   m.Layout.Names(),
				Method:   cfg.Method,
				Dt:       cfg.Dt,
				Substeps: substeps,
			})
			if err != nil {
				return err
			}
			return tui.Run(view)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&substeps, "substeps", 4, "integrator steps per frame")
	return cmd
}
