package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/config"
	"github.com/san-kum/hamsim/internal/sim"
	"github.com/san-kum/hamsim/internal/viz"
)

func newSystemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "list built-in systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, name := range catalog.Names() {
				entry, err := catalog.Get(name)
				if err != nil {
					return err
				}
				def := entry.Define()
				params, err := catalog.Params(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					name,
					strings.Join(def.Coordinates, ","),
					sim.Label(params),
					entry.Description,
				})
			}
			viz.ListTable(cmd.OutOrStdout(), []string{"system", "coordinates", "params", "description"}, rows)
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [system]",
		Short: "list presets of a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			system := args[0]
			if _, err := catalog.Get(system); err != nil {
				return err
			}
			names := config.ListPresets(system)
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no presets for %s\n", system)
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				p := config.GetPreset(system, name)
				rows = append(rows, []string{
					name,
					strconv.FormatFloat(p.Dt, 'g', -1, 64),
					strconv.FormatFloat(p.Duration, 'g', -1, 64),
					formatFloats(p.Initial.Q),
					formatFloats(p.Initial.P),
				})
			}
			viz.ListTable(cmd.OutOrStdout(), []string{"preset", "dt", "duration", "q", "p"}, rows)
			return nil
		},
	}
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
