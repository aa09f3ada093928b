package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/perf"
	"github.com/encodeous/dvsim/render"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Runs the distance-vector protocol until it converges",
	Long: `Loads a topology file, or generates a random connected network, and runs the protocol over it.
The tables of every router are printed after each round, unless --quiet is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tcfg, err := resolveTopology(cmd)
		if err != nil {
			return err
		}
		rcfg := resolveRun(cmd)
		log, closer, err := makeLogger(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		format, _ := cmd.Flags().GetString("output")
		quiet, _ := cmd.Flags().GetBool("quiet")
		out := cmd.OutOrStdout()

		var obs core.Observer
		switch format {
		case "text":
			obs = &render.Printer{Out: out, Quiet: quiet}
		case "yaml":
		default:
			return fmt.Errorf("unknown output format %q, expected text or yaml", format)
		}

		res, _, err := core.Simulate(cmd.Context(), *tcfg, rcfg, obs, log)
		if err != nil {
			return err
		}
		if format == "yaml" {
			data, err := render.MarshalYAML(res)
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				return err
			}
		}

		if ok, _ := cmd.Flags().GetBool("metrics"); ok {
			metrics := perf.Exposed()
			for _, name := range slices.Sorted(maps.Keys(metrics)) {
				fmt.Fprintf(out, "%s: %s\n", name, metrics[name].String())
			}
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	addTopologyFlags(simulateCmd)
	addRunFlags(simulateCmd)
	simulateCmd.Flags().BoolP("quiet", "q", false, "only print the final tables")
	simulateCmd.Flags().StringP("output", "o", "text", "output format, text or yaml")
	simulateCmd.Flags().BoolP("metrics", "m", false, "print driver metrics after the run")
}
