package cmd

import (
	"fmt"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/reference"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks the converged tables against Dijkstra shortest paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		tcfg, err := resolveTopology(cmd)
		if err != nil {
			return err
		}
		oracle, err := reference.NewOracle(*tcfg)
		if err != nil {
			return err
		}
		log, closer, err := makeLogger(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		res, _, err := core.Simulate(cmd.Context(), *tcfg, resolveRun(cmd), nil, log)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if res.Outcome != core.Converged {
			return fmt.Errorf("run %s did not converge within %d rounds", res.RunId, res.Rounds)
		}
		mismatches := oracle.Compare(res.Tables)
		for _, m := range mismatches {
			fmt.Fprintln(out, m.String())
		}
		if len(mismatches) != 0 {
			return fmt.Errorf("%d routes differ from the shortest paths", len(mismatches))
		}
		fmt.Fprintf(out, "All %d routing tables match the shortest paths after %d rounds\n", len(res.Tables), res.Rounds)
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addTopologyFlags(verifyCmd)
	addRunFlags(verifyCmd)
}
