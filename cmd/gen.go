package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generates a random connected topology and writes it as yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := generateTopology(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return WriteTopology(cmd.OutOrStdout(), cfg)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteTopology(f, cfg)
	},
	GroupID: "tools",
}

func init() {
	rootCmd.AddCommand(genCmd)
	addGenFlags(genCmd)
	genCmd.Flags().StringP("output", "o", "", "file to write, stdout when empty")
}
