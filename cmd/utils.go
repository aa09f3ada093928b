package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/gen"
	"github.com/encodeous/dvsim/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// LoadTopology reads a topology file, expanding its graph section
func LoadTopology(path string) (*state.TopologyCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := state.TopologyCfg{}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	err = state.ExpandTopologyConfig(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrInvalidTopology, err)
	}
	return &cfg, state.TopologyConfigValidator(&cfg)
}

func WriteTopology(out io.Writer, cfg *state.TopologyCfg) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func addTopologyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("topology", "t", "", "topology file, a random one is generated when empty")
	addGenFlags(cmd)
}

// resolveTopology loads --topology, or generates a network from --nodes and --seed
func resolveTopology(cmd *cobra.Command) (*state.TopologyCfg, error) {
	path, _ := cmd.Flags().GetString("topology")
	if path != "" {
		return LoadTopology(path)
	}
	return generateTopology(cmd)
}

func addGenFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("nodes", "n", 0, fmt.Sprintf("number of routers to generate (%d to %d), random when 0", state.MinNodes, state.MaxNodes))
	cmd.Flags().Uint64P("seed", "s", 0, "seed of the generated topology, random when 0")
}

func generateTopology(cmd *cobra.Command) (*state.TopologyCfg, error) {
	n, _ := cmd.Flags().GetInt("nodes")
	seed, _ := cmd.Flags().GetUint64("seed")
	rng := gen.NewRand(seed)
	if seed == 0 {
		rng = gen.NewRandomRand()
	}
	if n == 0 {
		n = gen.RandomSize(rng)
	}
	if err := state.NodeCountValidator(n); err != nil {
		return nil, err
	}
	return gen.Generate(n, rng)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("max-iter", "i", state.DefaultMaxIterations, "iteration cap")
	cmd.Flags().BoolP("concurrent", "c", false, "run every router on its own goroutine")
	cmd.Flags().StringP("policy", "p", string(state.PolicyStrict), "relaxation policy, strict or trust-next-hop")
}

func resolveRun(cmd *cobra.Command) state.RunCfg {
	maxIt, _ := cmd.Flags().GetInt("max-iter")
	concurrent, _ := cmd.Flags().GetBool("concurrent")
	policy, _ := cmd.Flags().GetString("policy")
	logPath, _ := cmd.Flags().GetString("log-path")
	return state.RunCfg{
		MaxIterations: maxIt,
		Concurrent:    concurrent,
		Policy:        state.RelaxPolicy(policy),
		LogPath:       logPath,
	}
}

func makeLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	level := slog.LevelWarn
	if ok, _ := cmd.Flags().GetBool("verbose"); ok {
		level = slog.LevelDebug
	}
	logPath, _ := cmd.Flags().GetString("log-path")
	return core.NewLogger("dvsim", level, logPath)
}
