package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
)

var namePattern, _ = regexp.Compile("^[0-9A-Za-z._-]+$")

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

// NodeCountValidator checks the size of a generated network
func NodeCountValidator(n int) error {
	if n < MinNodes || n > MaxNodes {
		return fmt.Errorf("node count must be between %d and %d, got %d", MinNodes, MaxNodes, n)
	}
	return nil
}

func PolicyValidator(p RelaxPolicy) error {
	switch p {
	case PolicyStrict, PolicyTrustNextHop:
		return nil
	}
	return fmt.Errorf("unknown relaxation policy %q, expected %q or %q", p, PolicyStrict, PolicyTrustNextHop)
}

// TopologyConfigValidator expects an expanded config, see ExpandTopologyConfig
func TopologyConfigValidator(cfg *TopologyCfg) error {
	seen := make(map[NodeId]struct{}, len(cfg.Routers))
	for _, id := range cfg.Routers {
		if err := NameValidator(string(id)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTopology, err)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate router %s", ErrInvalidTopology, id)
		}
		seen[id] = struct{}{}
	}
	if len(cfg.Graph) != 0 {
		return fmt.Errorf("%w: graph has not been expanded", ErrInvalidTopology)
	}
	edges := make(map[Pair[NodeId, NodeId]]struct{}, len(cfg.Links))
	for _, link := range cfg.Links {
		if _, ok := seen[link.A]; !ok {
			return fmt.Errorf("%w: router %s not defined", ErrInvalidTopology, link.A)
		}
		if _, ok := seen[link.B]; !ok {
			return fmt.Errorf("%w: router %s not defined", ErrInvalidTopology, link.B)
		}
		if link.A == link.B {
			return fmt.Errorf("%w: router %s cannot link to itself", ErrInvalidTopology, link.A)
		}
		if link.Cost == 0 || link.Cost > INFM {
			return fmt.Errorf("%w: link %s, %s has invalid cost %d", ErrInvalidTopology, link.A, link.B, link.Cost)
		}
		key := MakeSortedPair(link.A, link.B)
		if _, ok := edges[key]; ok {
			return fmt.Errorf("%w: duplicate link found: %s, %s", ErrInvalidTopology, key.V1, key.V2)
		}
		edges[key] = struct{}{}
	}
	return nil
}

// RunConfigValidator expects an expanded config, see ExpandRunConfig
func RunConfigValidator(cfg *RunCfg) error {
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", cfg.MaxIterations)
	}
	if err := PolicyValidator(cfg.Policy); err != nil {
		return err
	}
	if cfg.LogPath != "" {
		if err := PathValidator(cfg.LogPath); err != nil {
			return fmt.Errorf("invalid log path: %w", err)
		}
	}
	return nil
}
