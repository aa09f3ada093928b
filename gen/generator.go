// Package gen builds random topologies for simulation runs.
package gen

import (
	"fmt"
	"math/rand/v2"

	"github.com/encodeous/dvsim/state"
)

// NewRand returns a deterministic random source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomRand returns a random source seeded from the runtime
func NewRandomRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandomSize picks a router count in [MinNodes, MaxNodes]
func RandomSize(rng *rand.Rand) int {
	return state.MinNodes + rng.IntN(state.MaxNodes-state.MinNodes+1)
}

func RouterName(i int) state.NodeId {
	return state.NodeId(fmt.Sprintf("R%d", i+1))
}

func randomCost(rng *rand.Rand) uint32 {
	return uint32(state.MinGenCost + rng.IntN(state.MaxGenCost-state.MinGenCost+1))
}

// Generate creates a network of n routers named R1..Rn. Consecutive routers are
// always linked, so no router is isolated; every other pair is linked with
// probability 1/ExtraLinkOdds. Link costs are uniform in [MinGenCost, MaxGenCost].
func Generate(n int, rng *rand.Rand) (*state.TopologyCfg, error) {
	if err := state.NodeCountValidator(n); err != nil {
		return nil, err
	}
	cfg := &state.TopologyCfg{
		Routers: make([]state.NodeId, 0, n),
	}
	for i := range n {
		cfg.Routers = append(cfg.Routers, RouterName(i))
	}

	for i := 0; i < n-1; i++ {
		cfg.Links = append(cfg.Links, state.LinkCfg{
			A:    RouterName(i),
			B:    RouterName(i + 1),
			Cost: randomCost(rng),
		})
	}

	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if rng.IntN(state.ExtraLinkOdds) != 0 {
				continue
			}
			cfg.Links = append(cfg.Links, state.LinkCfg{
				A:    RouterName(i),
				B:    RouterName(j),
				Cost: randomCost(rng),
			})
		}
	}
	return cfg, nil
}
