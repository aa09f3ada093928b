package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_SimpleGraph(t *testing.T) {
	nodes := []string{"1", "2", "3", "4", "5"}
	input := `1, 2
3, 4 : 7
1,3,5`
	links, err := ParseGraph(strings.Split(input, "\n"), nodes, 1)
	assert.NoError(t, err)
	assert.Equal(t, []LinkCfg{
		{"1", "2", 1},
		{"1", "3", 1},
		{"1", "5", 1},
		{"3", "4", 7},
		{"3", "5", 1},
	}, links)
}

func TestParseGraph_Groups(t *testing.T) {
	nodes := []string{"1", "2", "3", "4", "5", "6", "7"}
	input := `a = 1,2
b=3,,,4
c=5,6
d=a,b
d,d : 2
7,d`
	links, err := ParseGraph(strings.Split(input, "\n"), nodes, 1)
	assert.NoError(t, err)
	assert.ElementsMatch(t, links, []LinkCfg{
		// d,d
		{"1", "2", 2},
		{"1", "3", 2},
		{"1", "4", 2},
		{"2", "3", 2},
		{"2", "4", 2},
		{"3", "4", 2},
		// 7,d
		{"1", "7", 1},
		{"2", "7", 1},
		{"3", "7", 1},
		{"4", "7", 1},
	})
}

func TestParseGraph_CaseSensitive(t *testing.T) {
	links, err := ParseGraph([]string{"R1, R2 : 5"}, []string{"R1", "R2"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []LinkCfg{{"R1", "R2", 5}}, links)

	_, err = ParseGraph([]string{"r1, r2"}, []string{"R1", "R2"}, 1)
	assert.ErrorContains(t, err, "r1 is not a valid router/group")
}

func TestParseGraph_Cycle(t *testing.T) {
	nodes := []string{}
	input := `a = b
b = c
c = a`
	_, err := ParseGraph(strings.Split(input, "\n"), nodes, 1)
	assert.ErrorContains(t, err, "cycle detected in graph: [a b c]")
}

func TestParseGraph_ConflictingCosts(t *testing.T) {
	input := `g = a, b
a, b : 3
g, g : 4`
	_, err := ParseGraph(strings.Split(input, "\n"), []string{"a", "b"}, 1)
	assert.ErrorContains(t, err, "conflicting costs for link a, b: 3 and 4")
}

func TestParseGraph_BadCost(t *testing.T) {
	_, err := ParseGraph([]string{"a, b : 0"}, []string{"a", "b"}, 1)
	assert.ErrorContains(t, err, "link cost must be positive")
	_, err = ParseGraph([]string{"a, b : x"}, []string{"a", "b"}, 1)
	assert.ErrorContains(t, err, "invalid link cost")
}

func TestParseGraph_SinglePairing(t *testing.T) {
	_, err := ParseGraph([]string{"a"}, []string{"a", "b"}, 1)
	assert.ErrorContains(t, err, "invalid pairing")
}

func TestExpandTopologyConfig_ExplicitWins(t *testing.T) {
	cfg := &TopologyCfg{
		Routers: []NodeId{"R1", "R2", "R3"},
		Links:   []LinkCfg{{"R2", "R1", 9}},
		Graph:   []string{"R1, R2, R3"},
	}
	require.NoError(t, ExpandTopologyConfig(cfg))
	assert.Nil(t, cfg.Graph)
	assert.Equal(t, DefaultLinkCost, cfg.DefaultCost)
	assert.Equal(t, []LinkCfg{
		{"R2", "R1", 9},
		{"R1", "R3", 1},
		{"R2", "R3", 1},
	}, cfg.Links)
	assert.NoError(t, TopologyConfigValidator(cfg))
}

func TestExpandRunConfig_Defaults(t *testing.T) {
	cfg := &RunCfg{}
	ExpandRunConfig(cfg)
	assert.Equal(t, 20, cfg.MaxIterations)
	assert.Equal(t, PolicyStrict, cfg.Policy)

	cfg = &RunCfg{MaxIterations: 3, Policy: PolicyTrustNextHop}
	ExpandRunConfig(cfg)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, PolicyTrustNextHop, cfg.Policy)
}
