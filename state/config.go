package state

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type LinkCfg struct {
	A    NodeId `yaml:"a"`
	B    NodeId `yaml:"b"`
	Cost uint32 `yaml:"cost"`
}

// TopologyCfg describes the routers of a network and the links between them
type TopologyCfg struct {
	Routers     []NodeId  `yaml:"routers"`
	Links       []LinkCfg `yaml:"links,omitempty"`
	Graph       []string  `yaml:"graph,omitempty"`        // see ParseGraph
	DefaultCost uint32    `yaml:"default_cost,omitempty"` // cost of graph links that do not specify one
}

type RelaxPolicy string

const (
	// PolicyStrict only accepts strictly cheaper routes
	PolicyStrict RelaxPolicy = "strict"
	// PolicyTrustNextHop also accepts any cost change announced by the current next hop, like RIP does.
	// Costs may rise, so runs can count to infinity.
	PolicyTrustNextHop RelaxPolicy = "trust-next-hop"
)

// RunCfg represents the parameters of a single simulation run
type RunCfg struct {
	MaxIterations int         `yaml:"max_iterations,omitempty"`
	Concurrent    bool        `yaml:"concurrent,omitempty"` // drive each router on its own goroutine
	Policy        RelaxPolicy `yaml:"policy,omitempty"`
	LogPath       string      `yaml:"log_path,omitempty"` // if not empty, logs are also appended to this file
}

func (c *TopologyCfg) GetLink(a, b NodeId) *LinkCfg {
	idx := slices.IndexFunc(c.Links, func(l LinkCfg) bool {
		return l.A == a && l.B == b || l.A == b && l.B == a
	})
	if idx == -1 {
		return nil
	}
	return &c.Links[idx]
}

// ExpandTopologyConfig appends the links described by the graph to the explicit links.
// Explicit links take precedence over graph links between the same routers.
func ExpandTopologyConfig(cfg *TopologyCfg) error {
	if cfg.DefaultCost == 0 {
		cfg.DefaultCost = DefaultLinkCost
	}
	nodes := make([]string, 0, len(cfg.Routers))
	for _, r := range cfg.Routers {
		nodes = append(nodes, string(r))
	}
	links, err := ParseGraph(cfg.Graph, nodes, cfg.DefaultCost)
	if err != nil {
		return err
	}
	for _, link := range links {
		if cfg.GetLink(link.A, link.B) == nil {
			cfg.Links = append(cfg.Links, link)
		}
	}
	cfg.Graph = nil
	return nil
}

func ExpandRunConfig(cfg *RunCfg) {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyStrict
	}
}

func parseSymbolList(s string, validSymbols []string) ([]string, error) {
	spl := strings.Split(strings.TrimSpace(s), ",")
	line := make([]string, 0)
	for _, s := range spl {
		x := strings.TrimSpace(s)
		if x == "" {
			continue
		}
		if !slices.Contains(validSymbols, x) {
			return nil, fmt.Errorf(`%s is not a valid router/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`router/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

// splitCost separates an optional trailing ": cost" from a pairing line
func splitCost(line string, def uint32) (string, uint32, error) {
	body, costStr, found := strings.Cut(line, ":")
	if !found {
		return line, def, nil
	}
	cost, err := strconv.ParseUint(strings.TrimSpace(costStr), 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid link cost in %q: %w", line, err)
	}
	if cost == 0 {
		return "", 0, fmt.Errorf("link cost must be positive in %q", line)
	}
	return body, uint32(cost), nil
}

/*
ParseGraph Graph syntax is something like this:

Group1 = R1, R2, R3

Group2 = R4, R5

Group1, Group2, R6 // Group1, Group2, R6 will all be interconnected, but not within Group1 or Group2

Group1, Group1 : 3 // every router in Group1 is connected to every other one with cost 3

R8, R9 : 7 // R8 and R9 will be connected with cost 7

Pairings without a cost use def. Symbols are case-sensitive.
nodes represents the set of routers the graph evaluates down to
*/
func ParseGraph(graph []string, nodes []string, def uint32) ([]LinkCfg, error) {
	type symbolLink struct {
		v1, v2 string
		cost   uint32
	}
	parsed := make([]symbolLink, 0)

	groups := make(map[string][]string)

	symbols := slices.Clone(nodes)

	// pass 0, collect all symbols

	for _, line := range graph {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			if len(spl) != 2 {
				return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
			}
			grp := strings.TrimSpace(spl[0])
			if slices.Contains(nodes, grp) {
				return nil, fmt.Errorf("group name must not be a router name: %s", grp)
			}
			symbols = append(symbols, grp)
		}
	}
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)

	// map: group -> groups it depends on
	topo := make(map[string][]string)
	expansion := make(map[string][]string)

	// pass 1, parse graph
	for _, line := range graph {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "=") {
			spl := strings.Split(line, "=")
			grp := strings.TrimSpace(spl[0])
			if _, ok := groups[grp]; ok {
				return nil, fmt.Errorf("duplicate group name: %s", grp)
			}
			lst, err := parseSymbolList(spl[1], symbols)
			if err != nil {
				return nil, err
			}
			deps := make([]string, 0)
			for _, l := range lst {
				if !slices.Contains(nodes, l) {
					deps = append(deps, l)
				} else {
					expansion[grp] = append(expansion[grp], l)
				}
			}
			slices.Sort(deps)
			topo[grp] = slices.Compact(deps)
			groups[grp] = lst
		} else {
			body, cost, err := splitCost(line, def)
			if err != nil {
				return nil, err
			}
			names, err := parseSymbolList(body, symbols)
			if err != nil {
				return nil, err
			}
			if len(names) < 2 {
				return nil, fmt.Errorf("invalid pairing, %v", names)
			}
			for i := range names {
				for j := i + 1; j < len(names); j++ {
					parsed = append(parsed, symbolLink{names[i], names[j], cost})
				}
			}
		}
	}

	// pass 2, expand group names in topological order
	for len(topo) > 0 {
		free := make([]string, 0)
		for k, v := range topo {
			if len(v) == 0 {
				free = append(free, k)
			}
		}
		if len(free) == 0 {
			cycleNodes := make([]string, 0)
			for node := range topo {
				cycleNodes = append(cycleNodes, node)
			}
			slices.Sort(cycleNodes)
			return nil, fmt.Errorf("cycle detected in graph: %v", cycleNodes)
		}
		slices.Sort(free)
		group := free[0]
		delete(topo, group)

		for k, deps := range topo {
			if slices.Contains(deps, group) {
				expansion[k] = append(expansion[k], expansion[group]...)
				slices.Sort(expansion[k])
				expansion[k] = slices.Compact(expansion[k])
				topo[k] = slices.DeleteFunc(deps, func(dep string) bool {
					return dep == group
				})
			}
		}
	}

	expand := func(symbol string) []string {
		if slices.Contains(nodes, symbol) {
			return []string{symbol}
		}
		return expansion[symbol]
	}

	// pass 3, rewrite pairings into router links
	costs := make(map[Pair[NodeId, NodeId]]uint32)
	order := make([]Pair[NodeId, NodeId], 0)
	for _, link := range parsed {
		for _, x := range expand(link.v1) {
			for _, y := range expand(link.v2) {
				if x == y {
					continue
				}
				key := MakeSortedPair(NodeId(x), NodeId(y))
				if prev, ok := costs[key]; ok {
					if prev != link.cost {
						return nil, fmt.Errorf("conflicting costs for link %s, %s: %d and %d", key.V1, key.V2, prev, link.cost)
					}
					continue
				}
				costs[key] = link.cost
				order = append(order, key)
			}
		}
	}
	SortPairs(order)
	links := make([]LinkCfg, 0, len(order))
	for _, key := range order {
		links = append(links, LinkCfg{A: key.V1, B: key.V2, Cost: costs[key]})
	}
	return links, nil
}
