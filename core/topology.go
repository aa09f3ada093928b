package core

import (
	"fmt"
	"log/slog"

	"github.com/encodeous/dvsim/state"
)

// Topology owns every router of a network and the links between them.
// Routers and links are only ever added; nothing is removed during a run.
type Topology struct {
	Policy  state.RelaxPolicy
	Log     *slog.Logger
	routers []*RouterNode
	index   map[state.NodeId]*RouterNode
}

func NewTopology(policy state.RelaxPolicy, log *slog.Logger) *Topology {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Topology{
		Policy: policy,
		Log:    log,
		index:  make(map[state.NodeId]*RouterNode),
	}
}

// BuildTopology expands and validates cfg, then creates its routers and links in order
func BuildTopology(cfg state.TopologyCfg, policy state.RelaxPolicy, log *slog.Logger) (*Topology, error) {
	cfg.Routers = append([]state.NodeId(nil), cfg.Routers...)
	cfg.Links = append([]state.LinkCfg(nil), cfg.Links...)
	if err := state.ExpandTopologyConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrInvalidTopology, err)
	}
	if err := state.TopologyConfigValidator(&cfg); err != nil {
		return nil, err
	}
	t := NewTopology(policy, log)
	for _, id := range cfg.Routers {
		if _, err := t.AddRouter(id); err != nil {
			return nil, err
		}
	}
	for _, link := range cfg.Links {
		if err := t.Connect(link.A, link.B, link.Cost); err != nil {
			return nil, err
		}
	}
	t.Log.Debug("built topology", "routers", len(cfg.Routers), "links", len(cfg.Links))
	return t, nil
}

// AddRouter creates a router seeded with its self entry
func (t *Topology) AddRouter(id state.NodeId) (*RouterNode, error) {
	if _, ok := t.index[id]; ok {
		return nil, fmt.Errorf("%w: duplicate router %s", state.ErrInvalidTopology, id)
	}
	r := NewRouterNode(id, len(t.routers), t.Policy, t.Log)
	t.routers = append(t.routers, r)
	t.index[id] = r
	return r, nil
}

// Connect links a and b in both directions with the same cost
func (t *Topology) Connect(a, b state.NodeId, cost uint32) error {
	ra, rb, err := t.endpoints(a, b, cost)
	if err != nil {
		return err
	}
	if err := ra.AddNeighbour(b, cost); err != nil {
		return err
	}
	return rb.AddNeighbour(a, cost)
}

// SetLinkCost changes the cost of an existing link, rewriting the direct entries on both ends.
// It perturbs a converged network for stress tests and must not be called while a Driver is running.
func (t *Topology) SetLinkCost(a, b state.NodeId, cost uint32) error {
	ra, rb, err := t.endpoints(a, b, cost)
	if err != nil {
		return err
	}
	if ra.GetNeighbour(b) == nil {
		return fmt.Errorf("%w: routers %s and %s are not linked", state.ErrInvalidTopology, a, b)
	}
	t.Log.Debug("link cost changed", "a", a, "b", b, "cost", cost)
	if err := ra.AddNeighbour(b, cost); err != nil {
		return err
	}
	return rb.AddNeighbour(a, cost)
}

func (t *Topology) endpoints(a, b state.NodeId, cost uint32) (*RouterNode, *RouterNode, error) {
	ra, ok := t.index[a]
	if !ok {
		return nil, nil, fmt.Errorf("%w: router %s not defined", state.ErrInvalidTopology, a)
	}
	rb, ok := t.index[b]
	if !ok {
		return nil, nil, fmt.Errorf("%w: router %s not defined", state.ErrInvalidTopology, b)
	}
	if a == b {
		return nil, nil, fmt.Errorf("%w: router %s cannot link to itself", state.ErrInvalidTopology, a)
	}
	if cost == 0 || cost > state.INFM {
		return nil, nil, fmt.Errorf("%w: link %s, %s has invalid cost %d", state.ErrInvalidTopology, a, b, cost)
	}
	return ra, rb, nil
}

func (t *Topology) Router(id state.NodeId) *RouterNode {
	return t.index[id]
}

// Routers returns every router in the order it was added
func (t *Topology) Routers() []*RouterNode {
	return t.routers
}

func (t *Topology) Neighbours(id state.NodeId) []state.Neighbour {
	r, ok := t.index[id]
	if !ok {
		return nil
	}
	return r.Neighbours
}

// Tables captures the current table of every router
func (t *Topology) Tables() []state.NodeTable {
	tables := make([]state.NodeTable, 0, len(t.routers))
	for _, r := range t.routers {
		tables = append(tables, state.NodeTable{Id: r.Id, Routes: r.SnapshotTable()})
	}
	return tables
}
