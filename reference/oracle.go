// Package reference computes shortest paths over a whole topology with Dijkstra,
// independently of the distance-vector protocol, so converged tables can be checked.
package reference

import (
	"fmt"
	"math"

	"github.com/encodeous/dvsim/state"
	"github.com/jellydator/ttlcache/v3"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type Oracle struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[state.NodeId]int64
	names []state.NodeId
	// shortest path trees, keyed by source router
	trees *ttlcache.Cache[state.NodeId, path.Shortest]
}

// Mismatch is a destination whose cost in a router's table differs from the shortest path
type Mismatch struct {
	Router    state.NodeId
	Dest      state.NodeId
	Want      uint32
	Got       uint32
	Reachable bool // whether Dest can be reached at all
	Present   bool // whether the router has an entry for Dest
}

func (m Mismatch) String() string {
	switch {
	case !m.Reachable:
		return fmt.Sprintf("%s: has a route to unreachable %s (cost %d)", m.Router, m.Dest, m.Got)
	case !m.Present:
		return fmt.Sprintf("%s: missing route to %s, shortest path costs %d", m.Router, m.Dest, m.Want)
	default:
		return fmt.Sprintf("%s: route to %s costs %d, shortest path costs %d", m.Router, m.Dest, m.Got, m.Want)
	}
}

// NewOracle indexes an expanded, valid topology config
func NewOracle(cfg state.TopologyCfg) (*Oracle, error) {
	if err := state.TopologyConfigValidator(&cfg); err != nil {
		return nil, err
	}
	o := &Oracle{
		g:     simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		ids:   make(map[state.NodeId]int64, len(cfg.Routers)),
		names: append([]state.NodeId(nil), cfg.Routers...),
		trees: ttlcache.New[state.NodeId, path.Shortest](
			ttlcache.WithCapacity[state.NodeId, path.Shortest](uint64(max(len(cfg.Routers), 1))),
		),
	}
	for i, id := range cfg.Routers {
		o.ids[id] = int64(i)
		o.g.AddNode(simple.Node(i))
	}
	for _, link := range cfg.Links {
		o.g.SetWeightedEdge(o.g.NewWeightedEdge(simple.Node(o.ids[link.A]), simple.Node(o.ids[link.B]), float64(link.Cost)))
	}
	return o, nil
}

func (o *Oracle) tree(src state.NodeId) (path.Shortest, bool) {
	if item := o.trees.Get(src); item != nil {
		return item.Value(), true
	}
	id, ok := o.ids[src]
	if !ok {
		return path.Shortest{}, false
	}
	sp := path.DijkstraFrom(simple.Node(id), o.g)
	o.trees.Set(src, sp, ttlcache.NoTTL)
	return sp, true
}

// Distance returns the cost of the shortest path from src to dst, and false if there is none
func (o *Oracle) Distance(src, dst state.NodeId) (uint32, bool) {
	sp, ok := o.tree(src)
	if !ok {
		return 0, false
	}
	dstId, ok := o.ids[dst]
	if !ok {
		return 0, false
	}
	w := sp.WeightTo(dstId)
	if math.IsInf(w, 1) {
		return 0, false
	}
	return uint32(w), true
}

// Path returns the routers on a shortest path from src to dst, inclusive
func (o *Oracle) Path(src, dst state.NodeId) []state.NodeId {
	sp, ok := o.tree(src)
	if !ok {
		return nil
	}
	dstId, ok := o.ids[dst]
	if !ok {
		return nil
	}
	nodes, _ := sp.To(dstId)
	out := make([]state.NodeId, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, o.names[n.ID()])
	}
	return out
}

// Compare checks every table against the shortest path costs. Reachable destinations
// must be present with the optimal cost, and unreachable ones must be absent.
func (o *Oracle) Compare(tables []state.NodeTable) []Mismatch {
	out := make([]Mismatch, 0)
	for _, t := range tables {
		for _, dst := range o.names {
			want, reachable := o.Distance(t.Id, dst)
			got, present := t.Routes.Get(dst)
			if reachable == present && (!present || got.Cost == want) {
				continue
			}
			out = append(out, Mismatch{
				Router:    t.Id,
				Dest:      dst,
				Want:      want,
				Got:       got.Cost,
				Reachable: reachable,
				Present:   present,
			})
		}
		for dst, e := range t.Routes.All() {
			if _, known := o.ids[dst]; !known {
				out = append(out, Mismatch{Router: t.Id, Dest: dst, Got: e.Cost, Present: true})
			}
		}
	}
	return out
}
