package state

import (
	"fmt"
	"slices"
)

type NodeId string

type HopKind uint8

const (
	HopVia HopKind = iota
	HopSelf
	HopDirect
)

// NextHop is either a sentinel (SELF, DIRECT) or the neighbour a route was learned from
type NextHop struct {
	Kind HopKind
	Node NodeId
}

var (
	SelfHop   = NextHop{Kind: HopSelf}
	DirectHop = NextHop{Kind: HopDirect}
)

func Via(node NodeId) NextHop {
	return NextHop{Kind: HopVia, Node: node}
}

// IsVia reports whether the route was learned through node
func (n NextHop) IsVia(node NodeId) bool {
	return n.Kind == HopVia && n.Node == node
}

func (n NextHop) String() string {
	switch n.Kind {
	case HopSelf:
		return "SELF"
	case HopDirect:
		return "DIRECT"
	default:
		return string(n.Node)
	}
}

type RouteEntry struct {
	Cost    uint32
	NextHop NextHop
}

func (r RouteEntry) String() string {
	return fmt.Sprintf("(cost: %d, nh: %s)", r.Cost, r.NextHop)
}

type Neighbour struct {
	Id   NodeId
	Cost uint32
}

// NodeTable is a router's table captured at some point in a run
type NodeTable struct {
	Id     NodeId
	Routes Table
}

func FindNodeTable(tables []NodeTable, id NodeId) *NodeTable {
	idx := slices.IndexFunc(tables, func(t NodeTable) bool {
		return t.Id == id
	})
	if idx == -1 {
		return nil
	}
	return &tables[idx]
}

// AddMetric adds two costs, saturating at INF
func AddMetric(a, b uint32) uint32 {
	if a == INF || b == INF {
		return INF
	}
	if a > INFM-b {
		return INF
	}
	return a + b
}
