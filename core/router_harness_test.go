package core

import (
	"fmt"
	"testing"

	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/require"
)

// RecordingObserver keeps every table of every round, index 0 is the initial state
type RecordingObserver struct {
	Rounds  [][]state.NodeTable
	Changed []bool
	Result  *Result
}

func (o *RecordingObserver) Start(t *Topology) {
	o.Rounds = append(o.Rounds, t.Tables())
}

func (o *RecordingObserver) RoundComplete(round int, changed bool, t *Topology) {
	o.Rounds = append(o.Rounds, t.Tables())
	o.Changed = append(o.Changed, changed)
}

func (o *RecordingObserver) Finish(res *Result) {
	o.Result = res
}

type link struct {
	a, b state.NodeId
	cost uint32
}

func MakeTopology(t *testing.T, policy state.RelaxPolicy, routers []state.NodeId, links ...link) *Topology {
	t.Helper()
	topo := NewTopology(policy, nil)
	for _, id := range routers {
		_, err := topo.AddRouter(id)
		require.NoError(t, err)
	}
	for _, l := range links {
		require.NoError(t, topo.Connect(l.a, l.b, l.cost))
	}
	return topo
}

func Chain(t *testing.T, n int) *Topology {
	t.Helper()
	routers := make([]state.NodeId, 0, n)
	links := make([]link, 0, n)
	for i := range n {
		routers = append(routers, state.NodeId(fmt.Sprintf("r%02d", i)))
		if i > 0 {
			links = append(links, link{routers[i-1], routers[i], 1})
		}
	}
	return MakeTopology(t, state.PolicyStrict, routers, links...)
}

func Entry(cost uint32, nh state.NextHop) state.RouteEntry {
	return state.RouteEntry{Cost: cost, NextHop: nh}
}

func MustGet(t *testing.T, r *RouterNode, dest state.NodeId) state.RouteEntry {
	t.Helper()
	e, ok := r.Routes.Get(dest)
	require.True(t, ok, "%s has no route to %s", r.Id, dest)
	return e
}
