package core

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/encodeous/dvsim/perf"
	"github.com/encodeous/dvsim/state"
)

type RouterEvent int

// trace events

const (
	RouteAdded RouterEvent = iota
	RouteImproved
	// RouteFollowed means the current next hop announced a different cost and we took it
	RouteFollowed
)

// error events

const (
	InconsistentState RouterEvent = iota + 1000
)

func (e RouterEvent) String() string {
	switch e {
	case RouteAdded:
		return "RouteAdded"
	case RouteImproved:
		return "RouteImproved"
	case RouteFollowed:
		return "RouteFollowed"
	case InconsistentState:
		return "InconsistentState"
	}
	return fmt.Sprintf("RouterEvent(%d)", int(e))
}

// Advertisement is a distance vector as delivered to a neighbour
type Advertisement struct {
	From state.NodeId
	// Rank of the sender within its topology, buffered advertisements are applied in ascending rank
	Rank   int
	Routes state.Table
}

// EvaluateAdvertisement relaxes a single advertised route received from the neighbour via.
// The cost to reach via is taken from our own table, so via must already have an entry.
func (r *RouterNode) EvaluateAdvertisement(dest state.NodeId, advCost uint32, via state.NodeId) (bool, error) {
	link, ok := r.Routes.Get(via)
	if !ok {
		r.logEvent(InconsistentState, "advertisement from a router without a table entry", "via", via, "dest", dest)
		return false, fmt.Errorf("%w: router %s received a route to %s via %s, which it has no route to", state.ErrInvariantViolation, r.Id, dest, via)
	}

	newCost := state.AddMetric(advCost, link.Cost)
	if newCost == state.INF {
		return false, nil // an infinite route is never installed
	}

	cur, exists := r.Routes.Get(dest)
	switch {
	case !exists:
		r.AddRouteEntry(dest, newCost, state.Via(via))
		r.logEvent(RouteAdded, "", "dest", dest, "cost", newCost, "via", via)
	case newCost < cur.Cost:
		r.AddRouteEntry(dest, newCost, state.Via(via))
		r.logEvent(RouteImproved, "", "dest", dest, "old", cur.Cost, "cost", newCost, "via", via)
	case r.Policy == state.PolicyTrustNextHop && cur.NextHop.IsVia(via) && newCost != cur.Cost:
		r.AddRouteEntry(dest, newCost, state.Via(via))
		r.logEvent(RouteFollowed, "", "dest", dest, "old", cur.Cost, "cost", newCost, "via", via)
	default:
		return false, nil
	}
	perf.RelaxationsAccepted.Add(1)
	return true, nil
}

// DrainAndApply relaxes every buffered advertisement against our table and empties the buffer.
// It reports whether the table changed.
func (r *RouterNode) DrainAndApply() (bool, error) {
	r.inboundMu.Lock()
	pending := r.inbound
	r.inbound = make(map[state.NodeId]Advertisement, len(r.Neighbours))
	r.inboundMu.Unlock()

	// the order a sequential broadcast would have delivered them in
	advs := make([]Advertisement, 0, len(pending))
	for _, adv := range pending {
		advs = append(advs, adv)
	}
	slices.SortFunc(advs, func(a, b Advertisement) int {
		return cmp.Compare(a.Rank, b.Rank)
	})

	changed := false
	for _, adv := range advs {
		for dest, entry := range adv.Routes.All() {
			updated, err := r.EvaluateAdvertisement(dest, entry.Cost, adv.From)
			if err != nil {
				return changed, err
			}
			changed = changed || updated
		}
	}
	return changed, nil
}
