package core

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/encodeous/dvsim/state"
)

// RouterNode holds one router's view of the network.
// Routes is only mutated by its owner; other routers only ever see snapshots.
type RouterNode struct {
	Id         state.NodeId
	Rank       int
	Policy     state.RelaxPolicy
	Routes     state.Table
	Neighbours []state.Neighbour
	Log        *slog.Logger

	inboundMu sync.Mutex
	inbound   map[state.NodeId]Advertisement
}

func NewRouterNode(id state.NodeId, rank int, policy state.RelaxPolicy, log *slog.Logger) *RouterNode {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if policy == "" {
		policy = state.PolicyStrict
	}
	r := &RouterNode{
		Id:      id,
		Rank:    rank,
		Policy:  policy,
		Routes:  state.NewTable(),
		Log:     log.With("router", id),
		inbound: make(map[state.NodeId]Advertisement),
	}
	r.AddRouteEntry(id, 0, state.SelfHop)
	return r
}

func (r *RouterNode) GetNeighbour(node state.NodeId) *state.Neighbour {
	nIdx := slices.IndexFunc(r.Neighbours, func(neighbour state.Neighbour) bool {
		return neighbour.Id == node
	})
	if nIdx == -1 {
		return nil
	}
	return &r.Neighbours[nIdx]
}

// AddNeighbour registers a direct link, or overwrites the cost of an existing one
func (r *RouterNode) AddNeighbour(neigh state.NodeId, cost uint32) error {
	if cost == 0 || cost > state.INFM {
		return fmt.Errorf("%w: link %s, %s has invalid cost %d", state.ErrInvalidTopology, r.Id, neigh, cost)
	}
	if neigh == r.Id {
		return fmt.Errorf("%w: router %s cannot link to itself", state.ErrInvalidTopology, r.Id)
	}
	if n := r.GetNeighbour(neigh); n != nil {
		n.Cost = cost
	} else {
		r.Neighbours = append(r.Neighbours, state.Neighbour{Id: neigh, Cost: cost})
	}
	r.AddRouteEntry(neigh, cost, state.DirectHop)
	return nil
}

func (r *RouterNode) AddRouteEntry(dest state.NodeId, cost uint32, nh state.NextHop) {
	r.Routes.Set(dest, state.RouteEntry{Cost: cost, NextHop: nh})
}

// ReceiveAdvertisement buffers adv until the next drain. It is safe to call from several goroutines.
func (r *RouterNode) ReceiveAdvertisement(adv Advertisement) {
	r.inboundMu.Lock()
	defer r.inboundMu.Unlock()
	r.inbound[adv.From] = adv
}

// SnapshotTable returns a copy of the table, later updates are not visible through it
func (r *RouterNode) SnapshotTable() state.Table {
	return r.Routes.Clone()
}

func (r *RouterNode) Advertise() Advertisement {
	return Advertisement{
		From:   r.Id,
		Rank:   r.Rank,
		Routes: r.SnapshotTable(),
	}
}

// Pending returns the number of buffered advertisements
func (r *RouterNode) Pending() int {
	r.inboundMu.Lock()
	defer r.inboundMu.Unlock()
	return len(r.inbound)
}

func (r *RouterNode) logEvent(event RouterEvent, desc string, args ...any) {
	msg := event.String()
	if desc != "" {
		msg = fmt.Sprintf("%s %s", msg, desc)
	}
	if event >= InconsistentState {
		r.Log.Error(msg, args...)
		return
	}
	r.Log.Debug(msg, args...)
}
