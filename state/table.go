package state

import (
	"iter"
	"strings"
)

// Table maps destinations to routes and iterates in insertion order.
// The zero value is an empty table ready for use.
type Table struct {
	order   []NodeId
	entries map[NodeId]RouteEntry
}

func NewTable() Table {
	return Table{entries: make(map[NodeId]RouteEntry)}
}

func (t Table) Get(dest NodeId) (RouteEntry, bool) {
	e, ok := t.entries[dest]
	return e, ok
}

// Set writes the entry for dest. A destination keeps its original position when overwritten.
func (t *Table) Set(dest NodeId, entry RouteEntry) {
	if t.entries == nil {
		t.entries = make(map[NodeId]RouteEntry)
	}
	if _, ok := t.entries[dest]; !ok {
		t.order = append(t.order, dest)
	}
	t.entries[dest] = entry
}

func (t Table) Len() int {
	return len(t.order)
}

func (t Table) Destinations() []NodeId {
	out := make([]NodeId, len(t.order))
	copy(out, t.order)
	return out
}

func (t Table) All() iter.Seq2[NodeId, RouteEntry] {
	return func(yield func(NodeId, RouteEntry) bool) {
		for _, dest := range t.order {
			if !yield(dest, t.entries[dest]) {
				return
			}
		}
	}
}

// Clone returns a copy that shares no memory with t
func (t Table) Clone() Table {
	c := Table{
		order:   make([]NodeId, len(t.order)),
		entries: make(map[NodeId]RouteEntry, len(t.entries)),
	}
	copy(c.order, t.order)
	for k, v := range t.entries {
		c.entries[k] = v
	}
	return c
}

// Equal compares entries and their order
func (t Table) Equal(o Table) bool {
	if len(t.order) != len(o.order) {
		return false
	}
	for i, dest := range t.order {
		if o.order[i] != dest || t.entries[dest] != o.entries[dest] {
			return false
		}
	}
	return true
}

func (t Table) String() string {
	sb := strings.Builder{}
	for dest, e := range t.All() {
		if sb.Len() != 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(string(dest))
		sb.WriteString(" via ")
		sb.WriteString(e.String())
	}
	return sb.String()
}
