package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTable_InsertionOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Set("R3", RouteEntry{Cost: 3, NextHop: DirectHop})
	tbl.Set("R1", RouteEntry{Cost: 0, NextHop: SelfHop})
	tbl.Set("R2", RouteEntry{Cost: 8, NextHop: Via("R3")})
	// overwriting keeps the original position
	tbl.Set("R3", RouteEntry{Cost: 2, NextHop: Via("R2")})

	assert.Equal(t, []NodeId{"R3", "R1", "R2"}, tbl.Destinations())
	assert.Equal(t, 3, tbl.Len())
	e, ok := tbl.Get("R3")
	assert.True(t, ok)
	assert.Equal(t, RouteEntry{Cost: 2, NextHop: Via("R2")}, e)
	_, ok = tbl.Get("R9")
	assert.False(t, ok)

	assert.Equal(t, `R3 via (cost: 2, nh: R2)
R1 via (cost: 0, nh: SELF)
R2 via (cost: 8, nh: R3)`, tbl.String())
}

func TestTable_ZeroValue(t *testing.T) {
	var tbl Table
	_, ok := tbl.Get("a")
	assert.False(t, ok)
	tbl.Set("a", RouteEntry{Cost: 1, NextHop: DirectHop})
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", RouteEntry{Cost: 0, NextHop: SelfHop})
	snap := tbl.Clone()

	tbl.Set("a", RouteEntry{Cost: 5, NextHop: DirectHop})
	tbl.Set("b", RouteEntry{Cost: 1, NextHop: DirectHop})

	e, _ := snap.Get("a")
	assert.Equal(t, uint32(0), e.Cost)
	assert.Equal(t, 1, snap.Len())
	assert.False(t, snap.Equal(tbl))
}

func TestTable_EqualWithCmp(t *testing.T) {
	a := NewTable()
	a.Set("x", RouteEntry{Cost: 1, NextHop: DirectHop})
	a.Set("y", RouteEntry{Cost: 2, NextHop: Via("x")})
	b := a.Clone()
	assert.Empty(t, cmp.Diff(a, b))
	assert.True(t, cmp.Equal(map[NodeId]Table{"n": a}, map[NodeId]Table{"n": b}))

	// same entries in a different order
	c := NewTable()
	c.Set("y", RouteEntry{Cost: 2, NextHop: Via("x")})
	c.Set("x", RouteEntry{Cost: 1, NextHop: DirectHop})
	assert.False(t, cmp.Equal(a, c))
}

func TestTable_AllStopsEarly(t *testing.T) {
	tbl := NewTable()
	for _, id := range []NodeId{"a", "b", "c"} {
		tbl.Set(id, RouteEntry{Cost: 1, NextHop: DirectHop})
	}
	seen := make([]NodeId, 0)
	for dest := range tbl.All() {
		seen = append(seen, dest)
		if dest == "b" {
			break
		}
	}
	assert.Equal(t, []NodeId{"a", "b"}, seen)
}
