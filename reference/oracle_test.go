package reference

import (
	"testing"

	"github.com/encodeous/dvsim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//	  R1 --5-- R2 --3-- R3
//	   \               /
//	    ------10-------
//	R4 (isolated)
func sampleCfg() state.TopologyCfg {
	return state.TopologyCfg{
		Routers: []state.NodeId{"R1", "R2", "R3", "R4"},
		Links: []state.LinkCfg{
			{A: "R1", B: "R2", Cost: 5},
			{A: "R2", B: "R3", Cost: 3},
			{A: "R1", B: "R3", Cost: 10},
		},
	}
}

func TestOracle_Distance(t *testing.T) {
	o, err := NewOracle(sampleCfg())
	require.NoError(t, err)

	d, ok := o.Distance("R1", "R3")
	assert.True(t, ok)
	assert.Equal(t, uint32(8), d)
	assert.Equal(t, []state.NodeId{"R1", "R2", "R3"}, o.Path("R1", "R3"))

	d, ok = o.Distance("R3", "R3")
	assert.True(t, ok)
	assert.Zero(t, d)

	_, ok = o.Distance("R1", "R4")
	assert.False(t, ok)
	_, ok = o.Distance("R9", "R1")
	assert.False(t, ok)
	assert.Nil(t, o.Path("R1", "R9"))

	// served from the cache the second time
	d, ok = o.Distance("R1", "R3")
	assert.True(t, ok)
	assert.Equal(t, uint32(8), d)
}

func TestOracle_RejectsInvalid(t *testing.T) {
	cfg := sampleCfg()
	cfg.Links = append(cfg.Links, state.LinkCfg{A: "R1", B: "R7", Cost: 1})
	_, err := NewOracle(cfg)
	assert.ErrorIs(t, err, state.ErrInvalidTopology)
}

func TestOracle_Compare(t *testing.T) {
	o, err := NewOracle(sampleCfg())
	require.NoError(t, err)

	r1 := state.NewTable()
	r1.Set("R1", state.RouteEntry{Cost: 0, NextHop: state.SelfHop})
	r1.Set("R2", state.RouteEntry{Cost: 5, NextHop: state.DirectHop})
	r1.Set("R3", state.RouteEntry{Cost: 10, NextHop: state.DirectHop}) // not optimal
	r1.Set("R4", state.RouteEntry{Cost: 2, NextHop: state.Via("R2")}) // unreachable
	r1.Set("R8", state.RouteEntry{Cost: 2, NextHop: state.Via("R2")}) // unknown

	r4 := state.NewTable()
	r4.Set("R4", state.RouteEntry{Cost: 0, NextHop: state.SelfHop})

	r2 := state.NewTable()
	r2.Set("R2", state.RouteEntry{Cost: 0, NextHop: state.SelfHop})
	r2.Set("R1", state.RouteEntry{Cost: 5, NextHop: state.DirectHop})
	// missing R3

	mm := o.Compare([]state.NodeTable{{Id: "R1", Routes: r1}, {Id: "R4", Routes: r4}, {Id: "R2", Routes: r2}})
	require.Len(t, mm, 4)
	assert.Equal(t, "R1: route to R3 costs 10, shortest path costs 8", mm[0].String())
	assert.Equal(t, "R1: has a route to unreachable R4 (cost 2)", mm[1].String())
	assert.Equal(t, "R1: has a route to unreachable R8 (cost 2)", mm[2].String())
	assert.Equal(t, "R2: missing route to R3, shortest path costs 3", mm[3].String())
}
