package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortPairsInt(t *testing.T) {
	pairs := []Pair[int, int]{
		{V1: 3, V2: 10},
		{V1: 1, V2: 20},
		{V1: 1, V2: 5},
		{V1: 2, V2: 15},
	}
	SortPairs(pairs)
	assert.Equal(t, []Pair[int, int]{
		{V1: 1, V2: 5},
		{V1: 1, V2: 20},
		{V1: 2, V2: 15},
		{V1: 3, V2: 10},
	}, pairs)
}

func TestSortPairsNodeId(t *testing.T) {
	pairs := []Pair[NodeId, NodeId]{
		MakeSortedPair[NodeId]("R3", "R1"),
		MakeSortedPair[NodeId]("R1", "R2"),
		MakeSortedPair[NodeId]("R2", "R10"),
	}
	SortPairs(pairs)
	assert.Equal(t, []Pair[NodeId, NodeId]{
		{"R1", "R2"},
		{"R1", "R3"},
		{"R10", "R2"},
	}, pairs)
}
