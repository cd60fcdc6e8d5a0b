package makewhole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIndex(t *testing.T) {
	local := localIndex([]int{42, 7, 13})

	assert.Equal(t, map[int]int{42: 0, 7: 1, 13: 2}, local)
}

func TestBuildAdjacency(t *testing.T) {
	indices := []int{42, 7, 13}
	local := localIndex(indices)

	bonds := [][2]int{
		{42, 7},   // kept
		{7, 13},   // kept
		{42, 99},  // endpoint outside the group
		{99, 100}, // both endpoints outside
		{13, 13},  // self bond
	}
	adj := buildAdjacency(local, len(indices), bonds)

	assert.Equal(t, []int32{1}, adj[0])
	assert.ElementsMatch(t, []int32{0, 2}, adj[1], "both directions must be inserted")
	assert.Equal(t, []int32{1}, adj[2])
}

func TestBuildAdjacency_Empty(t *testing.T) {
	indices := []int{1, 2}
	adj := buildAdjacency(localIndex(indices), len(indices), [][2]int{})

	assert.Len(t, adj, 2)
	assert.Empty(t, adj[0])
	assert.Empty(t, adj[1])
}
