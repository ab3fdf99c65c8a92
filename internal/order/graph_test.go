package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphDegreeAndNeighbors(t *testing.T) {
	g := newGraph(4)
	g.addEdge(0, 1)
	g.addEdge(1, 2)

	assert.Equal(t, 1, g.Degree(0))
	assert.Equal(t, 2, g.Degree(1))
	assert.Equal(t, 0, g.Degree(3))
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
}

func TestGraphAddEdgeIgnoresSelfLoop(t *testing.T) {
	g := newGraph(2)
	g.addEdge(0, 0)
	assert.Equal(t, 0, g.Degree(0))
}

// Every vertex is its own singleton component, so each is seeded in
// ascending index order and no reversal changes a length-1 component.
func TestRCMIsolatedVerticesAreIdentity(t *testing.T) {
	g := newGraph(3)
	assert.Equal(t, Permutation{0, 1, 2}, RCM(g))
}

func TestRCMEmptyGraph(t *testing.T) {
	g := newGraph(0)
	assert.Empty(t, RCM(g))
}
