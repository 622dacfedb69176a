package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRouteSamePoint(t *testing.T) {
	g := New(2)
	r := NewRouter(g)

	route, ok := r.BuildRoute(0, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, route.Weight)
	assert.Empty(t, route.Edges)
}

func TestBuildRouteUnreachable(t *testing.T) {
	g := New(3)
	g.AddEdge(Edge{From: 0, To: 1, Weight: 5})

	r := NewRouter(g)
	_, ok := r.BuildRoute(0, 2)
	assert.False(t, ok)
}

func TestBuildRouteShortestOverLonger(t *testing.T) {
	g := New(4)
	// 0 -> 1 -> 3 costs 10, 0 -> 2 -> 3 costs 3
	g.AddEdge(Edge{From: 0, To: 1, Weight: 5})
	g.AddEdge(Edge{From: 1, To: 3, Weight: 5})
	g.AddEdge(Edge{From: 0, To: 2, Weight: 1})
	g.AddEdge(Edge{From: 2, To: 3, Weight: 2})

	r := NewRouter(g)
	route, ok := r.BuildRoute(0, 3)
	require.True(t, ok)
	assert.Equal(t, 3.0, route.Weight)
	require.Len(t, route.Edges, 2)
	assert.Equal(t, Edge{From: 0, To: 2, Weight: 1}, g.GetEdge(route.Edges[0]))
	assert.Equal(t, Edge{From: 2, To: 3, Weight: 2}, g.GetEdge(route.Edges[1]))
}

func TestGetIncidentEdges(t *testing.T) {
	g := New(2)
	id := g.AddEdge(Edge{From: 0, To: 1, Weight: 1})
	assert.Equal(t, []int{id}, g.GetIncidentEdges(0))
	assert.Empty(t, g.GetIncidentEdges(1))
}
