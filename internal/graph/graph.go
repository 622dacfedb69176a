// Package graph implements a fixed-vertex-count directed weighted graph
// with append-only edges and a Dijkstra-based shortest-path index.
package graph

import (
	"container/heap"
	"fmt"
)

// Edge is a directed weighted connection between two vertices.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// DirectedWeightedGraph holds a fixed number of vertices and an
// append-only list of edges, each assigned a dense increasing id.
type DirectedWeightedGraph struct {
	vertexCount int
	edges       []Edge
	incident    [][]int // vertex -> edge ids leaving it
}

// New creates a graph with vertexCount vertices and no edges.
func New(vertexCount int) *DirectedWeightedGraph {
	return &DirectedWeightedGraph{
		vertexCount: vertexCount,
		incident:    make([][]int, vertexCount),
	}
}

// VertexCount returns the number of vertices in the graph.
func (g *DirectedWeightedGraph) VertexCount() int {
	return g.vertexCount
}

// EdgeCount returns the number of edges appended so far.
func (g *DirectedWeightedGraph) EdgeCount() int {
	return len(g.edges)
}

// AddEdge appends an edge and returns its dense id.
func (g *DirectedWeightedGraph) AddEdge(e Edge) int {
	id := len(g.edges)
	g.edges = append(g.edges, e)
	g.incident[e.From] = append(g.incident[e.From], id)
	return id
}

// GetEdge returns the edge with the given id.
func (g *DirectedWeightedGraph) GetEdge(id int) Edge {
	return g.edges[id]
}

// GetIncidentEdges returns the ids of edges leaving v.
func (g *DirectedWeightedGraph) GetIncidentEdges(v int) []int {
	return g.incident[v]
}

// Route is the result of a shortest-path query: total weight and the
// ordered edge ids composing the path. An empty Edges slice with zero
// Weight means src == dst.
type Route struct {
	Weight float64
	Edges  []int
}

// pqItem is one entry in the Dijkstra open set.
type pqItem struct {
	vertex   int
	dist     float64
	edgeID   int // edge used to reach vertex, -1 for the source
	prevItem *pqItem
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// Router runs Dijkstra shortest-path queries against a built graph.
// Construct once after the graph's edges are finalized; the graph must
// not be mutated afterward.
type Router struct {
	graph *DirectedWeightedGraph
}

// NewRouter builds a Dijkstra index over g. Mirrors the teacher's A*
// open-set/closed-set idiom (container/heap with lazy decrease-key,
// stale entries discarded on pop) with no heuristic, since the spec's
// shortest-path query is plain Dijkstra, not A*.
func NewRouter(g *DirectedWeightedGraph) *Router {
	return &Router{graph: g}
}

// BuildRoute returns the minimum-weight path from src to dst, or false
// if dst is unreachable. Tie-breaking between equal-weight paths is
// deterministic but arbitrary: whichever successor was popped first.
func (r *Router) BuildRoute(src, dst int) (Route, bool) {
	if src == dst {
		return Route{Weight: 0, Edges: nil}, true
	}

	best := make(map[int]float64, r.graph.vertexCount)
	open := &priorityQueue{}
	heap.Init(open)

	heap.Push(open, &pqItem{vertex: src, dist: 0, edgeID: -1})
	best[src] = 0

	var goal *pqItem

	for open.Len() > 0 {
		current := heap.Pop(open).(*pqItem)

		if bestDist, ok := best[current.vertex]; ok && current.dist > bestDist {
			continue // stale entry, a better path to this vertex was already settled
		}

		if current.vertex == dst {
			goal = current
			break
		}

		for _, edgeID := range r.graph.GetIncidentEdges(current.vertex) {
			edge := r.graph.GetEdge(edgeID)
			tentative := current.dist + edge.Weight

			if existing, ok := best[edge.To]; ok && tentative >= existing {
				continue
			}

			best[edge.To] = tentative
			heap.Push(open, &pqItem{
				vertex:   edge.To,
				dist:     tentative,
				edgeID:   edgeID,
				prevItem: current,
			})
		}
	}

	if goal == nil {
		return Route{}, false
	}

	var edgeIDs []int
	for item := goal; item.edgeID != -1; item = item.prevItem {
		edgeIDs = append(edgeIDs, item.edgeID)
	}
	for i, j := 0, len(edgeIDs)-1; i < j; i, j = i+1, j-1 {
		edgeIDs[i], edgeIDs[j] = edgeIDs[j], edgeIDs[i]
	}

	return Route{Weight: goal.dist, Edges: edgeIDs}, true
}

// String implements a readable representation for debugging/logging.
func (e Edge) String() string {
	return fmt.Sprintf("%d->%d(%.4f)", e.From, e.To, e.Weight)
}
