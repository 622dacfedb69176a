// Package router builds the wait/ride routing graph over a catalogue's
// stops and buses, and answers shortest-itinerary queries over it.
package router

import (
	"context"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/graph"
)

const toMinutes = 0.06

// Settings are the routing_settings section of the ingestion schema.
type Settings struct {
	BusWaitTime int     // minutes
	BusVelocity float64 // km/h
}

// VertexPair is the (start_wait, end_wait) vertex allocation for one stop.
type VertexPair struct {
	StartWait int
	EndWait   int
}

// EdgeMeta describes one routing-graph edge: its endpoints, weight and
// the stop/bus identity behind it, mirroring the original's EdgeInfo.
// SpanCount is -1 for a wait edge.
type EdgeMeta struct {
	From, To  int
	Name      string
	SpanCount int
	Minutes   float64
}

func (e EdgeMeta) isWait() bool { return e.SpanCount == -1 }

// RouteItem is one leg of a reconstructed itinerary.
type RouteItem struct {
	Wait bool

	StopName string // set when Wait is true

	BusName   string // set when Wait is false
	SpanCount int
	Minutes   float64
}

// RouteInfo is the answer to a Route query.
type RouteInfo struct {
	TotalTime float64
	Items     []RouteItem
}

// Cache is consulted for a previously-computed route before running
// Dijkstra, and populated afterward; it is optional and best-effort.
type Cache interface {
	GetRoute(ctx context.Context, from, to string) (RouteInfo, bool)
	SetRoute(ctx context.Context, from, to string, info RouteInfo)
}

// Router holds the wait/ride graph for a fixed routing settings and
// catalogue snapshot.
type Router struct {
	settings     Settings
	stopOrder    []string
	stopToVertex map[string]VertexPair
	edgeMetas    []EdgeMeta
	g            *graph.DirectedWeightedGraph
	dijkstra     *graph.Router
	cache        Cache
}

// New returns a router with no stops or edges yet.
func New(settings Settings) *Router {
	return &Router{
		settings:     settings,
		stopToVertex: make(map[string]VertexPair),
	}
}

// WithCache attaches an optional route cache.
func (r *Router) WithCache(cache Cache) *Router {
	r.cache = cache
	return r
}

// Settings returns the bound routing settings, used by the snapshot codec.
func (r *Router) Settings() Settings {
	return r.settings
}

// AddStop allocates a (start_wait, end_wait) vertex pair for a stop not
// seen before; the k-th stop gets start_wait=2k, end_wait=2k+1.
func (r *Router) AddStop(name string) {
	if _, ok := r.stopToVertex[name]; ok {
		return
	}
	k := len(r.stopToVertex)
	r.stopToVertex[name] = VertexPair{StartWait: 2 * k, EndWait: 2*k + 1}
	r.stopOrder = append(r.stopOrder, name)
}

// AddWaitEdge appends the wait edge for a stop.
func (r *Router) AddWaitEdge(stopName string) {
	pair := r.stopToVertex[stopName]
	r.edgeMetas = append(r.edgeMetas, EdgeMeta{
		From:      pair.StartWait,
		To:        pair.EndWait,
		Name:      stopName,
		SpanCount: -1,
		Minutes:   float64(r.settings.BusWaitTime),
	})
}

// AddBusEdge appends a ride edge from stopNameFrom to stopNameTo,
// spanning spanCount stops along busName, covering distMeters of
// cumulative factual distance.
func (r *Router) AddBusEdge(stopNameFrom, stopNameTo, busName string, spanCount int, distMeters float64) {
	minutes := distMeters / r.settings.BusVelocity * toMinutes
	r.edgeMetas = append(r.edgeMetas, EdgeMeta{
		From:      r.stopToVertex[stopNameFrom].EndWait,
		To:        r.stopToVertex[stopNameTo].StartWait,
		Name:      busName,
		SpanCount: spanCount,
		Minutes:   minutes,
	})
}

// VertexPairs returns the stop-name to vertex-pair allocation; used by
// the snapshot codec.
func (r *Router) VertexPairs() map[string]VertexPair {
	out := make(map[string]VertexPair, len(r.stopToVertex))
	for k, v := range r.stopToVertex {
		out[k] = v
	}
	return out
}

// EdgeMetas returns the edge metadata in edge-id order; used by the
// snapshot codec.
func (r *Router) EdgeMetas() []EdgeMeta {
	out := make([]EdgeMeta, len(r.edgeMetas))
	copy(out, r.edgeMetas)
	return out
}

// Build constructs the underlying weighted graph from the accumulated
// stops/edges and indexes it for shortest-path queries. Call once after
// every AddStop/AddWaitEdge/AddBusEdge call has been made.
func (r *Router) Build() {
	r.g = graph.New(len(r.stopToVertex) * 2)
	for _, meta := range r.edgeMetas {
		r.g.AddEdge(graph.Edge{From: meta.From, To: meta.To, Weight: meta.Minutes})
	}
	r.dijkstra = graph.NewRouter(r.g)
}

// GetRoute returns the fastest itinerary between two stops, consulting
// and populating the route cache when one is attached.
func (r *Router) GetRoute(ctx context.Context, from, to string) (RouteInfo, bool) {
	if r.cache != nil {
		if info, ok := r.cache.GetRoute(ctx, from, to); ok {
			return info, true
		}
	}

	fromVertex, ok := r.stopToVertex[from]
	if !ok {
		return RouteInfo{}, false
	}
	toVertex, ok := r.stopToVertex[to]
	if !ok {
		return RouteInfo{}, false
	}

	route, ok := r.dijkstra.BuildRoute(fromVertex.StartWait, toVertex.StartWait)
	if !ok {
		return RouteInfo{}, false
	}

	info := RouteInfo{TotalTime: route.Weight, Items: r.makeItems(route.Edges)}

	if r.cache != nil {
		r.cache.SetRoute(ctx, from, to, info)
	}
	return info, true
}

func (r *Router) makeItems(edgeIDs []int) []RouteItem {
	items := make([]RouteItem, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		meta := r.edgeMetas[id]
		if meta.isWait() {
			items = append(items, RouteItem{Wait: true, StopName: meta.Name, Minutes: meta.Minutes})
		} else {
			items = append(items, RouteItem{
				BusName:   meta.Name,
				SpanCount: meta.SpanCount,
				Minutes:   meta.Minutes,
			})
		}
	}
	return items
}

// BuildFromCatalogue constructs a fully built router from a catalogue:
// one wait edge per stop (in catalogue iteration order) plus one ride
// edge per ordered pair of positions (i, j), j>i, in every bus's stored
// stop sequence, weighted by the cumulative factual distance along the
// bus between those positions.
func BuildFromCatalogue(cat *catalogue.Catalogue, settings Settings) *Router {
	r := New(settings)

	for _, stop := range cat.Stops() {
		r.AddStop(stop.Name)
	}
	for _, stop := range cat.Stops() {
		r.AddWaitEdge(stop.Name)
	}

	for _, bus := range cat.Buses() {
		stops := bus.Stops
		for i := 0; i < len(stops); i++ {
			var cumulative float64
			for j := i + 1; j < len(stops); j++ {
				prev, cur := stops[j-1], stops[j]
				dist, ok := cat.GetDistance(prev, cur)
				if !ok {
					dist, ok = cat.GetDistance(cur, prev)
				}
				if ok {
					cumulative += float64(dist)
				}
				r.AddBusEdge(stops[i].Name, stops[j].Name, bus.Name, j-i, cumulative)
			}
		}
	}

	r.Build()
	return r
}
