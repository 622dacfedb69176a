package router

import (
	"context"
	"testing"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRouteSameStopIsZero(t *testing.T) {
	cat := catalogue.New()
	a := &catalogue.Stop{Name: "A", Point: geo.Point{Lat: 0, Lng: 0}}
	cat.AddStop(a)
	cat.AddRoute(&catalogue.Bus{Name: "1", Stops: []*catalogue.Stop{a}})

	r := BuildFromCatalogue(cat, Settings{BusWaitTime: 6, BusVelocity: 40})
	info, ok := r.GetRoute(context.Background(), "A", "A")
	require.True(t, ok)
	assert.Equal(t, 0.0, info.TotalTime)
	assert.Empty(t, info.Items)
}

func TestGetRouteUnknownStop(t *testing.T) {
	cat := catalogue.New()
	r := BuildFromCatalogue(cat, Settings{BusWaitTime: 6, BusVelocity: 40})
	_, ok := r.GetRoute(context.Background(), "ZZZ", "ZZZ")
	assert.False(t, ok)
}

// TestGetRouteWithTransfer reproduces the spec's "shortest path with
// transfer" scenario: two buses sharing stop M, with A--bus1--M and
// M--bus2--B each a single hop, connected by a wait at M.
func TestGetRouteWithTransfer(t *testing.T) {
	cat := catalogue.New()
	a := &catalogue.Stop{Name: "A", Point: geo.Point{Lat: 0, Lng: 0}}
	m := &catalogue.Stop{Name: "M", Point: geo.Point{Lat: 0, Lng: 0.01}}
	b := &catalogue.Stop{Name: "B", Point: geo.Point{Lat: 0, Lng: 0.02}}
	cat.AddStop(a)
	cat.AddStop(m)
	cat.AddStop(b)
	cat.SetDistances(map[[2]string]int{
		{"A", "M"}: 2400,
		{"M", "B"}: 1200,
	})

	cat.AddRoute(&catalogue.Bus{Name: "bus1", Stops: []*catalogue.Stop{a, m}})
	cat.AddRoute(&catalogue.Bus{Name: "bus2", Stops: []*catalogue.Stop{m, b}})

	r := BuildFromCatalogue(cat, Settings{BusWaitTime: 6, BusVelocity: 40})
	info, ok := r.GetRoute(context.Background(), "A", "B")
	require.True(t, ok)
	require.Len(t, info.Items, 3)

	assert.False(t, info.Items[0].Wait)
	assert.Equal(t, "bus1", info.Items[0].BusName)
	assert.Equal(t, 1, info.Items[0].SpanCount)

	assert.True(t, info.Items[1].Wait)
	assert.Equal(t, "M", info.Items[1].StopName)
	assert.Equal(t, 6.0, info.Items[1].Minutes)

	assert.False(t, info.Items[2].Wait)
	assert.Equal(t, "bus2", info.Items[2].BusName)

	t1 := 2400.0 / 40 * toMinutes
	t2 := 1200.0 / 40 * toMinutes
	assert.InDelta(t, t1+6+t2, info.TotalTime, 1e-9)
}

func TestVertexAllocationIsDoubledPerStopInsertionOrder(t *testing.T) {
	r := New(Settings{BusWaitTime: 1, BusVelocity: 1})
	r.AddStop("A")
	r.AddStop("B")
	r.AddStop("A") // duplicate, no-op

	pairs := r.VertexPairs()
	assert.Equal(t, VertexPair{StartWait: 0, EndWait: 1}, pairs["A"])
	assert.Equal(t, VertexPair{StartWait: 2, EndWait: 3}, pairs["B"])
}

func TestRideEdgeAccumulatesAcrossUnknownLeg(t *testing.T) {
	cat := catalogue.New()
	a := &catalogue.Stop{Name: "A"}
	b := &catalogue.Stop{Name: "B"}
	c := &catalogue.Stop{Name: "C"}
	cat.AddStop(a)
	cat.AddStop(b)
	cat.AddStop(c)
	cat.SetDistances(map[[2]string]int{{"A", "B"}: 1000})
	cat.AddRoute(&catalogue.Bus{Name: "X", Stops: []*catalogue.Stop{a, b, c}})

	r := BuildFromCatalogue(cat, Settings{BusWaitTime: 0, BusVelocity: 1})
	metas := r.EdgeMetas()

	var acToC EdgeMeta
	found := false
	for _, m := range metas {
		if m.Name == "X" && m.SpanCount == 2 {
			acToC = m
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, 1000.0/1*toMinutes, acToC.Minutes)
}
