package snapshot

import (
	"bytes"
	"testing"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/ntrofimov/transport_catalogue/internal/render"
	"github.com/ntrofimov/transport_catalogue/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cat := catalogue.New()
	a := &catalogue.Stop{Name: "A", Point: geo.Point{Lat: 55.611087, Lng: 37.20829}}
	b := &catalogue.Stop{Name: "B", Point: geo.Point{Lat: 55.595884, Lng: 37.209755}}
	cat.AddStop(a)
	cat.AddStop(b)
	cat.SetDistances(map[[2]string]int{{"A", "B"}: 3900})
	cat.AddRoute(&catalogue.Bus{Name: "750", Circular: true, Stops: []*catalogue.Stop{a, b, a}})

	renderSettings := render.Settings{
		Width: 600, Height: 400, Padding: 30,
		StopRadius: 5, LineWidth: 14,
		BusLabelFontSize: 20, BusLabelOffset: [2]float64{7, 15},
		StopLabelFontSize: 18, StopLabelOffset: [2]float64{7, -3},
		UnderlayerColor: render.Color{Kind: render.ColorRGBA, R: 255, G: 255, B: 255, A: 0.85},
		UnderlayerWidth: 3,
		ColorPalette: []render.Color{
			{Kind: render.ColorName, Name: "green"},
			{Kind: render.ColorRGB, R: 255, G: 160, B: 0},
		},
	}
	routerSettings := router.Settings{BusWaitTime: 6, BusVelocity: 40}

	snap := FromCatalogue(cat, renderSettings, routerSettings)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	loaded, err := Read(&buf)
	require.NoError(t, err)

	gotCat, gotRender, gotRouter, err := loaded.Rehydrate()
	require.NoError(t, err)

	bus, ok := gotCat.FindRoute("750")
	require.True(t, ok)
	assert.Equal(t, 7800.0, bus.FactualLength)
	assert.Equal(t, 3, bus.UniqueStops())

	assert.Equal(t, 600.0, gotRender.Width)
	assert.Equal(t, render.ColorRGBA, gotRender.UnderlayerColor.Kind)
	require.Len(t, gotRender.ColorPalette, 2)
	assert.Equal(t, render.ColorRGB, gotRender.ColorPalette[1].Kind)

	assert.Equal(t, 6, gotRouter.BusWaitTime)
	assert.Equal(t, 40.0, gotRouter.BusVelocity)
}

func TestRehydrateUnknownStopReferenceErrors(t *testing.T) {
	snap := Snapshot{
		Buses: []BusRecord{{Name: "X", StopNames: []string{"ghost"}}},
		Render: RenderRecord{
			UnderlayerColor: NamedColorRecord{Name: "black"},
		},
	}
	_, _, _, err := snap.Rehydrate()
	assert.Error(t, err)
}
