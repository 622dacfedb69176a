// Package snapshot implements the binary codec that freezes a
// catalogue, its render settings and its routing settings into one
// file, and thaws them back. The wire format is encoding/gob: no
// third-party codec in the example pack defines an application's own
// wire schema (the pack's one protobuf dependency decodes third-party
// OSM tiles, not an app-defined message), so gob is the grounded
// stdlib choice here.
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/ntrofimov/transport_catalogue/internal/render"
	"github.com/ntrofimov/transport_catalogue/internal/router"
)

type StopRecord struct {
	Name string
	Lat  float64
	Lng  float64
}

type BusRecord struct {
	Name      string
	StopNames []string
	Circular  bool
}

type DistanceRecord struct {
	From   string
	To     string
	Meters int
}

// ColorVariant is the wire representation of render.Color: one of
// three concrete record types registered with gob so it can travel
// inside a RenderRecord's interface-typed fields.
type ColorVariant interface {
	isColorVariant()
}

type NamedColorRecord struct{ Name string }
type RGBColorRecord struct{ R, G, B uint8 }
type RGBAColorRecord struct {
	R, G, B uint8
	A       float64
}

func (NamedColorRecord) isColorVariant() {}
func (RGBColorRecord) isColorVariant()   {}
func (RGBAColorRecord) isColorVariant()  {}

func init() {
	gob.Register(NamedColorRecord{})
	gob.Register(RGBColorRecord{})
	gob.Register(RGBAColorRecord{})
}

func colorToRecord(c render.Color) ColorVariant {
	switch c.Kind {
	case render.ColorRGB:
		return RGBColorRecord{R: c.R, G: c.G, B: c.B}
	case render.ColorRGBA:
		return RGBAColorRecord{R: c.R, G: c.G, B: c.B, A: c.A}
	default:
		return NamedColorRecord{Name: c.Name}
	}
}

func recordToColor(v ColorVariant) (render.Color, error) {
	switch c := v.(type) {
	case NamedColorRecord:
		return render.Color{Kind: render.ColorName, Name: c.Name}, nil
	case RGBColorRecord:
		return render.Color{Kind: render.ColorRGB, R: c.R, G: c.G, B: c.B}, nil
	case RGBAColorRecord:
		return render.Color{Kind: render.ColorRGBA, R: c.R, G: c.G, B: c.B, A: c.A}, nil
	default:
		return render.Color{}, fmt.Errorf("snapshot: unknown color variant %T", v)
	}
}

type RenderRecord struct {
	Width, Height     float64
	Padding           float64
	StopRadius        float64
	LineWidth         float64
	BusLabelFontSize  uint32
	BusLabelOffset    [2]float64
	StopLabelFontSize uint32
	StopLabelOffset   [2]float64
	UnderlayerColor   ColorVariant
	UnderlayerWidth   float64
	ColorPalette      []ColorVariant
}

type RouterRecord struct {
	BusWaitTime int
	BusVelocity float64
}

// Snapshot is the full on-disk record: catalogue, render settings and
// routing settings. The routing graph itself is not persisted — it is
// cheap to rebuild from the catalogue and routing settings, and doing
// so keeps this format immune to internal/graph's edge-id layout.
type Snapshot struct {
	Stops     []StopRecord
	Buses     []BusRecord
	Distances []DistanceRecord
	Render    RenderRecord
	Router    RouterRecord
}

// FromCatalogue builds a Snapshot from live in-memory state.
func FromCatalogue(cat *catalogue.Catalogue, renderSettings render.Settings, routerSettings router.Settings) Snapshot {
	var snap Snapshot

	for _, stop := range cat.Stops() {
		snap.Stops = append(snap.Stops, StopRecord{Name: stop.Name, Lat: stop.Point.Lat, Lng: stop.Point.Lng})
	}

	for _, bus := range cat.Buses() {
		names := make([]string, len(bus.Stops))
		for i, s := range bus.Stops {
			names[i] = s.Name
		}
		snap.Buses = append(snap.Buses, BusRecord{Name: bus.Name, StopNames: names, Circular: bus.Circular})
	}

	for key, meters := range cat.Distances() {
		snap.Distances = append(snap.Distances, DistanceRecord{From: key[0], To: key[1], Meters: meters})
	}

	palette := make([]ColorVariant, len(renderSettings.ColorPalette))
	for i, c := range renderSettings.ColorPalette {
		palette[i] = colorToRecord(c)
	}

	snap.Render = RenderRecord{
		Width: renderSettings.Width, Height: renderSettings.Height,
		Padding: renderSettings.Padding, StopRadius: renderSettings.StopRadius,
		LineWidth:         renderSettings.LineWidth,
		BusLabelFontSize:  renderSettings.BusLabelFontSize,
		BusLabelOffset:    renderSettings.BusLabelOffset,
		StopLabelFontSize: renderSettings.StopLabelFontSize,
		StopLabelOffset:   renderSettings.StopLabelOffset,
		UnderlayerColor:   colorToRecord(renderSettings.UnderlayerColor),
		UnderlayerWidth:   renderSettings.UnderlayerWidth,
		ColorPalette:      palette,
	}

	snap.Router = RouterRecord{
		BusWaitTime: routerSettings.BusWaitTime,
		BusVelocity: routerSettings.BusVelocity,
	}

	return snap
}

// Rehydrate reconstructs a catalogue, render settings and routing
// settings from a Snapshot. Distances are restored before buses, since
// AddRoute needs the distance table populated to compute factual_length.
func (s Snapshot) Rehydrate() (*catalogue.Catalogue, render.Settings, router.Settings, error) {
	cat := catalogue.New()

	for _, sr := range s.Stops {
		cat.AddStop(&catalogue.Stop{Name: sr.Name, Point: geo.Point{Lat: sr.Lat, Lng: sr.Lng}})
	}

	distances := make(map[[2]string]int, len(s.Distances))
	for _, dr := range s.Distances {
		distances[[2]string{dr.From, dr.To}] = dr.Meters
	}
	cat.SetDistances(distances)

	for _, br := range s.Buses {
		stops := make([]*catalogue.Stop, len(br.StopNames))
		for i, name := range br.StopNames {
			stop, ok := cat.FindStop(name)
			if !ok {
				return nil, render.Settings{}, router.Settings{}, fmt.Errorf("snapshot: bus %q references unknown stop %q", br.Name, name)
			}
			stops[i] = stop
		}
		cat.AddRoute(&catalogue.Bus{Name: br.Name, Stops: stops, Circular: br.Circular})
	}

	underlayer, err := recordToColor(s.Render.UnderlayerColor)
	if err != nil {
		return nil, render.Settings{}, router.Settings{}, err
	}
	palette := make([]render.Color, len(s.Render.ColorPalette))
	for i, v := range s.Render.ColorPalette {
		c, err := recordToColor(v)
		if err != nil {
			return nil, render.Settings{}, router.Settings{}, err
		}
		palette[i] = c
	}

	renderSettings := render.Settings{
		Width: s.Render.Width, Height: s.Render.Height,
		Padding: s.Render.Padding, StopRadius: s.Render.StopRadius,
		LineWidth:         s.Render.LineWidth,
		BusLabelFontSize:  s.Render.BusLabelFontSize,
		BusLabelOffset:    s.Render.BusLabelOffset,
		StopLabelFontSize: s.Render.StopLabelFontSize,
		StopLabelOffset:   s.Render.StopLabelOffset,
		UnderlayerColor:   underlayer,
		UnderlayerWidth:   s.Render.UnderlayerWidth,
		ColorPalette:      palette,
	}

	routerSettings := router.Settings{
		BusWaitTime: s.Router.BusWaitTime,
		BusVelocity: s.Router.BusVelocity,
	}

	return cat, renderSettings, routerSettings, nil
}

// Write serializes snap to w.
func Write(w io.Writer, snap Snapshot) error {
	return gob.NewEncoder(w).Encode(snap)
}

// Read deserializes a Snapshot from r.
func Read(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return snap, nil
}
