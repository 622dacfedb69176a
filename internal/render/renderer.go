// Package render turns a catalogue of buses into the SVG route map, by
// projecting stop coordinates onto an SVG canvas and drawing four
// layers in a fixed order: route polylines, bus name labels, stop
// markers, stop name labels.
package render

import (
	"io"
	"sort"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/ntrofimov/transport_catalogue/internal/svgdoc"
)

// MapRenderer draws the route map for a fixed set of render settings.
type MapRenderer struct {
	settings Settings
}

// NewMapRenderer returns a renderer bound to settings.
func NewMapRenderer(settings Settings) *MapRenderer {
	return &MapRenderer{settings: settings}
}

// Settings returns the bound render settings, used by the snapshot codec.
func (m *MapRenderer) Settings() Settings {
	return m.settings
}

// RenderSvgDocument writes the SVG document for buses to w. Buses are
// drawn in lexicographic name order so output is deterministic and
// matches the color palette cycling a reader would expect from reading
// top to bottom.
func (m *MapRenderer) RenderSvgDocument(buses []*catalogue.Bus, w io.Writer) error {
	sorted := make([]*catalogue.Bus, len(buses))
	copy(sorted, buses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	allStops := collectStops(sorted)

	allPoints := make([]geo.Point, 0, len(allStops))
	for _, s := range allStops {
		allPoints = append(allPoints, s.Point)
	}
	projector := newSphereProjector(allPoints, m.settings.Width, m.settings.Height, m.settings.Padding)

	doc := svgdoc.New(w, m.settings.Width, m.settings.Height)

	m.renderPolylines(doc, sorted, projector)
	m.renderBusLabels(doc, sorted, projector)
	m.renderStopCircles(doc, allStops, projector)
	m.renderStopLabels(doc, allStops, projector)

	doc.Close()
	return nil
}

func (m *MapRenderer) renderPolylines(doc *svgdoc.Document, buses []*catalogue.Bus, projector sphereProjector) {
	colorNum := 0
	for _, bus := range buses {
		if len(bus.Stops) == 0 {
			continue
		}
		points := make([]svgdoc.Point, 0, len(bus.Stops))
		for _, stop := range bus.Stops {
			points = append(points, projector.Project(stop.Point))
		}

		doc.Polyline(points, svgdoc.Style{
			Fill:           "none",
			HasFill:        true,
			Stroke:         m.paletteColor(colorNum).Paint(),
			HasStroke:      true,
			StrokeWidth:    m.settings.LineWidth,
			HasStrokeWidth: true,
			LineCap:        svgdoc.LineCapRound,
			LineJoin:       svgdoc.LineJoinRound,
		})
		colorNum = m.nextColor(colorNum)
	}
}

func (m *MapRenderer) renderBusLabels(doc *svgdoc.Document, buses []*catalogue.Bus, projector sphereProjector) {
	colorNum := 0
	for _, bus := range buses {
		if len(bus.Stops) == 0 {
			continue
		}

		labelColor := m.paletteColor(colorNum).Paint()
		colorNum = m.nextColor(colorNum)

		offset := svgdoc.Point{X: m.settings.BusLabelOffset[0], Y: m.settings.BusLabelOffset[1]}
		underlayerStyle := svgdoc.Style{
			Fill:           m.settings.UnderlayerColor.Paint(),
			HasFill:        true,
			Stroke:         m.settings.UnderlayerColor.Paint(),
			HasStroke:      true,
			StrokeWidth:    m.settings.UnderlayerWidth,
			HasStrokeWidth: true,
			LineCap:        svgdoc.LineCapRound,
			LineJoin:       svgdoc.LineJoinRound,
		}
		labelStyle := svgdoc.Style{Fill: labelColor, HasFill: true}

		emit := func(stop *catalogue.Stop) {
			pos := projector.Project(stop.Point)
			doc.Text(pos, offset, m.settings.BusLabelFontSize, "Verdana", "bold", bus.Name, underlayerStyle)
			doc.Text(pos, offset, m.settings.BusLabelFontSize, "Verdana", "bold", bus.Name, labelStyle)
		}

		emit(bus.Stops[0])

		if needsSecondLabel(bus) {
			if bus.Circular {
				emit(bus.Stops[len(bus.Stops)-1])
			} else {
				emit(bus.Stops[len(bus.Stops)/2])
			}
		}
	}
}

// needsSecondLabel reports whether a bus needs a second label in
// addition to its start: non-circular routes whose two termini differ
// (labelled again at the midpoint of the stored sequence), and circular
// routes whose recorded first and last stop names differ (labelled
// again at the last stop).
func needsSecondLabel(bus *catalogue.Bus) bool {
	if len(bus.Stops) <= 1 {
		return false
	}
	half := len(bus.Stops) / 2
	if !bus.Circular {
		return bus.Stops[0] != bus.Stops[half]
	}
	return bus.Stops[0].Name != bus.Stops[len(bus.Stops)-1].Name
}

func (m *MapRenderer) renderStopCircles(doc *svgdoc.Document, stops []*catalogue.Stop, projector sphereProjector) {
	for _, stop := range stops {
		doc.Circle(projector.Project(stop.Point), m.settings.StopRadius, svgdoc.Style{
			Fill:    "white",
			HasFill: true,
		})
	}
}

func (m *MapRenderer) renderStopLabels(doc *svgdoc.Document, stops []*catalogue.Stop, projector sphereProjector) {
	offset := svgdoc.Point{X: m.settings.StopLabelOffset[0], Y: m.settings.StopLabelOffset[1]}
	underlayerStyle := svgdoc.Style{
		Fill:           m.settings.UnderlayerColor.Paint(),
		HasFill:        true,
		Stroke:         m.settings.UnderlayerColor.Paint(),
		HasStroke:      true,
		StrokeWidth:    m.settings.UnderlayerWidth,
		HasStrokeWidth: true,
		LineCap:        svgdoc.LineCapRound,
		LineJoin:       svgdoc.LineJoinRound,
	}
	labelStyle := svgdoc.Style{Fill: "black", HasFill: true}

	for _, stop := range stops {
		pos := projector.Project(stop.Point)
		doc.Text(pos, offset, m.settings.StopLabelFontSize, "Verdana", "", stop.Name, underlayerStyle)
		doc.Text(pos, offset, m.settings.StopLabelFontSize, "Verdana", "", stop.Name, labelStyle)
	}
}

func (m *MapRenderer) paletteColor(i int) Color {
	if len(m.settings.ColorPalette) == 0 {
		return Color{Kind: ColorName, Name: "black"}
	}
	return m.settings.ColorPalette[i]
}

func (m *MapRenderer) nextColor(i int) int {
	if len(m.settings.ColorPalette) == 0 {
		return 0
	}
	if i < len(m.settings.ColorPalette)-1 {
		return i + 1
	}
	return 0
}

func collectStops(buses []*catalogue.Bus) []*catalogue.Stop {
	seen := make(map[*catalogue.Stop]struct{})
	var out []*catalogue.Stop
	for _, bus := range buses {
		for _, stop := range bus.Stops {
			if _, ok := seen[stop]; ok {
				continue
			}
			seen[stop] = struct{}{}
			out = append(out, stop)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
