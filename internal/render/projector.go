package render

import (
	"math"

	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/ntrofimov/transport_catalogue/internal/svgdoc"
)

const projectorEpsilon = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < projectorEpsilon
}

// sphereProjector maps geographic coordinates onto an SVG canvas using
// an isotropic equirectangular projection: the whole point set is
// bounded, then scaled by whichever of width/height is the tighter fit
// so the rendered map never distorts.
type sphereProjector struct {
	padding   float64
	minLon    float64
	maxLat    float64
	zoomCoeff float64
}

func newSphereProjector(points []geo.Point, maxWidth, maxHeight, padding float64) sphereProjector {
	p := sphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}

	minLon, maxLon := points[0].Lng, points[0].Lng
	minLat, maxLat := points[0].Lat, points[0].Lat
	for _, pt := range points[1:] {
		if pt.Lng < minLon {
			minLon = pt.Lng
		}
		if pt.Lng > maxLon {
			maxLon = pt.Lng
		}
		if pt.Lat < minLat {
			minLat = pt.Lat
		}
		if pt.Lat > maxLat {
			maxLat = pt.Lat
		}
	}

	p.minLon = minLon
	p.maxLat = maxLat

	var widthZoom, heightZoom float64
	var hasWidthZoom, hasHeightZoom bool

	if !isZero(maxLon - minLon) {
		widthZoom = (maxWidth - 2*padding) / (maxLon - minLon)
		hasWidthZoom = true
	}
	if !isZero(maxLat - minLat) {
		heightZoom = (maxHeight - 2*padding) / (maxLat - minLat)
		hasHeightZoom = true
	}

	switch {
	case hasWidthZoom && hasHeightZoom:
		p.zoomCoeff = math.Min(widthZoom, heightZoom)
	case hasWidthZoom:
		p.zoomCoeff = widthZoom
	case hasHeightZoom:
		p.zoomCoeff = heightZoom
	}

	return p
}

func (p sphereProjector) Project(point geo.Point) svgdoc.Point {
	return svgdoc.Point{
		X: (point.Lng-p.minLon)*p.zoomCoeff + p.padding,
		Y: (p.maxLat-point.Lat)*p.zoomCoeff + p.padding,
	}
}
