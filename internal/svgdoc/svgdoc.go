// Package svgdoc emits the SVG 1.1 documents the map renderer produces.
// It scaffolds the document (XML prolog, svg root, closing tag) through
// github.com/ajstarks/svgo, but renders the geometry-bearing elements
// (circles, polylines, text) itself: svgo's element methods take integer
// pixel coordinates, which would round away the sub-pixel precision the
// equirectangular projector depends on, so those elements are written
// straight to the shared writer with full float precision instead.
package svgdoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Point is a 2D coordinate in SVG user space.
type Point struct {
	X, Y float64
}

type LineCap string

const (
	LineCapButt   LineCap = "butt"
	LineCapRound  LineCap = "round"
	LineCapSquare LineCap = "square"
)

type LineJoin string

const (
	LineJoinArcs      LineJoin = "arcs"
	LineJoinBevel     LineJoin = "bevel"
	LineJoinMiter     LineJoin = "miter"
	LineJoinMiterClip LineJoin = "miter-clip"
	LineJoinRound     LineJoin = "round"
)

// Style carries the path-like presentation attributes shared by every
// element kind, mirroring the teacher-independent svg::PathProps mixin.
type Style struct {
	Fill           string
	HasFill        bool
	Stroke         string
	HasStroke      bool
	StrokeWidth    float64
	HasStrokeWidth bool
	LineCap        LineCap
	LineJoin       LineJoin
}

func (s Style) render(out *strings.Builder) {
	if s.HasFill {
		fmt.Fprintf(out, " fill=\"%s\"", s.Fill)
	}
	if s.HasStroke {
		fmt.Fprintf(out, " stroke=\"%s\"", s.Stroke)
	}
	if s.HasStrokeWidth {
		fmt.Fprintf(out, " stroke-width=\"%s\"", formatFloat(s.StrokeWidth))
	}
	if s.LineCap != "" {
		fmt.Fprintf(out, " stroke-linecap=\"%s\"", s.LineCap)
	}
	if s.LineJoin != "" {
		fmt.Fprintf(out, " stroke-linejoin=\"%s\"", s.LineJoin)
	}
}

// Document is an SVG 1.1 canvas built up by successive Circle, Polyline
// and Text calls and finished with Close.
type Document struct {
	canvas *svg.SVG
	w      io.Writer
}

// New starts a document. width/height are rounded to the nearest pixel
// for the root <svg> element's declared viewport only; every drawn
// element keeps full float precision.
func New(w io.Writer, width, height float64) *Document {
	canvas := svg.New(w)
	canvas.Start(int(width+0.5), int(height+0.5))
	return &Document{canvas: canvas, w: w}
}

// Close emits the closing </svg> tag.
func (d *Document) Close() {
	d.canvas.End()
}

// Circle draws a filled circle, e.g. a stop marker.
func (d *Document) Circle(center Point, radius float64, style Style) {
	var out strings.Builder
	fmt.Fprintf(&out, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\"",
		formatFloat(center.X), formatFloat(center.Y), formatFloat(radius))
	style.render(&out)
	out.WriteString("/>\n")
	io.WriteString(d.w, out.String())
}

// Polyline draws a bus route's path.
func (d *Document) Polyline(points []Point, style Style) {
	var out strings.Builder
	out.WriteString("<polyline points=\"")
	for i, p := range points {
		if i > 0 {
			out.WriteByte(' ')
		}
		fmt.Fprintf(&out, "%s,%s", formatFloat(p.X), formatFloat(p.Y))
	}
	out.WriteString("\"")
	style.render(&out)
	out.WriteString("/>\n")
	io.WriteString(d.w, out.String())
}

// Text draws a label, e.g. a bus name or stop name.
func (d *Document) Text(pos, offset Point, fontSize uint32, fontFamily, fontWeight, data string, style Style) {
	var out strings.Builder
	out.WriteString("<text")
	style.render(&out)
	fmt.Fprintf(&out, " x=\"%s\" y=\"%s\" dx=\"%s\" dy=\"%s\" font-size=\"%d\"",
		formatFloat(pos.X), formatFloat(pos.Y), formatFloat(offset.X), formatFloat(offset.Y), fontSize)
	if fontFamily != "" {
		fmt.Fprintf(&out, " font-family=\"%s\"", fontFamily)
	}
	if fontWeight != "" {
		fmt.Fprintf(&out, " font-weight=\"%s\"", fontWeight)
	}
	out.WriteString(">")
	out.WriteString(EscapeText(data))
	out.WriteString("</text>\n")
	io.WriteString(d.w, out.String())
}

// EscapeText escapes the five XML entity characters in element text
// content, matching the original tool's Text::SetData escaping.
func EscapeText(data string) string {
	var out strings.Builder
	for _, r := range data {
		switch r {
		case '"':
			out.WriteString("&quot;")
		case '\'':
			out.WriteString("&apos;")
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '&':
			out.WriteString("&amp;")
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
