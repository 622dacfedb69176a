package svgdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "&quot;&apos;&lt;&gt;&amp;", EscapeText(`"'<>&`))
	assert.Equal(t, "Bus 14", EscapeText("Bus 14"))
}

func TestCircleRendersAttributes(t *testing.T) {
	var buf strings.Builder
	doc := New(&buf, 100, 100)
	doc.Circle(Point{X: 1.5, Y: 2.5}, 3, Style{Fill: "white", HasFill: true})
	doc.Close()

	out := buf.String()
	assert.Contains(t, out, `<circle cx="1.5" cy="2.5" r="3"`)
	assert.Contains(t, out, `fill="white"`)
	assert.Contains(t, out, "</svg>")
}

func TestPolylineRendersPoints(t *testing.T) {
	var buf strings.Builder
	doc := New(&buf, 100, 100)
	doc.Polyline([]Point{{X: 0, Y: 0}, {X: 10, Y: 20}}, Style{
		Stroke: "red", HasStroke: true,
		StrokeWidth: 2, HasStrokeWidth: true,
		LineCap:  LineCapRound,
		LineJoin: LineJoinRound,
	})

	out := buf.String()
	assert.Contains(t, out, `points="0,0 10,20"`)
	assert.Contains(t, out, `stroke="red"`)
	assert.Contains(t, out, `stroke-width="2"`)
	assert.Contains(t, out, `stroke-linecap="round"`)
}

func TestTextEscapesData(t *testing.T) {
	var buf strings.Builder
	doc := New(&buf, 100, 100)
	doc.Text(Point{X: 1, Y: 2}, Point{X: 3, Y: 4}, 20, "Verdana", "bold", `Bus "14"`, Style{})

	out := buf.String()
	assert.Contains(t, out, `>Bus &quot;14&quot;</text>`)
	assert.Contains(t, out, `font-family="Verdana"`)
	assert.Contains(t, out, `font-weight="bold"`)
}
