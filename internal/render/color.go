package render

import (
	"fmt"

	"github.com/ntrofimov/transport_catalogue/internal/jsonvalue"
)

// ColorKind distinguishes the three ways a color can be spelled in the
// render settings: a CSS color name, an opaque RGB triple or a
// translucent RGBA quadruple.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorName
	ColorRGB
	ColorRGBA
)

// Color is a tagged union mirroring svg::Color's std::variant, kept as
// its own type (rather than collapsing straight to a paint string) so
// the snapshot codec can round-trip it structurally.
type Color struct {
	Kind    ColorKind
	Name    string
	R, G, B uint8
	A       float64
}

// Paint renders the color to the string an SVG paint attribute expects.
func (c Color) Paint() string {
	switch c.Kind {
	case ColorName:
		return c.Name
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	case ColorRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatOpacity(c.A))
	default:
		return "none"
	}
}

func formatOpacity(a float64) string {
	return fmt.Sprintf("%g", a)
}

// parseColor accepts either a JSON string node (a named color) or a
// JSON array node of length 3 (RGB) or 4 (RGBA ints/doubles).
func parseColor(node jsonvalue.Node) (Color, error) {
	switch {
	case node.IsString():
		return Color{Kind: ColorName, Name: node.AsString()}, nil
	case node.IsArray():
		arr := node.AsArray()
		switch len(arr) {
		case 3:
			return Color{
				Kind: ColorRGB,
				R:    uint8(arr[0].AsInt()),
				G:    uint8(arr[1].AsInt()),
				B:    uint8(arr[2].AsInt()),
			}, nil
		case 4:
			return Color{
				Kind: ColorRGBA,
				R:    uint8(arr[0].AsInt()),
				G:    uint8(arr[1].AsInt()),
				B:    uint8(arr[2].AsInt()),
				A:    arr[3].AsDouble(),
			}, nil
		default:
			return Color{}, fmt.Errorf("render: broken array")
		}
	default:
		return Color{}, fmt.Errorf("render: color identity error")
	}
}
