package render

import (
	"fmt"

	"github.com/ntrofimov/transport_catalogue/internal/jsonvalue"
)

// Settings is the render_settings section of the ingestion schema,
// fully parsed and validated.
type Settings struct {
	Width, Height     float64
	Padding           float64
	StopRadius        float64
	LineWidth         float64
	BusLabelFontSize  uint32
	BusLabelOffset    [2]float64
	StopLabelFontSize uint32
	StopLabelOffset   [2]float64
	UnderlayerColor   Color
	UnderlayerWidth   float64
	ColorPalette      []Color
}

// ParseSettings builds Settings from the render_settings JSON node.
func ParseSettings(node jsonvalue.Node) (Settings, error) {
	if !node.IsDict() {
		return Settings{}, fmt.Errorf("render: render_settings must be an object")
	}
	dict := node.AsDict()

	get := func(key string) (jsonvalue.Node, error) {
		v, ok := dict.Get(key)
		if !ok {
			return jsonvalue.Node{}, fmt.Errorf("render: render_settings missing %q", key)
		}
		return v, nil
	}

	offset := func(key string) ([2]float64, error) {
		v, err := get(key)
		if err != nil {
			return [2]float64{}, err
		}
		if !v.IsArray() || len(v.AsArray()) != 2 {
			return [2]float64{}, fmt.Errorf("render: %q must be a 2-element array", key)
		}
		arr := v.AsArray()
		return [2]float64{arr[0].AsDouble(), arr[1].AsDouble()}, nil
	}

	var s Settings
	var err error

	if v, e := get("width"); e != nil {
		return s, e
	} else {
		s.Width = v.AsDouble()
	}
	if v, e := get("height"); e != nil {
		return s, e
	} else {
		s.Height = v.AsDouble()
	}
	if v, e := get("padding"); e != nil {
		return s, e
	} else {
		s.Padding = v.AsDouble()
	}
	if v, e := get("stop_radius"); e != nil {
		return s, e
	} else {
		s.StopRadius = v.AsDouble()
	}
	if v, e := get("line_width"); e != nil {
		return s, e
	} else {
		s.LineWidth = v.AsDouble()
	}
	if v, e := get("bus_label_font_size"); e != nil {
		return s, e
	} else {
		s.BusLabelFontSize = uint32(v.AsInt())
	}
	if s.BusLabelOffset, err = offset("bus_label_offset"); err != nil {
		return s, err
	}
	if v, e := get("stop_label_font_size"); e != nil {
		return s, e
	} else {
		s.StopLabelFontSize = uint32(v.AsInt())
	}
	if s.StopLabelOffset, err = offset("stop_label_offset"); err != nil {
		return s, err
	}

	underlayer, err := get("underlayer_color")
	if err != nil {
		return s, err
	}
	if s.UnderlayerColor, err = parseColor(underlayer); err != nil {
		return s, err
	}

	if v, e := get("underlayer_width"); e != nil {
		return s, e
	} else {
		s.UnderlayerWidth = v.AsDouble()
	}

	palette, err := get("color_palette")
	if err != nil {
		return s, err
	}
	if !palette.IsArray() {
		return s, fmt.Errorf("render: color_palette must be an array")
	}
	for _, node := range palette.AsArray() {
		c, err := parseColor(node)
		if err != nil {
			return s, err
		}
		s.ColorPalette = append(s.ColorPalette, c)
	}

	return s, nil
}
