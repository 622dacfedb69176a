package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ntrofimov/transport_catalogue/internal/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const makeBaseInput = `{
  "base_requests": [
    {"type": "Stop", "name": "A", "latitude": 55.611087, "longitude": 37.20829,
     "road_distances": {"B": 3900}},
    {"type": "Stop", "name": "B", "latitude": 55.595884, "longitude": 37.209755,
     "road_distances": {"C": 2400}},
    {"type": "Stop", "name": "C", "latitude": 55.632761, "longitude": 37.333324,
     "road_distances": {"A": 4500}},
    {"type": "Bus", "name": "750", "stops": ["A", "B", "C", "A"], "is_roundtrip": true}
  ],
  "render_settings": {
    "width": 200, "height": 200, "padding": 10,
    "stop_radius": 5, "line_width": 14,
    "bus_label_font_size": 20, "bus_label_offset": [7, 15],
    "stop_label_font_size": 18, "stop_label_offset": [7, -3],
    "underlayer_color": "white", "underlayer_width": 3,
    "color_palette": ["green", [255, 160, 0]]
  },
  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
  "serialization_settings": {"file": "%s"}
}`

func processRequestsInput(file string) string {
	return `{
  "serialization_settings": {"file": "` + file + `"},
  "stat_requests": [
    {"id": 1, "type": "Stop", "name": "A"},
    {"id": 2, "type": "Bus", "name": "750"},
    {"id": 3, "type": "Stop", "name": "ZZZ"},
    {"id": 4, "type": "Map"}
  ]
}`
}

func TestMakeBaseThenProcessRequests(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "snapshot.db")

	input := replaceFile(makeBaseInput, snapPath)
	require.NoError(t, MakeBase(context.Background(), strings.NewReader(input)))

	_, err := os.Stat(snapPath)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, ProcessRequests(context.Background(), strings.NewReader(processRequestsInput(snapPath)), &out))

	node, err := jsonvalue.Load(strings.NewReader(out.String()))
	require.NoError(t, err)
	require.True(t, node.IsArray())
	answers := node.AsArray()
	require.Len(t, answers, 4)

	stopAnswer := answers[0].AsDict()
	buses, ok := stopAnswer.Get("buses")
	require.True(t, ok)
	assert.Equal(t, "750", buses.AsArray()[0].AsString())

	busAnswer := answers[1].AsDict()
	length, _ := busAnswer.Get("route_length")
	assert.Equal(t, 10800.0, length.AsDouble())

	notFoundAnswer := answers[2].AsDict()
	errMsg, ok := notFoundAnswer.Get("error_message")
	require.True(t, ok)
	assert.Equal(t, "not found", errMsg.AsString())

	mapAnswer := answers[3].AsDict()
	mapField, ok := mapAnswer.Get("map")
	require.True(t, ok)
	assert.Contains(t, mapField.AsString(), "<svg")
}

func replaceFile(template, path string) string {
	return strings.Replace(template, "%s", path, 1)
}

func TestMirrorStops(t *testing.T) {
	// mirrorStops is exercised indirectly through MakeBase/ProcessRequests
	// with a non-circular bus; the stop_count check confirms the
	// A,B,C -> A,B,C,B,A expansion.
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "snapshot.db")

	input := `{
  "base_requests": [
    {"type": "Stop", "name": "X", "latitude": 0, "longitude": 0, "road_distances": {"Y": 100}},
    {"type": "Stop", "name": "Y", "latitude": 0, "longitude": 0.001, "road_distances": {"Z": 100}},
    {"type": "Stop", "name": "Z", "latitude": 0, "longitude": 0.002, "road_distances": {}},
    {"type": "Bus", "name": "Mirror", "stops": ["X", "Y", "Z"], "is_roundtrip": false}
  ],
  "render_settings": {
    "width": 200, "height": 200, "padding": 10,
    "stop_radius": 5, "line_width": 14,
    "bus_label_font_size": 20, "bus_label_offset": [7, 15],
    "stop_label_font_size": 18, "stop_label_offset": [7, -3],
    "underlayer_color": "white", "underlayer_width": 3,
    "color_palette": ["green"]
  },
  "routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
  "serialization_settings": {"file": "` + snapPath + `"}
}`
	require.NoError(t, MakeBase(context.Background(), strings.NewReader(input)))

	var out strings.Builder
	reqs := `{"serialization_settings": {"file": "` + snapPath + `"}, "stat_requests": [{"id": 1, "type": "Bus", "name": "Mirror"}]}`
	require.NoError(t, ProcessRequests(context.Background(), strings.NewReader(reqs), &out))

	node, err := jsonvalue.Load(strings.NewReader(out.String()))
	require.NoError(t, err)
	busAnswer := node.AsArray()[0].AsDict()
	stopCount, _ := busAnswer.Get("stop_count")
	assert.Equal(t, int64(5), stopCount.AsInt())
	uniqueCount, _ := busAnswer.Get("unique_stop_count")
	assert.Equal(t, int64(3), uniqueCount.AsInt())
}
