// Package response assembles the per-query-type JSON answers for a
// stat_requests batch, using internal/jsonvalue's builder the way
// request_handler.cpp's JsonBuild* family does.
package response

import (
	"bytes"
	"context"
	"sort"

	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/jsonvalue"
	"github.com/ntrofimov/transport_catalogue/internal/render"
	"github.com/ntrofimov/transport_catalogue/internal/router"
)

const notFoundMessage = "not found"

// BuildStopInfo answers a Stop query: the sorted bus names serving it,
// or a not-found error.
func BuildStopInfo(cat *catalogue.Catalogue, id int64, name string) jsonvalue.Node {
	b := jsonvalue.NewBuilder().StartDict().Key("request_id").Value(jsonvalue.Int(id))

	if _, ok := cat.FindStop(name); !ok {
		return b.Key("error_message").Value(jsonvalue.String(notFoundMessage)).EndDict().Build()
	}

	buses := cat.GetBusesOnStop(name)
	names := make([]string, len(buses))
	for i, bus := range buses {
		names[i] = bus.Name
	}
	sort.Strings(names)

	b.Key("buses").StartArray()
	for _, n := range names {
		b.Value(jsonvalue.String(n))
	}
	b.EndArray()

	return b.EndDict().Build()
}

// BuildBusInfo answers a Bus query: route metrics, or a not-found error.
func BuildBusInfo(cat *catalogue.Catalogue, id int64, name string) jsonvalue.Node {
	b := jsonvalue.NewBuilder().StartDict().Key("request_id").Value(jsonvalue.Int(id))

	bus, ok := cat.FindRoute(name)
	if !ok {
		return b.Key("error_message").Value(jsonvalue.String(notFoundMessage)).EndDict().Build()
	}

	curvature := bus.FactualLength / bus.LengthByCoordinates

	b.Key("curvature").Value(jsonvalue.Double(curvature))
	b.Key("stop_count").Value(jsonvalue.Int(int64(bus.StopsOnRoute())))
	b.Key("unique_stop_count").Value(jsonvalue.Int(int64(bus.UniqueStops())))
	b.Key("route_length").Value(jsonvalue.Double(bus.FactualLength))

	return b.EndDict().Build()
}

// BuildMapInfo answers a Map query: the rendered SVG document as a string.
func BuildMapInfo(renderer *render.MapRenderer, cat *catalogue.Catalogue, id int64) (jsonvalue.Node, error) {
	b := jsonvalue.NewBuilder().StartDict().Key("request_id").Value(jsonvalue.Int(id))

	var buf bytes.Buffer
	if err := renderer.RenderSvgDocument(cat.GetSortedBuses(), &buf); err != nil {
		return jsonvalue.Node{}, err
	}

	b.Key("map").Value(jsonvalue.String(buf.String()))

	return b.EndDict().Build(), nil
}

// BuildRouteInfo answers a Route query: total time and the itinerary,
// or a not-found error. Wait items carry stop_name as a string and time
// as the numeric duration — the original tool swaps these two fields in
// its Wait arm; that swap is a defect and is not reproduced here.
func BuildRouteInfo(ctx context.Context, rt *router.Router, id int64, from, to string) jsonvalue.Node {
	b := jsonvalue.NewBuilder().StartDict().Key("request_id").Value(jsonvalue.Int(id))

	info, ok := rt.GetRoute(ctx, from, to)
	if !ok {
		return b.Key("error_message").Value(jsonvalue.String(notFoundMessage)).EndDict().Build()
	}

	b.Key("items").StartArray()
	for _, item := range info.Items {
		b.StartDict()
		if item.Wait {
			b.Key("type").Value(jsonvalue.String("Wait"))
			b.Key("stop_name").Value(jsonvalue.String(item.StopName))
			b.Key("time").Value(jsonvalue.Double(item.Minutes))
		} else {
			b.Key("type").Value(jsonvalue.String("Bus"))
			b.Key("time").Value(jsonvalue.Double(item.Minutes))
			b.Key("span_count").Value(jsonvalue.Int(int64(item.SpanCount)))
			b.Key("bus").Value(jsonvalue.String(item.BusName))
		}
		b.EndDict()
	}
	b.EndArray()

	b.Key("total_time").Value(jsonvalue.Double(info.TotalTime))

	return b.EndDict().Build()
}
