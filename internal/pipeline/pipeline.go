// Package pipeline orchestrates the two modes an ingestion run can take
// — make_base (build a catalogue + routing graph and snapshot it) and
// process_requests (load a snapshot and answer a query batch) — mirroring
// json_reader.cpp's MakeBase/ProcessRequests flow.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ntrofimov/transport_catalogue/internal/auditlog"
	"github.com/ntrofimov/transport_catalogue/internal/catalogue"
	"github.com/ntrofimov/transport_catalogue/internal/geo"
	"github.com/ntrofimov/transport_catalogue/internal/jsonvalue"
	"github.com/ntrofimov/transport_catalogue/internal/render"
	"github.com/ntrofimov/transport_catalogue/internal/response"
	"github.com/ntrofimov/transport_catalogue/internal/router"
	"github.com/ntrofimov/transport_catalogue/internal/routecache"
	"github.com/ntrofimov/transport_catalogue/internal/snapshot"
)

// MakeBase reads a base_requests/render_settings/routing_settings
// ingestion document from in, builds the catalogue and routing graph,
// and writes the snapshot to the path named in
// serialization_settings.file.
func MakeBase(ctx context.Context, in io.Reader) error {
	root, err := jsonvalue.Load(in)
	if err != nil {
		return fmt.Errorf("pipeline: parse input: %w", err)
	}
	dict := root.AsDict()

	baseRequests, ok := dict.Get("base_requests")
	if !ok {
		return fmt.Errorf("pipeline: missing base_requests")
	}

	cat := catalogue.New()
	fillStopsAndDistances(cat, baseRequests.AsArray())
	fillBuses(cat, baseRequests.AsArray())

	renderSettingsNode, ok := dict.Get("render_settings")
	if !ok {
		return fmt.Errorf("pipeline: missing render_settings")
	}
	renderSettings, err := render.ParseSettings(renderSettingsNode)
	if err != nil {
		return fmt.Errorf("pipeline: render_settings: %w", err)
	}

	routingSettingsNode, ok := dict.Get("routing_settings")
	if !ok {
		return fmt.Errorf("pipeline: missing routing_settings")
	}
	routingDict := routingSettingsNode.AsDict()
	busWaitTime, _ := routingDict.Get("bus_wait_time")
	busVelocity, _ := routingDict.Get("bus_velocity")
	routerSettings := router.Settings{
		BusWaitTime: int(busWaitTime.AsInt()),
		BusVelocity: busVelocity.AsDouble(),
	}

	path, err := serializationFilePath(dict)
	if err != nil {
		return err
	}

	snap := snapshot.FromCatalogue(cat, renderSettings, routerSettings)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pipeline: create snapshot file: %w", err)
	}
	defer file.Close()

	if err := snapshot.Write(file, snap); err != nil {
		return fmt.Errorf("pipeline: write snapshot: %w", err)
	}

	recordAudit(ctx, cat)

	return nil
}

// ProcessRequests reads a serialization_settings/stat_requests document
// from in, loads the snapshot it names, rebuilds the routing graph, and
// writes the stat_requests answers to out as a JSON array.
func ProcessRequests(ctx context.Context, in io.Reader, out io.Writer) error {
	root, err := jsonvalue.Load(in)
	if err != nil {
		return fmt.Errorf("pipeline: parse input: %w", err)
	}
	dict := root.AsDict()

	path, err := serializationFilePath(dict)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pipeline: open snapshot file: %w", err)
	}
	defer file.Close()

	snap, err := snapshot.Read(file)
	if err != nil {
		return fmt.Errorf("pipeline: read snapshot: %w", err)
	}

	cat, renderSettings, routerSettings, err := snap.Rehydrate()
	if err != nil {
		return fmt.Errorf("pipeline: rehydrate snapshot: %w", err)
	}

	rt := router.BuildFromCatalogue(cat, routerSettings)
	if routecache.Enabled() {
		rt = rt.WithCache(routecache.New(10 * time.Minute))
	}
	renderer := render.NewMapRenderer(renderSettings)

	statRequests, ok := dict.Get("stat_requests")
	if !ok {
		return fmt.Errorf("pipeline: missing stat_requests")
	}

	answers := jsonvalue.NewBuilder().StartArray()
	for _, reqNode := range statRequests.AsArray() {
		answer, err := answerOne(ctx, cat, renderer, rt, reqNode)
		if err != nil {
			return err
		}
		answers.Value(answer)
	}

	return jsonvalue.Print(answers.EndArray().Build(), out)
}

func answerOne(ctx context.Context, cat *catalogue.Catalogue, renderer *render.MapRenderer, rt *router.Router, reqNode jsonvalue.Node) (jsonvalue.Node, error) {
	reqDict := reqNode.AsDict()
	idNode, _ := reqDict.Get("id")
	id := idNode.AsInt()
	typeNode, _ := reqDict.Get("type")

	switch typeNode.AsString() {
	case "Stop":
		nameNode, _ := reqDict.Get("name")
		return response.BuildStopInfo(cat, id, nameNode.AsString()), nil
	case "Bus":
		nameNode, _ := reqDict.Get("name")
		return response.BuildBusInfo(cat, id, nameNode.AsString()), nil
	case "Map":
		return response.BuildMapInfo(renderer, cat, id)
	case "Route":
		fromNode, _ := reqDict.Get("from")
		toNode, _ := reqDict.Get("to")
		return response.BuildRouteInfo(ctx, rt, id, fromNode.AsString(), toNode.AsString()), nil
	default:
		return jsonvalue.NewBuilder().StartDict().
			Key("request_id").Value(jsonvalue.Int(id)).
			Key("error_message").Value(jsonvalue.String("not found")).
			EndDict().Build(), nil
	}
}

func fillStopsAndDistances(cat *catalogue.Catalogue, requests []jsonvalue.Node) {
	for _, req := range requests {
		dict := req.AsDict()
		typeNode, _ := dict.Get("type")
		if typeNode.AsString() != "Stop" {
			continue
		}
		nameNode, _ := dict.Get("name")
		latNode, _ := dict.Get("latitude")
		lngNode, _ := dict.Get("longitude")
		cat.AddStop(&catalogue.Stop{
			Name:  nameNode.AsString(),
			Point: geo.Point{Lat: latNode.AsDouble(), Lng: lngNode.AsDouble()},
		})
	}

	distances := make(map[[2]string]int)
	for _, req := range requests {
		dict := req.AsDict()
		typeNode, _ := dict.Get("type")
		if typeNode.AsString() != "Stop" {
			continue
		}
		nameNode, _ := dict.Get("name")
		roadDistances, ok := dict.Get("road_distances")
		if !ok {
			continue
		}
		for _, key := range roadDistances.AsDict().Keys() {
			meters, _ := roadDistances.AsDict().Get(key)
			distances[[2]string{nameNode.AsString(), key}] = int(meters.AsInt())
		}
	}
	cat.SetDistances(distances)
}

func fillBuses(cat *catalogue.Catalogue, requests []jsonvalue.Node) {
	for _, req := range requests {
		dict := req.AsDict()
		typeNode, _ := dict.Get("type")
		if typeNode.AsString() != "Bus" {
			continue
		}
		nameNode, _ := dict.Get("name")
		stopsNode, _ := dict.Get("stops")
		circularNode, _ := dict.Get("is_roundtrip")

		stopNames := stopsNode.AsArray()
		stops := make([]*catalogue.Stop, 0, len(stopNames))
		for _, sn := range stopNames {
			stop, ok := cat.FindStop(sn.AsString())
			if !ok {
				continue
			}
			stops = append(stops, stop)
		}

		circular := circularNode.AsBool()
		if !circular && len(stops) > 1 {
			stops = mirrorStops(stops)
		}

		cat.AddRoute(&catalogue.Bus{Name: nameNode.AsString(), Stops: stops, Circular: circular})
	}
}

// mirrorStops expands A,B,...,Z into the out-and-back sequence
// A,B,...,Z,...,B,A a non-circular route is actually traversed as.
func mirrorStops(stops []*catalogue.Stop) []*catalogue.Stop {
	mirrored := make([]*catalogue.Stop, 0, 2*len(stops)-1)
	mirrored = append(mirrored, stops...)
	for i := len(stops) - 2; i >= 0; i-- {
		mirrored = append(mirrored, stops[i])
	}
	return mirrored
}

func serializationFilePath(dict *jsonvalue.Dict) (string, error) {
	settingsNode, ok := dict.Get("serialization_settings")
	if !ok {
		return "", fmt.Errorf("pipeline: missing serialization_settings")
	}
	fileNode, ok := settingsNode.AsDict().Get("file")
	if !ok {
		return "", fmt.Errorf("pipeline: missing serialization_settings.file")
	}
	return fileNode.AsString(), nil
}

func recordAudit(ctx context.Context, cat *catalogue.Catalogue) {
	if !auditlog.Enabled() {
		return
	}
	entry := auditlog.Entry{
		StopCount:     len(cat.Stops()),
		BusCount:      len(cat.Buses()),
		DistanceCount: len(cat.Distances()),
	}
	if err := auditlog.RecordImport(ctx, entry); err != nil {
		log.Printf("pipeline: audit log (ignored): %v", err)
	}
}
