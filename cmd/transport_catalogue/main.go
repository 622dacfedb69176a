// Command transport_catalogue runs one of the two ingestion pipeline
// modes against standard input/output: make_base builds a catalogue
// snapshot, process_requests answers a query batch against one.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ntrofimov/transport_catalogue/internal/auditlog"
	"github.com/ntrofimov/transport_catalogue/internal/pipeline"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: transport_catalogue <make_base|process_requests>")
		os.Exit(1)
	}

	mode := os.Args[1]
	ctx := context.Background()

	log.Printf("transport_catalogue: starting mode=%s", mode)
	defer auditlog.Close()

	var err error
	switch mode {
	case "make_base":
		err = pipeline.MakeBase(ctx, os.Stdin)
	case "process_requests":
		err = pipeline.ProcessRequests(ctx, os.Stdin, os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, "Usage: transport_catalogue <make_base|process_requests>")
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("transport_catalogue: %v", err)
	}

	log.Printf("transport_catalogue: mode=%s completed", mode)
}
