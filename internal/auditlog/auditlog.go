// Package auditlog records a best-effort audit trail row for every
// make_base run to Postgres via pgx, adapted from the teacher's
// internal/db/connection.go singleton pool pattern and its
// models.ImportLog record. A missing or unreachable TC_AUDIT_DSN never
// fails an ingestion run: callers log and continue.
package auditlog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Enabled reports whether TC_AUDIT_DSN configures a Postgres target.
func Enabled() bool {
	return os.Getenv("TC_AUDIT_DSN") != ""
}

func getPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		dsn := os.Getenv("TC_AUDIT_DSN")
		if dsn == "" {
			poolErr = fmt.Errorf("auditlog: TC_AUDIT_DSN not set")
			return
		}

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		p, err := pgxpool.New(connectCtx, dsn)
		if err != nil {
			poolErr = fmt.Errorf("auditlog: connect: %w", err)
			return
		}

		if err := p.Ping(connectCtx); err != nil {
			p.Close()
			poolErr = fmt.Errorf("auditlog: ping: %w", err)
			return
		}

		pool = p
	})

	return pool, poolErr
}

// Entry is one make_base import's summary.
type Entry struct {
	StopCount     int
	BusCount      int
	DistanceCount int
}

// RecordImport inserts one audit row. Errors are returned so the caller
// can decide whether to log and continue; nothing in this package ever
// panics or retries indefinitely.
func RecordImport(ctx context.Context, entry Entry) error {
	p, err := getPool(ctx)
	if err != nil {
		return err
	}

	_, err = p.Exec(ctx,
		`INSERT INTO import_log (stop_count, bus_count, distance_count, imported_at) VALUES ($1, $2, $3, now())`,
		entry.StopCount, entry.BusCount, entry.DistanceCount,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert: %w", err)
	}
	return nil
}

// Close releases the pool, if one was ever opened.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
