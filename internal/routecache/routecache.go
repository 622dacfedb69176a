// Package routecache caches Route query answers in Redis, adapted from
// the teacher's internal/cache/redis.go: a lazily-initialized singleton
// client, a deterministic cache key, and get/set helpers that treat a
// cache miss and a Redis error identically — fall through to computing
// the route fresh. It is an optional speed add-on: nothing about
// correctness depends on it being reachable.
package routecache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ntrofimov/transport_catalogue/internal/router"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getClient() (*redis.Client, error) {
	clientOnce.Do(func() {
		addr := os.Getenv("TC_CACHE_ADDR")
		if addr == "" {
			clientErr = fmt.Errorf("routecache: TC_CACHE_ADDR not set")
			return
		}

		db, _ := strconv.Atoi(getEnv("TC_CACHE_DB", "0"))

		client = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     os.Getenv("TC_CACHE_PASSWORD"),
			DB:           db,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("routecache: connect: %w", err)
		}
	})

	return client, clientErr
}

// Enabled reports whether TC_CACHE_ADDR configures a Redis target.
func Enabled() bool {
	return os.Getenv("TC_CACHE_ADDR") != ""
}

// Cache implements router.Cache against Redis. Zero value is usable.
type Cache struct {
	TTL time.Duration
}

// New returns a cache with the given TTL (zero means no expiry).
func New(ttl time.Duration) *Cache {
	return &Cache{TTL: ttl}
}

func routeKey(from, to string) string {
	hash := sha256.Sum256([]byte(from + "->" + to))
	return fmt.Sprintf("route:%x", hash[:12])
}

// GetRoute returns a cached route, or false on a miss or any error —
// callers always fall back to computing the route themselves.
func (c *Cache) GetRoute(ctx context.Context, from, to string) (router.RouteInfo, bool) {
	cl, err := getClient()
	if err != nil {
		return router.RouteInfo{}, false
	}

	data, err := cl.Get(ctx, routeKey(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("routecache: get: %v", err)
		}
		return router.RouteInfo{}, false
	}

	var info router.RouteInfo
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("routecache: unmarshal: %v", err)
		return router.RouteInfo{}, false
	}

	return info, true
}

// SetRoute stores a computed route. Marshal and write failures are
// logged and swallowed; when no client is available it does nothing.
func (c *Cache) SetRoute(ctx context.Context, from, to string, info router.RouteInfo) {
	cl, err := getClient()
	if err != nil {
		return
	}

	data, err := json.Marshal(info)
	if err != nil {
		log.Printf("routecache: marshal: %v", err)
		return
	}

	if err := cl.Set(ctx, routeKey(from, to), data, c.TTL).Err(); err != nil {
		log.Printf("routecache: set: %v", err)
	}
}
