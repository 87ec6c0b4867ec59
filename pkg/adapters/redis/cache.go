package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/nutshell"
)

// Cache stores compile reports in Redis, keyed by the seed and a hash of the
// rule file. Compilation is deterministic for a given seed, so entries never
// go stale; the TTL only bounds memory.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for reports.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for reports.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: "nutshell:report:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key of a rule file compiled with seed.
func (c *Cache) Key(seed uint64, source []byte) string {
	return fmt.Sprintf("%s%d:%016x", c.prefix, seed, xxhash.Sum64(source))
}

// Get loads a report. The boolean is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (nutshell.Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nutshell.Report{}, false, nil
	}
	if err != nil {
		return nutshell.Report{}, false, fmt.Errorf("failed to get report: %w", err)
	}
	var rep nutshell.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nutshell.Report{}, false, fmt.Errorf("failed to decode report: %w", err)
	}
	return rep, true, nil
}

// Set stores a report.
func (c *Cache) Set(ctx context.Context, key string, rep nutshell.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Close releases the client.
func (c *Cache) Close() error {
	return c.client.Close()
}
