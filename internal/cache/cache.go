package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/singleflight"

	vkstore "github.com/szzz666/PalEasyBreeding/internal/store/valkey"
)

const keyPrefix = "paleasy:result:"

// keySpace scopes result keys generated with uuid.NewSHA1.
var keySpace = uuid.MustParse("a3d1f0e4-2b7c-4c89-8e55-0f4b6c2d9e71")

// Cache stores search results in Valkey as JSON with a fixed TTL. A Cache
// built without a client only collapses concurrent identical queries.
type Cache struct {
	client valkey.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// New returns a cache backed by client. client may be nil.
func New(client valkey.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether results are persisted.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Status reports "disabled", "ok" or "unavailable" for readiness probes.
func (c *Cache) Status(ctx context.Context) string {
	if !c.Enabled() {
		return "disabled"
	}
	if err := vkstore.Ping(ctx, c.client); err != nil {
		c.logger.Warn("result cache unavailable", slog.String("error", err.Error()))
		return "unavailable"
	}
	return "ok"
}

// Key derives a result key from the dataset version and the query parts.
// Parts are joined verbatim, so callers must pass them in a fixed order.
func Key(version, op string, parts ...string) string {
	name := version + "\x00" + op + "\x00" + strings.Join(parts, "\x00")
	return keyPrefix + op + ":" + uuid.NewSHA1(keySpace, []byte(name)).String()
}

// Fetch returns the cached value under key, computing and storing it on a
// miss. Cache failures are logged and never fail the query.
func Fetch[T any](ctx context.Context, c *Cache, key string, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}

	if c.Enabled() {
		if v, ok := load[T](ctx, c, key); ok {
			return v, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute()
		if err != nil {
			return v, err
		}
		if c.Enabled() {
			c.store(ctx, key, v)
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func load[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			c.logger.Warn("result cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return v, false
	}
	return v, true
}

func (c *Cache) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("marshal cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	var cmd valkey.Completed
	if c.ttl > 0 {
		cmd = c.client.B().Set().Key(key).Value(string(data)).Ex(c.ttl).Build()
	} else {
		cmd = c.client.B().Set().Key(key).Value(string(data)).Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("result cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
