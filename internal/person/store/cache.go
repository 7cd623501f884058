package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"persondir/internal/person/metrics"
	"persondir/internal/person/models"
	"persondir/pkg/domain"
)

// Cached is a read-through cache decorator over a Store. Lookups are served
// from Redis when possible; mutations write through to the backing store and
// invalidate the cached entry. Cache failures never fail the request - the
// backing store is the source of truth.
type Cached struct {
	inner   Store
	redis   redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCached wraps inner with a Redis read-through cache.
func NewCached(inner Store, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Cached {
	return &Cached{
		inner:   inner,
		redis:   rdb,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// cacheEntry is the JSON wire form of a cached person.
type cacheEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cacheKey(id domain.ID) string {
	return "persondir:person:" + id.String()
}

func (c *Cached) Create(ctx context.Context, name domain.Name, surname domain.Surname, now time.Time) (*models.Person, error) {
	// New IDs cannot be cached yet; nothing to invalidate.
	return c.inner.Create(ctx, name, surname, now)
}

func (c *Cached) FindByID(ctx context.Context, id domain.ID) (*models.Person, error) {
	key := cacheKey(id)

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var entry cacheEntry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			c.metrics.IncrementCacheHit()
			return fromCacheEntry(entry), nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.redis.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.DebugContext(ctx, "cache read failed", "key", key, "error", err)
	}
	c.metrics.IncrementCacheMiss()

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.prime(ctx, p)
	return p, nil
}

func (c *Cached) List(ctx context.Context) ([]*models.Person, error) {
	// Listings are not cached: invalidating them on every mutation costs
	// more than the query.
	return c.inner.List(ctx)
}

func (c *Cached) Update(ctx context.Context, p *models.Person) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *Cached) Delete(ctx context.Context, id domain.ID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *Cached) prime(ctx context.Context, p *models.Person) {
	raw, err := json.Marshal(cacheEntry{
		ID:        p.ID.Int64(),
		Name:      p.Name.String(),
		Surname:   p.Surname.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, cacheKey(p.ID), raw, c.ttl).Err(); err != nil {
		c.logger.DebugContext(ctx, "cache write failed", "key", cacheKey(p.ID), "error", err)
	}
}

func (c *Cached) invalidate(ctx context.Context, id domain.ID) {
	if err := c.redis.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.DebugContext(ctx, "cache invalidation failed", "key", cacheKey(id), "error", err)
	}
}

func fromCacheEntry(entry cacheEntry) *models.Person {
	return &models.Person{
		PersonRecord: domain.NewPersonRecord(
			domain.ID(entry.ID), domain.Name(entry.Name), domain.Surname(entry.Surname),
		),
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
