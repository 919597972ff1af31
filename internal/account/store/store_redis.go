package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ibangate/internal/account"
	"ibangate/internal/platform/metrics"
	"ibangate/pkg/iban"
)

const accountKeyPrefix = "account:"

// RedisCache is a read-through cache in front of a primary store. Cached
// entries re-validate their IBAN on restore like every other backend; an
// entry that fails the integrity check is evicted and the read falls through
// to the primary, which remains the source of truth.
type RedisCache struct {
	primary Store
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRedisCache wraps primary with a Redis cache.
func NewRedisCache(primary Store, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		primary: primary,
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// cachedAccount is the stable persisted encoding. The IBAN field serializes
// through the value object's text codec: the normalized form only, never the
// display form, and decoding re-runs validation.
type cachedAccount struct {
	ID        uuid.UUID `json:"id"`
	IBAN      iban.IBAN `json:"iban"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *RedisCache) Save(ctx context.Context, acct account.Account) error {
	if err := c.primary.Save(ctx, acct); err != nil {
		return err
	}
	c.fill(ctx, acct)
	return nil
}

func (c *RedisCache) FindByID(ctx context.Context, id uuid.UUID) (account.Account, error) {
	key := accountKeyPrefix + id.String()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedAccount
		decodeErr := json.Unmarshal(payload, &cached)
		if decodeErr == nil {
			c.metrics.IncCacheHit()
			return account.Account{
				ID:        cached.ID,
				IBAN:      cached.IBAN,
				Label:     cached.Label,
				CreatedAt: cached.CreatedAt,
			}, nil
		}

		// The cached entry failed decoding or re-validation. Evict it and
		// recover from the source of truth; the integrity failure is still
		// counted and logged.
		var integrity *iban.IntegrityError
		if errors.As(decodeErr, &integrity) {
			c.metrics.IncRestoreIntegrityFail()
			c.logger.WarnContext(ctx, "evicting corrupted cache entry",
				"account_id", id,
				"error", decodeErr,
			)
		}
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "account cache read failed", "error", err)
	}

	c.metrics.IncCacheMiss()
	acct, err := c.primary.FindByID(ctx, id)
	if err != nil {
		return account.Account{}, err
	}
	c.fill(ctx, acct)
	return acct, nil
}

func (c *RedisCache) List(ctx context.Context) ([]account.Account, error) {
	return c.primary.List(ctx)
}

// fill writes the record into the cache, best effort.
func (c *RedisCache) fill(ctx context.Context, acct account.Account) {
	payload, err := json.Marshal(cachedAccount{
		ID:        acct.ID,
		IBAN:      acct.IBAN,
		Label:     acct.Label,
		CreatedAt: acct.CreatedAt,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "account cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, accountKeyPrefix+acct.ID.String(), payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "account cache write failed", "error", err)
	}
}
