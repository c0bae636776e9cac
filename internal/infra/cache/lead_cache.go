package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rcardozo/lead-manager/internal/entity"
)

const leadListKey = "leads:list"

// NewRedisClient connects a single-node Redis client and verifies it
// with a ping.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// LeadListCache keeps a short-lived copy of the full lead list. Every
// mutation invalidates it, so a miss is always answered by the database.
type LeadListCache struct {
	Client *redis.Client
	TTL    time.Duration
	Log    *zap.SugaredLogger
}

func NewLeadListCache(client *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *LeadListCache {
	return &LeadListCache{
		Client: client,
		TTL:    ttl,
		Log:    log,
	}
}

func (c *LeadListCache) GetList(ctx context.Context) ([]entity.Lead, bool) {
	raw, err := c.Client.Get(ctx, leadListKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.Log.Warnw("lead list cache read", "err", err)
		}
		return nil, false
	}

	var leads []entity.Lead
	if err := json.Unmarshal([]byte(raw), &leads); err != nil {
		c.Log.Warnw("lead list cache decode", "err", err)
		return nil, false
	}
	return leads, true
}

func (c *LeadListCache) SetList(ctx context.Context, leads []entity.Lead) {
	raw, err := json.Marshal(leads)
	if err != nil {
		c.Log.Warnw("lead list cache encode", "err", err)
		return
	}
	if err := c.Client.Set(ctx, leadListKey, raw, c.TTL).Err(); err != nil {
		c.Log.Warnw("lead list cache write", "err", err)
	}
}

func (c *LeadListCache) Invalidate(ctx context.Context) {
	if err := c.Client.Del(ctx, leadListKey).Err(); err != nil {
		c.Log.Warnw("lead list cache invalidate", "err", err)
	}
}
