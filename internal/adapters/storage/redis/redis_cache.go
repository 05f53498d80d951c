// Package redis disponibiliza a implementação do cache baseada em Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

// lockFudge mantém a chave física viva um pouco além do BlockUntil; a validade
// lógica continua governada pela comparação com o relógio, não pelo TTL.
const lockFudge = 5 * time.Second

type Cache struct {
	client *redis.Client
}

var _ ports.Cache = (*Cache)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Cache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Add(ctx context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

func (c *Cache) Increment(ctx context.Context, key string) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		if strings.Contains(err.Error(), "not an integer") {
			return 0, domain.ErrCorruptCounter
		}
		return 0, err
	}
	return count, nil
}

func (c *Cache) GetCount(ctx context.Context, key string) (int64, bool, error) {
	count, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (c *Cache) GetLock(ctx context.Context, key string) (*domain.LockEntry, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry domain.LockEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// entrada corrompida conta como ausente e será regravada
		return nil, nil
	}
	return &entry, nil
}

func (c *Cache) SetLock(ctx context.Context, key string, entry *domain.LockEntry) error {
	if entry == nil {
		return c.client.Del(ctx, key).Err()
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if entry.BlockUntil != nil {
		ttl = time.Until(*entry.BlockUntil) + lockFudge
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}
