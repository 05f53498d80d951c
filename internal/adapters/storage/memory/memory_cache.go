// Package memory oferece um cache em processo para testes e execução local.
// O estado é local ao processo, então não coordena limites entre réplicas.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

type counterRecord struct {
	value   int64
	expires time.Time
}

func (r counterRecord) live(now time.Time) bool {
	return r.expires.IsZero() || now.Before(r.expires)
}

type Cache struct {
	mu       sync.Mutex
	counters map[string]counterRecord
	locks    map[string]domain.LockEntry
}

var _ ports.Cache = (*Cache)(nil)

func New() *Cache {
	return &Cache{
		counters: make(map[string]counterRecord),
		locks:    make(map[string]domain.LockEntry),
	}
}

func (c *Cache) Add(_ context.Context, key string, value int64, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if rec, ok := c.counters[key]; ok && rec.live(now) {
		return false, nil
	}
	c.counters[key] = counterRecord{value: value, expires: now.Add(ttl)}
	return true, nil
}

func (c *Cache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// espelha o INCR do Redis: chave ausente (ou expirada) nasce do zero
	rec, ok := c.counters[key]
	if !ok || !rec.live(time.Now()) {
		rec = counterRecord{}
	}
	rec.value++
	c.counters[key] = rec
	return rec.value, nil
}

func (c *Cache) GetCount(_ context.Context, key string) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.counters[key]
	if !ok || !rec.live(time.Now()) {
		return 0, false, nil
	}
	return rec.value, true, nil
}

func (c *Cache) GetLock(_ context.Context, key string) (*domain.LockEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.locks[key]
	if !ok {
		return nil, nil
	}
	clone := entry
	return &clone, nil
}

func (c *Cache) SetLock(_ context.Context, key string, entry *domain.LockEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry == nil {
		delete(c.locks, key)
		return nil
	}
	c.locks[key] = *entry
	return nil
}
