package mem

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderlust/internal/models/trip_models"
)

// HoursCache keeps opening-hours snapshots keyed by place so repeated trips to the same
// destination do not hit the places API again.
type HoursCache interface {
	Get(ctx context.Context, key string) (*trip_models.WeeklyHours, bool)
	Set(ctx context.Context, key string, hours *trip_models.WeeklyHours, ttl time.Duration)
}

// HoursKey normalizes a place name and address into a cache key.
func HoursKey(name, address string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return "hours:" + norm(name) + "|" + norm(address)
}

type entry struct {
	hours     *trip_models.WeeklyHours
	expiresAt time.Time
}

type InMemoryHoursCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewInMemoryHoursCache() *InMemoryHoursCache {
	return &InMemoryHoursCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *InMemoryHoursCache) Set(_ context.Context, key string, hours *trip_models.WeeklyHours, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		hours:     hours,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *InMemoryHoursCache) Get(_ context.Context, key string) (*trip_models.WeeklyHours, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key) // cleanup expired
		s.mu.Unlock()
		return nil, false
	}
	return e.hours, true
}

func (s *InMemoryHoursCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RedisHoursCache shares snapshots between instances. Redis errors are treated as misses.
type RedisHoursCache struct {
	client *redis.Client
}

func NewRedisHoursCache(client *redis.Client) *RedisHoursCache {
	return &RedisHoursCache{client: client}
}

func (c *RedisHoursCache) Get(ctx context.Context, key string) (*trip_models.WeeklyHours, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var hours trip_models.WeeklyHours
	if err := json.Unmarshal([]byte(val), &hours); err != nil {
		return nil, false
	}
	return &hours, true
}

func (c *RedisHoursCache) Set(ctx context.Context, key string, hours *trip_models.WeeklyHours, ttl time.Duration) {
	data, err := json.Marshal(hours)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, ttl).Err()
}

// TieredHoursCache reads through a local cache in front of a shared one.
type TieredHoursCache struct {
	local    HoursCache
	shared   HoursCache
	localTTL time.Duration
}

func NewTieredHoursCache(local, shared HoursCache, localTTL time.Duration) *TieredHoursCache {
	return &TieredHoursCache{local: local, shared: shared, localTTL: localTTL}
}

func (t *TieredHoursCache) Get(ctx context.Context, key string) (*trip_models.WeeklyHours, bool) {
	if hours, ok := t.local.Get(ctx, key); ok {
		return hours, true
	}
	hours, ok := t.shared.Get(ctx, key)
	if ok {
		t.local.Set(ctx, key, hours, t.localTTL)
	}
	return hours, ok
}

func (t *TieredHoursCache) Set(ctx context.Context, key string, hours *trip_models.WeeklyHours, ttl time.Duration) {
	t.local.Set(ctx, key, hours, min(ttl, t.localTTL))
	t.shared.Set(ctx, key, hours, ttl)
}
