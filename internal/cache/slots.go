package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/merciahealth/patient-portal/internal/domain/schedule"
)

const slotTTL = 60 * time.Second

// SlotCache keeps computed availability per (doctor, date) for a short TTL.
// Misses and redis failures both fall through to recomputation; a nil client
// disables caching entirely.
type SlotCache struct {
	client *redis.Client
}

func NewSlotCache(addr string) *SlotCache {
	if addr == "" {
		return &SlotCache{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return &SlotCache{}
	}

	return &SlotCache{client: client}
}

func slotKey(doctorID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, date)
}

func (c *SlotCache) Get(ctx context.Context, doctorID uint, date string) ([]domain.TimeSlot, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, slotKey(doctorID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, doctorID uint, date string, slots []domain.TimeSlot) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.client.Set(ctx, slotKey(doctorID, date), raw, slotTTL)
}

// Invalidate drops the cached day after any booking, cancellation or
// reschedule touching it.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID uint, dates ...string) {
	if c.client == nil {
		return
	}

	for _, d := range dates {
		c.client.Del(ctx, slotKey(doctorID, d))
	}
}

func (c *SlotCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
