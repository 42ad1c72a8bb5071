package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/TutorLinkServices/tutor-scheduler/internal/dto"
)

const availabilityTTL = 30 * time.Second

// Availability caches the unfiltered open-slot listing per tutor key.
// Every write path on slots or reservations invalidates; a stale entry
// can only ever last availabilityTTL. A nil *Availability is a no-op,
// which keeps the cache out of unit tests.
type Availability struct {
	rdb *redis.Client
}

func NewAvailability(rdb *redis.Client) *Availability {
	return &Availability{rdb: rdb}
}

func key(tutorID *uint) string {
	if tutorID == nil {
		return "slots:open:all"
	}
	return fmt.Sprintf("slots:open:tutor:%d", *tutorID)
}

func (a *Availability) Get(ctx context.Context, tutorID *uint) ([]dto.AvailableSlotDTO, bool) {
	if a == nil || a.rdb == nil {
		return nil, false
	}

	raw, err := a.rdb.Get(ctx, key(tutorID)).Bytes()
	if err != nil {
		return nil, false
	}

	var out []dto.AvailableSlotDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (a *Availability) Set(ctx context.Context, tutorID *uint, slots []dto.AvailableSlotDTO) {
	if a == nil || a.rdb == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	a.rdb.Set(ctx, key(tutorID), raw, availabilityTTL)
}

func (a *Availability) Invalidate(ctx context.Context, tutorID uint) {
	if a == nil || a.rdb == nil {
		return
	}
	a.rdb.Del(ctx, key(nil), key(&tutorID))
}
