package booking

import (
	"context"
	"time"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type UpdateSlotInput struct {
	SlotID  uint
	TutorID uint
	StartAt time.Time
	EndAt   time.Time
}

type UpdateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	clock clock.Clock
}

func NewUpdateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	clk clock.Clock,
) *UpdateSlot {
	return &UpdateSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
		clock: clk,
	}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	in UpdateSlotInput,
) (*models.TimeSlot, error) {

	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	if slot.TutorID != in.TutorID {
		return nil, httperr.ErrBusiness("not_slot_owner")
	}

	// A slot with a live reservation cannot be moved under the
	// student; the tutor cancels first.
	if domain.Live(slot) != nil {
		return nil, httperr.ErrBusiness("slot_already_booked")
	}

	start := in.StartAt.UTC()
	end := in.EndAt.UTC()

	now := uc.clock.Now()
	if err := domain.ValidateInterval(start, end, now); err != nil {
		return nil, err
	}

	overlap, err := uc.repo.HasOverlappingSlot(ctx, in.TutorID, start, end, slot.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, httperr.ErrBusiness("slot_overlap")
	}

	slot.StartAt = start
	slot.EndAt = end

	if err := uc.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.TutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TutorID,
		Action:   "slot_updated",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}
