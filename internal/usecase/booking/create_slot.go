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

// ======================================================
// INPUT
// ======================================================

type CreateSlotInput struct {
	TutorID uint
	StartAt time.Time
	EndAt   time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	clock clock.Clock
}

func NewCreateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	clk clock.Clock,
) *CreateSlot {
	return &CreateSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
		clock: clk,
	}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	in CreateSlotInput,
) (*models.TimeSlot, error) {

	if _, err := requireActiveTutor(ctx, uc.repo, in.TutorID); err != nil {
		return nil, err
	}

	start := in.StartAt.UTC()
	end := in.EndAt.UTC()

	now := uc.clock.Now()
	if err := domain.ValidateInterval(start, end, now); err != nil {
		return nil, err
	}

	// Overlap is checked against every active slot of the tutor,
	// booked or not.
	overlap, err := uc.repo.HasOverlappingSlot(ctx, in.TutorID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, httperr.ErrBusiness("slot_overlap")
	}

	slot := &models.TimeSlot{
		TutorID: in.TutorID,
		StartAt: start,
		EndAt:   end,
		Active:  true,
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.TutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TutorID,
		Action:   "slot_created",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}
