package booking

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
)

type DeactivateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewDeactivateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *DeactivateSlot {
	return &DeactivateSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute soft-deletes the slot. The reservation history is kept
// untouched. The returned flag tells the caller a live reservation
// was affected, so the client can warn the student-facing side;
// deactivation itself is never blocked by it.
func (uc *DeactivateSlot) Execute(
	ctx context.Context,
	slotID uint,
	actorID uint,
) (hadLiveReservation bool, err error) {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return false, httperr.ErrBusiness("slot_not_found")
	}

	if slot.TutorID != actorID {
		return false, httperr.ErrBusiness("not_slot_owner")
	}

	hadLiveReservation = domain.Live(slot) != nil

	slot.Active = false
	if err := uc.repo.UpdateSlot(ctx, slot); err != nil {
		return false, err
	}

	uc.cache.Invalidate(ctx, slot.TutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "slot_deactivated",
		Entity:   "time_slot",
		EntityID: &slot.ID,
		Metadata: map[string]any{"had_live_reservation": hadLiveReservation},
	})

	return hadLiveReservation, nil
}
