package booking

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type CancelByTutor struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	clock clock.Clock
}

func NewCancelByTutor(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	clk clock.Clock,
) *CancelByTutor {
	return &CancelByTutor{
		repo:  repo,
		audit: audit,
		cache: cache,
		clock: clk,
	}
}

// Execute lets the owning tutor reject a pending or confirmed
// reservation, under the same notice window as a student cancel.
func (uc *CancelByTutor) Execute(
	ctx context.Context,
	slotID uint,
	tutorID uint,
) (*models.Reservation, error) {

	if _, err := requireActiveTutor(ctx, uc.repo, tutorID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	res, err := uc.repo.TransitionReservation(ctx, slotID,
		func(slot *models.TimeSlot) (*models.Reservation, error) {
			if slot.TutorID != tutorID {
				return nil, httperr.ErrBusiness("not_slot_owner")
			}

			last := domain.LastReservation(slot)
			if last == nil {
				return nil, httperr.ErrBusiness("reservation_not_found")
			}

			if err := domain.Cancel(last, slot.StartAt, now); err != nil {
				return nil, err
			}

			return last, nil
		})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, tutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &tutorID,
		Action:   "reservation_cancelled_by_tutor",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return res, nil
}
