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

type CancelByStudent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	clock clock.Clock
}

func NewCancelByStudent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	clk clock.Clock,
) *CancelByStudent {
	return &CancelByStudent{
		repo:  repo,
		audit: audit,
		cache: cache,
		clock: clk,
	}
}

// Execute cancels the student's own live reservation on the slot.
// A cancelled slot goes straight back into availability; the history
// keeps the cancelled entry and the next booking appends after it.
func (uc *CancelByStudent) Execute(
	ctx context.Context,
	slotID uint,
	studentID uint,
) (*models.Reservation, error) {

	now := uc.clock.Now()
	var tutorID uint

	res, err := uc.repo.TransitionReservation(ctx, slotID,
		func(slot *models.TimeSlot) (*models.Reservation, error) {
			last := domain.LastReservation(slot)
			if last == nil {
				return nil, httperr.ErrBusiness("reservation_not_found")
			}

			if last.StudentID != studentID {
				return nil, httperr.ErrBusiness("not_reservation_owner")
			}

			if err := domain.Cancel(last, slot.StartAt, now); err != nil {
				return nil, err
			}

			tutorID = slot.TutorID
			return last, nil
		})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, tutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &studentID,
		Action:   "reservation_cancelled_by_student",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return res, nil
}
