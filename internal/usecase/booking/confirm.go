package booking

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type ConfirmReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmReservation {
	return &ConfirmReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmReservation) Execute(
	ctx context.Context,
	slotID uint,
	tutorID uint,
) (*models.Reservation, error) {

	if _, err := requireActiveTutor(ctx, uc.repo, tutorID); err != nil {
		return nil, err
	}

	res, err := uc.repo.TransitionReservation(ctx, slotID,
		func(slot *models.TimeSlot) (*models.Reservation, error) {
			if slot.TutorID != tutorID {
				return nil, httperr.ErrBusiness("not_slot_owner")
			}

			last := domain.LastReservation(slot)
			if last == nil {
				return nil, httperr.ErrBusiness("reservation_not_found")
			}

			if err := domain.Confirm(last); err != nil {
				return nil, err
			}

			return last, nil
		})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &tutorID,
		Action:   "reservation_confirmed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return res, nil
}
