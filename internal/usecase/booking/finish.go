package booking

import (
	"context"
	"time"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// Complete and no-show share everything but the target status: the
// owning tutor acts after the session end has passed.
func finishReservation(
	ctx context.Context,
	repo domain.Repository,
	slotID uint,
	tutorID uint,
	apply func(res *models.Reservation, endAt time.Time, now time.Time) error,
	now time.Time,
) (*models.Reservation, error) {

	if _, err := requireActiveTutor(ctx, repo, tutorID); err != nil {
		return nil, err
	}

	return repo.TransitionReservation(ctx, slotID,
		func(slot *models.TimeSlot) (*models.Reservation, error) {
			if slot.TutorID != tutorID {
				return nil, httperr.ErrBusiness("not_slot_owner")
			}

			last := domain.LastReservation(slot)
			if last == nil {
				return nil, httperr.ErrBusiness("reservation_not_found")
			}

			if err := apply(last, slot.EndAt, now); err != nil {
				return nil, err
			}

			return last, nil
		})
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewCompleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: audit,
		clock: clk,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	slotID uint,
	tutorID uint,
) (*models.Reservation, error) {

	res, err := finishReservation(
		ctx, uc.repo, slotID, tutorID,
		domain.Complete, uc.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &tutorID,
		Action:   "reservation_completed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return res, nil
}

// ======================================================
// NO-SHOW
// ======================================================

type NoShowReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewNoShowReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *NoShowReservation {
	return &NoShowReservation{
		repo:  repo,
		audit: audit,
		clock: clk,
	}
}

func (uc *NoShowReservation) Execute(
	ctx context.Context,
	slotID uint,
	tutorID uint,
) (*models.Reservation, error) {

	res, err := finishReservation(
		ctx, uc.repo, slotID, tutorID,
		domain.NoShow, uc.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &tutorID,
		Action:   "reservation_no_show",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return res, nil
}
