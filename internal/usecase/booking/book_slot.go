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

// ======================================================
// RESULT
// ======================================================

type BookSlotResult struct {
	Reservation *models.Reservation
	// Booking succeeded but the session starts in under the
	// recommended lead time.
	ShortNotice bool
}

// ======================================================
// USE CASE
// ======================================================

type BookSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	clock clock.Clock
}

func NewBookSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	clk clock.Clock,
) *BookSlot {
	return &BookSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
		clock: clk,
	}
}

func (uc *BookSlot) Execute(
	ctx context.Context,
	slotID uint,
	studentID uint,
) (*BookSlotResult, error) {

	if _, err := uc.repo.GetUserByID(ctx, studentID); err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	now := uc.clock.Now()
	shortNotice := false
	var tutorID uint

	res := &models.Reservation{
		StudentID: studentID,
		Status:    string(domain.InitialStatus()),
	}

	// The guard runs inside the repository transaction while the
	// slot row is locked, so concurrent attempts on the same slot
	// are serialized and exactly one sees no live reservation.
	err := uc.repo.BookSlot(ctx, slotID, func(slot *models.TimeSlot) error {
		if !slot.Active {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if slot.TutorID == studentID {
			return httperr.ErrBusiness("own_slot")
		}

		if domain.Live(slot) != nil {
			return httperr.ErrBusiness("slot_already_booked")
		}

		if slot.StartAt.Before(now.Add(domain.MinLeadTime)) {
			return httperr.ErrBusiness("too_soon")
		}

		shortNotice = slot.StartAt.Before(now.Add(domain.RecommendedLeadTime))
		tutorID = slot.TutorID
		res.SlotID = slot.ID
		return nil
	}, res)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, tutorID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &studentID,
		Action:   "slot_booked",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"slot_id": slotID},
	})

	return &BookSlotResult{
		Reservation: res,
		ShortNotice: shortNotice,
	}, nil
}
