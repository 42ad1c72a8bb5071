package review

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/review"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	StudentID uint
	SlotID    uint
	Rating    int
	Comment   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	slots   booking.Repository
	reviews domain.Repository
	audit   *audit.Dispatcher
}

func NewCreateReview(
	slots booking.Repository,
	reviews domain.Repository,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		slots:   slots,
		reviews: reviews,
		audit:   audit,
	}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, float64, error) {

	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, 0, err
	}
	if err := domain.ValidateComment(in.Comment); err != nil {
		return nil, 0, err
	}

	slot, err := uc.slots.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, 0, httperr.ErrBusiness("slot_not_found")
	}

	if _, err := domain.CompletedReservationFor(slot, in.StudentID); err != nil {
		return nil, 0, err
	}

	rev := &models.Review{
		SlotID:    slot.ID,
		TutorID:   slot.TutorID,
		StudentID: in.StudentID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}

	// Eligibility is re-validated at write time: the insert and the
	// uniqueness check on (student, tutor) run in one transaction,
	// so a racing duplicate submission fails there, not here.
	average, err := uc.reviews.CreateAndAggregate(ctx, rev)
	if err != nil {
		return nil, 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &in.StudentID,
		Action: "review_created",
		Entity: "review",
		Metadata: map[string]any{
			"review_id": rev.ID.String(),
			"tutor_id":  rev.TutorID,
			"rating":    rev.Rating,
		},
	})

	return rev, average, nil
}

// ======================================================
// ELIGIBILITY (read side)
// ======================================================

type CanReview struct {
	slots   booking.Repository
	reviews domain.Repository
}

func NewCanReview(
	slots booking.Repository,
	reviews domain.Repository,
) *CanReview {
	return &CanReview{
		slots:   slots,
		reviews: reviews,
	}
}

func (uc *CanReview) Execute(
	ctx context.Context,
	studentID uint,
	slotID uint,
) (bool, error) {

	slot, err := uc.slots.GetSlot(ctx, slotID)
	if err != nil {
		return false, httperr.ErrBusiness("slot_not_found")
	}

	if _, err := domain.CompletedReservationFor(slot, studentID); err != nil {
		return false, nil
	}

	exists, err := uc.reviews.ExistsForPair(ctx, studentID, slot.TutorID)
	if err != nil {
		return false, err
	}

	return !exists, nil
}
