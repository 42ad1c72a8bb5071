package review

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/review"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type UpdateReviewInput struct {
	ReviewID  string
	StudentID uint
	Rating    *int
	Comment   *string
}

type UpdateReview struct {
	reviews domain.Repository
	audit   *audit.Dispatcher
}

func NewUpdateReview(
	reviews domain.Repository,
	audit *audit.Dispatcher,
) *UpdateReview {
	return &UpdateReview{
		reviews: reviews,
		audit:   audit,
	}
}

// Execute lets the author adjust rating or comment; the tutor average
// is recomputed in the same transaction as the update.
func (uc *UpdateReview) Execute(
	ctx context.Context,
	in UpdateReviewInput,
) (*models.Review, float64, error) {

	rev, err := uc.reviews.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, 0, httperr.ErrBusiness("review_not_found")
	}

	if rev.StudentID != in.StudentID {
		return nil, 0, httperr.ErrBusiness("not_review_author")
	}

	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, 0, err
		}
		rev.Rating = *in.Rating
	}

	if in.Comment != nil {
		if err := domain.ValidateComment(*in.Comment); err != nil {
			return nil, 0, err
		}
		rev.Comment = *in.Comment
	}

	average, err := uc.reviews.UpdateAndAggregate(ctx, rev)
	if err != nil {
		return nil, 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &in.StudentID,
		Action: "review_updated",
		Entity: "review",
		Metadata: map[string]any{
			"review_id": rev.ID.String(),
			"tutor_id":  rev.TutorID,
		},
	})

	return rev, average, nil
}
