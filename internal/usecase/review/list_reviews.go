package review

import (
	"context"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/review"
	"github.com/TutorLinkServices/tutor-scheduler/internal/dto"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type ListReviews struct {
	reviews domain.Repository
}

func NewListReviews(reviews domain.Repository) *ListReviews {
	return &ListReviews{reviews: reviews}
}

func (uc *ListReviews) ByTutor(
	ctx context.Context,
	tutorID uint,
) ([]dto.ReviewDTO, error) {

	revs, err := uc.reviews.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	return mapReviews(revs), nil
}

func (uc *ListReviews) ByStudent(
	ctx context.Context,
	studentID uint,
) ([]dto.ReviewDTO, error) {

	revs, err := uc.reviews.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return mapReviews(revs), nil
}

func (uc *ListReviews) All(
	ctx context.Context,
) ([]dto.ReviewDTO, error) {

	revs, err := uc.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapReviews(revs), nil
}

func mapReviews(revs []models.Review) []dto.ReviewDTO {
	out := make([]dto.ReviewDTO, 0, len(revs))
	for _, r := range revs {
		out = append(out, dto.ReviewDTO{
			ID:        r.ID.String(),
			SlotID:    r.SlotID,
			TutorID:   r.TutorID,
			StudentID: r.StudentID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
