package review

import (
	"context"

	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// Repository persists reviews and keeps the tutor's derived average
// in step. CreateAndAggregate and UpdateAndAggregate run insert (or
// update) plus the mean recomputation in one transaction, so the
// uniqueness check cannot race with a concurrent submission.
type Repository interface {
	CreateAndAggregate(
		ctx context.Context,
		rev *models.Review,
	) (float64, error)

	UpdateAndAggregate(
		ctx context.Context,
		rev *models.Review,
	) (float64, error)

	GetByID(
		ctx context.Context,
		id string,
	) (*models.Review, error)

	ExistsForPair(
		ctx context.Context,
		studentID uint,
		tutorID uint,
	) (bool, error)

	ListByTutor(
		ctx context.Context,
		tutorID uint,
	) ([]models.Review, error)

	ListByStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.Review, error)

	ListAll(
		ctx context.Context,
	) ([]models.Review, error)
}
