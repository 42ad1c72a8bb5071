package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/review"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

// recomputeAverage writes the arithmetic mean of the tutor's ratings
// into the profile. Tutors with no reviews keep the 5.0 default.
func recomputeAverage(tx *gorm.DB, tutorID uint) (float64, error) {
	var avg *float64
	if err := tx.
		Model(&models.Review{}).
		Select("AVG(rating)").
		Where("tutor_id = ?", tutorID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}

	average := 5.0
	if avg != nil {
		average = *avg
	}

	if err := tx.
		Model(&models.TutorProfile{}).
		Where("user_id = ?", tutorID).
		Update("average_rating", average).Error; err != nil {
		return 0, err
	}

	return average, nil
}

func (r *ReviewGormRepository) CreateAndAggregate(
	ctx context.Context,
	rev *models.Review,
) (float64, error) {

	var average float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rev).Error; err != nil {
			// The unique index on (student_id, tutor_id) closes the
			// race between eligibility check and submission.
			if isDuplicateKey(err) {
				return httperr.ErrBusiness("duplicate_review")
			}
			return err
		}

		avg, err := recomputeAverage(tx, rev.TutorID)
		if err != nil {
			return err
		}

		average = avg
		return nil
	})
	if err != nil {
		return 0, err
	}

	return average, nil
}

func (r *ReviewGormRepository) UpdateAndAggregate(
	ctx context.Context,
	rev *models.Review,
) (float64, error) {

	var average float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rev).Error; err != nil {
			return err
		}

		avg, err := recomputeAverage(tx, rev.TutorID)
		if err != nil {
			return err
		}

		average = avg
		return nil
	})
	if err != nil {
		return 0, err
	}

	return average, nil
}

func (r *ReviewGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Review, error) {

	var rev models.Review
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rev).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewGormRepository) ExistsForPair(
	ctx context.Context,
	studentID uint,
	tutorID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("student_id = ? AND tutor_id = ?", studentID, tutorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) ListByTutor(
	ctx context.Context,
	tutorID uint,
) ([]models.Review, error) {

	var revs []models.Review
	if err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&revs).Error; err != nil {
		return nil, err
	}
	return revs, nil
}

func (r *ReviewGormRepository) ListByStudent(
	ctx context.Context,
	studentID uint,
) ([]models.Review, error) {

	var revs []models.Review
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&revs).Error; err != nil {
		return nil, err
	}
	return revs, nil
}

func (r *ReviewGormRepository) ListAll(
	ctx context.Context,
) ([]models.Review, error) {

	var revs []models.Review
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&revs).Error; err != nil {
		return nil, err
	}
	return revs, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
