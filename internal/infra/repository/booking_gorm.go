package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func historyOrder(db *gorm.DB) *gorm.DB {
	return db.Order("reservations.id ASC")
}

// --------------------------------------------------
// Users / tutors
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("TutorProfile.Subjects").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetTutorProfileByUserID(
	ctx context.Context,
	userID uint,
) (*models.TutorProfile, error) {

	var profile models.TutorProfile
	if err := r.db.WithContext(ctx).
		Preload("Subjects").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.TimeSlot,
) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	slotID uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Reservations", historyOrder).
		First(&slot, slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) UpdateSlot(
	ctx context.Context,
	slot *models.TimeSlot,
) error {
	return r.db.WithContext(ctx).Omit("Reservations", "Tutor").Save(slot).Error
}

func (r *BookingGormRepository) HasOverlappingSlot(
	ctx context.Context,
	tutorID uint,
	start time.Time,
	end time.Time,
	excludeSlotID uint,
) (bool, error) {

	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where(
			"tutor_id = ? AND active = true AND start_at < ? AND end_at > ?",
			tutorID, end, start,
		)

	if excludeSlotID != 0 {
		q = q.Where("id <> ?", excludeSlotID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Profile and slot deactivation commit together or not at all; a
// failure mid-cascade must not leave slots hidden under an active
// profile, or the reverse.
func (r *BookingGormRepository) DeactivateTutor(
	ctx context.Context,
	userID uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.TutorProfile{}).
			Where("user_id = ?", userID).
			Update("active", false).Error; err != nil {
			return err
		}

		return tx.
			Model(&models.TimeSlot{}).
			Where("tutor_id = ? AND active = true", userID).
			Update("active", false).Error
	})
}

// --------------------------------------------------
// Booking / transitions
// --------------------------------------------------

// lockSlot loads the slot row FOR UPDATE together with its ordered
// history. All booking and transition writes on a slot run behind
// this lock, which makes them linearizable per slot.
func lockSlot(tx *gorm.DB, slotID uint) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, slotID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}

	if err := tx.
		Where("slot_id = ?", slot.ID).
		Order("id ASC").
		Find(&slot.Reservations).Error; err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *BookingGormRepository) BookSlot(
	ctx context.Context,
	slotID uint,
	guard func(slot *models.TimeSlot) error,
	res *models.Reservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot, err := lockSlot(tx, slotID)
		if err != nil {
			return err
		}

		if err := guard(slot); err != nil {
			return err
		}

		res.SlotID = slot.ID
		return tx.Create(res).Error
	})
}

func (r *BookingGormRepository) TransitionReservation(
	ctx context.Context,
	slotID uint,
	mutate func(slot *models.TimeSlot) (*models.Reservation, error),
) (*models.Reservation, error) {

	var out *models.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot, err := lockSlot(tx, slotID)
		if err != nil {
			return err
		}

		res, err := mutate(slot)
		if err != nil {
			return err
		}

		if err := tx.Save(res).Error; err != nil {
			return err
		}

		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListSlotsByTutor(
	ctx context.Context,
	tutorID uint,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Reservations", historyOrder).
		Where("tutor_id = ?", tutorID).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) ListOpenSlots(
	ctx context.Context,
	tutorID *uint,
	after time.Time,
) ([]models.TimeSlot, error) {

	q := r.db.WithContext(ctx).
		Preload("Reservations", historyOrder).
		Preload("Tutor.TutorProfile.Subjects").
		Where("active = true AND start_at > ?", after)

	if tutorID != nil {
		q = q.Where("tutor_id = ?", *tutorID)
	}

	var slots []models.TimeSlot
	if err := q.Order("start_at ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) ListSlotsWithReservationsByStudent(
	ctx context.Context,
	studentID uint,
) ([]models.TimeSlot, error) {

	sub := r.db.
		Model(&models.Reservation{}).
		Select("slot_id").
		Where("student_id = ?", studentID)

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Reservations", historyOrder).
		Where("id IN (?)", sub).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) ListSlotsWithReservations(
	ctx context.Context,
) ([]models.TimeSlot, error) {

	sub := r.db.
		Model(&models.Reservation{}).
		Select("slot_id")

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Reservations", historyOrder).
		Where("id IN (?)", sub).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
