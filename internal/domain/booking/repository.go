package booking

import (
	"context"
	"time"

	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// Repository is the persistence boundary of the booking core. The two
// closure-taking methods run their callback inside a transaction that
// holds a row lock on the slot, so booking and transitions on the same
// slot are linearizable. Slots are independent aggregates; no
// cross-slot locking exists.
type Repository interface {
	// -------- Users / tutors --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetTutorProfileByUserID(
		ctx context.Context,
		userID uint,
	) (*models.TutorProfile, error)

	// -------- Slot (create / update) --------
	CreateSlot(
		ctx context.Context,
		slot *models.TimeSlot,
	) error

	GetSlot(
		ctx context.Context,
		slotID uint,
	) (*models.TimeSlot, error)

	UpdateSlot(
		ctx context.Context,
		slot *models.TimeSlot,
	) error

	HasOverlappingSlot(
		ctx context.Context,
		tutorID uint,
		start time.Time,
		end time.Time,
		excludeSlotID uint,
	) (bool, error)

	// DeactivateTutor soft-deletes the tutor profile and every
	// active slot the tutor owns in one transaction, so the profile
	// and its slots never disagree about being active.
	DeactivateTutor(
		ctx context.Context,
		userID uint,
	) error

	// -------- Booking / transitions (serialized per slot) --------
	BookSlot(
		ctx context.Context,
		slotID uint,
		guard func(slot *models.TimeSlot) error,
		res *models.Reservation,
	) error

	TransitionReservation(
		ctx context.Context,
		slotID uint,
		mutate func(slot *models.TimeSlot) (*models.Reservation, error),
	) (*models.Reservation, error)

	// -------- Listings --------
	ListSlotsByTutor(
		ctx context.Context,
		tutorID uint,
	) ([]models.TimeSlot, error)

	ListOpenSlots(
		ctx context.Context,
		tutorID *uint,
		after time.Time,
	) ([]models.TimeSlot, error)

	ListSlotsWithReservationsByStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.TimeSlot, error)

	ListSlotsWithReservations(
		ctx context.Context,
	) ([]models.TimeSlot, error)
}
