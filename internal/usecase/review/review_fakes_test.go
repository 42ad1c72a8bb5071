package review

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	booking "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/review"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// ======================================================
// SLOT SOURCE
// ======================================================

// fakeSlots serves slot lookups; review use cases never touch the
// other booking repository methods.
type fakeSlots struct {
	slots map[uint]*models.TimeSlot
}

var _ booking.Repository = (*fakeSlots)(nil)

func newFakeSlots() *fakeSlots {
	return &fakeSlots{slots: make(map[uint]*models.TimeSlot)}
}

func (f *fakeSlots) addCompletedSession(slotID, tutorID, studentID uint) {
	f.slots[slotID] = &models.TimeSlot{
		ID:      slotID,
		TutorID: tutorID,
		Reservations: []models.Reservation{
			{
				ID:        slotID,
				SlotID:    slotID,
				StudentID: studentID,
				Status:    string(booking.StatusCompleted),
			},
		},
	}
}

func (f *fakeSlots) addSession(slotID, tutorID, studentID uint, status booking.Status) {
	f.slots[slotID] = &models.TimeSlot{
		ID:      slotID,
		TutorID: tutorID,
		Reservations: []models.Reservation{
			{
				ID:        slotID,
				SlotID:    slotID,
				StudentID: studentID,
				Status:    string(status),
			},
		},
	}
}

func (f *fakeSlots) GetSlot(_ context.Context, slotID uint) (*models.TimeSlot, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, errNotFound
	}
	return slot, nil
}

func (f *fakeSlots) GetUserByID(context.Context, uint) (*models.User, error) {
	return nil, errNotFound
}

func (f *fakeSlots) GetTutorProfileByUserID(context.Context, uint) (*models.TutorProfile, error) {
	return nil, errNotFound
}

func (f *fakeSlots) CreateSlot(context.Context, *models.TimeSlot) error { return nil }
func (f *fakeSlots) UpdateSlot(context.Context, *models.TimeSlot) error { return nil }

func (f *fakeSlots) HasOverlappingSlot(context.Context, uint, time.Time, time.Time, uint) (bool, error) {
	return false, nil
}

func (f *fakeSlots) DeactivateTutor(context.Context, uint) error { return nil }

func (f *fakeSlots) BookSlot(context.Context, uint, func(*models.TimeSlot) error, *models.Reservation) error {
	return nil
}

func (f *fakeSlots) TransitionReservation(context.Context, uint, func(*models.TimeSlot) (*models.Reservation, error)) (*models.Reservation, error) {
	return nil, nil
}

func (f *fakeSlots) ListSlotsByTutor(context.Context, uint) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) ListOpenSlots(context.Context, *uint, time.Time) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) ListSlotsWithReservationsByStudent(context.Context, uint) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) ListSlotsWithReservations(context.Context) ([]models.TimeSlot, error) {
	return nil, nil
}

// ======================================================
// REVIEW STORE
// ======================================================

type fakeReviews struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
}

var _ domain.Repository = (*fakeReviews)(nil)

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviews) average(tutorID uint) float64 {
	var sum, count int
	for _, rev := range r.reviews {
		if rev.TutorID == tutorID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 5.0
	}
	return float64(sum) / float64(count)
}

func (r *fakeReviews) CreateAndAggregate(_ context.Context, rev *models.Review) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.StudentID == rev.StudentID && existing.TutorID == rev.TutorID {
			return 0, httperr.ErrBusiness("duplicate_review")
		}
	}

	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	stored := *rev
	r.reviews[rev.ID.String()] = &stored
	return r.average(rev.TutorID), nil
}

func (r *fakeReviews) UpdateAndAggregate(_ context.Context, rev *models.Review) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[rev.ID.String()]; !ok {
		return 0, errNotFound
	}
	stored := *rev
	r.reviews[rev.ID.String()] = &stored
	return r.average(rev.TutorID), nil
}

func (r *fakeReviews) GetByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *rev
	return &cp, nil
}

func (r *fakeReviews) ExistsForPair(_ context.Context, studentID, tutorID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rev := range r.reviews {
		if rev.StudentID == studentID && rev.TutorID == tutorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviews) ListByTutor(_ context.Context, tutorID uint) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Review
	for _, rev := range r.reviews {
		if rev.TutorID == tutorID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeReviews) ListByStudent(_ context.Context, studentID uint) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Review
	for _, rev := range r.reviews {
		if rev.StudentID == studentID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeReviews) ListAll(context.Context) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Review
	for _, rev := range r.reviews {
		out = append(out, *rev)
	}
	return out, nil
}
