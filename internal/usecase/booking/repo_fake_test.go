package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

var _ domain.Repository = (*fakeRepo)(nil)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory stand-in for the gorm repository. A single
// mutex plays the role of the per-slot row lock: BookSlot and
// TransitionReservation run their callback while holding it, so the
// serialization the use cases rely on is preserved.
type fakeRepo struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	profiles map[uint]*models.TutorProfile
	slots    map[uint]*models.TimeSlot
	nextSlot uint
	nextRes  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]*models.User),
		profiles: make(map[uint]*models.TutorProfile),
		slots:    make(map[uint]*models.TimeSlot),
	}
}

// -------- seeding --------

func (r *fakeRepo) addStudent(id uint, name string) {
	r.users[id] = &models.User{
		ID:        id,
		FirstName: name,
		LastName:  "Student",
		Role:      models.RoleStudent,
		Active:    true,
	}
}

func (r *fakeRepo) addTutor(id uint, name string, rate float64, rating float64, subjects ...string) {
	r.users[id] = &models.User{
		ID:        id,
		FirstName: name,
		LastName:  "Tutor",
		Role:      models.RoleTutor,
		Active:    true,
	}

	profile := &models.TutorProfile{
		ID:            id,
		UserID:        id,
		HourlyRate:    rate,
		AverageRating: rating,
		Active:        true,
	}
	for _, s := range subjects {
		profile.Subjects = append(profile.Subjects, models.Subject{Name: s})
	}
	r.profiles[id] = profile
	r.users[id].TutorProfile = profile
}

func (r *fakeRepo) addSlot(tutorID uint, start, end time.Time) *models.TimeSlot {
	r.nextSlot++
	slot := &models.TimeSlot{
		ID:      r.nextSlot,
		TutorID: tutorID,
		StartAt: start,
		EndAt:   end,
		Active:  true,
	}
	r.slots[slot.ID] = slot
	return slot
}

// -------- users / tutors --------

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetTutorProfileByUserID(_ context.Context, userID uint) (*models.TutorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

// -------- slots --------

func (r *fakeRepo) CreateSlot(_ context.Context, slot *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSlot++
	slot.ID = r.nextSlot
	stored := *slot
	r.slots[slot.ID] = &stored
	return nil
}

func (r *fakeRepo) GetSlot(_ context.Context, slotID uint) (*models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotID]
	if !ok {
		return nil, errNotFound
	}
	cp := *slot
	cp.Reservations = append([]models.Reservation(nil), slot.Reservations...)
	return &cp, nil
}

func (r *fakeRepo) UpdateSlot(_ context.Context, slot *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.slots[slot.ID]
	if !ok {
		return errNotFound
	}
	stored.StartAt = slot.StartAt
	stored.EndAt = slot.EndAt
	stored.Active = slot.Active
	return nil
}

func (r *fakeRepo) HasOverlappingSlot(
	_ context.Context,
	tutorID uint,
	start time.Time,
	end time.Time,
	excludeSlotID uint,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slots {
		if s.TutorID != tutorID || !s.Active || s.ID == excludeSlotID {
			continue
		}
		if start.Before(s.EndAt) && end.After(s.StartAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) DeactivateTutor(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return errNotFound
	}
	profile.Active = false

	for _, s := range r.slots {
		if s.TutorID == userID {
			s.Active = false
		}
	}
	return nil
}

// -------- booking / transitions --------

func (r *fakeRepo) BookSlot(
	_ context.Context,
	slotID uint,
	guard func(slot *models.TimeSlot) error,
	res *models.Reservation,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotID]
	if !ok {
		return errNotFound
	}

	if err := guard(slot); err != nil {
		return err
	}

	r.nextRes++
	res.ID = r.nextRes
	slot.Reservations = append(slot.Reservations, *res)
	return nil
}

func (r *fakeRepo) TransitionReservation(
	_ context.Context,
	slotID uint,
	mutate func(slot *models.TimeSlot) (*models.Reservation, error),
) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotID]
	if !ok {
		return nil, errNotFound
	}

	res, err := mutate(slot)
	if err != nil {
		return nil, err
	}

	cp := *res
	return &cp, nil
}

// -------- listings --------

func (r *fakeRepo) ListSlotsByTutor(_ context.Context, tutorID uint) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TimeSlot
	for _, s := range r.slots {
		if s.TutorID == tutorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListOpenSlots(_ context.Context, tutorID *uint, after time.Time) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TimeSlot
	for _, s := range r.slots {
		if !s.Active || !s.StartAt.After(after) {
			continue
		}
		if tutorID != nil && s.TutorID != *tutorID {
			continue
		}
		cp := *s
		if u, ok := r.users[s.TutorID]; ok {
			cp.Tutor = *u
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *fakeRepo) ListSlotsWithReservationsByStudent(_ context.Context, studentID uint) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TimeSlot
	for _, s := range r.slots {
		for _, res := range s.Reservations {
			if res.StudentID == studentID {
				out = append(out, *s)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) ListSlotsWithReservations(_ context.Context) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TimeSlot
	for _, s := range r.slots {
		if len(s.Reservations) > 0 {
			out = append(out, *s)
		}
	}
	return out, nil
}
