package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock {
	return clock.Fixed{T: testNow}
}

func TestCreateSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)

	uc := NewCreateSlot(repo, nil, nil, fixedClock())

	slot, err := uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 10,
		StartAt: testNow.Add(24 * time.Hour),
		EndAt:   testNow.Add(25 * time.Hour),
	})
	require.NoError(t, err)
	require.NotZero(t, slot.ID)
	require.True(t, slot.Active)
	require.Equal(t, uint(10), slot.TutorID)
	require.Equal(t, time.UTC, slot.StartAt.Location())
}

func TestCreateSlotRequiresActiveTutor(t *testing.T) {
	repo := newFakeRepo()
	repo.addStudent(1, "Bia")
	repo.addTutor(10, "Ana", 80, 5)
	repo.profiles[10].Active = false

	uc := NewCreateSlot(repo, nil, nil, fixedClock())

	in := CreateSlotInput{
		StartAt: testNow.Add(24 * time.Hour),
		EndAt:   testNow.Add(25 * time.Hour),
	}

	in.TutorID = 1
	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "tutor_only"))

	in.TutorID = 10
	_, err = uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "tutor_only"))

	in.TutorID = 99
	_, err = uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestCreateSlotValidatesInterval(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)

	uc := NewCreateSlot(repo, nil, nil, fixedClock())

	_, err := uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 10,
		StartAt: testNow.Add(2 * time.Hour),
		EndAt:   testNow.Add(2 * time.Hour),
	})
	require.True(t, httperr.IsBusiness(err, "invalid_interval"))

	_, err = uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 10,
		StartAt: testNow.Add(30 * time.Minute),
		EndAt:   testNow.Add(2 * time.Hour),
	})
	require.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)
	repo.addSlot(10, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	uc := NewCreateSlot(repo, nil, nil, fixedClock())

	// Partial overlap with the existing slot.
	_, err := uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 10,
		StartAt: testNow.Add(25 * time.Hour),
		EndAt:   testNow.Add(27 * time.Hour),
	})
	require.True(t, httperr.IsBusiness(err, "slot_overlap"))

	// Back-to-back is fine.
	_, err = uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 10,
		StartAt: testNow.Add(26 * time.Hour),
		EndAt:   testNow.Add(27 * time.Hour),
	})
	require.NoError(t, err)

	// A different tutor is not constrained by it either.
	repo.addTutor(11, "Bruno", 60, 5)
	_, err = uc.Execute(context.Background(), CreateSlotInput{
		TutorID: 11,
		StartAt: testNow.Add(25 * time.Hour),
		EndAt:   testNow.Add(27 * time.Hour),
	})
	require.NoError(t, err)
}

func TestUpdateSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)
	slot := repo.addSlot(10, testNow.Add(24*time.Hour), testNow.Add(25*time.Hour))

	uc := NewUpdateSlot(repo, nil, nil, fixedClock())

	updated, err := uc.Execute(context.Background(), UpdateSlotInput{
		SlotID:  slot.ID,
		TutorID: 10,
		StartAt: testNow.Add(48 * time.Hour),
		EndAt:   testNow.Add(49 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, testNow.Add(48*time.Hour), updated.StartAt)

	stored, err := repo.GetSlot(context.Background(), slot.ID)
	require.NoError(t, err)
	require.Equal(t, testNow.Add(48*time.Hour), stored.StartAt)
}

func TestUpdateSlotGuards(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)
	repo.addTutor(11, "Bruno", 60, 5)
	repo.addStudent(1, "Bia")
	slot := repo.addSlot(10, testNow.Add(48*time.Hour), testNow.Add(49*time.Hour))

	uc := NewUpdateSlot(repo, nil, nil, fixedClock())

	in := UpdateSlotInput{
		SlotID:  slot.ID,
		TutorID: 11,
		StartAt: testNow.Add(72 * time.Hour),
		EndAt:   testNow.Add(73 * time.Hour),
	}
	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "not_slot_owner"))

	in.SlotID = 999
	_, err = uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "slot_not_found"))

	// Once booked, the slot cannot be moved under the student.
	book := NewBookSlot(repo, nil, nil, fixedClock())
	_, err = book.Execute(context.Background(), slot.ID, 1)
	require.NoError(t, err)

	in.SlotID = slot.ID
	in.TutorID = 10
	_, err = uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "slot_already_booked"))
}

func TestDeactivateSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)
	repo.addStudent(1, "Bia")
	slot := repo.addSlot(10, testNow.Add(48*time.Hour), testNow.Add(49*time.Hour))

	uc := NewDeactivateSlot(repo, nil, nil)

	_, err := uc.Execute(context.Background(), slot.ID, 11)
	require.True(t, httperr.IsBusiness(err, "not_slot_owner"))

	hadLive, err := uc.Execute(context.Background(), slot.ID, 10)
	require.NoError(t, err)
	require.False(t, hadLive)

	stored, err := repo.GetSlot(context.Background(), slot.ID)
	require.NoError(t, err)
	require.False(t, stored.Active)
}

func TestDeactivateSlotWarnsOnLiveReservation(t *testing.T) {
	repo := newFakeRepo()
	repo.addTutor(10, "Ana", 80, 5)
	repo.addStudent(1, "Bia")
	slot := repo.addSlot(10, testNow.Add(48*time.Hour), testNow.Add(49*time.Hour))

	book := NewBookSlot(repo, nil, nil, fixedClock())
	_, err := book.Execute(context.Background(), slot.ID, 1)
	require.NoError(t, err)

	// Deactivation is never blocked, the caller just gets the warning.
	uc := NewDeactivateSlot(repo, nil, nil)
	hadLive, err := uc.Execute(context.Background(), slot.ID, 10)
	require.NoError(t, err)
	require.True(t, hadLive)
}
