package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	booking "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		require.NoError(t, ValidateRating(r))
	}

	require.True(t, httperr.IsBusiness(ValidateRating(0), "invalid_rating"))
	require.True(t, httperr.IsBusiness(ValidateRating(6), "invalid_rating"))
	require.True(t, httperr.IsBusiness(ValidateRating(-1), "invalid_rating"))
}

func TestValidateComment(t *testing.T) {
	require.True(t, httperr.IsBusiness(ValidateComment(""), "comment_too_short"))
	require.True(t, httperr.IsBusiness(ValidateComment("too short"), "comment_too_short"))

	require.NoError(t, ValidateComment("long enough comment"))

	// Length is counted in runes, not bytes.
	require.NoError(t, ValidateComment("ótima aula!"))
}

func TestCompletedReservationFor(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	slot := &models.TimeSlot{
		ID:      1,
		TutorID: 10,
		Reservations: []models.Reservation{
			{ID: 1, StudentID: 100, Status: string(booking.StatusCancelled), CreatedAt: base},
			{ID: 2, StudentID: 200, Status: string(booking.StatusCompleted), CreatedAt: base.Add(time.Hour)},
			{ID: 3, StudentID: 100, Status: string(booking.StatusCompleted), CreatedAt: base.Add(2 * time.Hour)},
		},
	}

	// The student's most recent entry wins, earlier cancels do not block.
	res, err := CompletedReservationFor(slot, 100)
	require.NoError(t, err)
	require.Equal(t, uint(3), res.ID)

	res, err = CompletedReservationFor(slot, 200)
	require.NoError(t, err)
	require.Equal(t, uint(2), res.ID)

	// No reservation at all for this student.
	_, err = CompletedReservationFor(slot, 999)
	require.True(t, httperr.IsBusiness(err, "review_not_allowed"))
}

func TestCompletedReservationForNonCompleted(t *testing.T) {
	for _, s := range []booking.Status{
		booking.StatusPending,
		booking.StatusConfirmed,
		booking.StatusCancelled,
		booking.StatusNoShow,
	} {
		slot := &models.TimeSlot{
			ID: 1,
			Reservations: []models.Reservation{
				{ID: 1, StudentID: 100, Status: string(s)},
			},
		}
		_, err := CompletedReservationFor(slot, 100)
		require.True(t, httperr.IsBusiness(err, "review_not_allowed"), "status %s", s)
	}
}
