package review

import (
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
)

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.ErrBusiness("invalid_rating")
	}
	return nil
}

func ValidateComment(comment string) error {
	if len([]rune(comment)) < MinCommentLength {
		return httperr.ErrBusiness("comment_too_short")
	}
	return nil
}

// CompletedReservationFor finds the student's most recent reservation
// in the slot history and asserts it was completed. Only a held
// session can be reviewed.
func CompletedReservationFor(slot *models.TimeSlot, studentID uint) (*models.Reservation, error) {
	var latest *models.Reservation
	for i := range slot.Reservations {
		res := &slot.Reservations[i]
		if res.StudentID != studentID {
			continue
		}
		if latest == nil || res.CreatedAt.After(latest.CreatedAt) {
			latest = res
		}
	}

	if latest == nil {
		return nil, httperr.ErrBusiness("review_not_allowed")
	}

	if booking.Normalize(booking.Status(latest.Status)) != booking.StatusCompleted {
		return nil, httperr.ErrBusiness("review_not_allowed")
	}

	return latest, nil
}
