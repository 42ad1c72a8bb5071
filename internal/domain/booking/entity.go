package booking

import (
	"math"
	"time"

	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
)

// ===============================
// Temporal policy
// ===============================

const (
	// A slot must start at least this far in the future, both when
	// the tutor creates it and when a student books it.
	MinLeadTime = time.Hour

	// Under this lead time a booking still succeeds but the caller
	// is told it is short notice.
	RecommendedLeadTime = 4 * time.Hour

	// Minimum notice for cancelling, for students and tutors alike.
	CancelNotice = 24 * time.Hour
)

// ===============================
// History
// ===============================

// Live returns the slot's current reservation: the last history entry,
// and only while it is non-terminal.
func Live(slot *models.TimeSlot) *models.Reservation {
	if slot == nil || len(slot.Reservations) == 0 {
		return nil
	}
	last := &slot.Reservations[len(slot.Reservations)-1]
	if Status(last.Status).Terminal() {
		return nil
	}
	return last
}

// LastReservation ignores terminality; callers use it for transitions
// on historical state.
func LastReservation(slot *models.TimeSlot) *models.Reservation {
	if slot == nil || len(slot.Reservations) == 0 {
		return nil
	}
	return &slot.Reservations[len(slot.Reservations)-1]
}

// ===============================
// Domain Actions
// ===============================

func ValidateInterval(startAt, endAt time.Time, now time.Time) error {
	if !endAt.After(startAt) {
		return httperr.ErrBusiness("invalid_interval")
	}
	if startAt.Before(now.Add(MinLeadTime)) {
		return httperr.ErrBusiness("too_soon")
	}
	return nil
}

// Cancel moves the reservation to CANCELLED, enforcing the notice
// window against the slot start. Hours remaining are reported so the
// caller can render a precise message.
func Cancel(res *models.Reservation, startAt time.Time, now time.Time) error {
	if err := CanCancel(Status(res.Status)); err != nil {
		return err
	}

	remaining := startAt.Sub(now)
	if remaining < CancelNotice {
		return httperr.ErrBusinessMeta("cancellation_window", map[string]any{
			"hours_remaining": math.Floor(remaining.Hours()*10) / 10,
			"required_hours":  CancelNotice.Hours(),
		})
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	return nil
}

func Confirm(res *models.Reservation) error {
	if err := CanConfirm(Status(res.Status)); err != nil {
		return err
	}
	res.Status = string(StatusConfirmed)
	return nil
}

// Complete marks a session as held. A session that has not ended yet
// cannot be completed.
func Complete(res *models.Reservation, endAt time.Time, now time.Time) error {
	if err := CanFinish(Status(res.Status)); err != nil {
		return err
	}
	if now.Before(endAt) {
		return httperr.ErrBusiness("session_not_finished")
	}

	res.Status = string(StatusCompleted)
	res.FinishedAt = &now
	return nil
}

// NoShow is symmetric to Complete: same actor, same temporal guard.
func NoShow(res *models.Reservation, endAt time.Time, now time.Time) error {
	if err := CanFinish(Status(res.Status)); err != nil {
		return err
	}
	if now.Before(endAt) {
		return httperr.ErrBusiness("session_not_finished")
	}

	res.Status = string(StatusNoShow)
	res.FinishedAt = &now
	return nil
}
