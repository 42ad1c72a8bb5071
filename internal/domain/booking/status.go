package booking

import "github.com/TutorLinkServices/tutor-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
	StatusCancelled Status = "CANCELLED"
)

// Older records carried a separate "waiting for tutor" status that
// every consumer treated as pending. It is normalized away on read
// and never written back.
const legacyStatusAwaitingTutor Status = "AWAITING_TUTOR_ACTION"

func Normalize(s Status) Status {
	if s == legacyStatusAwaitingTutor {
		return StatusPending
	}
	return s
}

func (s Status) Terminal() bool {
	switch Normalize(s) {
	case StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

func CanCancel(current Status) error {
	switch Normalize(current) {
	case StatusPending, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanConfirm(current Status) error {
	if Normalize(current) != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinish guards the transitions into COMPLETED and NO_SHOW. A
// pending reservation may be finished directly: sessions happen
// whether or not the tutor pressed confirm beforehand.
func CanFinish(current Status) error {
	switch Normalize(current) {
	case StatusPending, StatusConfirmed:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPending
}
