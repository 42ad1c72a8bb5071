package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
)

// Maps business codes to HTTP statuses. Unknown errors fall through to 500 so
// persistence failures never masquerade as domain errors.
var businessStatus = map[string]int{
	"invalid_interval":      http.StatusBadRequest,
	"too_soon":              http.StatusBadRequest,
	"invalid_rating":        http.StatusBadRequest,
	"comment_too_short":     http.StatusBadRequest,
	"user_not_found":        http.StatusNotFound,
	"slot_not_found":        http.StatusNotFound,
	"reservation_not_found": http.StatusNotFound,
	"review_not_found":      http.StatusNotFound,
	"tutor_not_found":       http.StatusNotFound,
	"tutor_only":            http.StatusForbidden,
	"not_slot_owner":        http.StatusForbidden,
	"not_reservation_owner": http.StatusForbidden,
	"not_review_author":     http.StatusForbidden,
	"own_slot":              http.StatusForbidden,
	"slot_already_booked":   http.StatusConflict,
	"slot_overlap":          http.StatusConflict,
	"slot_unavailable":      http.StatusConflict,
	"invalid_state":         http.StatusConflict,
	"duplicate_review":      http.StatusConflict,
	"cancellation_window":   http.StatusUnprocessableEntity,
	"session_not_finished":  http.StatusUnprocessableEntity,
	"review_not_allowed":    http.StatusUnprocessableEntity,
}

var businessMessage = map[string]string{
	"invalid_interval":      "The slot must end after it starts.",
	"too_soon":              "The slot must start at least one hour from now.",
	"invalid_rating":        "Rating must be between 1 and 5.",
	"comment_too_short":     "The comment must have at least 10 characters.",
	"tutor_only":            "Only an active tutor may perform this action.",
	"not_slot_owner":        "This slot belongs to another tutor.",
	"not_reservation_owner": "You did not make this reservation.",
	"own_slot":              "You cannot book your own slot.",
	"slot_already_booked":   "This slot already has an active reservation.",
	"slot_overlap":          "The interval overlaps another active slot.",
	"slot_unavailable":      "This slot is no longer available.",
	"invalid_state":         "The reservation state does not allow this action.",
	"duplicate_review":      "You have already reviewed this tutor.",
	"cancellation_window":   "Reservations require at least 24 hours notice to cancel.",
	"session_not_finished":  "The session has not finished yet.",
	"review_not_allowed":    "Only completed sessions can be reviewed.",
}

func writeBusinessError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status, ok := businessStatus[be.Code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg := businessMessage[be.Code]
	if msg == "" {
		msg = be.Code
	}

	httperr.WriteMeta(c, status, be.Code, msg, be.Meta)
}
