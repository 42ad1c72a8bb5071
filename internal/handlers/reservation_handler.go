package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httpresp"
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	book            *booking.BookSlot
	cancelByStudent *booking.CancelByStudent
	cancelByTutor   *booking.CancelByTutor
	confirm         *booking.ConfirmReservation
	complete        *booking.CompleteReservation
	noShow          *booking.NoShowReservation
	listStudent     *booking.ListStudentReservations
	listTutor       *booking.ListTutorReservations
}

func NewReservationHandler(
	book *booking.BookSlot,
	cancelByStudent *booking.CancelByStudent,
	cancelByTutor *booking.CancelByTutor,
	confirm *booking.ConfirmReservation,
	complete *booking.CompleteReservation,
	noShow *booking.NoShowReservation,
	listStudent *booking.ListStudentReservations,
	listTutor *booking.ListTutorReservations,
) *ReservationHandler {
	return &ReservationHandler{
		book:            book,
		cancelByStudent: cancelByStudent,
		cancelByTutor:   cancelByTutor,
		confirm:         confirm,
		complete:        complete,
		noShow:          noShow,
		listStudent:     listStudent,
		listTutor:       listTutor,
	}
}

// ======================================================
// STUDENT SIDE
// ======================================================

func (h *ReservationHandler) Book(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.book.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"reservation":  result.Reservation,
		"short_notice": result.ShortNotice,
	})
}

func (h *ReservationHandler) CancelByStudent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.cancelByStudent.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.listStudent.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "reservation_list_failed", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// TUTOR SIDE
// ======================================================

func (h *ReservationHandler) CancelByTutor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.cancelByTutor.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.confirm.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) NoShow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.noShow.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) ListForTutor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.listTutor.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "reservation_list_failed", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}
