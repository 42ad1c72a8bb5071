package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/TutorLinkServices/tutor-scheduler/internal/domain/booking"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httpresp"
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	repo       domain.Repository
	create     *booking.CreateSlot
	update     *booking.UpdateSlot
	deactivate *booking.DeactivateSlot
	available  *booking.ListAvailableSlots
}

func NewSlotHandler(
	repo domain.Repository,
	create *booking.CreateSlot,
	update *booking.UpdateSlot,
	deactivate *booking.DeactivateSlot,
	available *booking.ListAvailableSlots,
) *SlotHandler {
	return &SlotHandler{
		repo:       repo,
		create:     create,
		update:     update,
		deactivate: deactivate,
		available:  available,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	StartAt time.Time `json:"start_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndAt   time.Time `json:"end_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ======================================================
// TUTOR ENDPOINTS
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	slot, err := h.create.Execute(c.Request.Context(), booking.CreateSlotInput{
		TutorID: userID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, slot)
}

func (h *SlotHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slots, err := h.repo.ListSlotsByTutor(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "slot_list_failed", "Could not list slots.")
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	slot, err := h.update.Execute(c.Request.Context(), booking.UpdateSlotInput{
		SlotID:  slotID,
		TutorID: userID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, slot)
}

func (h *SlotHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	hadLive, err := h.deactivate.Execute(c.Request.Context(), slotID, userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deactivated":          true,
		"had_live_reservation": hadLive,
	})
}

// ======================================================
// PUBLIC AVAILABILITY
// ======================================================

func (h *SlotHandler) Available(c *gin.Context) {
	filter, err := parseAvailabilityFilter(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_filter", err.Error())
		return
	}

	slots, err := h.available.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not list available slots.")
		return
	}

	httpresp.List(c, slots)
}

func parseAvailabilityFilter(c *gin.Context) (booking.AvailabilityFilter, error) {
	var f booking.AvailabilityFilter

	f.Subject = c.Query("subject")
	f.TutorName = c.Query("tutor")

	if raw := c.Query("tutor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return f, errInvalidQuery("tutor_id")
		}
		v := uint(id)
		f.TutorID = &v
	}

	var err error
	if f.PriceMin, err = queryFloat(c, "price_min"); err != nil {
		return f, err
	}
	if f.PriceMax, err = queryFloat(c, "price_max"); err != nil {
		return f, err
	}
	if f.RatingMin, err = queryFloat(c, "rating_min"); err != nil {
		return f, err
	}
	if f.RatingMax, err = queryFloat(c, "rating_max"); err != nil {
		return f, err
	}
	if f.From, err = queryTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to"); err != nil {
		return f, err
	}

	return f, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errInvalidQuery(name)
	}
	return &v, nil
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errInvalidQuery(name)
	}
	t = t.UTC()
	return &t, nil
}

type queryError string

func (e queryError) Error() string { return string(e) }

func errInvalidQuery(name string) error {
	return queryError("invalid query parameter: " + name)
}
