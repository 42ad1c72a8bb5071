package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httpresp"
	review "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	create    *review.CreateReview
	update    *review.UpdateReview
	canReview *review.CanReview
	list      *review.ListReviews
}

func NewReviewHandler(
	create *review.CreateReview,
	update *review.UpdateReview,
	canReview *review.CanReview,
	list *review.ListReviews,
) *ReviewHandler {
	return &ReviewHandler{
		create:    create,
		update:    update,
		canReview: canReview,
		list:      list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReviewRequest struct {
	SlotID  uint   `json:"slot_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	rev, avg, err := h.create.Execute(c.Request.Context(), review.CreateReviewInput{
		StudentID: userID,
		SlotID:    req.SlotID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"review":               rev,
		"tutor_average_rating": avg,
	})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	rev, avg, err := h.update.Execute(c.Request.Context(), review.UpdateReviewInput{
		ReviewID:  c.Param("id"),
		StudentID: userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review":               rev,
		"tutor_average_rating": avg,
	})
}

// CanReview answers the eligibility question without side effects, so
// clients can hide the review form up front.
func (h *ReviewHandler) CanReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	allowed, err := h.canReview.Execute(c.Request.Context(), userID, slotID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_review": allowed})
}

func (h *ReviewHandler) ListByTutor(c *gin.Context) {
	tutorID, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.list.ByTutor(c.Request.Context(), tutorID)
	if err != nil {
		httperr.Internal(c, "review_list_failed", "Could not list reviews.")
		return
	}

	httpresp.List(c, out)
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.list.ByStudent(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "review_list_failed", "Could not list reviews.")
		return
	}

	httpresp.List(c, out)
}
