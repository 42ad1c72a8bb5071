package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httpresp"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/booking"
	review "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db               *gorm.DB
	deactivateTutor  *booking.DeactivateTutor
	audit            *audit.Dispatcher
	listReservations *booking.ListAllReservations
	listReviews      *review.ListReviews
}

func NewAdminHandler(
	db *gorm.DB,
	deactivateTutor *booking.DeactivateTutor,
	audit *audit.Dispatcher,
	listReservations *booking.ListAllReservations,
	listReviews *review.ListReviews,
) *AdminHandler {
	return &AdminHandler{
		db:               db,
		deactivateTutor:  deactivateTutor,
		audit:            audit,
		listReservations: listReservations,
		listReviews:      listReviews,
	}
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := h.db.Preload("TutorProfile")

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		httperr.Internal(c, "user_list_failed", "Could not list users.")
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userPayload(&users[i]))
	}

	httpresp.List(c, out)
}

// DeactivateUser blocks future logins and, when the account is a
// tutor, pulls every active slot out of availability. Existing
// reservation and review history is kept.
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if userID == adminID {
		httperr.BadRequest(c, "self_deactivation", "Admins cannot deactivate themselves.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "user_deactivate_failed", "Could not deactivate user.")
		return
	}

	if user.Role == models.RoleTutor {
		err := h.deactivateTutor.Execute(c.Request.Context(), userID)
		// A tutor account without a live profile has nothing left to cascade.
		if err != nil && !httperr.IsBusiness(err, "tutor_not_found") {
			httperr.Internal(c, "user_deactivate_failed", "Could not deactivate user.")
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: &userID,
	})

	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}

// ======================================================
// GLOBAL LISTINGS
// ======================================================

func (h *AdminHandler) ListReservations(c *gin.Context) {
	out, err := h.listReservations.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "reservation_list_failed", "Could not list reservations.")
		return
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	out, err := h.listReviews.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "review_list_failed", "Could not list reviews.")
		return
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.db.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
