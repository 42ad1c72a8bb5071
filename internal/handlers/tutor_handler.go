package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httperr"
	"github.com/TutorLinkServices/tutor-scheduler/internal/httpresp"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
	booking "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type TutorHandler struct {
	db         *gorm.DB
	deactivate *booking.DeactivateTutor
	audit      *audit.Dispatcher
	cache      *cache.Availability
}

func NewTutorHandler(
	db *gorm.DB,
	deactivate *booking.DeactivateTutor,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *TutorHandler {
	return &TutorHandler{
		db:         db,
		deactivate: deactivate,
		audit:      audit,
		cache:      cache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SubjectRequest struct {
	Name            string `json:"name" binding:"required"`
	YearsExperience int    `json:"years_experience" binding:"min=0,max=50"`
}

type BecomeTutorRequest struct {
	Bio        string           `json:"bio" binding:"required"`
	Experience string           `json:"experience" binding:"required"`
	HourlyRate float64          `json:"hourly_rate" binding:"required,gt=0"`
	Subjects   []SubjectRequest `json:"subjects" binding:"required,min=1,dive"`
}

type UpdateTutorRequest struct {
	Bio        *string          `json:"bio"`
	Experience *string          `json:"experience"`
	HourlyRate *float64         `json:"hourly_rate"`
	Subjects   []SubjectRequest `json:"subjects"`
}

// ======================================================
// PUBLIC LISTING
// ======================================================

type tutorView struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Bio           string           `json:"bio"`
	Experience    string           `json:"experience"`
	HourlyRate    float64          `json:"hourly_rate"`
	AverageRating float64          `json:"average_rating"`
	Subjects      []models.Subject `json:"subjects"`
}

func (h *TutorHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.
		Preload("TutorProfile.Subjects").
		Where("role = ? AND active = true", models.RoleTutor).
		Find(&users).Error; err != nil {
		httperr.Internal(c, "tutor_list_failed", "Could not list tutors.")
		return
	}

	out := make([]tutorView, 0, len(users))
	for i := range users {
		if v := mapTutorView(&users[i]); v != nil {
			out = append(out, *v)
		}
	}

	httpresp.List(c, out)
}

func (h *TutorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid tutor id.")
		return
	}

	var user models.User
	if err := h.db.
		Preload("TutorProfile.Subjects").
		First(&user, uint(id)).Error; err != nil {
		httperr.NotFound(c, "tutor_not_found", "Tutor not found.")
		return
	}

	v := mapTutorView(&user)
	if v == nil {
		httperr.NotFound(c, "tutor_not_found", "Tutor not found.")
		return
	}

	httpresp.OK(c, v)
}

func mapTutorView(user *models.User) *tutorView {
	if user.Role != models.RoleTutor || user.TutorProfile == nil || !user.TutorProfile.Active {
		return nil
	}

	return &tutorView{
		ID:            user.ID,
		Name:          user.FullName(),
		Bio:           user.TutorProfile.Bio,
		Experience:    user.TutorProfile.Experience,
		HourlyRate:    user.TutorProfile.HourlyRate,
		AverageRating: user.TutorProfile.AverageRating,
		Subjects:      user.TutorProfile.Subjects,
	}
}

// ======================================================
// SELF-SERVICE
// ======================================================

func (h *TutorHandler) BecomeTutor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BecomeTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Preload("TutorProfile").First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "User not found.")
		return
	}

	if user.TutorProfile != nil && user.TutorProfile.Active {
		httperr.Conflict(c, "already_tutor", "You already have a tutor profile.")
		return
	}

	profile := models.TutorProfile{
		UserID:        userID,
		Bio:           req.Bio,
		Experience:    req.Experience,
		HourlyRate:    req.HourlyRate,
		AverageRating: 5.0,
		Active:        true,
	}
	for _, s := range req.Subjects {
		profile.Subjects = append(profile.Subjects, models.Subject{
			Name:            s.Name,
			YearsExperience: s.YearsExperience,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Re-activation keeps the old profile id (and its reviews).
		if user.TutorProfile != nil {
			profile.ID = user.TutorProfile.ID
			profile.AverageRating = user.TutorProfile.AverageRating
			if err := tx.Where("tutor_profile_id = ?", profile.ID).
				Delete(&models.Subject{}).Error; err != nil {
				return err
			}
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("role", models.RoleTutor).Error
	})
	if err != nil {
		httperr.Internal(c, "become_tutor_failed", "Could not create tutor profile.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "tutor_profile_created",
		Entity:   "tutor_profile",
		EntityID: &profile.ID,
	})

	httpresp.Created(c, profile)
}

func (h *TutorHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var profile models.TutorProfile
	if err := h.db.Preload("Subjects").
		Where("user_id = ? AND active = true", userID).
		First(&profile).Error; err != nil {
		httperr.Forbidden(c, "tutor_only", "Only an active tutor may perform this action.")
		return
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			httperr.BadRequest(c, "invalid_hourly_rate", "Hourly rate must be positive.")
			return
		}
		profile.HourlyRate = *req.HourlyRate
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Subjects != nil {
			if err := tx.Where("tutor_profile_id = ?", profile.ID).
				Delete(&models.Subject{}).Error; err != nil {
				return err
			}
			profile.Subjects = nil
			for _, s := range req.Subjects {
				profile.Subjects = append(profile.Subjects, models.Subject{
					TutorProfileID:  profile.ID,
					Name:            s.Name,
					YearsExperience: s.YearsExperience,
				})
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&profile).Error
	})
	if err != nil {
		httperr.Internal(c, "tutor_update_failed", "Could not update tutor profile.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), userID)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "tutor_profile_updated",
		Entity:   "tutor_profile",
		EntityID: &profile.ID,
	})

	httpresp.OK(c, profile)
}

// Deactivate soft-deletes the tutor profile and cascades to every
// active slot the tutor owns. Reservation history stays intact.
func (h *TutorHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), userID); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}
