package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TutorLinkServices/tutor-scheduler/internal/audit"
	"github.com/TutorLinkServices/tutor-scheduler/internal/cache"
	"github.com/TutorLinkServices/tutor-scheduler/internal/clock"
	"github.com/TutorLinkServices/tutor-scheduler/internal/config"
	"github.com/TutorLinkServices/tutor-scheduler/internal/handlers"
	infraRepo "github.com/TutorLinkServices/tutor-scheduler/internal/infra/repository"
	"github.com/TutorLinkServices/tutor-scheduler/internal/middleware"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
	ucBooking "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/booking"
	ucReview "github.com/TutorLinkServices/tutor-scheduler/internal/usecase/review"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availability := cache.NewAvailability(cache.NewRedis())

	clk := clock.UTC{}

	// ======================================================
	// BOOKING USE CASES
	// ======================================================
	createSlotUC := ucBooking.NewCreateSlot(bookingRepo, auditDispatcher, availability, clk)
	updateSlotUC := ucBooking.NewUpdateSlot(bookingRepo, auditDispatcher, availability, clk)
	deactivateSlotUC := ucBooking.NewDeactivateSlot(bookingRepo, auditDispatcher, availability)
	deactivateTutorUC := ucBooking.NewDeactivateTutor(bookingRepo, auditDispatcher, availability)
	listAvailableUC := ucBooking.NewListAvailableSlots(bookingRepo, availability, clk)

	bookSlotUC := ucBooking.NewBookSlot(bookingRepo, auditDispatcher, availability, clk)
	cancelByStudentUC := ucBooking.NewCancelByStudent(bookingRepo, auditDispatcher, availability, clk)
	cancelByTutorUC := ucBooking.NewCancelByTutor(bookingRepo, auditDispatcher, availability, clk)
	confirmUC := ucBooking.NewConfirmReservation(bookingRepo, auditDispatcher)
	completeUC := ucBooking.NewCompleteReservation(bookingRepo, auditDispatcher, clk)
	noShowUC := ucBooking.NewNoShowReservation(bookingRepo, auditDispatcher, clk)

	listStudentResUC := ucBooking.NewListStudentReservations(bookingRepo)
	listTutorResUC := ucBooking.NewListTutorReservations(bookingRepo)
	listAllResUC := ucBooking.NewListAllReservations(bookingRepo)

	// ======================================================
	// REVIEW USE CASES
	// ======================================================
	createReviewUC := ucReview.NewCreateReview(bookingRepo, reviewRepo, auditDispatcher)
	updateReviewUC := ucReview.NewUpdateReview(reviewRepo, auditDispatcher)
	canReviewUC := ucReview.NewCanReview(bookingRepo, reviewRepo)
	listReviewsUC := ucReview.NewListReviews(reviewRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	tutorHandler := handlers.NewTutorHandler(db, deactivateTutorUC, auditDispatcher, availability)

	slotHandler := handlers.NewSlotHandler(
		bookingRepo,
		createSlotUC,
		updateSlotUC,
		deactivateSlotUC,
		listAvailableUC,
	)

	reservationHandler := handlers.NewReservationHandler(
		bookSlotUC,
		cancelByStudentUC,
		cancelByTutorUC,
		confirmUC,
		completeUC,
		noShowUC,
		listStudentResUC,
		listTutorResUC,
	)

	reviewHandler := handlers.NewReviewHandler(
		createReviewUC,
		updateReviewUC,
		canReviewUC,
		listReviewsUC,
	)

	adminHandler := handlers.NewAdminHandler(db, deactivateTutorUC, auditDispatcher, listAllResUC, listReviewsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/tutors", tutorHandler.List)
		api.GET("/tutors/:id", tutorHandler.Get)
		api.GET("/tutors/:id/reviews", reviewHandler.ListByTutor)
		api.GET("/slots/available", slotHandler.Available)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// TUTOR PROFILE
			// ------------------------------
			secured.POST("/me/tutor", tutorHandler.BecomeTutor)
			secured.PATCH("/me/tutor", tutorHandler.UpdateProfile)
			secured.DELETE("/me/tutor", tutorHandler.Deactivate)

			// ------------------------------
			// SLOTS (tutor side)
			// ------------------------------
			secured.POST("/me/slots", slotHandler.Create)
			secured.GET("/me/slots", slotHandler.ListMine)
			secured.PATCH("/me/slots/:id", slotHandler.Update)
			secured.DELETE("/me/slots/:id", slotHandler.Deactivate)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/slots/:id/reservations", reservationHandler.Book)
			secured.PATCH("/slots/:id/reservations/cancel", reservationHandler.CancelByStudent)
			secured.PATCH("/slots/:id/reservations/reject", reservationHandler.CancelByTutor)
			secured.PATCH("/slots/:id/reservations/confirm", reservationHandler.Confirm)
			secured.PATCH("/slots/:id/reservations/complete", reservationHandler.Complete)
			secured.PATCH("/slots/:id/reservations/no-show", reservationHandler.NoShow)

			secured.GET("/me/reservations", reservationHandler.ListMine)
			secured.GET("/me/tutor/reservations", reservationHandler.ListForTutor)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.POST("/reviews", reviewHandler.Create)
			secured.PATCH("/reviews/:id", reviewHandler.Update)
			secured.GET("/me/reviews", reviewHandler.ListMine)
			secured.GET("/slots/:id/can-review", reviewHandler.CanReview)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.PATCH("/users/:id/deactivate", adminHandler.DeactivateUser)
				admin.GET("/reservations", adminHandler.ListReservations)
				admin.GET("/reviews", adminHandler.ListReviews)
				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
