package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	"github.com/BruksfildServices01/table-booking/internal/config"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/handlers"
	"github.com/BruksfildServices01/table-booking/internal/middleware"
	ucReservation "github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

// Deps are the process-wide singletons the routes are built from. DB is nil
// when running on in-memory storage; the audit log listing is then unavailable.
type Deps struct {
	Repo   domain.Repository
	Locker domain.DayLocker
	Tokens domain.TokenGenerator
	Audit  *audit.Dispatcher
	DB     *gorm.DB
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config) {

	// ======================================================
	// USE CASES
	// ======================================================
	availability := ucReservation.NewAvailability(deps.Repo)

	createUC := ucReservation.NewCreateReservation(deps.Repo, deps.Locker, deps.Tokens, deps.Audit)
	updateUC := ucReservation.NewUpdateReservation(deps.Repo, deps.Locker, deps.Audit)
	cancelUC := ucReservation.NewCancelReservation(deps.Repo, deps.Locker, deps.Audit)
	getUC := ucReservation.NewGetReservation(deps.Repo)
	transitionUC := ucReservation.NewTransitionReservation(deps.Repo, deps.Audit)
	listByDateUC := ucReservation.NewListReservationsByDate(deps.Repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	restaurantHandler := handlers.NewRestaurantHandler(deps.Repo)
	availabilityHandler := handlers.NewAvailabilityHandler(availability)
	reservationHandler := handlers.NewReservationHandler(
		createUC,
		updateUC,
		cancelUC,
		getUC,
		transitionUC,
		listByDateUC,
	)
	guestHandler := handlers.NewGuestHandler(updateUC, cancelUC, getUC)
	openingHoursHandler := handlers.NewOpeningHoursHandler(deps.Repo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/restaurant", restaurantHandler.Get)

		availabilityAPI := api.Group("/availability")
		{
			availabilityAPI.GET("", availabilityHandler.Day)
			availabilityAPI.GET("/check", availabilityHandler.Check)
			availabilityAPI.GET("/tables", availabilityHandler.Tables)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", middleware.OptionalAuth(cfg), reservationHandler.Create)

			// guest management link
			reservations.GET("/manage/:token", guestHandler.Get)
			reservations.PUT("/manage/:token", guestHandler.Update)
			reservations.DELETE("/manage/:token", guestHandler.Cancel)

			owned := reservations.Group("")
			owned.Use(middleware.AuthMiddleware(cfg))
			{
				owned.GET("/:id", reservationHandler.Get)
				owned.PUT("/:id", reservationHandler.Update)
				owned.DELETE("/:id", reservationHandler.Cancel)
			}
		}

		// ------------------------------
		// OPERATOR
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(middleware.RoleAdmin, middleware.RoleSuperAdmin),
		)
		{
			admin.GET("/reservations", reservationHandler.ListByDate)
			admin.PATCH("/reservations/:id/confirm", reservationHandler.Confirm())
			admin.PATCH("/reservations/:id/complete", reservationHandler.Complete())
			admin.PATCH("/reservations/:id/no-show", reservationHandler.NoShow())

			admin.GET("/opening-hours", openingHoursHandler.Get)
			admin.PUT("/opening-hours", openingHoursHandler.Update)

			if deps.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB, deps.Repo)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
