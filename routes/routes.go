package routes

import (
	"food-donation-api/handlers"
	"food-donation-api/middleware"
	"food-donation-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/users/register", handlers.Register)
		public.POST("/users/login", handlers.Login)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated user routes ──────────────────────────────────
	users := r.Group("/api/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("/me", handlers.GetProfile)
		users.PUT("/profile", handlers.UpdateProfile)
		users.GET("/ngos", handlers.ListNGOs)
	}

	// ── Donation routes ────────────────────────────────────────────
	donations := r.Group("/api/donations")
	donations.Use(middleware.AuthRequired())
	{
		// Shared: role-scoped list and open detail view
		donations.GET("", handlers.ListDonations)
		donations.GET("/:id", handlers.GetDonationDetail)

		// Donor lifecycle
		donations.POST("", middleware.RoleRequired(models.RoleDonor), handlers.CreateDonation)
		donations.PUT("/:id", middleware.RoleRequired(models.RoleDonor), handlers.UpdateDonation)
		donations.DELETE("/:id", middleware.RoleRequired(models.RoleDonor), handlers.DeleteDonation)

		// NGO lifecycle
		donations.GET("/claimed", middleware.RoleRequired(models.RoleNGO), handlers.GetClaimedDonations)
		donations.PUT("/:id/claim", middleware.RoleRequired(models.RoleNGO), handlers.ClaimDonation)
		donations.PUT("/:id/complete", middleware.RoleRequired(models.RoleNGO), handlers.CompleteDonation)
	}
}
