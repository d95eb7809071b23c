package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mailam-cse/achievers-portal/internal/app/controllers"
	"github.com/mailam-cse/achievers-portal/internal/middleware"
)

// SetupRouter configures all application routes. Every request passes
// through the viewer resolver; the tier middlewares gate the protected
// groups.
func SetupRouter(
	router *gin.Engine,
	publicController *controllers.PublicController,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(authMiddleware.CurrentViewer())

	// --- Public routes ---
	router.GET("/", publicController.Home)
	router.GET("/achievements/", publicController.Achievements)
	router.GET("/api/achievements/", publicController.AchievementsAPI)
	router.POST("/contact-submit/", publicController.ContactSubmit)

	router.GET("/signup/", authController.ShowSignup)
	router.POST("/signup/", authController.Signup)
	router.GET("/login/", authController.ShowLogin)
	router.POST("/login/", authController.Login)
	router.POST("/logout/", authController.Logout)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/dashboard/", dashboardController.Dashboard)
		authenticated.POST("/dashboard/", dashboardController.SubmitAchievement)
		authenticated.GET("/profile/", profileController.Profile)
		authenticated.POST("/profile/", profileController.UpdateProfile)
		authenticated.POST("/delete-achievement/:id/", dashboardController.DeleteAchievement)
	}

	// --- Staff routes ---
	staff := router.Group("/admin-dashboard")
	staff.Use(authMiddleware.RequireStaff())
	{
		staff.GET("/", adminController.Dashboard)
		staff.GET("/achievements/", adminController.Moderation)
		staff.POST("/achievements/", adminController.Moderate)
		staff.GET("/messages/", adminController.Messages)
		staff.POST("/messages/", adminController.UpdateMessages)
	}

	// --- Superuser routes ---
	superuser := router.Group("")
	superuser.Use(authMiddleware.RequireSuperuser())
	{
		superuser.GET("/register-staff/", authController.ShowRegisterStaff)
		superuser.POST("/register-staff/", authController.RegisterStaff)
	}

	router.NoRoute(publicController.NotFound)
}
