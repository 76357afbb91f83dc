package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/validate", controllers.ValidateToken)
	auth.Post("/logout", controllers.Logout)
}
