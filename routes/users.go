package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/controllers"
)

// SetupUserRoutes configures profile and user management routes.
// Static paths come before the parameterized ones so /users/profile is
// never captured by /users/:id.
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users")

	users.Get("/profile", controllers.GetProfile)
	users.Put("/profile", controllers.UpdateProfile)
	users.Post("/profile/picture", controllers.UploadProfilePicture)
	users.Put("/change-password", controllers.ChangePassword)

	users.Get("/check-email", controllers.CheckEmail)
	users.Get("/check-phone", controllers.CheckPhone)
	users.Get("/search", controllers.SearchUsers)
	users.Get("/stats", controllers.GetUserStats)
	users.Get("/providers", controllers.GetProviders)
	users.Get("/customers", controllers.GetCustomers)
	users.Get("/nearby", controllers.GetNearbyUsers)
	users.Get("/role/:name", controllers.GetUsersByRole)

	users.Get("/", controllers.GetAllUsers)
	users.Get("/:id", controllers.GetUser)
	users.Delete("/:id", controllers.DeleteUser)
	users.Put("/:id/verify-email", controllers.VerifyEmail)
	users.Put("/:id/verify-phone", controllers.VerifyPhone)
	users.Put("/:id/toggle-status", controllers.ToggleStatus)
}
