package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/servenow/servenow-backend/cron"
	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/redis"
	"github.com/servenow/servenow-backend/routes"
	"github.com/servenow/servenow-backend/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	db.Seed()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.Authenticate())
	app.Use(middleware.Authorize())

	app.Get("/", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, "ServeNow API", nil)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, "OK", nil)
	})

	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupCategoryRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupPaymentRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupSearchRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
