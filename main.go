package main

import (
	"log"
	"skillfund/config"
	requestController "skillfund/controllers/request"
	"skillfund/database"
	authRoutes "skillfund/routers/authRoutes"
	courseRoutes "skillfund/routers/courseRoutes"
	donationRoutes "skillfund/routers/donationRoutes"
	requestRoutes "skillfund/routers/requestRoutes"
	"skillfund/storage"
	"skillfund/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Wire the configured document store into the request handlers
	requestController.Docs = storage.NewLocalStore(config.AppConfig.UploadDir)

	app := fiber.New(fiber.Config{
		BodyLimit: 30 * 1024 * 1024, // five documents at up to 5MB each, per-file limits checked in storage
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded documents statically
	app.Static("/uploads/documents", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	requestRoutes.SetupRequestRoutes(app)
	donationRoutes.SetupDonationRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
