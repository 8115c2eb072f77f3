package main

import (
	"log"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/router"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/env"
	"venue-booking-backend/internal/queue"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	env.MustValidate()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/public/v1"),
		router.WidgetRoutes("/api/public/v1"),
		router.BookingPublicRoutes("/api/public/v1"),
		router.CatalogPublicRoutes("/api/public/v1"),
		router.ContactPublicRoutes("/api/public/v1"),
	)

	server.Run()
}
