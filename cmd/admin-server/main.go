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
		":81",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/admin/v1"),
		router.AuthRoutes("/api/admin/v1"),
		router.ChatAdminRoutes("/api/admin/v1"),
		router.BookingAdminRoutes("/api/admin/v1"),
		router.CatalogAdminRoutes("/api/admin/v1"),
		router.ContactAdminRoutes("/api/admin/v1"),
	)

	server.Run()
}
