package main

import (
	"log"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/router"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/env"
	"venue-booking-backend/internal/queue"
	"venue-booking-backend/internal/websocket"

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

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub)

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		router.UtilsRoutes("/api/ws/v1"),
		router.ChatWebsocketRoutes("/api/ws/v1"),
		router.WidgetWebsocketRoutes("/api/ws/v1"),
	)

	server.Run()
}
