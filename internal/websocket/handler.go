package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"venue-booking-backend/internal/env"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.ChatRedisURL),
		Password: env.Get(env.ChatRedisPass),
		DB:       0,
	})
}

type Handler struct {
	hub         *Hub
	redisClient *redis.Client

	mu         sync.Mutex
	subscribed map[string]bool
}

func NewHandler(h *Hub) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
		subscribed:  make(map[string]bool),
	}
}

// ensureRoomSubscription bridges one Redis channel into the hub. Each room
// gets exactly one bridge goroutine regardless of how many clients join.
func (h *Handler) ensureRoomSubscription(roomID string) {
	h.mu.Lock()
	if h.subscribed[roomID] {
		h.mu.Unlock()
		return
	}
	h.subscribed[roomID] = true
	h.mu.Unlock()

	go func() {
		subscriber := h.redisClient.Subscribe(context.Background(), roomID)
		defer subscriber.Close()

		ch := subscriber.Channel()
		for msg := range ch {
			h.hub.Broadcast <- &WSMessage{
				Content:   msg.Payload,
				RoomID:    roomID,
				Timestamp: time.Now().Unix(),
			}
		}

		h.mu.Lock()
		delete(h.subscribed, roomID)
		h.mu.Unlock()
		log.Printf("unsubscribed from channel %s", roomID)
	}()
}

// JoinRoom upgrades the request and attaches the client to a room, creating
// the room and its Redis bridge on first join.
func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request, roomID, clientID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.ensureRoomSubscription(roomID)

	cl := &WSClient{
		Conn:    conn,
		Message: make(chan *WSMessage, 10),
		ID:      clientID,
		RoomID:  roomID,
		done:    make(chan struct{}),
	}

	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub)
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms := make([]RoomRes, 0)

	for _, room := range h.hub.Rooms {
		rooms = append(rooms, RoomRes{
			ID: room.Id,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rooms)
}
