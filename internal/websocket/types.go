package websocket

// Room channel naming. A room exists per conversation thread plus two
// console-wide feeds; the same names double as Redis pub/sub channels.
const (
	InboxRoom    = "chat:inbox"
	BookingsRoom = "feed:bookings"
)

func ThreadRoom(threadKey string) string {
	return "chat:thread:" + threadKey
}

type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

type WSMessage struct {
	Content   string `json:"content"`
	RoomID    string `json:"roomId"`
	Timestamp int64  `json:"timestamp"`
}

type RoomRes struct {
	ID string `json:"id"`
}
