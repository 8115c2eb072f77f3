package chat

import (
	"strings"

	"venue-booking-backend/internal/model"
)

// AdminUIDPrefix is the sentinel namespace for operator-authored messages.
// Operator uids never participate in thread-key derivation; without this
// every admin reply would collapse into a single thread.
const AdminUIDPrefix = "admin:"

// ChatMessage is the in-memory view of a LiveChat record the thread builder
// works with. CreatedAt is deliberately untyped: depending on where the
// record came from it may be a store timestamp handle, epoch milliseconds,
// an RFC3339 string, a time.Time, or nil for a not-yet-confirmed write.
type ChatMessage struct {
	ID        string
	Text      string
	UID       string
	ThreadID  string
	ReplyTo   string
	Name      string
	Phone     string
	Email     string
	FromAdmin bool
	Read      bool
	CreatedAt any
}

func IsAdminUID(uid string) bool {
	return strings.HasPrefix(uid, AdminUIDPrefix)
}

// IsAdminMessage treats a message as operator-authored when either the
// explicit flag or the sentinel uid namespace says so.
func IsAdminMessage(m ChatMessage) bool {
	return m.FromAdmin || IsAdminUID(m.UID)
}

func FromItem(item model.ChatMessageItem) ChatMessage {
	return ChatMessage{
		ID:        item.MessageID,
		Text:      item.Text,
		UID:       item.UID,
		ThreadID:  item.ThreadID,
		ReplyTo:   item.ReplyTo,
		Name:      item.Name,
		Phone:     item.Phone,
		Email:     item.Email,
		FromAdmin: item.FromAdmin,
		Read:      item.Read,
		CreatedAt: item.CreatedAt,
	}
}

func FromItems(items []model.ChatMessageItem) []ChatMessage {
	msgs := make([]ChatMessage, 0, len(items))
	for _, item := range items {
		msgs = append(msgs, FromItem(item))
	}
	return msgs
}

// Viewpoint identifies whose messages count as "own" when a consumer lays a
// conversation out left/right. The admin messenger and the visitor widget
// share the same thread builder and differ only here.
type Viewpoint struct {
	UID   string
	Admin bool
}

func AdminViewpoint() Viewpoint {
	return Viewpoint{Admin: true}
}

func VisitorViewpoint(uid string) Viewpoint {
	return Viewpoint{UID: uid}
}

func (v Viewpoint) Own(m ChatMessage) bool {
	if v.Admin {
		return IsAdminMessage(m)
	}
	if IsAdminMessage(m) {
		return false
	}
	if v.UID != "" && m.UID != "" {
		return m.UID == v.UID
	}
	return true
}
