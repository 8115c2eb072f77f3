package chat

import (
	"sort"
	"time"
)

// Thread is a reconstructed conversation: a derived, in-memory grouping that
// is recomputed from the full message snapshot on every update and never
// persisted.
type Thread struct {
	Key      string
	ThreadID string
	UID      string
	Name     string
	Phone    string
	Email    string
	Messages []ChatMessage
	LastAt   time.Time
	Unread   int
}

// LastMessage returns the newest message in the thread, or false when the
// thread would be empty (which the builder never produces).
func (t Thread) LastMessage() (ChatMessage, bool) {
	if len(t.Messages) == 0 {
		return ChatMessage{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// LastVisitorMessage returns the newest non-admin message; admin replies use
// its id as their replyTo target.
func (t Thread) LastVisitorMessage() (ChatMessage, bool) {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if !IsAdminMessage(t.Messages[i]) {
			return t.Messages[i], true
		}
	}
	return ChatMessage{}, false
}

// DisplayName picks the label the inbox shows for a thread.
func (t Thread) DisplayName() string {
	switch {
	case t.Name != "":
		return t.Name
	case t.Email != "":
		return t.Email
	case t.Phone != "":
		return t.Phone
	case t.ThreadID != "":
		return "Thread " + t.ThreadID
	case t.UID != "":
		return t.UID
	default:
		return "Guest"
	}
}

// PresenceUID is the uid a consumer should look up presence under.
func (t Thread) PresenceUID() string {
	if t.UID != "" {
		return t.UID
	}
	return t.ThreadID
}

// BuildThreads folds a flat, unordered message snapshot into the ordered
// thread list. It is pure and deterministic for a fixed snapshot: visitor
// messages are resolved first, then admin messages (whose reply-chain rule
// reads the visitor resolutions), then everything is grouped, sorted within
// each thread by creation time, and the thread list ordered by recency.
func BuildThreads(msgs []ChatMessage) []Thread {
	if len(msgs) == 0 {
		return []Thread{}
	}

	resolutions := make(map[string]Resolution, len(msgs))
	for _, m := range msgs {
		if IsAdminMessage(m) {
			continue
		}
		resolutions[m.ID] = ResolveKey(m, resolutions)
	}
	for _, m := range msgs {
		if !IsAdminMessage(m) {
			continue
		}
		resolutions[m.ID] = ResolveKey(m, resolutions)
	}

	byKey := make(map[string]*Thread)
	order := make([]string, 0)
	for _, m := range msgs {
		res, ok := resolutions[m.ID]
		if !ok {
			res = Resolution{Key: "anon:" + m.ID}
		}

		thread, ok := byKey[res.Key]
		if !ok {
			thread = &Thread{Key: res.Key}
			byKey[res.Key] = thread
			order = append(order, res.Key)
		}

		mergeMeta(thread, res, m)
		thread.Messages = append(thread.Messages, m)

		if at, ok := ResolveTimestamp(m.CreatedAt); ok && at.After(thread.LastAt) {
			thread.LastAt = at
		}
		if !IsAdminMessage(m) && !m.Read {
			thread.Unread++
		}
	}

	threads := make([]Thread, 0, len(byKey))
	for _, key := range order {
		thread := byKey[key]
		sortMessages(thread.Messages)
		threads = append(threads, *thread)
	}

	sort.SliceStable(threads, func(i, j int) bool {
		if !threads[i].LastAt.Equal(threads[j].LastAt) {
			return threads[i].LastAt.After(threads[j].LastAt)
		}
		return threads[i].Key < threads[j].Key
	})
	return threads
}

// mergeMeta carries the first non-empty metadata value seen for the thread.
func mergeMeta(t *Thread, res Resolution, m ChatMessage) {
	if t.ThreadID == "" {
		t.ThreadID = firstNonEmpty(res.ThreadID, m.ThreadID)
	}
	if t.UID == "" {
		t.UID = res.UID
	}
	if t.Name == "" {
		t.Name = firstNonEmpty(res.Name, m.Name)
	}
	if t.Phone == "" {
		t.Phone = firstNonEmpty(res.Phone, m.Phone)
	}
	if t.Email == "" {
		t.Email = firstNonEmpty(res.Email, m.Email)
	}
}

// SortByTime orders messages ascending by resolved timestamp, the same
// ordering threads use internally. The widget sorts its single-thread fetch
// with this so both surfaces render a conversation identically.
func SortByTime(msgs []ChatMessage) {
	sortMessages(msgs)
}

// sortMessages orders ascending by resolved timestamp; messages without a
// resolvable timestamp sort as time zero so they stay visible at the top
// instead of being dropped.
func sortMessages(msgs []ChatMessage) {
	sort.SliceStable(msgs, func(i, j int) bool {
		ti, _ := ResolveTimestamp(msgs[i].CreatedAt)
		tj, _ := ResolveTimestamp(msgs[j].CreatedAt)
		return ti.Before(tj)
	})
}

// TotalUnread sums unread counts across threads for the inbox badge.
func TotalUnread(threads []Thread) int {
	total := 0
	for _, t := range threads {
		total += t.Unread
	}
	return total
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
