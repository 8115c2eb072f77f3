package chat

import (
	"fmt"
	"time"

	"venue-booking-backend/internal/model"
)

// OnlineThreshold is how stale a heartbeat may be before a user counts as
// offline.
const OnlineThreshold = 2 * time.Minute

// Presence is the derived heartbeat view of a registered user. A zero
// LastActiveAt means no heartbeat has been seen; IsOnline, when set, is the
// realtime override flag and wins over the heartbeat computation.
type Presence struct {
	UID          string
	DisplayName  string
	Email        string
	LastActiveAt time.Time
	IsOnline     *bool
}

type PresenceStatus struct {
	Online        bool
	Label         string
	LastSeenLabel string
}

func PresenceFromProfile(item model.UserProfileItem) Presence {
	lastActive, _ := ResolveTimestamp(item.LastActiveAt)
	return Presence{
		UID:          item.UID,
		DisplayName:  item.DisplayName,
		Email:        item.Email,
		LastActiveAt: lastActive,
		IsOnline:     item.IsOnline,
	}
}

// EvaluatePresence maps a presence record onto an online/offline status.
// Returns false when there is no record, in which case callers show nothing.
func EvaluatePresence(p *Presence, now time.Time) (PresenceStatus, bool) {
	if p == nil {
		return PresenceStatus{}, false
	}

	online := false
	if p.IsOnline != nil {
		online = *p.IsOnline
	} else if !p.LastActiveAt.IsZero() {
		online = now.Sub(p.LastActiveAt) <= OnlineThreshold
	}

	status := PresenceStatus{Online: online}
	if online {
		status.Label = "Online"
		status.LastSeenLabel = "Active now"
	} else {
		status.Label = "Offline"
		if !p.LastActiveAt.IsZero() {
			status.LastSeenLabel = "Last active " + RelativeTime(p.LastActiveAt, now)
		}
	}
	return status, true
}

// RelativeTime renders how long ago a moment was. Clock skew (a moment in
// the future) is clamped to "just now"; beyond a week the absolute date is
// shown instead of an ever-growing day count.
func RelativeTime(at, now time.Time) string {
	diff := now.Sub(at)
	if diff < 0 {
		diff = 0
	}

	minutes := int(diff / time.Minute)
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return pluralize(minutes, "min")
	}

	hours := minutes / 60
	if hours < 24 {
		return pluralize(hours, "hr")
	}

	days := hours / 24
	if days < 7 {
		return pluralize(days, "day")
	}
	return at.Format("Jan 2, 2006")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
