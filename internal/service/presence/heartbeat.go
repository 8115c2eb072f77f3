package presence

import (
	"context"
	"log"
	"time"
)

// DefaultHeartbeatInterval matches the cadence the web client pings at.
const DefaultHeartbeatInterval = 45 * time.Second

// HeartbeatWriter periodically records activity for a signed-in user. Writes
// are fire-and-forget: a failed heartbeat is logged and the loop keeps going,
// since at worst the user briefly shows as offline.
type HeartbeatWriter struct {
	service  *Service
	uid      string
	interval time.Duration
	wake     chan struct{}
}

func NewHeartbeatWriter(service *Service, uid string, interval time.Duration) *HeartbeatWriter {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &HeartbeatWriter{
		service:  service,
		uid:      uid,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Run beats immediately, then on every tick or Wake until the context is
// cancelled. It blocks, so callers start it in a goroutine.
func (w *HeartbeatWriter) Run(ctx context.Context) {
	w.beat(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.beat(ctx)
		case <-w.wake:
			w.beat(ctx)
		}
	}
}

// Wake triggers an out-of-band heartbeat, used when a session resumes after
// being idle. It never blocks; a pending wake is enough.
func (w *HeartbeatWriter) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *HeartbeatWriter) beat(ctx context.Context) {
	if err := w.service.Heartbeat(ctx, w.uid); err != nil {
		log.Printf("presence: heartbeat for %s: %v", w.uid, err)
	}
}
