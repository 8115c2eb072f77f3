package livechat

import (
	"context"
	"log"
	"sync"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/env"
	"venue-booking-backend/internal/websocket"

	"github.com/go-redis/redis/v8"
)

// Subscriber delivers wake-up notifications for a channel. The returned stop
// function tears the subscription down; after stop returns no more values are
// sent on the channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan struct{}, func(), error)
}

// InboxSnapshot is what the inbox view renders after each rebuild. Err is set
// when the rebuild failed; the previous thread list is kept alongside so the
// view can show stale data with an error banner instead of going blank.
type InboxSnapshot struct {
	Threads     []chat.Thread
	TotalUnread int
	ActiveKey   string
	Err         error
}

// InboxController owns the lifecycle of one open inbox view: it holds the
// live subscription, rebuilds the thread list on every notification, and
// reconciles the selected thread against each rebuild. Opening a new view
// must tear the previous subscription down first or the old listener keeps
// firing behind the replacement.
type InboxController struct {
	service    *Service
	subscriber Subscriber
	onUpdate   func(InboxSnapshot)

	mu        sync.Mutex
	stop      func()
	done      chan struct{}
	activeKey string
	threads   []chat.Thread
}

func NewInboxController(service *Service, subscriber Subscriber, onUpdate func(InboxSnapshot)) *InboxController {
	if onUpdate == nil {
		onUpdate = func(InboxSnapshot) {}
	}
	return &InboxController{
		service:    service,
		subscriber: subscriber,
		onUpdate:   onUpdate,
	}
}

// Start subscribes to the inbox channel and pushes an initial snapshot.
// Calling Start on a running controller replaces the previous subscription.
func (c *InboxController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}

	notifications, stop, err := c.subscriber.Subscribe(ctx, websocket.InboxRoom)
	if err != nil {
		c.mu.Unlock()
		return newError(ErrorCodeInternal, "failed to subscribe to inbox updates", err)
	}

	done := make(chan struct{})
	c.stop = stop
	c.done = done
	c.mu.Unlock()

	c.refresh(ctx)

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-notifications:
				if !ok {
					return
				}
				c.refresh(ctx)
			}
		}
	}()

	return nil
}

// SetActiveThread selects a thread and clears its unread counter. An empty
// key deselects. Selecting a key that no longer exists is not an error; the
// next snapshot reports no active thread.
func (c *InboxController) SetActiveThread(ctx context.Context, threadKey string) {
	c.mu.Lock()
	c.activeKey = threadKey
	c.mu.Unlock()

	if threadKey == "" {
		c.emit(nil)
		return
	}

	if _, err := c.service.MarkThreadRead(ctx, threadKey); err != nil {
		log.Printf("inbox: mark thread read %s: %v", threadKey, err)
	}
	c.refresh(ctx)
}

// ActiveKey returns the currently selected thread key, which may be empty.
func (c *InboxController) ActiveKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeKey
}

// Close tears down the subscription and waits for the update loop to exit.
// The controller must not be reused afterwards.
func (c *InboxController) Close() {
	c.mu.Lock()
	stop := c.stop
	done := c.done
	c.stop = nil
	c.done = nil
	c.activeKey = ""
	c.threads = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	if done != nil {
		<-done
	}
}

func (c *InboxController) refresh(ctx context.Context) {
	result, err := c.service.Threads(ctx)
	if err != nil {
		c.emit(err)
		return
	}

	c.mu.Lock()
	c.threads = result.Threads
	// The selected thread can disappear between snapshots when messages are
	// deleted or regroup under a different key. Dropping the selection here
	// keeps the view from rendering a conversation that no longer exists.
	if c.activeKey != "" && !containsKey(result.Threads, c.activeKey) {
		c.activeKey = ""
	}
	c.mu.Unlock()

	c.emit(nil)
}

func (c *InboxController) emit(err error) {
	c.mu.Lock()
	snapshot := InboxSnapshot{
		Threads:     c.threads,
		TotalUnread: chat.TotalUnread(c.threads),
		ActiveKey:   c.activeKey,
		Err:         err,
	}
	c.mu.Unlock()

	c.onUpdate(snapshot)
}

func containsKey(threads []chat.Thread, key string) bool {
	for _, t := range threads {
		if t.Key == key {
			return true
		}
	}
	return false
}

// RedisSubscriber bridges Redis pub/sub channels onto the Subscriber
// interface. Message payloads are discarded; subscribers re-read their
// snapshot on every tick.
type RedisSubscriber struct {
	client *redis.Client
}

func NewRedisSubscriber() *RedisSubscriber {
	return &RedisSubscriber{
		client: redis.NewClient(&redis.Options{
			Addr:     env.Get(env.ChatRedisURL),
			Password: env.Get(env.ChatRedisPass),
			DB:       0,
		}),
	}
}

func NewRedisSubscriberWithClient(client *redis.Client) *RedisSubscriber {
	return &RedisSubscriber{client: client}
}

func (s *RedisSubscriber) Subscribe(ctx context.Context, channel string) (<-chan struct{}, func(), error) {
	pubsub := s.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	notifications := make(chan struct{})
	go func() {
		defer close(notifications)
		for range pubsub.Channel() {
			select {
			case notifications <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() {
		if err := pubsub.Close(); err != nil {
			log.Printf("inbox: close subscription %s: %v", channel, err)
		}
	}
	return notifications, stop, nil
}
