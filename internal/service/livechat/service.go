package livechat

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/env"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/websocket"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AdminIdentity is the authenticated operator posting replies from the
// messenger console.
type AdminIdentity struct {
	AdminID string
	Name    string
	Email   string
}

type StartSessionParams struct {
	UID   string
	Name  string
	Phone string
}

type SessionResult struct {
	ThreadID     string
	VisitorToken string
}

type VisitorMessageParams struct {
	Token string
	Text  string
	UID   string
	Name  string
	Phone string
	Email string
}

type MessageResult struct {
	Message   model.ChatMessageItem
	ThreadKey string
}

type ThreadsResult struct {
	Threads     []chat.Thread
	TotalUnread int
}

type ThreadMessagesResult struct {
	ThreadID string
	UID      string
	Messages []chat.ChatMessage
}

type MarkReadResult struct {
	Marked int
	Failed int
}

// PublishFunc fans a payload out to every listener of a websocket room.
type PublishFunc func(roomID string, payload interface{}) error

// Event is the payload published to chat rooms after a store write. Clients
// treat it purely as a wake-up: they re-read their snapshot rather than
// applying the event incrementally, so a dropped event only delays an update
// until the next one.
type Event struct {
	Type      string `json:"type"`
	ThreadKey string `json:"threadKey,omitempty"`
	ThreadID  string `json:"threadId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

const (
	EventMessageCreated = "chat.message.created"
	EventThreadRead     = "chat.thread.read"
)

type Service struct {
	repo    Repository
	now     func() time.Time
	publish PublishFunc
}

var (
	visitorTokenSecret = []byte(env.Get(env.VisitorSecretKey))
	visitorTokenTTL    = 30 * 24 * time.Hour
)

type visitorTokenClaims struct {
	ThreadID  string `json:"threadId"`
	UID       string `json:"uid,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func SetVisitorTokenSecret(secret []byte) {
	if len(secret) == 0 {
		return
	}
	visitorTokenSecret = make([]byte, len(secret))
	copy(visitorTokenSecret, secret)
}

func SetVisitorTokenTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	visitorTokenTTL = ttl
}

func New(db *database.Database) *Service {
	return &Service{
		repo:    NewDynamoRepository(db),
		now:     time.Now,
		publish: websocket.Publish,
	}
}

func NewWithRepository(repo Repository, now func() time.Time, publish PublishFunc) *Service {
	if now == nil {
		now = time.Now
	}
	if publish == nil {
		publish = func(string, interface{}) error { return nil }
	}
	return &Service{
		repo:    repo,
		now:     now,
		publish: publish,
	}
}

// StartSession issues a thread id and a signed token for the visitor widget.
// Authenticated visitors reuse their uid as the thread id so every device
// they sign in from lands in the same conversation; guests get a random one
// that lives as long as the token does.
func (s *Service) StartSession(params StartSessionParams) (SessionResult, error) {
	threadID := strings.TrimSpace(params.UID)
	uid := threadID
	if threadID == "" {
		threadID = uuid.NewString()
	}

	now := s.now().UTC()
	token, err := signVisitorToken(visitorTokenClaims{
		ThreadID:  threadID,
		UID:       uid,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(visitorTokenTTL).Unix(),
	})
	if err != nil {
		return SessionResult{}, newError(ErrorCodeInternal, "failed to issue visitor token", err)
	}

	return SessionResult{
		ThreadID:     threadID,
		VisitorToken: token,
	}, nil
}

// SendVisitorMessage stores a widget message. The token is optional: legacy
// guests that never opened a session still get their messages stored, and the
// thread builder folds them together by contact details instead of thread id.
func (s *Service) SendVisitorMessage(ctx context.Context, params VisitorMessageParams) (MessageResult, error) {
	text := strings.TrimSpace(params.Text)
	if text == "" {
		return MessageResult{}, newError(ErrorCodeValidation, "message text is required", nil)
	}

	threadID := ""
	uid := strings.TrimSpace(params.UID)
	if token := strings.TrimSpace(params.Token); token != "" {
		claims, err := verifyVisitorToken(token, s.now)
		if err != nil {
			return MessageResult{}, newError(ErrorCodeUnauthorized, "invalid visitor token", err)
		}
		threadID = claims.ThreadID
		if uid == "" {
			uid = claims.UID
		}
	}

	message := model.ChatMessageItem{
		MessageID: uuid.NewString(),
		Text:      text,
		UID:       uid,
		ThreadID:  threadID,
		Name:      strings.TrimSpace(params.Name),
		Phone:     strings.TrimSpace(params.Phone),
		Email:     normalizeEmail(params.Email),
		FromAdmin: false,
		Read:      false,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return MessageResult{}, newError(ErrorCodeInternal, "failed to store message", err)
	}

	key := chat.ResolveKey(chat.FromItem(message), nil).Key
	s.notifyThread(key, message)

	return MessageResult{
		Message:   message,
		ThreadKey: key,
	}, nil
}

// SendAdminReply appends an operator reply to the thread identified by key.
// The reply carries replyTo pointing at the thread's last visitor message and
// inherits the thread id when the thread has one. For uid- and guest-keyed
// threads the id stays empty: replyTo alone chains the reply back on rebuild,
// and inventing an id would rekey the reply away from the visitor.
func (s *Service) SendAdminReply(ctx context.Context, identity AdminIdentity, threadKey, text string) (MessageResult, error) {
	if identity.AdminID == "" {
		return MessageResult{}, newError(ErrorCodeUnauthorized, "invalid admin identity", nil)
	}
	threadKey = strings.TrimSpace(threadKey)
	if threadKey == "" {
		return MessageResult{}, newError(ErrorCodeValidation, "threadKey is required", nil)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return MessageResult{}, newError(ErrorCodeValidation, "message text is required", nil)
	}

	thread, err := s.findThread(ctx, threadKey)
	if err != nil {
		return MessageResult{}, err
	}

	replyTo := ""
	threadID := thread.ThreadID
	if last, ok := thread.LastVisitorMessage(); ok {
		replyTo = last.ID
		if threadID == "" {
			threadID = last.ThreadID
		}
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = "Admin"
	}

	message := model.ChatMessageItem{
		MessageID: uuid.NewString(),
		Text:      text,
		UID:       chat.AdminUIDPrefix + identity.AdminID,
		ThreadID:  threadID,
		ReplyTo:   replyTo,
		Name:      name,
		Email:     normalizeEmail(identity.Email),
		FromAdmin: true,
		Read:      true,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return MessageResult{}, newError(ErrorCodeInternal, "failed to store message", err)
	}

	s.notifyThread(threadKey, message)

	return MessageResult{
		Message:   message,
		ThreadKey: threadKey,
	}, nil
}

// Threads rebuilds the full inbox from the message store.
func (s *Service) Threads(ctx context.Context) (ThreadsResult, error) {
	items, err := s.repo.ListMessages(ctx)
	if err != nil {
		return ThreadsResult{}, newError(ErrorCodeInternal, "failed to list messages", err)
	}

	threads := chat.BuildThreads(chat.FromItems(items))
	return ThreadsResult{
		Threads:     threads,
		TotalUnread: chat.TotalUnread(threads),
	}, nil
}

// Thread returns a single thread by key from a fresh rebuild.
func (s *Service) Thread(ctx context.Context, threadKey string) (chat.Thread, error) {
	threadKey = strings.TrimSpace(threadKey)
	if threadKey == "" {
		return chat.Thread{}, newError(ErrorCodeValidation, "threadKey is required", nil)
	}
	return s.findThread(ctx, threadKey)
}

// VisitorThreadMessages returns the conversation for the widget. Access is
// scoped by the visitor token: a visitor can only ever read the thread their
// token was issued for.
func (s *Service) VisitorThreadMessages(ctx context.Context, token string) (ThreadMessagesResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ThreadMessagesResult{}, newError(ErrorCodeUnauthorized, "visitor token required", nil)
	}

	claims, err := verifyVisitorToken(token, s.now)
	if err != nil {
		return ThreadMessagesResult{}, newError(ErrorCodeUnauthorized, "invalid visitor token", err)
	}

	items, err := s.repo.ListThreadMessages(ctx, claims.ThreadID)
	if err != nil {
		return ThreadMessagesResult{}, newError(ErrorCodeInternal, "failed to list messages", err)
	}

	messages := chat.FromItems(items)
	chat.SortByTime(messages)

	return ThreadMessagesResult{
		ThreadID: claims.ThreadID,
		UID:      claims.UID,
		Messages: messages,
	}, nil
}

// VisitorClaims is the verified identity a visitor token grants access to.
type VisitorClaims struct {
	ThreadID string
	UID      string
}

// ThreadKey is the room key for the thread the claims cover.
func (c VisitorClaims) ThreadKey() string {
	return chat.ResolveKey(chat.ChatMessage{ThreadID: c.ThreadID, UID: c.UID}, nil).Key
}

// VerifyVisitorToken checks the token signature and expiry without touching
// the store. Used to gate websocket joins.
func (s *Service) VerifyVisitorToken(token string) (VisitorClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return VisitorClaims{}, newError(ErrorCodeUnauthorized, "visitor token required", nil)
	}
	claims, err := verifyVisitorToken(token, s.now)
	if err != nil {
		return VisitorClaims{}, newError(ErrorCodeUnauthorized, "invalid visitor token", err)
	}
	return VisitorClaims{ThreadID: claims.ThreadID, UID: claims.UID}, nil
}

// MarkThreadRead flips the read flag on every unread visitor message in the
// thread. Each message is updated independently: one failed write must not
// leave the rest of the thread showing as unread, so failures are counted and
// reported without aborting the sweep.
func (s *Service) MarkThreadRead(ctx context.Context, threadKey string) (MarkReadResult, error) {
	thread, err := s.Thread(ctx, threadKey)
	if err != nil {
		return MarkReadResult{}, err
	}

	var result MarkReadResult
	var firstErr error
	for _, m := range thread.Messages {
		if chat.IsAdminMessage(m) || m.Read {
			continue
		}
		if err := s.repo.MarkMessageRead(ctx, m.ID); err != nil {
			result.Failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Marked++
	}

	if result.Marked > 0 {
		s.notifyRead(threadKey)
	}

	if firstErr != nil {
		return result, newError(ErrorCodeInternal,
			fmt.Sprintf("failed to mark %d of %d messages read", result.Failed, result.Marked+result.Failed),
			firstErr)
	}
	return result, nil
}

func (s *Service) findThread(ctx context.Context, threadKey string) (chat.Thread, error) {
	items, err := s.repo.ListMessages(ctx)
	if err != nil {
		return chat.Thread{}, newError(ErrorCodeInternal, "failed to list messages", err)
	}

	for _, thread := range chat.BuildThreads(chat.FromItems(items)) {
		if thread.Key == threadKey {
			return thread, nil
		}
	}
	return chat.Thread{}, newError(ErrorCodeNotFound, "thread not found", nil)
}

// notifyThread publishes a wake-up to the thread's room and the shared inbox
// room. Publish failures are swallowed: the write already landed and a
// subscriber that misses the event catches up on its next snapshot.
func (s *Service) notifyThread(threadKey string, message model.ChatMessageItem) {
	event := Event{
		Type:      EventMessageCreated,
		ThreadKey: threadKey,
		ThreadID:  message.ThreadID,
		MessageID: message.MessageID,
	}
	_ = s.publish(websocket.ThreadRoom(threadKey), event)
	_ = s.publish(websocket.InboxRoom, event)
}

func (s *Service) notifyRead(threadKey string) {
	event := Event{
		Type:      EventThreadRead,
		ThreadKey: threadKey,
	}
	_ = s.publish(websocket.ThreadRoom(threadKey), event)
	_ = s.publish(websocket.InboxRoom, event)
}

func signVisitorToken(claims visitorTokenClaims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, visitorTokenSecret)
	if _, err := mac.Write(payload); err != nil {
		return "", err
	}
	signature := mac.Sum(nil)

	payloadPart := base64.RawURLEncoding.EncodeToString(payload)
	sigPart := base64.RawURLEncoding.EncodeToString(signature)

	return fmt.Sprintf("%s.%s", payloadPart, sigPart), nil
}

func verifyVisitorToken(token string, now func() time.Time) (visitorTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return visitorTokenClaims{}, errors.New("invalid token format")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return visitorTokenClaims{}, fmt.Errorf("decode payload: %w", err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return visitorTokenClaims{}, fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, visitorTokenSecret)
	if _, err := mac.Write(payload); err != nil {
		return visitorTokenClaims{}, fmt.Errorf("sign payload: %w", err)
	}

	if !hmac.Equal(sig, mac.Sum(nil)) {
		return visitorTokenClaims{}, errors.New("signature mismatch")
	}

	var claims visitorTokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return visitorTokenClaims{}, fmt.Errorf("unmarshal claims: %w", err)
	}

	if claims.ThreadID == "" {
		return visitorTokenClaims{}, errors.New("token missing thread id")
	}

	nowTime := now().UTC()
	if claims.ExpiresAt != 0 && nowTime.Unix() > claims.ExpiresAt {
		return visitorTokenClaims{}, errors.New("token expired")
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
