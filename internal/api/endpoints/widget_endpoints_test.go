package endpoints

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/queue"
	livechatsvc "venue-booking-backend/internal/service/livechat"
	presencesvc "venue-booking-backend/internal/service/presence"
)

type testChatRepository struct {
	mu       sync.Mutex
	messages []model.ChatMessageItem
}

func newTestChatRepository() *testChatRepository {
	return &testChatRepository{}
}

func (m *testChatRepository) CreateMessage(ctx context.Context, message model.ChatMessageItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *testChatRepository) GetMessage(ctx context.Context, messageID string) (model.ChatMessageItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.MessageID == messageID {
			return msg, nil
		}
	}
	return model.ChatMessageItem{}, livechatsvc.ErrNotFound
}

func (m *testChatRepository) ListMessages(ctx context.Context) ([]model.ChatMessageItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ChatMessageItem, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *testChatRepository) ListThreadMessages(ctx context.Context, threadID string) ([]model.ChatMessageItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ChatMessageItem, 0)
	for _, msg := range m.messages {
		if msg.ThreadID == threadID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *testChatRepository) MarkMessageRead(ctx context.Context, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, msg := range m.messages {
		if msg.MessageID == messageID {
			m.messages[i].Read = true
			return nil
		}
	}
	return livechatsvc.ErrNotFound
}

type testProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]model.UserProfileItem
}

func newTestProfileRepository() *testProfileRepository {
	return &testProfileRepository{profiles: make(map[string]model.UserProfileItem)}
}

func (m *testProfileRepository) GetProfile(ctx context.Context, uid string) (model.UserProfileItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[uid]
	if !ok {
		return model.UserProfileItem{}, presencesvc.ErrNotFound
	}
	return profile, nil
}

func (m *testProfileRepository) PutProfile(ctx context.Context, profile model.UserProfileItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UID] = profile
	return nil
}

func (m *testProfileRepository) ListProfiles(ctx context.Context) ([]model.UserProfileItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.UserProfileItem, 0, len(m.profiles))
	for _, profile := range m.profiles {
		out = append(out, profile)
	}
	return out, nil
}

func (m *testProfileRepository) UpdateHeartbeat(ctx context.Context, uid, lastActiveAt string, isOnline *bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[uid]
	if !ok {
		return presencesvc.ErrNotFound
	}
	profile.LastActiveAt = lastActiveAt
	if isOnline != nil {
		profile.IsOnline = isOnline
	}
	m.profiles[uid] = profile
	return nil
}

func setupWidgetHandler(t *testing.T, chatService *livechatsvc.Service, presenceService *presencesvc.Service, addr string) (http.Handler, func()) {
	t.Helper()

	widgetEndpoints := &widgetEndpoints{
		service:  chatService,
		presence: presenceService,
	}

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(addr, queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat/session", server.MakeHTTPHandleFunc(widgetEndpoints.Session))
	mux.HandleFunc("/api/chat/messages", server.MakeHTTPHandleFunc(widgetEndpoints.Messages))
	mux.HandleFunc("/api/presence/heartbeat", server.MakeHTTPHandleFunc(widgetEndpoints.Heartbeat))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestWidgetEndpointsVisitorFlow(t *testing.T) {
	livechatsvc.SetVisitorTokenSecret([]byte("widget-test-secret"))

	repo := newTestChatRepository()
	chatService := livechatsvc.NewWithRepository(repo, fixedTime, nil)
	presenceService := presencesvc.NewWithRepository(newTestProfileRepository(), fixedTime)

	handler, cleanup := setupWidgetHandler(t, chatService, presenceService, ":widget-flow")
	defer cleanup()

	session := doJSONRequest[dto.StartChatSessionResponse](t, handler, http.MethodPost, "/api/chat/session", map[string]interface{}{}, nil, http.StatusCreated)
	if session.ThreadID == "" || session.VisitorToken == "" {
		t.Fatalf("expected thread id and token, got %+v", session)
	}

	msgPayload := map[string]interface{}{
		"token": session.VisitorToken,
		"text":  "  Do you have openings in June?  ",
		"name":  "Sam",
	}
	msg := doJSONRequest[dto.ChatMessageResponse](t, handler, http.MethodPost, "/api/chat/messages", msgPayload, nil, http.StatusCreated)

	if msg.Text != "Do you have openings in June?" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}
	if msg.ThreadID != session.ThreadID {
		t.Fatalf("expected message thread %s, got %s", session.ThreadID, msg.ThreadID)
	}
	if !msg.Own {
		t.Fatal("visitor should see their own message as own")
	}
	if msg.CreatedAt == "" {
		t.Fatal("expected resolved createdAt")
	}

	list := doJSONRequest[dto.ThreadMessagesResponse](t, handler, http.MethodGet, "/api/chat/messages?token="+session.VisitorToken, nil, nil, http.StatusOK)
	if list.ThreadID != session.ThreadID {
		t.Fatalf("expected thread %s, got %s", session.ThreadID, list.ThreadID)
	}
	if len(list.Messages) != 1 || list.Messages[0].MessageID != msg.MessageID {
		t.Fatalf("expected the stored message back, got %+v", list.Messages)
	}
}

func TestWidgetMessageRejectsForgedToken(t *testing.T) {
	livechatsvc.SetVisitorTokenSecret([]byte("widget-test-secret"))

	repo := newTestChatRepository()
	chatService := livechatsvc.NewWithRepository(repo, fixedTime, nil)
	presenceService := presencesvc.NewWithRepository(newTestProfileRepository(), fixedTime)

	handler, cleanup := setupWidgetHandler(t, chatService, presenceService, ":widget-forged")
	defer cleanup()

	payload := map[string]interface{}{
		"token": "bm90LXJlYWw.Zm9yZ2Vk",
		"text":  "hello",
	}
	doJSONRequest[map[string]interface{}](t, handler, http.MethodPost, "/api/chat/messages", payload, nil, http.StatusUnauthorized)
}

func TestWidgetHeartbeat(t *testing.T) {
	livechatsvc.SetVisitorTokenSecret([]byte("widget-test-secret"))

	profiles := newTestProfileRepository()
	chatService := livechatsvc.NewWithRepository(newTestChatRepository(), fixedTime, nil)
	presenceService := presencesvc.NewWithRepository(profiles, fixedTime)

	handler, cleanup := setupWidgetHandler(t, chatService, presenceService, ":widget-heartbeat")
	defer cleanup()

	resp := doJSONRequest[dto.HeartbeatResponse](t, handler, http.MethodPost, "/api/presence/heartbeat", map[string]interface{}{"uid": "user-1"}, nil, http.StatusOK)
	if resp.UID != "user-1" {
		t.Fatalf("expected uid user-1, got %s", resp.UID)
	}

	profile, err := profiles.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected profile created by heartbeat: %v", err)
	}
	if profile.LastActiveAt == "" {
		t.Fatal("expected lastActiveAt recorded")
	}

	doJSONRequest[map[string]interface{}](t, handler, http.MethodPost, "/api/presence/heartbeat", map[string]interface{}{}, nil, http.StatusBadRequest)
}
