package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/middleware"
	"venue-booking-backend/internal/dto"
	internaljwt "venue-booking-backend/internal/jwt"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/queue"
	authsvc "venue-booking-backend/internal/service/auth"
)

type testAdminRepository struct {
	mu     sync.Mutex
	admins map[string]model.AdminUserItem
}

func newTestAdminRepository() *testAdminRepository {
	return &testAdminRepository{admins: make(map[string]model.AdminUserItem)}
}

func (m *testAdminRepository) CreateAdmin(ctx context.Context, admin model.AdminUserItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *testAdminRepository) GetAdmin(ctx context.Context, adminID string) (model.AdminUserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[adminID]
	if !ok {
		return model.AdminUserItem{}, authsvc.ErrNotFound
	}
	return admin, nil
}

func (m *testAdminRepository) GetAdminByEmail(ctx context.Context, email string) (model.AdminUserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return model.AdminUserItem{}, authsvc.ErrNotFound
}

func fixedTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func setupTestJWT(t *testing.T) {
	t.Helper()
	internaljwt.RoleSecrets[internaljwt.RoleAdmin] = "test-secret"
	authsvc.SetTokenIssuer(func(admin internaljwt.Admin, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
		token, err := internaljwt.CreateToken(admin, role, validUntil)
		if err != nil {
			return internaljwt.TokenResponse{}, err
		}
		return internaljwt.TokenResponse{
			AccessToken: token,
		}, nil
	})
	t.Cleanup(func() {
		authsvc.SetTokenIssuer(nil)
	})
}

func setupAuthHandler(t *testing.T, svc *authsvc.Service, addr string) (http.Handler, func()) {
	t.Helper()

	authEndpoints := &authEndpoints{service: svc}

	queueManager := queue.NewRequestQueueManager(10, 1)

	server := api.NewAPIServer(addr, queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", server.MakeHTTPHandleFunc(authEndpoints.Register))
	mux.HandleFunc("/api/auth/login", server.MakeHTTPHandleFunc(authEndpoints.Login))
	mux.HandleFunc("/api/auth/me", server.MakeHTTPHandleFunc(authEndpoints.Me, middleware.ValidateAdminJWT))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func doJSONRequest[T any](t *testing.T, handler http.Handler, method, target string, body interface{}, headers map[string]string, expectedStatus int) T {
	t.Helper()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d: %s", expectedStatus, rec.Code, rec.Body.String())
	}

	var result T
	if expectedStatus != http.StatusNoContent {
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}

	return result
}

func TestAuthEndpointsEndToEnd(t *testing.T) {
	setupTestJWT(t)
	repo := newTestAdminRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service, ":auth-e2e")
	defer cleanup()

	registerPayload := map[string]interface{}{
		"name":     "Olivia Operator",
		"email":    "olivia@example.com",
		"password": "Sup3rS3cret!",
	}

	registerResp := doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/auth/register", registerPayload, nil, http.StatusCreated)

	if registerResp.Admin.Email != "olivia@example.com" {
		t.Fatalf("expected normalized email, got %s", registerResp.Admin.Email)
	}
	if registerResp.AccessToken == "" {
		t.Fatal("expected access token in register response")
	}

	loginPayload := map[string]interface{}{
		"email":    "olivia@example.com",
		"password": "Sup3rS3cret!",
	}

	loginResp := doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/auth/login", loginPayload, nil, http.StatusOK)

	if loginResp.AccessToken == "" {
		t.Fatal("expected access token in login response")
	}

	meHeaders := map[string]string{
		"Authorization": "Bearer " + loginResp.AccessToken,
	}

	meResp := doJSONRequest[dto.AdminResponse](t, handler, http.MethodGet, "/api/auth/me", nil, meHeaders, http.StatusOK)

	if meResp.AdminID != registerResp.Admin.AdminID {
		t.Fatalf("expected admin ID %s, got %s", registerResp.Admin.AdminID, meResp.AdminID)
	}
}

func TestAuthLoginRejectsWrongPassword(t *testing.T) {
	setupTestJWT(t)
	repo := newTestAdminRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service, ":auth-badpass")
	defer cleanup()

	registerPayload := map[string]interface{}{
		"name":     "Olivia Operator",
		"email":    "olivia@example.com",
		"password": "Sup3rS3cret!",
	}
	doJSONRequest[dto.AuthResponse](t, handler, http.MethodPost, "/api/auth/register", registerPayload, nil, http.StatusCreated)

	loginPayload := map[string]interface{}{
		"email":    "olivia@example.com",
		"password": "wrong",
	}
	doJSONRequest[map[string]interface{}](t, handler, http.MethodPost, "/api/auth/login", loginPayload, nil, http.StatusUnauthorized)
}

func TestAuthMeRequiresToken(t *testing.T) {
	setupTestJWT(t)
	repo := newTestAdminRepository()
	service := authsvc.NewWithRepository(repo, fixedTime)

	handler, cleanup := setupAuthHandler(t, service, ":auth-noauth")
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
