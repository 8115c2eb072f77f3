package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	internaljwt "venue-booking-backend/internal/jwt"
	"venue-booking-backend/internal/model"
)

type memoryRepository struct {
	mu     sync.Mutex
	admins map[string]model.AdminUserItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		admins: make(map[string]model.AdminUserItem),
	}
}

func (m *memoryRepository) CreateAdmin(ctx context.Context, admin model.AdminUserItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *memoryRepository) GetAdmin(ctx context.Context, adminID string) (model.AdminUserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[adminID]
	if !ok {
		return model.AdminUserItem{}, ErrNotFound
	}
	return admin, nil
}

func (m *memoryRepository) GetAdminByEmail(ctx context.Context, email string) (model.AdminUserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return model.AdminUserItem{}, ErrNotFound
}

func useFakeTokenIssuer(t *testing.T) {
	t.Helper()
	SetTokenIssuer(func(admin internaljwt.Admin, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
		return internaljwt.TokenResponse{
			AccessToken:  "access-" + admin.Id,
			RefreshToken: "refresh-" + admin.Id,
		}, nil
	})
	t.Cleanup(func() {
		SetTokenIssuer(nil)
	})
}

func TestRegisterCreatesAdminWithHashedPassword(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })
	useFakeTokenIssuer(t)

	result, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Olivia",
		Email:    "Olivia@Venue.Example",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if result.Admin.Email != "olivia@venue.example" {
		t.Fatalf("expected normalized email, got %q", result.Admin.Email)
	}
	if result.Admin.PasswordHash == "" || result.Admin.PasswordHash == "correct horse" {
		t.Fatal("password must be stored hashed")
	}
	if result.Tokens.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)
	useFakeTokenIssuer(t)

	repo.admins["a1"] = model.AdminUserItem{AdminID: "a1", Email: "olivia@venue.example"}

	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Olivia",
		Email:    "olivia@venue.example",
		Password: "correct horse",
	})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), nil)
	useFakeTokenIssuer(t)

	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Olivia",
		Email:    "olivia@venue.example",
		Password: "short",
	})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginValidatesCredentials(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)
	useFakeTokenIssuer(t)

	registered, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Olivia",
		Email:    "olivia@venue.example",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginParams{
		Email:    "olivia@venue.example",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.Admin.AdminID != registered.Admin.AdminID {
		t.Fatalf("expected admin %s, got %s", registered.Admin.AdminID, result.Admin.AdminID)
	}

	_, err = svc.Login(context.Background(), LoginParams{
		Email:    "olivia@venue.example",
		Password: "wrong password",
	})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginParams{
		Email:    "nobody@venue.example",
		Password: "correct horse",
	})
	svcErr, ok = err.(*Error)
	if !ok || svcErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	token, err := internaljwt.CreateToken(internaljwt.Admin{
		Id:    "admin-1",
		Email: "olivia@venue.example",
	}, internaljwt.RoleAdmin, time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("CreateToken error: %v", err)
	}

	identity, err := svc.IdentityFromAuthorizationHeader("Bearer " + token)
	if err != nil {
		t.Fatalf("IdentityFromAuthorizationHeader error: %v", err)
	}
	if identity.AdminID != "admin-1" || identity.Email != "olivia@venue.example" {
		t.Fatalf("unexpected identity %+v", identity)
	}

	if _, err := svc.IdentityFromAuthorizationHeader(""); err == nil {
		t.Fatal("expected error for missing header")
	}
	if _, err := svc.IdentityFromAuthorizationHeader("Token abc"); err == nil {
		t.Fatal("expected error for non-bearer header")
	}
	if _, err := svc.IdentityFromToken(token + "tampered"); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestMeLoadsAdmin(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.admins["a1"] = model.AdminUserItem{AdminID: "a1", Name: "Olivia"}

	admin, err := svc.Me(context.Background(), Identity{AdminID: "a1"})
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if admin.Name != "Olivia" {
		t.Fatalf("unexpected admin %+v", admin)
	}

	if _, err := svc.Me(context.Background(), Identity{AdminID: "ghost"}); err == nil {
		t.Fatal("expected error for unknown admin")
	}
}
