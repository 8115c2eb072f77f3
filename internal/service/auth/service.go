package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"venue-booking-backend/internal/database"
	internaljwt "venue-booking-backend/internal/jwt"
	"venue-booking-backend/internal/model"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeConflict     ErrorCode = "conflict"
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

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type Identity struct {
	AdminID string
	Email   string
}

type AuthResult struct {
	Admin  model.AdminUserItem
	Tokens internaljwt.TokenResponse
}

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh

// SetTokenIssuer swaps the token issuer out in tests, where no Redis backend
// is available for refresh tokens. Passing nil restores the default.
func SetTokenIssuer(issuer func(internaljwt.Admin, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	name := strings.TrimSpace(params.Name)
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if name == "" || email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}
	if len(password) < 8 {
		return AuthResult{}, newError(ErrorCodeValidation, "password must be at least 8 characters", nil)
	}

	if _, err := s.repo.GetAdminByEmail(ctx, email); err == nil {
		return AuthResult{}, newError(ErrorCodeConflict, "email already registered", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to check existing admin", err)
	}

	jwtAdmin, err := internaljwt.NewAdmin(internaljwt.RegisterAdmin{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to prepare admin", err)
	}
	jwtAdmin.Id = uuid.NewString()

	admin := model.AdminUserItem{
		AdminID:      jwtAdmin.Id,
		Email:        email,
		Name:         name,
		PasswordHash: jwtAdmin.PasswordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to save admin", err)
	}

	tokens, err := createTokenWithRefresh(jwtAdmin, internaljwt.RoleAdmin, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		Admin:  admin,
		Tokens: tokens,
	}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "failed to load admin", err)
	}

	if !internaljwt.ValidatePassword(admin.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	jwtAdmin := internaljwt.Admin{
		Id:           admin.AdminID,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
	}

	tokens, err := createTokenWithRefresh(jwtAdmin, internaljwt.RoleAdmin, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		Admin:  admin,
		Tokens: tokens,
	}, nil
}

func (s *Service) Refresh(refreshToken string) (internaljwt.TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return internaljwt.TokenResponse{}, newError(ErrorCodeValidation, "refresh token is required", nil)
	}

	tokens, err := internaljwt.RefreshTokens(refreshToken, internaljwt.RoleAdmin)
	if err != nil {
		return internaljwt.TokenResponse{}, newError(ErrorCodeUnauthorized, "invalid refresh token", err)
	}
	return tokens, nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (model.AdminUserItem, error) {
	adminID := strings.TrimSpace(identity.AdminID)
	if adminID == "" {
		return model.AdminUserItem{}, newError(ErrorCodeUnauthorized, "invalid admin identity", nil)
	}

	admin, err := s.repo.GetAdmin(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.AdminUserItem{}, newError(ErrorCodeUnauthorized, "admin not found", err)
		}
		return model.AdminUserItem{}, newError(ErrorCodeInternal, "failed to load admin", err)
	}
	return admin, nil
}

func (s *Service) IdentityFromAuthorizationHeader(header string) (Identity, error) {
	authHeader := strings.TrimSpace(header)
	if authHeader == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "missing authorization header", nil)
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return s.IdentityFromToken(token)
}

func (s *Service) IdentityFromToken(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "empty token", nil)
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleAdmin)
	if err != nil {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", err)
	}

	adminID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	if adminID == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "token missing identifiers", nil)
	}

	return Identity{
		AdminID: adminID,
		Email:   email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
