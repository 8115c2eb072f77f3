package presence

import (
	"context"
	"errors"
	"strings"
	"time"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
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

type Service struct {
	repo Repository
	now  func() time.Time
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

// Snapshot loads every user profile and keys it by uid, the lookup shape the
// messenger needs to decorate its thread list. Unknown visitors simply miss
// the map and render with indeterminate presence.
func (s *Service) Snapshot(ctx context.Context) (map[string]chat.Presence, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list user profiles", err)
	}

	byUID := make(map[string]chat.Presence, len(profiles))
	for _, profile := range profiles {
		if profile.UID == "" {
			continue
		}
		byUID[profile.UID] = chat.PresenceFromProfile(profile)
	}
	return byUID, nil
}

// StatusFor evaluates a single user's presence. The second return is false
// when the uid is unknown, which consumers render as no badge at all rather
// than an offline one.
func (s *Service) StatusFor(ctx context.Context, uid string) (chat.PresenceStatus, bool, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return chat.PresenceStatus{}, false, nil
	}

	profile, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return chat.PresenceStatus{}, false, nil
		}
		return chat.PresenceStatus{}, false, newError(ErrorCodeInternal, "failed to load user profile", err)
	}

	presence := chat.PresenceFromProfile(profile)
	status, ok := chat.EvaluatePresence(&presence, s.now())
	return status, ok, nil
}

// Heartbeat records activity for the uid. Missing profiles are created on
// the fly so a signed-in visitor whose profile write raced the heartbeat
// still shows up online.
func (s *Service) Heartbeat(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return newError(ErrorCodeValidation, "uid is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	err := s.repo.UpdateHeartbeat(ctx, uid, now, nil)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return newError(ErrorCodeInternal, "failed to record heartbeat", err)
	}

	profile := model.UserProfileItem{
		UID:          uid,
		LastActiveAt: now,
		CreatedAt:    now,
	}
	if err := s.repo.PutProfile(ctx, profile); err != nil {
		return newError(ErrorCodeInternal, "failed to create profile", err)
	}
	return nil
}

// SetOnline flips the realtime override flag. It also refreshes the
// heartbeat so that clearing the flag does not immediately report the user
// as long-offline.
func (s *Service) SetOnline(ctx context.Context, uid string, online bool) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return newError(ErrorCodeValidation, "uid is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateHeartbeat(ctx, uid, now, &online); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrorCodeNotFound, "user profile not found", err)
		}
		return newError(ErrorCodeInternal, "failed to update presence", err)
	}
	return nil
}
