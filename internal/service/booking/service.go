package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/mailer"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/websocket"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
	ErrorCodeInternal   ErrorCode = "internal_error"
	ErrorCodeEmail      ErrorCode = "email_error"
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

type CreateBookingParams struct {
	Name          string
	Email         string
	Phone         string
	VenueID       string
	VenueTitle    string
	EventDate     string
	EventCategory string
	Guests        int
	Message       string
}

type StatusUpdateParams struct {
	BookingID    string
	Status       model.BookingStatus
	AdminMessage string
}

// StatusUpdateResult reports both halves of a status change. EmailErr is set
// when the status landed but the notification email did not; the caller
// surfaces it without treating the update as failed.
type StatusUpdateResult struct {
	Booking  model.BookingItem
	EmailErr error
}

type PublishFunc func(roomID string, payload interface{}) error

type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
	Status    string `json:"status,omitempty"`
}

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

type Service struct {
	repo    Repository
	mailer  mailer.Mailer
	now     func() time.Time
	publish PublishFunc
}

func New(db *database.Database, mail mailer.Mailer) *Service {
	return &Service{
		repo:    NewDynamoRepository(db),
		mailer:  mail,
		now:     time.Now,
		publish: websocket.Publish,
	}
}

func NewWithRepository(repo Repository, mail mailer.Mailer, now func() time.Time, publish PublishFunc) *Service {
	if now == nil {
		now = time.Now
	}
	if publish == nil {
		publish = func(string, interface{}) error { return nil }
	}
	return &Service{
		repo:    repo,
		mailer:  mail,
		now:     now,
		publish: publish,
	}
}

func (s *Service) CreateBooking(ctx context.Context, params CreateBookingParams) (model.BookingItem, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" {
		return model.BookingItem{}, newError(ErrorCodeValidation, "name is required", nil)
	}
	if email == "" {
		return model.BookingItem{}, newError(ErrorCodeValidation, "email is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	booking := model.BookingItem{
		BookingID:     uuid.NewString(),
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(params.Phone),
		VenueID:       strings.TrimSpace(params.VenueID),
		VenueTitle:    strings.TrimSpace(params.VenueTitle),
		EventDate:     strings.TrimSpace(params.EventDate),
		EventCategory: strings.TrimSpace(params.EventCategory),
		Guests:        params.Guests,
		Message:       strings.TrimSpace(params.Message),
		Status:        model.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return model.BookingItem{}, newError(ErrorCodeInternal, "failed to store booking", err)
	}

	_ = s.publish(websocket.BookingsRoom, Event{
		Type:      EventBookingCreated,
		BookingID: booking.BookingID,
		Status:    string(booking.Status),
	})

	return booking, nil
}

// ListBookings returns every booking, newest first.
func (s *Service) ListBookings(ctx context.Context) ([]model.BookingItem, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list bookings", err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt != bookings[j].CreatedAt {
			return bookings[i].CreatedAt > bookings[j].CreatedAt
		}
		return bookings[i].BookingID < bookings[j].BookingID
	})
	return bookings, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID string) (model.BookingItem, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return model.BookingItem{}, newError(ErrorCodeValidation, "bookingId is required", nil)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.BookingItem{}, newError(ErrorCodeNotFound, "booking not found", err)
		}
		return model.BookingItem{}, newError(ErrorCodeInternal, "failed to load booking", err)
	}
	return booking, nil
}

// UpdateStatus accepts or rejects a pending booking and emails the guest.
// The status write is the source of truth: a failed email never rolls the
// decision back, it is reported in the result for the operator to retry.
func (s *Service) UpdateStatus(ctx context.Context, params StatusUpdateParams) (StatusUpdateResult, error) {
	bookingID := strings.TrimSpace(params.BookingID)
	if bookingID == "" {
		return StatusUpdateResult{}, newError(ErrorCodeValidation, "bookingId is required", nil)
	}
	if params.Status != model.BookingStatusAccepted && params.Status != model.BookingStatusRejected {
		return StatusUpdateResult{}, newError(ErrorCodeValidation, "status must be accepted or rejected", nil)
	}

	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusUpdateResult{}, newError(ErrorCodeNotFound, "booking not found", err)
		}
		return StatusUpdateResult{}, newError(ErrorCodeInternal, "failed to load booking", err)
	}

	if booking.Status == params.Status {
		return StatusUpdateResult{}, newError(ErrorCodeConflict, "booking already "+string(params.Status), nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	adminMessage := strings.TrimSpace(params.AdminMessage)
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, params.Status, adminMessage, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusUpdateResult{}, newError(ErrorCodeNotFound, "booking not found", err)
		}
		return StatusUpdateResult{}, newError(ErrorCodeInternal, "failed to update booking", err)
	}

	booking.Status = params.Status
	if adminMessage != "" {
		booking.AdminMessage = adminMessage
	}
	booking.UpdatedAt = now

	_ = s.publish(websocket.BookingsRoom, Event{
		Type:      EventBookingUpdated,
		BookingID: booking.BookingID,
		Status:    string(booking.Status),
	})

	result := StatusUpdateResult{Booking: booking}
	if s.mailer != nil {
		err := s.mailer.SendBookingStatusEmail(ctx, mailer.BookingStatusEmail{
			Status:        string(booking.Status),
			ToEmail:       booking.Email,
			ToName:        booking.Name,
			VenueTitle:    booking.VenueTitle,
			EventDate:     booking.EventDate,
			EventCategory: booking.EventCategory,
			AdminMessage:  booking.AdminMessage,
		})
		if err != nil {
			result.EmailErr = newError(ErrorCodeEmail, "booking updated but notification email failed", err)
		}
	}
	return result, nil
}

func (s *Service) DeleteBooking(ctx context.Context, bookingID string) error {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return newError(ErrorCodeValidation, "bookingId is required", nil)
	}

	if _, err := s.repo.GetBooking(ctx, bookingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrorCodeNotFound, "booking not found", err)
		}
		return newError(ErrorCodeInternal, "failed to load booking", err)
	}

	if err := s.repo.DeleteBooking(ctx, bookingID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete booking", err)
	}

	_ = s.publish(websocket.BookingsRoom, Event{
		Type:      EventBookingDeleted,
		BookingID: bookingID,
	})
	return nil
}
