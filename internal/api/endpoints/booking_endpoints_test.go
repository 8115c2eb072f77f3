package endpoints

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/middleware"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/mailer"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/queue"
	bookingsvc "venue-booking-backend/internal/service/booking"
)

type testBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]model.BookingItem
}

func newTestBookingRepository() *testBookingRepository {
	return &testBookingRepository{bookings: make(map[string]model.BookingItem)}
}

func (m *testBookingRepository) CreateBooking(ctx context.Context, booking model.BookingItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *testBookingRepository) GetBooking(ctx context.Context, bookingID string) (model.BookingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return model.BookingItem{}, bookingsvc.ErrNotFound
	}
	return booking, nil
}

func (m *testBookingRepository) ListBookings(ctx context.Context) ([]model.BookingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.BookingItem, 0, len(m.bookings))
	for _, booking := range m.bookings {
		out = append(out, booking)
	}
	return out, nil
}

func (m *testBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus, adminMessage, updatedAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return bookingsvc.ErrNotFound
	}
	booking.Status = status
	booking.AdminMessage = adminMessage
	booking.UpdatedAt = updatedAt
	m.bookings[bookingID] = booking
	return nil
}

func (m *testBookingRepository) DeleteBooking(ctx context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[bookingID]; !ok {
		return bookingsvc.ErrNotFound
	}
	delete(m.bookings, bookingID)
	return nil
}

type stubMailer struct {
	mu   sync.Mutex
	sent []mailer.BookingStatusEmail
	err  error
}

func (m *stubMailer) SendBookingStatusEmail(ctx context.Context, msg mailer.BookingStatusEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func setupBookingHandler(t *testing.T, svc *bookingsvc.Service, addr string) (http.Handler, func()) {
	t.Helper()

	bookingEndpoints := &bookingEndpoints{
		service:    svc,
		pathPrefix: "/api/bookings/",
	}

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(addr, queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/public/bookings", server.MakeHTTPHandleFunc(bookingEndpoints.Create))
	mux.HandleFunc("/api/bookings", server.MakeHTTPHandleFunc(bookingEndpoints.Bookings, middleware.ValidateAdminJWT))
	mux.HandleFunc("/api/bookings/", server.MakeHTTPHandleFunc(bookingEndpoints.Booking, middleware.ValidateAdminJWT))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestBookingEndpointsLifecycle(t *testing.T) {
	setupTestJWT(t)

	repo := newTestBookingRepository()
	mail := &stubMailer{}
	service := bookingsvc.NewWithRepository(repo, mail, fixedTime, nil)
	adminRepo := newTestAdminRepository()

	handler, cleanup := setupBookingHandler(t, service, ":booking-lifecycle")
	defer cleanup()
	headers := adminAuthHeaders(t, adminRepo, "op-1")

	createPayload := map[string]interface{}{
		"name":       "Sam Guest",
		"email":      "Sam@Example.com",
		"venueTitle": "The Orchard Hall",
		"eventDate":  "2024-06-12",
		"guests":     80,
	}
	created := doJSONRequest[dto.BookingResponse](t, handler, http.MethodPost, "/api/public/bookings", createPayload, nil, http.StatusCreated)

	if created.Status != "pending" {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.Email != "sam@example.com" {
		t.Fatalf("expected normalized email, got %s", created.Email)
	}

	listed := doJSONRequest[[]dto.BookingResponse](t, handler, http.MethodGet, "/api/bookings", nil, headers, http.StatusOK)
	if len(listed) != 1 || listed[0].BookingID != created.BookingID {
		t.Fatalf("expected the created booking listed, got %+v", listed)
	}

	statusPayload := map[string]interface{}{
		"status":       "accepted",
		"adminMessage": "See you in June",
	}
	updated := doJSONRequest[dto.BookingStatusResponse](t, handler, http.MethodPatch, "/api/bookings/"+created.BookingID, statusPayload, headers, http.StatusOK)

	if updated.Booking.Status != "accepted" {
		t.Fatalf("expected accepted, got %s", updated.Booking.Status)
	}
	if updated.EmailError != "" {
		t.Fatalf("expected clean email send, got %s", updated.EmailError)
	}
	if len(mail.sent) != 1 || mail.sent[0].ToEmail != "sam@example.com" {
		t.Fatalf("expected one status email, got %+v", mail.sent)
	}

	doJSONRequest[ApiMessageResponse](t, handler, http.MethodDelete, "/api/bookings/"+created.BookingID, nil, headers, http.StatusOK)
	remaining := doJSONRequest[[]dto.BookingResponse](t, handler, http.MethodGet, "/api/bookings", nil, headers, http.StatusOK)
	if len(remaining) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", remaining)
	}
}

func TestBookingStatusEmailFailureIsReported(t *testing.T) {
	setupTestJWT(t)

	repo := newTestBookingRepository()
	mail := &stubMailer{err: errors.New("smtp relay down")}
	service := bookingsvc.NewWithRepository(repo, mail, fixedTime, nil)
	adminRepo := newTestAdminRepository()

	handler, cleanup := setupBookingHandler(t, service, ":booking-emailerr")
	defer cleanup()
	headers := adminAuthHeaders(t, adminRepo, "op-1")

	created := doJSONRequest[dto.BookingResponse](t, handler, http.MethodPost, "/api/public/bookings", map[string]interface{}{
		"name":  "Sam Guest",
		"email": "sam@example.com",
	}, nil, http.StatusCreated)

	updated := doJSONRequest[dto.BookingStatusResponse](t, handler, http.MethodPatch, "/api/bookings/"+created.BookingID, map[string]interface{}{
		"status": "rejected",
	}, headers, http.StatusOK)

	if updated.Booking.Status != "rejected" {
		t.Fatalf("status change must survive a failed email, got %s", updated.Booking.Status)
	}
	if updated.EmailError == "" {
		t.Fatal("expected the email failure surfaced")
	}
}

func TestBookingRejectsUnknownStatus(t *testing.T) {
	setupTestJWT(t)

	repo := newTestBookingRepository()
	service := bookingsvc.NewWithRepository(repo, &stubMailer{}, fixedTime, nil)
	adminRepo := newTestAdminRepository()

	handler, cleanup := setupBookingHandler(t, service, ":booking-badstatus")
	defer cleanup()
	headers := adminAuthHeaders(t, adminRepo, "op-1")

	created := doJSONRequest[dto.BookingResponse](t, handler, http.MethodPost, "/api/public/bookings", map[string]interface{}{
		"name":  "Sam Guest",
		"email": "sam@example.com",
	}, nil, http.StatusCreated)

	doJSONRequest[map[string]interface{}](t, handler, http.MethodPatch, "/api/bookings/"+created.BookingID, map[string]interface{}{
		"status": "maybe",
	}, headers, http.StatusBadRequest)
}
