package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/mailer"
	"venue-booking-backend/internal/model"
	bookingsvc "venue-booking-backend/internal/service/booking"
)

type BookingEndpoints interface {
	Create(http.ResponseWriter, *http.Request) error
	Bookings(http.ResponseWriter, *http.Request) error
	Booking(http.ResponseWriter, *http.Request) error
}

type bookingEndpoints struct {
	service    *bookingsvc.Service
	pathPrefix string
}

func NewBookingEndpoints(db *database.Database, mail mailer.Mailer, prefix string) BookingEndpoints {
	return NewBookingEndpointsWithService(bookingsvc.New(db, mail), prefix)
}

func NewBookingEndpointsWithService(service *bookingsvc.Service, prefix string) BookingEndpoints {
	return &bookingEndpoints{
		service:    service,
		pathPrefix: strings.TrimRight(prefix, "/") + "/bookings/",
	}
}

// Create is the public booking form submission.
func (h *bookingEndpoints) Create(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreate,
	})
}

func (h *bookingEndpoints) Bookings(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleList,
	})
}

func (h *bookingEndpoints) Booking(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleGet,
		http.MethodPatch:  h.handleUpdateStatus,
		http.MethodDelete: h.handleDelete,
	})
}

func (h *bookingEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode booking request: %w", err),
		}
	}

	booking, err := h.service.CreateBooking(r.Context(), bookingsvc.CreateBookingParams{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		VenueID:       req.VenueID,
		VenueTitle:    req.VenueTitle,
		EventDate:     req.EventDate,
		EventCategory: req.EventCategory,
		Guests:        req.Guests,
		Message:       req.Message,
	})
	if err != nil {
		return mapBookingError(err)
	}

	return WriteJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *bookingEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		return mapBookingError(err)
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookingResponse(booking))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *bookingEndpoints) handleGet(w http.ResponseWriter, r *http.Request) error {
	booking, err := h.service.GetBooking(r.Context(), h.bookingID(r))
	if err != nil {
		return mapBookingError(err)
	}
	return WriteJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *bookingEndpoints) handleUpdateStatus(w http.ResponseWriter, r *http.Request) error {
	var req dto.BookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode booking status request: %w", err),
		}
	}

	result, err := h.service.UpdateStatus(r.Context(), bookingsvc.StatusUpdateParams{
		BookingID:    h.bookingID(r),
		Status:       model.BookingStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		AdminMessage: req.AdminMessage,
	})
	if err != nil {
		return mapBookingError(err)
	}

	resp := dto.BookingStatusResponse{
		Booking: toBookingResponse(result.Booking),
	}
	if result.EmailErr != nil {
		resp.EmailError = result.EmailErr.Error()
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *bookingEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteBooking(r.Context(), h.bookingID(r)); err != nil {
		return mapBookingError(err)
	}
	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Booking deleted"})
}

func (h *bookingEndpoints) bookingID(r *http.Request) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, h.pathPrefix), "/")
}

func toBookingResponse(b model.BookingItem) dto.BookingResponse {
	return dto.BookingResponse{
		BookingID:     b.BookingID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		VenueID:       b.VenueID,
		VenueTitle:    b.VenueTitle,
		EventDate:     b.EventDate,
		EventCategory: b.EventCategory,
		Guests:        b.Guests,
		Message:       b.Message,
		Status:        string(b.Status),
		AdminMessage:  b.AdminMessage,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func mapBookingError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*bookingsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("booking service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case bookingsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case bookingsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case bookingsvc.ErrorCodeConflict:
		return &HTTPError{
			StatusCode: http.StatusConflict,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   errorLog,
		}
	}
}
