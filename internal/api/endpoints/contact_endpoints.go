package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/model"
	contactsvc "venue-booking-backend/internal/service/contact"
)

type ContactEndpoints interface {
	Submit(http.ResponseWriter, *http.Request) error
	Contacts(http.ResponseWriter, *http.Request) error
	Contact(http.ResponseWriter, *http.Request) error
}

type contactEndpoints struct {
	service    *contactsvc.Service
	pathPrefix string
}

func NewContactEndpoints(db *database.Database, prefix string) ContactEndpoints {
	return NewContactEndpointsWithService(contactsvc.New(db), prefix)
}

func NewContactEndpointsWithService(service *contactsvc.Service, prefix string) ContactEndpoints {
	return &contactEndpoints{
		service:    service,
		pathPrefix: strings.TrimRight(prefix, "/") + "/contacts/",
	}
}

// Submit is the public contact form.
func (h *contactEndpoints) Submit(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSubmit,
	})
}

func (h *contactEndpoints) Contacts(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleList,
	})
}

func (h *contactEndpoints) Contact(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodDelete: h.handleDelete,
	})
}

func (h *contactEndpoints) handleSubmit(w http.ResponseWriter, r *http.Request) error {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode contact request: %w", err),
		}
	}

	contact, err := h.service.Submit(r.Context(), contactsvc.SubmitParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return mapContactError(err)
	}

	return WriteJSON(w, http.StatusCreated, toContactResponse(contact))
}

func (h *contactEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		return mapContactError(err)
	}

	resp := make([]dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, toContactResponse(c))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *contactEndpoints) handleDelete(w http.ResponseWriter, r *http.Request) error {
	contactID := strings.Trim(strings.TrimPrefix(r.URL.Path, h.pathPrefix), "/")
	if err := h.service.DeleteContact(r.Context(), contactID); err != nil {
		return mapContactError(err)
	}
	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Contact deleted"})
}

func toContactResponse(c model.ContactItem) dto.ContactResponse {
	return dto.ContactResponse{
		ContactID: c.ContactID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func mapContactError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*contactsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("contact service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case contactsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
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
