package endpoints

import (
	"fmt"
	"net/http"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	presencesvc "venue-booking-backend/internal/service/presence"
)

type PresenceEndpoints interface {
	Status(http.ResponseWriter, *http.Request) error
}

type presenceEndpoints struct {
	service *presencesvc.Service
}

func NewPresenceEndpoints(db *database.Database) PresenceEndpoints {
	return &presenceEndpoints{service: presencesvc.New(db)}
}

func NewPresenceEndpointsWithService(service *presencesvc.Service) PresenceEndpoints {
	return &presenceEndpoints{service: service}
}

func (h *presenceEndpoints) Status(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleStatus,
	})
}

func (h *presenceEndpoints) handleStatus(w http.ResponseWriter, r *http.Request) error {
	uid := r.URL.Query().Get("uid")
	if uid == "" {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "uid is required",
			ErrorLog:   fmt.Errorf("presence status without uid"),
		}
	}

	status, known, err := h.service.StatusFor(r.Context(), uid)
	if err != nil {
		return mapPresenceError(err)
	}

	resp := dto.PresenceStatusResponse{
		UID:   uid,
		Known: known,
	}
	if known {
		resp.Presence = presenceResponse(status)
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func presenceResponse(status chat.PresenceStatus) *dto.PresenceResponse {
	return &dto.PresenceResponse{
		Online:        status.Online,
		Label:         status.Label,
		LastSeenLabel: status.LastSeenLabel,
	}
}
