package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/model"
	catalogsvc "venue-booking-backend/internal/service/catalog"
)

type CatalogEndpoints interface {
	PublicVenues(http.ResponseWriter, *http.Request) error
	PublicVenue(http.ResponseWriter, *http.Request) error
	PublicPortfolio(http.ResponseWriter, *http.Request) error
	PublicTeamMembers(http.ResponseWriter, *http.Request) error
	Venues(http.ResponseWriter, *http.Request) error
	Venue(http.ResponseWriter, *http.Request) error
	Portfolio(http.ResponseWriter, *http.Request) error
	PortfolioEntry(http.ResponseWriter, *http.Request) error
	TeamMembers(http.ResponseWriter, *http.Request) error
	TeamMember(http.ResponseWriter, *http.Request) error
	Dashboard(http.ResponseWriter, *http.Request) error
}

type catalogEndpoints struct {
	service         *catalogsvc.Service
	venuePrefix     string
	portfolioPrefix string
	teamPrefix      string
}

func NewCatalogEndpoints(db *database.Database, prefix string) CatalogEndpoints {
	return NewCatalogEndpointsWithService(catalogsvc.New(db), prefix)
}

func NewCatalogEndpointsWithService(service *catalogsvc.Service, prefix string) CatalogEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &catalogEndpoints{
		service:         service,
		venuePrefix:     base + "/venues/",
		portfolioPrefix: base + "/portfolio/",
		teamPrefix:      base + "/team/",
	}
}

// Public* variants back the visitor site: read-only views of the same data
// the admin console manages.
func (h *catalogEndpoints) PublicVenues(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListVenues,
	})
}

func (h *catalogEndpoints) PublicVenue(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleGetVenue,
	})
}

func (h *catalogEndpoints) PublicPortfolio(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListPortfolio,
	})
}

func (h *catalogEndpoints) PublicTeamMembers(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListTeam,
	})
}

func (h *catalogEndpoints) Venues(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListVenues,
		http.MethodPost: h.handleSaveVenue,
	})
}

func (h *catalogEndpoints) Venue(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:    h.handleGetVenue,
		http.MethodDelete: h.handleDeleteVenue,
	})
}

func (h *catalogEndpoints) Portfolio(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListPortfolio,
		http.MethodPost: h.handleSavePortfolio,
	})
}

func (h *catalogEndpoints) PortfolioEntry(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodDelete: h.handleDeletePortfolio,
	})
}

func (h *catalogEndpoints) TeamMembers(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListTeam,
		http.MethodPost: h.handleSaveTeamMember,
	})
}

func (h *catalogEndpoints) TeamMember(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodDelete: h.handleDeleteTeamMember,
	})
}

func (h *catalogEndpoints) Dashboard(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleDashboard,
	})
}

func (h *catalogEndpoints) handleListVenues(w http.ResponseWriter, r *http.Request) error {
	venues, err := h.service.ListVenues(r.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	resp := make([]dto.VenueResponse, 0, len(venues))
	for _, v := range venues {
		resp = append(resp, toVenueResponse(v))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *catalogEndpoints) handleSaveVenue(w http.ResponseWriter, r *http.Request) error {
	var req dto.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode venue request: %w", err),
		}
	}

	venue, err := h.service.SaveVenue(r.Context(), catalogsvc.VenueParams{
		VenueID:     req.VenueID,
		Title:       req.Title,
		Location:    req.Location,
		Budget:      req.Budget,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		return mapCatalogError(err)
	}

	status := http.StatusOK
	if req.VenueID == "" {
		status = http.StatusCreated
	}
	return WriteJSON(w, status, toVenueResponse(venue))
}

func (h *catalogEndpoints) handleGetVenue(w http.ResponseWriter, r *http.Request) error {
	venue, err := h.service.GetVenue(r.Context(), pathTail(r, h.venuePrefix))
	if err != nil {
		return mapCatalogError(err)
	}
	return WriteJSON(w, http.StatusOK, toVenueResponse(venue))
}

func (h *catalogEndpoints) handleDeleteVenue(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteVenue(r.Context(), pathTail(r, h.venuePrefix)); err != nil {
		return mapCatalogError(err)
	}
	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Venue deleted"})
}

func (h *catalogEndpoints) handleListPortfolio(w http.ResponseWriter, r *http.Request) error {
	entries, err := h.service.ListPortfolio(r.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	resp := make([]dto.PortfolioResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toPortfolioResponse(e))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *catalogEndpoints) handleSavePortfolio(w http.ResponseWriter, r *http.Request) error {
	var req dto.PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode portfolio request: %w", err),
		}
	}

	entry, err := h.service.SavePortfolioEntry(r.Context(), catalogsvc.PortfolioParams{
		EntryID:     req.EntryID,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Client:      req.Client,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		return mapCatalogError(err)
	}

	status := http.StatusOK
	if req.EntryID == "" {
		status = http.StatusCreated
	}
	return WriteJSON(w, status, toPortfolioResponse(entry))
}

func (h *catalogEndpoints) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeletePortfolioEntry(r.Context(), pathTail(r, h.portfolioPrefix)); err != nil {
		return mapCatalogError(err)
	}
	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Portfolio entry deleted"})
}

func (h *catalogEndpoints) handleListTeam(w http.ResponseWriter, r *http.Request) error {
	members, err := h.service.ListTeamMembers(r.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	resp := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toTeamMemberResponse(m))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *catalogEndpoints) handleSaveTeamMember(w http.ResponseWriter, r *http.Request) error {
	var req dto.TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode team member request: %w", err),
		}
	}

	member, err := h.service.SaveTeamMember(r.Context(), catalogsvc.TeamMemberParams{
		MemberID:    req.MemberID,
		Name:        req.Name,
		Designation: req.Designation,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return mapCatalogError(err)
	}

	status := http.StatusOK
	if req.MemberID == "" {
		status = http.StatusCreated
	}
	return WriteJSON(w, status, toTeamMemberResponse(member))
}

func (h *catalogEndpoints) handleDeleteTeamMember(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteTeamMember(r.Context(), pathTail(r, h.teamPrefix)); err != nil {
		return mapCatalogError(err)
	}
	return WriteJSON(w, http.StatusOK, ApiMessageResponse{Message: "Team member deleted"})
}

func (h *catalogEndpoints) handleDashboard(w http.ResponseWriter, r *http.Request) error {
	counts, err := h.service.Dashboard(r.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	return WriteJSON(w, http.StatusOK, dto.DashboardResponse{
		Venues:      counts.Venues,
		Portfolio:   counts.Portfolio,
		TeamMembers: counts.TeamMembers,
		Bookings:    counts.Bookings,
		Contacts:    counts.Contacts,
	})
}

func pathTail(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

func toVenueResponse(v model.VenueItem) dto.VenueResponse {
	return dto.VenueResponse{
		VenueID:     v.VenueID,
		Title:       v.Title,
		Location:    v.Location,
		Budget:      v.Budget,
		Description: v.Description,
		Images:      v.Images,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toPortfolioResponse(e model.PortfolioItem) dto.PortfolioResponse {
	return dto.PortfolioResponse{
		EntryID:     e.EntryID,
		Title:       e.Title,
		Description: e.Description,
		Images:      e.Images,
		Client:      e.Client,
		Category:    e.Category,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toTeamMemberResponse(m model.TeamMemberItem) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		MemberID:    m.MemberID,
		Name:        m.Name,
		Designation: m.Designation,
		Bio:         m.Bio,
		PhotoURL:    m.PhotoURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapCatalogError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*catalogsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("catalog service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case catalogsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case catalogsvc.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
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
