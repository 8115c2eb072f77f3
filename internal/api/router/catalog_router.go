package router

import (
	"net/http"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/endpoints"
	"venue-booking-backend/internal/api/middleware"
)

// CatalogPublicRoutes mounts the read-only site content: venues, portfolio
// and the team page.
func CatalogPublicRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		catalogEndpoints := endpoints.NewCatalogEndpoints(s.Database(), prefix)

		mux.HandleFunc(prefix+"/venues", s.MakeHTTPHandleFunc(catalogEndpoints.PublicVenues))
		mux.HandleFunc(prefix+"/venues/", s.MakeHTTPHandleFunc(catalogEndpoints.PublicVenue))
		mux.HandleFunc(prefix+"/portfolio", s.MakeHTTPHandleFunc(catalogEndpoints.PublicPortfolio))
		mux.HandleFunc(prefix+"/team", s.MakeHTTPHandleFunc(catalogEndpoints.PublicTeamMembers))
	}
}

// CatalogAdminRoutes mounts content management plus the dashboard counters.
func CatalogAdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		catalogEndpoints := endpoints.NewCatalogEndpoints(s.Database(), prefix)

		mux.HandleFunc(prefix+"/venues", s.MakeHTTPHandleFunc(catalogEndpoints.Venues, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/venues/", s.MakeHTTPHandleFunc(catalogEndpoints.Venue, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/portfolio", s.MakeHTTPHandleFunc(catalogEndpoints.Portfolio, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/portfolio/", s.MakeHTTPHandleFunc(catalogEndpoints.PortfolioEntry, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/team", s.MakeHTTPHandleFunc(catalogEndpoints.TeamMembers, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/team/", s.MakeHTTPHandleFunc(catalogEndpoints.TeamMember, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/dashboard", s.MakeHTTPHandleFunc(catalogEndpoints.Dashboard, middleware.ValidateAdminJWT))
	}
}
