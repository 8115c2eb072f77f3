package router

import (
	"net/http"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/endpoints"
	"venue-booking-backend/internal/api/middleware"
)

func ContactPublicRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		contactEndpoints := endpoints.NewContactEndpoints(s.Database(), prefix)
		mux.HandleFunc(prefix+"/contacts", s.MakeHTTPHandleFunc(contactEndpoints.Submit))
	}
}

func ContactAdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		contactEndpoints := endpoints.NewContactEndpoints(s.Database(), prefix)
		mux.HandleFunc(prefix+"/contacts", s.MakeHTTPHandleFunc(contactEndpoints.Contacts, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/contacts/", s.MakeHTTPHandleFunc(contactEndpoints.Contact, middleware.ValidateAdminJWT))
	}
}
