package router

import (
	"net/http"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/endpoints"
	"venue-booking-backend/internal/api/middleware"
	"venue-booking-backend/internal/mailer"
)

// BookingPublicRoutes mounts the visitor booking form.
func BookingPublicRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		bookingEndpoints := endpoints.NewBookingEndpoints(s.Database(), mailer.New(), prefix)
		mux.HandleFunc(prefix+"/bookings", s.MakeHTTPHandleFunc(bookingEndpoints.Create))
	}
}

// BookingAdminRoutes mounts booking management for the admin console.
func BookingAdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		bookingEndpoints := endpoints.NewBookingEndpoints(s.Database(), mailer.New(), prefix)
		mux.HandleFunc(prefix+"/bookings", s.MakeHTTPHandleFunc(bookingEndpoints.Bookings, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/bookings/", s.MakeHTTPHandleFunc(bookingEndpoints.Booking, middleware.ValidateAdminJWT))
	}
}
