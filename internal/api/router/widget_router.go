package router

import (
	"net/http"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/endpoints"
)

// WidgetRoutes mounts the public chat widget surface.
func WidgetRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		widgetEndpoints := endpoints.NewWidgetEndpoints(s.Database(), s.Handler())

		mux.HandleFunc(prefix+"/chat/session", s.MakeHTTPHandleFunc(widgetEndpoints.Session))
		mux.HandleFunc(prefix+"/chat/messages", s.MakeHTTPHandleFunc(widgetEndpoints.Messages))
		mux.HandleFunc(prefix+"/presence/heartbeat", s.MakeHTTPHandleFunc(widgetEndpoints.Heartbeat))
	}
}

func WidgetWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		widgetEndpoints := endpoints.NewWidgetEndpoints(s.Database(), s.Handler())

		mux.HandleFunc(prefix+"/ws/chat/thread", s.MakeHTTPHandleFunc(widgetEndpoints.ThreadWebsocket))
	}
}
