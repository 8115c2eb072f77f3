package router

import (
	"net/http"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/endpoints"
	"venue-booking-backend/internal/api/middleware"
)

// ChatAdminRoutes mounts the operator messenger: inbox listing, single
// thread views, replies and read receipts.
func ChatAdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		chatEndpoints := endpoints.NewChatEndpoints(s.Database(), s.Handler(), prefix)

		mux.HandleFunc(prefix+"/chat/threads", s.MakeHTTPHandleFunc(chatEndpoints.Threads, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/chat/threads/", s.MakeHTTPHandleFunc(chatEndpoints.Thread, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/chat/reply", s.MakeHTTPHandleFunc(chatEndpoints.Reply, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/chat/read", s.MakeHTTPHandleFunc(chatEndpoints.MarkRead, middleware.ValidateAdminJWT))
		mux.HandleFunc(prefix+"/presence/status", s.MakeHTTPHandleFunc(endpoints.NewPresenceEndpoints(s.Database()).Status, middleware.ValidateAdminJWT))
	}
}

// ChatWebsocketRoutes mounts the operator websocket surface. Tokens travel
// as query params, so the endpoints validate identity themselves instead of
// going through the header middleware.
func ChatWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		chatEndpoints := endpoints.NewChatEndpoints(s.Database(), s.Handler(), prefix)

		mux.HandleFunc(prefix+"/ws/chat/inbox", s.MakeHTTPHandleFunc(chatEndpoints.InboxWebsocket))
		mux.HandleFunc(prefix+"/ws/chat/threads/", s.MakeHTTPHandleFunc(chatEndpoints.ThreadWebsocket))
	}
}
