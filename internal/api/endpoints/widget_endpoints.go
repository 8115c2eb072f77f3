package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	livechatsvc "venue-booking-backend/internal/service/livechat"
	presencesvc "venue-booking-backend/internal/service/presence"
	"venue-booking-backend/internal/websocket"
)

// WidgetEndpoints is the visitor-facing chat surface. Everything here is
// public: access to a thread is scoped by the visitor token, not by login.
type WidgetEndpoints interface {
	Session(http.ResponseWriter, *http.Request) error
	Messages(http.ResponseWriter, *http.Request) error
	Heartbeat(http.ResponseWriter, *http.Request) error
	ThreadWebsocket(http.ResponseWriter, *http.Request) error
}

type widgetEndpoints struct {
	service  *livechatsvc.Service
	presence *presencesvc.Service
	handler  *websocket.Handler
}

func NewWidgetEndpoints(db *database.Database, handler *websocket.Handler) WidgetEndpoints {
	return &widgetEndpoints{
		service:  livechatsvc.New(db),
		presence: presencesvc.New(db),
		handler:  handler,
	}
}

func NewWidgetEndpointsWithServices(service *livechatsvc.Service, presence *presencesvc.Service, handler *websocket.Handler) WidgetEndpoints {
	return &widgetEndpoints{
		service:  service,
		presence: presence,
		handler:  handler,
	}
}

func (h *widgetEndpoints) Session(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSession,
	})
}

func (h *widgetEndpoints) Messages(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSendMessage,
		http.MethodGet:  h.handleListMessages,
	})
}

func (h *widgetEndpoints) Heartbeat(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleHeartbeat,
	})
}

func (h *widgetEndpoints) handleSession(w http.ResponseWriter, r *http.Request) error {
	var req dto.StartChatSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode chat session request: %w", err),
		}
	}

	result, err := h.service.StartSession(livechatsvc.StartSessionParams{
		UID:   req.UID,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return mapLivechatError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.StartChatSessionResponse{
		ThreadID:     result.ThreadID,
		VisitorToken: result.VisitorToken,
	})
}

func (h *widgetEndpoints) handleSendMessage(w http.ResponseWriter, r *http.Request) error {
	var req dto.VisitorMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode visitor message request: %w", err),
		}
	}

	result, err := h.service.SendVisitorMessage(r.Context(), livechatsvc.VisitorMessageParams{
		Token: req.Token,
		Text:  req.Text,
		UID:   req.UID,
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return mapLivechatError(err)
	}

	// A message is also a liveness signal for signed-in visitors.
	if req.UID != "" {
		_ = h.presence.Heartbeat(r.Context(), req.UID)
	}

	return WriteJSON(w, http.StatusCreated, toChatMessageResponse(chat.FromItem(result.Message), chat.VisitorViewpoint(result.Message.UID)))
}

func (h *widgetEndpoints) handleListMessages(w http.ResponseWriter, r *http.Request) error {
	result, err := h.service.VisitorThreadMessages(r.Context(), visitorToken(r))
	if err != nil {
		return mapLivechatError(err)
	}

	viewpoint := chat.VisitorViewpoint(result.UID)
	messages := make([]dto.ChatMessageResponse, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, toChatMessageResponse(m, viewpoint))
	}

	return WriteJSON(w, http.StatusOK, dto.ThreadMessagesResponse{
		ThreadID: result.ThreadID,
		Messages: messages,
	})
}

func (h *widgetEndpoints) handleHeartbeat(w http.ResponseWriter, r *http.Request) error {
	var req dto.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode heartbeat request: %w", err),
		}
	}
	if req.UID == "" {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "uid is required",
			ErrorLog:   fmt.Errorf("heartbeat without uid"),
		}
	}

	if err := h.presence.Heartbeat(r.Context(), req.UID); err != nil {
		return mapPresenceError(err)
	}

	at := time.Now().UTC().Format(time.RFC3339)
	return WriteJSON(w, http.StatusOK, dto.HeartbeatResponse{
		UID:          req.UID,
		LastActiveAt: at,
	})
}

// ThreadWebsocket joins a visitor to their own thread room. The visitor
// token is the only credential, passed as a query param because the widget
// opens the socket from the browser.
func (h *widgetEndpoints) ThreadWebsocket(w http.ResponseWriter, r *http.Request) error {
	claims, err := h.service.VerifyVisitorToken(visitorToken(r))
	if err != nil {
		return mapLivechatError(err)
	}

	key := claims.ThreadKey()
	h.handler.JoinRoom(w, r, websocket.ThreadRoom(key), claims.ThreadID)
	return nil
}

func visitorToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return r.Header.Get("X-Visitor-Token")
}

func mapLivechatError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*livechatsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("livechat service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case livechatsvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case livechatsvc.ErrorCodeUnauthorized:
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case livechatsvc.ErrorCodeNotFound:
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

func mapPresenceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*presencesvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("presence service: %w", err),
		}
	}

	switch svcErr.Code {
	case presencesvc.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   svcErr,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    svcErr.Message,
			ErrorLog:   svcErr,
		}
	}
}
