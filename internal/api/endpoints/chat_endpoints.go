package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"venue-booking-backend/internal/chat"
	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/dto"
	authsvc "venue-booking-backend/internal/service/auth"
	livechatsvc "venue-booking-backend/internal/service/livechat"
	presencesvc "venue-booking-backend/internal/service/presence"
	"venue-booking-backend/internal/websocket"
)

type ChatEndpoints interface {
	Threads(http.ResponseWriter, *http.Request) error
	Thread(http.ResponseWriter, *http.Request) error
	Reply(http.ResponseWriter, *http.Request) error
	MarkRead(http.ResponseWriter, *http.Request) error
	InboxWebsocket(http.ResponseWriter, *http.Request) error
	ThreadWebsocket(http.ResponseWriter, *http.Request) error
}

type ChatPaths struct {
	ThreadPrefix          string
	ThreadWebsocketPrefix string
}

type chatEndpoints struct {
	service  *livechatsvc.Service
	auth     *authsvc.Service
	presence *presencesvc.Service
	handler  *websocket.Handler
	paths    ChatPaths
	now      func() time.Time
}

func NewChatEndpoints(db *database.Database, handler *websocket.Handler, prefix string) ChatEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &chatEndpoints{
		service:  livechatsvc.New(db),
		auth:     authsvc.New(db),
		presence: presencesvc.New(db),
		handler:  handler,
		paths: ChatPaths{
			ThreadPrefix:          base + "/chat/threads/",
			ThreadWebsocketPrefix: base + "/ws/chat/threads/",
		},
		now: time.Now,
	}
}

func (h *chatEndpoints) Threads(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleThreads,
	})
}

func (h *chatEndpoints) Thread(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleThread,
	})
}

func (h *chatEndpoints) Reply(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleReply,
	})
}

func (h *chatEndpoints) MarkRead(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleMarkRead,
	})
}

func (h *chatEndpoints) handleThreads(w http.ResponseWriter, r *http.Request) error {
	result, err := h.service.Threads(r.Context())
	if err != nil {
		return mapLivechatError(err)
	}

	presences, err := h.presence.Snapshot(r.Context())
	if err != nil {
		// Presence is decoration: the inbox still renders without it.
		presences = nil
	}

	threads := make([]dto.ThreadResponse, 0, len(result.Threads))
	for _, thread := range result.Threads {
		threads = append(threads, h.toThreadResponse(thread, presences, false))
	}

	return WriteJSON(w, http.StatusOK, dto.InboxResponse{
		Threads:     threads,
		TotalUnread: result.TotalUnread,
	})
}

func (h *chatEndpoints) handleThread(w http.ResponseWriter, r *http.Request) error {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, h.paths.ThreadPrefix), "/")
	if key == "" {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Thread not found",
			ErrorLog:   fmt.Errorf("thread key missing in path %s", r.URL.Path),
		}
	}

	thread, err := h.service.Thread(r.Context(), key)
	if err != nil {
		return mapLivechatError(err)
	}

	presences, err := h.presence.Snapshot(r.Context())
	if err != nil {
		presences = nil
	}

	return WriteJSON(w, http.StatusOK, h.toThreadResponse(thread, presences, true))
}

func (h *chatEndpoints) handleReply(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.auth.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return h.authError(err)
	}

	admin, err := h.auth.Me(r.Context(), identity)
	if err != nil {
		return h.authError(err)
	}

	var req dto.AdminReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode reply request: %w", err),
		}
	}

	result, err := h.service.SendAdminReply(r.Context(), livechatsvc.AdminIdentity{
		AdminID: admin.AdminID,
		Name:    admin.Name,
		Email:   admin.Email,
	}, req.ThreadKey, req.Text)
	if err != nil {
		return mapLivechatError(err)
	}

	return WriteJSON(w, http.StatusCreated, toChatMessageResponse(chat.FromItem(result.Message), chat.AdminViewpoint()))
}

func (h *chatEndpoints) handleMarkRead(w http.ResponseWriter, r *http.Request) error {
	var req dto.MarkThreadReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode mark read request: %w", err),
		}
	}

	result, err := h.service.MarkThreadRead(r.Context(), req.ThreadKey)
	if err != nil {
		// Partial progress still matters to the caller.
		if result.Marked > 0 {
			return WriteJSON(w, http.StatusOK, dto.MarkReadResponse{
				Marked: result.Marked,
				Failed: result.Failed,
			})
		}
		return mapLivechatError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MarkReadResponse{
		Marked: result.Marked,
		Failed: result.Failed,
	})
}

// InboxWebsocket joins an operator to the shared inbox room. Every store
// write to any thread pings this room.
func (h *chatEndpoints) InboxWebsocket(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.identityFromRequest(r)
	if err != nil {
		return err
	}

	h.handler.JoinRoom(w, r, websocket.InboxRoom, identity.AdminID)
	return nil
}

func (h *chatEndpoints) ThreadWebsocket(w http.ResponseWriter, r *http.Request) error {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, h.paths.ThreadWebsocketPrefix), "/")
	if key == "" {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Thread not found",
			ErrorLog:   fmt.Errorf("websocket thread key missing"),
		}
	}

	identity, err := h.identityFromRequest(r)
	if err != nil {
		return err
	}

	h.handler.JoinRoom(w, r, websocket.ThreadRoom(key), identity.AdminID)
	return nil
}

// identityFromRequest accepts the token from the Authorization header or,
// since browsers cannot set headers on websocket upgrades, a query param.
func (h *chatEndpoints) identityFromRequest(r *http.Request) (authsvc.Identity, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		identity, err := h.auth.IdentityFromAuthorizationHeader(header)
		if err != nil {
			return authsvc.Identity{}, h.authError(err)
		}
		return identity, nil
	}

	identity, err := h.auth.IdentityFromToken(r.URL.Query().Get("token"))
	if err != nil {
		return authsvc.Identity{}, h.authError(err)
	}
	return identity, nil
}

func (h *chatEndpoints) toThreadResponse(thread chat.Thread, presences map[string]chat.Presence, includeMessages bool) dto.ThreadResponse {
	resp := dto.ThreadResponse{
		Key:         thread.Key,
		ThreadID:    thread.ThreadID,
		UID:         thread.UID,
		Name:        thread.Name,
		Phone:       thread.Phone,
		Email:       thread.Email,
		DisplayName: thread.DisplayName(),
		Unread:      thread.Unread,
	}
	if !thread.LastAt.IsZero() {
		resp.LastAt = thread.LastAt.UTC().Format(time.RFC3339)
	}

	if uid := thread.PresenceUID(); uid != "" && presences != nil {
		if p, ok := presences[uid]; ok {
			if status, ok := chat.EvaluatePresence(&p, h.now()); ok {
				resp.Presence = &dto.PresenceResponse{
					Online:        status.Online,
					Label:         status.Label,
					LastSeenLabel: status.LastSeenLabel,
				}
			}
		}
	}

	if includeMessages {
		viewpoint := chat.AdminViewpoint()
		resp.Messages = make([]dto.ChatMessageResponse, 0, len(thread.Messages))
		for _, m := range thread.Messages {
			resp.Messages = append(resp.Messages, toChatMessageResponse(m, viewpoint))
		}
	}
	return resp
}

func toChatMessageResponse(m chat.ChatMessage, viewpoint chat.Viewpoint) dto.ChatMessageResponse {
	resp := dto.ChatMessageResponse{
		MessageID: m.ID,
		Text:      m.Text,
		UID:       m.UID,
		ThreadID:  m.ThreadID,
		ReplyTo:   m.ReplyTo,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     m.Email,
		FromAdmin: m.FromAdmin,
		Read:      m.Read,
		Own:       viewpoint.Own(m),
	}
	if at, ok := chat.ResolveTimestamp(m.CreatedAt); ok {
		resp.CreatedAt = at.UTC().Format(time.RFC3339)
	}
	return resp
}

func (h *chatEndpoints) authError(err error) error {
	if err == nil {
		return nil
	}
	svcErr, ok := err.(*authsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("auth service: %w", err),
		}
	}
	return &HTTPError{
		StatusCode: http.StatusUnauthorized,
		Message:    svcErr.Message,
		ErrorLog:   svcErr,
	}
}
