package dto

type StartChatSessionRequest struct {
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type StartChatSessionResponse struct {
	ThreadID     string `json:"threadId"`
	VisitorToken string `json:"visitorToken"`
}

type VisitorMessageRequest struct {
	Token string `json:"token,omitempty"`
	Text  string `json:"text"`
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type AdminReplyRequest struct {
	ThreadKey string `json:"threadKey"`
	Text      string `json:"text"`
}

type MarkThreadReadRequest struct {
	ThreadKey string `json:"threadKey"`
}

type ChatMessageResponse struct {
	MessageID string `json:"messageId"`
	Text      string `json:"text"`
	UID       string `json:"uid,omitempty"`
	ThreadID  string `json:"threadId,omitempty"`
	ReplyTo   string `json:"replyTo,omitempty"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	FromAdmin bool   `json:"fromAdmin"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
	Own       bool   `json:"own"`
}

type ThreadResponse struct {
	Key         string                `json:"key"`
	ThreadID    string                `json:"threadId,omitempty"`
	UID         string                `json:"uid,omitempty"`
	Name        string                `json:"name,omitempty"`
	Phone       string                `json:"phone,omitempty"`
	Email       string                `json:"email,omitempty"`
	DisplayName string                `json:"displayName"`
	LastAt      string                `json:"lastAt,omitempty"`
	Unread      int                   `json:"unread"`
	Messages    []ChatMessageResponse `json:"messages,omitempty"`
	Presence    *PresenceResponse     `json:"presence,omitempty"`
}

type InboxResponse struct {
	Threads     []ThreadResponse `json:"threads"`
	TotalUnread int              `json:"totalUnread"`
}

type ThreadMessagesResponse struct {
	ThreadID string                `json:"threadId"`
	Messages []ChatMessageResponse `json:"messages"`
}

type MarkReadResponse struct {
	Marked int `json:"marked"`
	Failed int `json:"failed"`
}

type PresenceResponse struct {
	Online        bool   `json:"online"`
	Label         string `json:"label"`
	LastSeenLabel string `json:"lastSeenLabel,omitempty"`
}
