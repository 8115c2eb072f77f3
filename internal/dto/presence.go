package dto

type HeartbeatRequest struct {
	UID string `json:"uid"`
}

type HeartbeatResponse struct {
	UID          string `json:"uid"`
	LastActiveAt string `json:"lastActiveAt"`
}

type PresenceStatusResponse struct {
	UID      string            `json:"uid"`
	Known    bool              `json:"known"`
	Presence *PresenceResponse `json:"presence,omitempty"`
}
