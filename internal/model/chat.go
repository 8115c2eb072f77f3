package model

// ChatMessageItem is a single record in the LiveChat table. Messages are
// immutable after creation except for the Read flag, which is flipped when an
// operator opens the thread.
type ChatMessageItem struct {
	MessageID string `dynamodbav:"messageId"`
	Text      string `dynamodbav:"text"`
	UID       string `dynamodbav:"uid,omitempty"`
	ThreadID  string `dynamodbav:"threadId,omitempty"`
	ReplyTo   string `dynamodbav:"replyTo,omitempty"`
	Name      string `dynamodbav:"name,omitempty"`
	Phone     string `dynamodbav:"phone,omitempty"`
	Email     string `dynamodbav:"email,omitempty"`
	FromAdmin bool   `dynamodbav:"fromAdmin"`
	Read      bool   `dynamodbav:"read"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// UserProfileItem mirrors the Users table: auth profile plus the presence
// heartbeat fields consumed by the admin messenger.
type UserProfileItem struct {
	UID           string   `dynamodbav:"uid"`
	DisplayName   string   `dynamodbav:"displayName,omitempty"`
	Email         string   `dynamodbav:"email,omitempty"`
	PhoneNumber   string   `dynamodbav:"phoneNumber,omitempty"`
	PhotoURL      string   `dynamodbav:"photoURL,omitempty"`
	EmailVerified bool     `dynamodbav:"emailVerified"`
	Providers     []string `dynamodbav:"providers,omitempty"`
	LastActiveAt  string   `dynamodbav:"lastActiveAt,omitempty"`
	IsOnline      *bool    `dynamodbav:"isOnline,omitempty"`
	CreatedAt     string   `dynamodbav:"createdAt,omitempty"`
	LastLoginAt   string   `dynamodbav:"lastLoginAt,omitempty"`
}
