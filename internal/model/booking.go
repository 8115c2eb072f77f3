package model

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

type BookingItem struct {
	BookingID     string        `dynamodbav:"bookingId"`
	Name          string        `dynamodbav:"name"`
	Email         string        `dynamodbav:"email"`
	Phone         string        `dynamodbav:"phone,omitempty"`
	VenueID       string        `dynamodbav:"venueId,omitempty"`
	VenueTitle    string        `dynamodbav:"venueTitle,omitempty"`
	EventDate     string        `dynamodbav:"eventDate,omitempty"`
	EventCategory string        `dynamodbav:"eventCategory,omitempty"`
	Guests        int           `dynamodbav:"guests,omitempty"`
	Message       string        `dynamodbav:"message,omitempty"`
	Status        BookingStatus `dynamodbav:"status"`
	AdminMessage  string        `dynamodbav:"adminMessage,omitempty"`
	CreatedAt     string        `dynamodbav:"createdAt"`
	UpdatedAt     string        `dynamodbav:"updatedAt"`
}

type ContactItem struct {
	ContactID string `dynamodbav:"contactId"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Phone     string `dynamodbav:"phone,omitempty"`
	Subject   string `dynamodbav:"subject,omitempty"`
	Message   string `dynamodbav:"message"`
	CreatedAt string `dynamodbav:"createdAt"`
}
