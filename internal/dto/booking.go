package dto

type CreateBookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	VenueID       string `json:"venueId,omitempty"`
	VenueTitle    string `json:"venueTitle,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventCategory string `json:"eventCategory,omitempty"`
	Guests        int    `json:"guests,omitempty"`
	Message       string `json:"message,omitempty"`
}

type BookingStatusRequest struct {
	Status       string `json:"status"`
	AdminMessage string `json:"adminMessage,omitempty"`
}

type BookingResponse struct {
	BookingID     string `json:"bookingId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	VenueID       string `json:"venueId,omitempty"`
	VenueTitle    string `json:"venueTitle,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventCategory string `json:"eventCategory,omitempty"`
	Guests        int    `json:"guests,omitempty"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	AdminMessage  string `json:"adminMessage,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type BookingStatusResponse struct {
	Booking    BookingResponse `json:"booking"`
	EmailError string          `json:"emailError,omitempty"`
}
