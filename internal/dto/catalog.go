package dto

type VenueRequest struct {
	VenueID     string   `json:"venueId,omitempty"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	Budget      int      `json:"budget,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type VenueResponse struct {
	VenueID     string   `json:"venueId"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	Budget      int      `json:"budget,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

type PortfolioRequest struct {
	EntryID     string   `json:"entryId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Client      string   `json:"client,omitempty"`
	Category    string   `json:"category,omitempty"`
	Date        string   `json:"date,omitempty"`
}

type PortfolioResponse struct {
	EntryID     string   `json:"entryId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Client      string   `json:"client,omitempty"`
	Category    string   `json:"category,omitempty"`
	Date        string   `json:"date,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

type TeamMemberRequest struct {
	MemberID    string `json:"memberId,omitempty"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

type TeamMemberResponse struct {
	MemberID    string `json:"memberId"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type DashboardResponse struct {
	Venues      int `json:"venues"`
	Portfolio   int `json:"portfolio"`
	TeamMembers int `json:"teamMembers"`
	Bookings    int `json:"bookings"`
	Contacts    int `json:"contacts"`
}
