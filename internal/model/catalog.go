package model

type VenueItem struct {
	VenueID     string   `dynamodbav:"venueId"`
	Title       string   `dynamodbav:"title"`
	Location    string   `dynamodbav:"location,omitempty"`
	Budget      int      `dynamodbav:"budget,omitempty"`
	Description string   `dynamodbav:"description,omitempty"`
	Images      []string `dynamodbav:"images,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt,omitempty"`
}

type PortfolioItem struct {
	EntryID     string   `dynamodbav:"entryId"`
	Title       string   `dynamodbav:"title"`
	Description string   `dynamodbav:"description,omitempty"`
	Images      []string `dynamodbav:"images,omitempty"`
	Client      string   `dynamodbav:"client,omitempty"`
	Category    string   `dynamodbav:"category,omitempty"`
	Date        string   `dynamodbav:"date,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt,omitempty"`
}

type TeamMemberItem struct {
	MemberID    string `dynamodbav:"memberId"`
	Name        string `dynamodbav:"name"`
	Designation string `dynamodbav:"designation,omitempty"`
	Bio         string `dynamodbav:"bio,omitempty"`
	PhotoURL    string `dynamodbav:"photoURL,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt,omitempty"`
}

type AdminUserItem struct {
	AdminID      string `dynamodbav:"adminId"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}
