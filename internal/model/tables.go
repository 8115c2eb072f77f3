package model

const (
	LiveChatTable    = "LiveChat"
	UsersTable       = "Users"
	BookingsTable    = "Bookings"
	ContactsTable    = "Contacts"
	VenuesTable      = "Venues"
	PortfolioTable   = "Portfolio"
	TeamMembersTable = "TeamMembers"
	AdminsTable      = "Admins"
)
