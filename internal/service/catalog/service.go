package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type VenueParams struct {
	VenueID     string
	Title       string
	Location    string
	Budget      int
	Description string
	Images      []string
}

type PortfolioParams struct {
	EntryID     string
	Title       string
	Description string
	Images      []string
	Client      string
	Category    string
	Date        string
}

type TeamMemberParams struct {
	MemberID    string
	Name        string
	Designation string
	Bio         string
	PhotoURL    string
}

// DashboardCounts backs the admin landing page tiles.
type DashboardCounts struct {
	Venues      int
	Portfolio   int
	TeamMembers int
	Bookings    int
	Contacts    int
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

// SaveVenue creates or updates a venue. An empty id means create; updates
// keep the original creation timestamp.
func (s *Service) SaveVenue(ctx context.Context, params VenueParams) (model.VenueItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.VenueItem{}, newError(ErrorCodeValidation, "title is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	venue := model.VenueItem{
		VenueID:     strings.TrimSpace(params.VenueID),
		Title:       title,
		Location:    strings.TrimSpace(params.Location),
		Budget:      params.Budget,
		Description: strings.TrimSpace(params.Description),
		Images:      params.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if venue.VenueID == "" {
		venue.VenueID = uuid.NewString()
	} else {
		existing, err := s.repo.GetVenue(ctx, venue.VenueID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return model.VenueItem{}, newError(ErrorCodeNotFound, "venue not found", err)
			}
			return model.VenueItem{}, newError(ErrorCodeInternal, "failed to load venue", err)
		}
		venue.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.PutVenue(ctx, venue); err != nil {
		return model.VenueItem{}, newError(ErrorCodeInternal, "failed to store venue", err)
	}
	return venue, nil
}

// ListVenues returns venues newest first with title as tiebreak, the order
// the public site renders its cards in.
func (s *Service) ListVenues(ctx context.Context) ([]model.VenueItem, error) {
	venues, err := s.repo.ListVenues(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list venues", err)
	}

	sort.SliceStable(venues, func(i, j int) bool {
		if venues[i].CreatedAt != venues[j].CreatedAt {
			return venues[i].CreatedAt > venues[j].CreatedAt
		}
		return venues[i].Title < venues[j].Title
	})
	return venues, nil
}

func (s *Service) GetVenue(ctx context.Context, venueID string) (model.VenueItem, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return model.VenueItem{}, newError(ErrorCodeValidation, "venueId is required", nil)
	}

	venue, err := s.repo.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.VenueItem{}, newError(ErrorCodeNotFound, "venue not found", err)
		}
		return model.VenueItem{}, newError(ErrorCodeInternal, "failed to load venue", err)
	}
	return venue, nil
}

func (s *Service) DeleteVenue(ctx context.Context, venueID string) error {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return newError(ErrorCodeValidation, "venueId is required", nil)
	}
	if err := s.repo.DeleteVenue(ctx, venueID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete venue", err)
	}
	return nil
}

func (s *Service) SavePortfolioEntry(ctx context.Context, params PortfolioParams) (model.PortfolioItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.PortfolioItem{}, newError(ErrorCodeValidation, "title is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	entry := model.PortfolioItem{
		EntryID:     strings.TrimSpace(params.EntryID),
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Images:      params.Images,
		Client:      strings.TrimSpace(params.Client),
		Category:    strings.TrimSpace(params.Category),
		Date:        strings.TrimSpace(params.Date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}

	if err := s.repo.PutPortfolioEntry(ctx, entry); err != nil {
		return model.PortfolioItem{}, newError(ErrorCodeInternal, "failed to store portfolio entry", err)
	}
	return entry, nil
}

func (s *Service) ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	entries, err := s.repo.ListPortfolio(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list portfolio", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt > entries[j].CreatedAt
	})
	return entries, nil
}

func (s *Service) DeletePortfolioEntry(ctx context.Context, entryID string) error {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return newError(ErrorCodeValidation, "entryId is required", nil)
	}
	if err := s.repo.DeletePortfolioEntry(ctx, entryID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete portfolio entry", err)
	}
	return nil
}

func (s *Service) SaveTeamMember(ctx context.Context, params TeamMemberParams) (model.TeamMemberItem, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.TeamMemberItem{}, newError(ErrorCodeValidation, "name is required", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	member := model.TeamMemberItem{
		MemberID:    strings.TrimSpace(params.MemberID),
		Name:        name,
		Designation: strings.TrimSpace(params.Designation),
		Bio:         strings.TrimSpace(params.Bio),
		PhotoURL:    strings.TrimSpace(params.PhotoURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if member.MemberID == "" {
		member.MemberID = uuid.NewString()
	}

	if err := s.repo.PutTeamMember(ctx, member); err != nil {
		return model.TeamMemberItem{}, newError(ErrorCodeInternal, "failed to store team member", err)
	}
	return member, nil
}

func (s *Service) ListTeamMembers(ctx context.Context) ([]model.TeamMemberItem, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list team members", err)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
	return members, nil
}

func (s *Service) DeleteTeamMember(ctx context.Context, memberID string) error {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return newError(ErrorCodeValidation, "memberId is required", nil)
	}
	if err := s.repo.DeleteTeamMember(ctx, memberID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete team member", err)
	}
	return nil
}

// Dashboard counts every content table in one shot. A single failed count
// fails the whole call rather than rendering a tile at zero.
func (s *Service) Dashboard(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	for _, entry := range []struct {
		table string
		dst   *int
	}{
		{model.VenuesTable, &counts.Venues},
		{model.PortfolioTable, &counts.Portfolio},
		{model.TeamMembersTable, &counts.TeamMembers},
		{model.BookingsTable, &counts.Bookings},
		{model.ContactsTable, &counts.Contacts},
	} {
		count, err := s.repo.CountTable(ctx, entry.table)
		if err != nil {
			return DashboardCounts{}, newError(ErrorCodeInternal, "failed to count "+entry.table, err)
		}
		*entry.dst = count
	}
	return counts, nil
}
