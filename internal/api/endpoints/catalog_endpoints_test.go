package endpoints

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"venue-booking-backend/internal/api"
	"venue-booking-backend/internal/api/middleware"
	"venue-booking-backend/internal/dto"
	"venue-booking-backend/internal/model"
	"venue-booking-backend/internal/queue"
	catalogsvc "venue-booking-backend/internal/service/catalog"
)

type testCatalogRepository struct {
	mu        sync.Mutex
	venues    map[string]model.VenueItem
	portfolio map[string]model.PortfolioItem
	team      map[string]model.TeamMemberItem
	counts    map[string]int
}

func newTestCatalogRepository() *testCatalogRepository {
	return &testCatalogRepository{
		venues:    make(map[string]model.VenueItem),
		portfolio: make(map[string]model.PortfolioItem),
		team:      make(map[string]model.TeamMemberItem),
		counts:    make(map[string]int),
	}
}

func (m *testCatalogRepository) PutVenue(ctx context.Context, venue model.VenueItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.venues[venue.VenueID] = venue
	return nil
}

func (m *testCatalogRepository) GetVenue(ctx context.Context, venueID string) (model.VenueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	venue, ok := m.venues[venueID]
	if !ok {
		return model.VenueItem{}, catalogsvc.ErrNotFound
	}
	return venue, nil
}

func (m *testCatalogRepository) ListVenues(ctx context.Context) ([]model.VenueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.VenueItem, 0, len(m.venues))
	for _, venue := range m.venues {
		out = append(out, venue)
	}
	return out, nil
}

func (m *testCatalogRepository) DeleteVenue(ctx context.Context, venueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.venues, venueID)
	return nil
}

func (m *testCatalogRepository) PutPortfolioEntry(ctx context.Context, entry model.PortfolioItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolio[entry.EntryID] = entry
	return nil
}

func (m *testCatalogRepository) ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PortfolioItem, 0, len(m.portfolio))
	for _, entry := range m.portfolio {
		out = append(out, entry)
	}
	return out, nil
}

func (m *testCatalogRepository) DeletePortfolioEntry(ctx context.Context, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.portfolio, entryID)
	return nil
}

func (m *testCatalogRepository) PutTeamMember(ctx context.Context, member model.TeamMemberItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.team[member.MemberID] = member
	return nil
}

func (m *testCatalogRepository) ListTeamMembers(ctx context.Context) ([]model.TeamMemberItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TeamMemberItem, 0, len(m.team))
	for _, member := range m.team {
		out = append(out, member)
	}
	return out, nil
}

func (m *testCatalogRepository) DeleteTeamMember(ctx context.Context, memberID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.team, memberID)
	return nil
}

func (m *testCatalogRepository) CountTable(ctx context.Context, tableName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[tableName], nil
}

func setupCatalogHandler(t *testing.T, svc *catalogsvc.Service, addr string) (http.Handler, func()) {
	t.Helper()

	catalogEndpoints := &catalogEndpoints{
		service:     svc,
		venuePrefix: "/api/venues/",
	}

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(addr, queueManager, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/public/venues", server.MakeHTTPHandleFunc(catalogEndpoints.PublicVenues))
	mux.HandleFunc("/api/venues", server.MakeHTTPHandleFunc(catalogEndpoints.Venues, middleware.ValidateAdminJWT))
	mux.HandleFunc("/api/venues/", server.MakeHTTPHandleFunc(catalogEndpoints.Venue, middleware.ValidateAdminJWT))
	mux.HandleFunc("/api/dashboard", server.MakeHTTPHandleFunc(catalogEndpoints.Dashboard, middleware.ValidateAdminJWT))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestCatalogVenueLifecycle(t *testing.T) {
	setupTestJWT(t)

	repo := newTestCatalogRepository()
	service := catalogsvc.NewWithRepository(repo, fixedTime)
	adminRepo := newTestAdminRepository()

	handler, cleanup := setupCatalogHandler(t, service, ":catalog-venues")
	defer cleanup()
	headers := adminAuthHeaders(t, adminRepo, "op-1")

	created := doJSONRequest[dto.VenueResponse](t, handler, http.MethodPost, "/api/venues", map[string]interface{}{
		"title":    "The Orchard Hall",
		"location": "Riverside",
		"budget":   120000,
	}, headers, http.StatusCreated)

	if created.VenueID == "" {
		t.Fatal("expected generated venue id")
	}

	updated := doJSONRequest[dto.VenueResponse](t, handler, http.MethodPost, "/api/venues", map[string]interface{}{
		"venueId": created.VenueID,
		"title":   "The Orchard Hall",
		"budget":  150000,
	}, headers, http.StatusOK)

	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("update must keep the original createdAt, got %s vs %s", updated.CreatedAt, created.CreatedAt)
	}
	if updated.Budget != 150000 {
		t.Fatalf("expected updated budget, got %d", updated.Budget)
	}

	public := doJSONRequest[[]dto.VenueResponse](t, handler, http.MethodGet, "/api/public/venues", nil, nil, http.StatusOK)
	if len(public) != 1 || public[0].VenueID != created.VenueID {
		t.Fatalf("expected the venue on the public listing, got %+v", public)
	}

	doJSONRequest[ApiMessageResponse](t, handler, http.MethodDelete, "/api/venues/"+created.VenueID, nil, headers, http.StatusOK)
	empty := doJSONRequest[[]dto.VenueResponse](t, handler, http.MethodGet, "/api/public/venues", nil, nil, http.StatusOK)
	if len(empty) != 0 {
		t.Fatalf("expected no venues after delete, got %+v", empty)
	}
}

func TestCatalogDashboardCounts(t *testing.T) {
	setupTestJWT(t)

	repo := newTestCatalogRepository()
	repo.counts[model.VenuesTable] = 3
	repo.counts[model.BookingsTable] = 7
	repo.counts[model.ContactsTable] = 2
	service := catalogsvc.NewWithRepository(repo, fixedTime)
	adminRepo := newTestAdminRepository()

	handler, cleanup := setupCatalogHandler(t, service, ":catalog-dashboard")
	defer cleanup()
	headers := adminAuthHeaders(t, adminRepo, "op-1")

	counts := doJSONRequest[dto.DashboardResponse](t, handler, http.MethodGet, "/api/dashboard", nil, headers, http.StatusOK)
	if counts.Venues != 3 || counts.Bookings != 7 || counts.Contacts != 2 {
		t.Fatalf("unexpected dashboard counts: %+v", counts)
	}
}
