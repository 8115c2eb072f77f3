package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	"venue-booking-backend/internal/model"
)

type memoryRepository struct {
	mu       sync.Mutex
	contacts map[string]model.ContactItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		contacts: make(map[string]model.ContactItem),
	}
}

func (m *memoryRepository) CreateContact(ctx context.Context, contact model.ContactItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.ContactID] = contact
	return nil
}

func (m *memoryRepository) ListContacts(ctx context.Context) ([]model.ContactItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ContactItem, 0, len(m.contacts))
	for _, contact := range m.contacts {
		out = append(out, contact)
	}
	return out, nil
}

func (m *memoryRepository) DeleteContact(ctx context.Context, contactID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contacts, contactID)
	return nil
}

func TestSubmitValidatesAndStores(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	contact, err := svc.Submit(context.Background(), SubmitParams{
		Name:    "Sam",
		Email:   "Sam@Example.com",
		Message: "Do you host weddings?",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if contact.ContactID == "" {
		t.Fatal("expected generated contact id")
	}
	if contact.Email != "sam@example.com" {
		t.Fatalf("expected normalized email, got %q", contact.Email)
	}

	for _, params := range []SubmitParams{
		{Email: "a@b.c", Message: "hi"},
		{Name: "Sam", Message: "hi"},
		{Name: "Sam", Email: "a@b.c"},
	} {
		if _, err := svc.Submit(context.Background(), params); err == nil {
			t.Fatalf("expected validation error for %+v", params)
		}
	}
}

func TestListContactsNewestFirst(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.contacts["c1"] = model.ContactItem{ContactID: "c1", CreatedAt: "2024-05-01T10:00:00Z"}
	repo.contacts["c2"] = model.ContactItem{ContactID: "c2", CreatedAt: "2024-05-01T12:00:00Z"}

	contacts, err := svc.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("ListContacts error: %v", err)
	}
	if contacts[0].ContactID != "c2" {
		t.Fatalf("unexpected order: %s first", contacts[0].ContactID)
	}
}

func TestDeleteContact(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.contacts["c1"] = model.ContactItem{ContactID: "c1"}
	if err := svc.DeleteContact(context.Background(), "c1"); err != nil {
		t.Fatalf("DeleteContact error: %v", err)
	}
	if _, ok := repo.contacts["c1"]; ok {
		t.Fatal("contact still present after delete")
	}

	if err := svc.DeleteContact(context.Background(), "  "); err == nil {
		t.Fatal("expected validation error for empty id")
	}
}
