package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"venue-booking-backend/internal/model"
)

type memoryRepository struct {
	mu       sync.Mutex
	profiles map[string]model.UserProfileItem
	failBeat bool
	beats    int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		profiles: make(map[string]model.UserProfileItem),
	}
}

func (m *memoryRepository) GetProfile(ctx context.Context, uid string) (model.UserProfileItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[uid]
	if !ok {
		return model.UserProfileItem{}, ErrNotFound
	}
	return profile, nil
}

func (m *memoryRepository) PutProfile(ctx context.Context, profile model.UserProfileItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UID] = profile
	return nil
}

func (m *memoryRepository) ListProfiles(ctx context.Context) ([]model.UserProfileItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.UserProfileItem, 0, len(m.profiles))
	for _, profile := range m.profiles {
		out = append(out, profile)
	}
	return out, nil
}

func (m *memoryRepository) UpdateHeartbeat(ctx context.Context, uid, lastActiveAt string, isOnline *bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beats++
	if m.failBeat {
		return errors.New("write throttled")
	}
	profile, ok := m.profiles[uid]
	if !ok {
		return ErrNotFound
	}
	profile.LastActiveAt = lastActiveAt
	if isOnline != nil {
		profile.IsOnline = isOnline
	}
	m.profiles[uid] = profile
	return nil
}

func TestHeartbeatUpdatesExistingProfile(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	repo.profiles["u1"] = model.UserProfileItem{UID: "u1", DisplayName: "Ana"}

	if err := svc.Heartbeat(context.Background(), "u1"); err != nil {
		t.Fatalf("Heartbeat error: %v", err)
	}
	if got := repo.profiles["u1"].LastActiveAt; got != now.Format(time.RFC3339) {
		t.Fatalf("unexpected lastActiveAt %q", got)
	}
}

func TestHeartbeatCreatesMissingProfile(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	if err := svc.Heartbeat(context.Background(), "u-new"); err != nil {
		t.Fatalf("Heartbeat error: %v", err)
	}
	profile, ok := repo.profiles["u-new"]
	if !ok {
		t.Fatal("expected profile created by heartbeat")
	}
	if profile.LastActiveAt != now.Format(time.RFC3339) {
		t.Fatalf("unexpected lastActiveAt %q", profile.LastActiveAt)
	}
}

func TestStatusForRecentHeartbeatIsOnline(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	repo.profiles["u1"] = model.UserProfileItem{
		UID:          "u1",
		LastActiveAt: now.Add(-time.Minute).Format(time.RFC3339),
	}
	repo.profiles["u2"] = model.UserProfileItem{
		UID:          "u2",
		LastActiveAt: now.Add(-3 * time.Hour).Format(time.RFC3339),
	}

	status, ok, err := svc.StatusFor(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("StatusFor u1: ok=%v err=%v", ok, err)
	}
	if !status.Online || status.Label != "Online" {
		t.Fatalf("expected online, got %+v", status)
	}

	status, ok, err = svc.StatusFor(context.Background(), "u2")
	if err != nil || !ok {
		t.Fatalf("StatusFor u2: ok=%v err=%v", ok, err)
	}
	if status.Online {
		t.Fatalf("expected offline, got %+v", status)
	}
	if status.LastSeenLabel != "Last active 3 hrs ago" {
		t.Fatalf("unexpected last seen label %q", status.LastSeenLabel)
	}
}

func TestStatusForUnknownUIDIsIndeterminate(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	_, ok, err := svc.StatusFor(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("StatusFor error: %v", err)
	}
	if ok {
		t.Fatal("expected indeterminate presence for unknown uid")
	}
}

func TestSetOnlineOverridesHeartbeat(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	repo.profiles["u1"] = model.UserProfileItem{
		UID:          "u1",
		LastActiveAt: now.Add(-time.Minute).Format(time.RFC3339),
	}

	if err := svc.SetOnline(context.Background(), "u1", false); err != nil {
		t.Fatalf("SetOnline error: %v", err)
	}

	status, ok, err := svc.StatusFor(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("StatusFor: ok=%v err=%v", ok, err)
	}
	// Explicit flag wins over the fresh heartbeat.
	if status.Online {
		t.Fatalf("expected realtime override to force offline, got %+v", status)
	}
}

func TestSnapshotKeysByUID(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, nil)

	repo.profiles["u1"] = model.UserProfileItem{UID: "u1", DisplayName: "Ana"}
	repo.profiles["u2"] = model.UserProfileItem{UID: "u2"}

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snapshot))
	}
	if snapshot["u1"].DisplayName != "Ana" {
		t.Fatalf("unexpected entry %+v", snapshot["u1"])
	}
}

func TestHeartbeatWriterBeatsAndSurvivesFailures(t *testing.T) {
	repo := newMemoryRepository()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewWithRepository(repo, func() time.Time { return now })

	repo.profiles["u1"] = model.UserProfileItem{UID: "u1"}
	repo.failBeat = true

	writer := NewHeartbeatWriter(svc, "u1", 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		writer.Run(ctx)
		close(done)
	}()

	writer.Wake()

	deadline := time.Now().Add(2 * time.Second)
	for {
		repo.mu.Lock()
		beats := repo.beats
		repo.mu.Unlock()
		if beats >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("heartbeat loop stalled after failures")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	<-done
}
