package audit

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"netbridge/internal/infrastructure/database"
	_ "netbridge/migrations" // registers the embedded schema files
)

// openTestDB opens a migrated temporary database, so the repository is
// tested against the real audit schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "audit.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db.DB
}

func TestCreateGeneratesIDAndTimestamp(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action:     ActionCreateDevice,
		EntityType: "device",
		EntityName: "sw-01",
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(entry.ID, "aud-") {
		t.Errorf("ID = %q, want aud- prefix", entry.ID)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestCreateAndListRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	entry := &Entry{
		Action:     ActionCreatePorts,
		EntityType: "interfaces",
		EntityName: "sw-01",
		Channel:    "bridge",
		Details:    map[string]any{"requested": 24.0},
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("total = %d, entries = %d, want 1/1", result.Total, len(result.Entries))
	}

	got := result.Entries[0]
	if got.Action != ActionCreatePorts || got.EntityType != "interfaces" {
		t.Errorf("entry = %+v", got)
	}
	if got.Channel != "bridge" {
		t.Errorf("channel = %q, want bridge", got.Channel)
	}
	if got.Details["requested"] != 24.0 {
		t.Errorf("details = %v", got.Details)
	}
}

func TestListFilters(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	seed := []*Entry{
		{Action: ActionCreateDevice, EntityType: "device", EntityName: "sw-01"},
		{Action: ActionCreatePorts, EntityType: "interfaces", EntityName: "sw-01"},
		{Action: ActionCreatePorts, EntityType: "rear_ports", EntityName: "pp-01"},
	}
	for i, e := range seed {
		e.CreatedAt = time.Date(2026, 8, 1, 12, i, 0, 0, time.UTC)
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no filter", Filter{}, 3},
		{"by action", Filter{Action: ActionCreatePorts}, 2},
		{"by entity type", Filter{EntityType: "device"}, 1},
		{"action and entity type", Filter{Action: ActionCreatePorts, EntityType: "rear_ports"}, 1},
		{"no match", Filter{Action: "delete_device"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if result.Total != tt.want {
				t.Errorf("total = %d, want %d", result.Total, tt.want)
			}
		})
	}
}

func TestListOrderAndPagination(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := &Entry{
			Action:     ActionCreateDevice,
			EntityType: "device",
			EntityName: "sw-0" + string(rune('1'+i)),
			CreatedAt:  time.Date(2026, 8, 1, 12, i, 0, 0, time.UTC),
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 5 {
		t.Errorf("total = %d, want 5 (total ignores pagination)", result.Total)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	if result.Entries[0].EntityName != "sw-05" {
		t.Errorf("first entry = %q, want most recent", result.Entries[0].EntityName)
	}

	page2, err := repo.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page2.Entries[0].EntityName != "sw-03" {
		t.Errorf("page 2 first entry = %q, want sw-03", page2.Entries[0].EntityName)
	}
}

func TestListClampsLimit(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	result, err := repo.List(ctx, Filter{Limit: 9999})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Limit != 200 {
		t.Errorf("limit = %d, want clamped to 200", result.Limit)
	}

	result, err = repo.List(ctx, Filter{Limit: -1, Offset: -5})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Limit != 50 || result.Offset != 0 {
		t.Errorf("limit/offset = %d/%d, want defaults 50/0", result.Limit, result.Offset)
	}
}
