package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/evanbray/lltf-core/internal/filter"
	"github.com/evanbray/lltf-core/internal/infrastructure/database"
)

// newTestRepo opens a fresh on-disk store under t.TempDir.
func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	return repo
}

func TestRecordAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	moves := []Move{
		{SystemName: "M000010263", WavelengthNm: 500, Grating: 0, Simulated: true, Source: SourceCLI},
		{SystemName: "M000010263", WavelengthNm: 632.8, Grating: 0, Simulated: false, Source: SourceLibrary},
		{SystemName: "M000010263", WavelengthNm: 800, Grating: 1, Simulated: true, Source: SourceCLI},
	}
	for _, m := range moves {
		if err := repo.Record(ctx, m); err != nil {
			t.Fatalf("Record(%g) error = %v", m.WavelengthNm, err)
		}
	}

	got, err := repo.Recent(ctx, "M000010263", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(Recent()) = %d, want 3", len(got))
	}

	// Newest first.
	if got[0].WavelengthNm != 800 {
		t.Errorf("Recent()[0].WavelengthNm = %g, want 800", got[0].WavelengthNm)
	}
	if got[2].WavelengthNm != 500 {
		t.Errorf("Recent()[2].WavelengthNm = %g, want 500", got[2].WavelengthNm)
	}

	first := got[0]
	if first.ID == 0 {
		t.Error("ID = 0, want store-assigned")
	}
	if first.Grating != 1 {
		t.Errorf("Grating = %d, want 1", first.Grating)
	}
	if !first.Simulated {
		t.Error("Simulated = false, want true")
	}
	if first.Source != SourceCLI {
		t.Errorf("Source = %q, want %q", first.Source, SourceCLI)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want store-assigned")
	}
}

func TestRecentFiltersBySystem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Record(ctx, Move{SystemName: "SYS-A", WavelengthNm: 500}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := repo.Record(ctx, Move{SystemName: "SYS-B", WavelengthNm: 600}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := repo.Recent(ctx, "SYS-A", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(Recent()) = %d, want 1", len(got))
	}
	if got[0].SystemName != "SYS-A" {
		t.Errorf("SystemName = %q, want %q", got[0].SystemName, "SYS-A")
	}
}

func TestRecordDefaultsSource(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Record(ctx, Move{SystemName: "SYS-A", WavelengthNm: 500}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := repo.Recent(ctx, "SYS-A", 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if got[0].Source != SourceLibrary {
		t.Errorf("Source = %q, want %q", got[0].Source, SourceLibrary)
	}
}

func TestRecordRequiresSystemName(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Record(context.Background(), Move{WavelengthNm: 500}); err == nil {
		t.Error("Record() without system name succeeded, want error")
	}
}

func TestRecentLimits(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if err := repo.Record(ctx, Move{SystemName: "SYS-A", WavelengthNm: float64(400 + i)}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 10, 10},
		{"zero uses default", 0, 50},
		{"negative uses default", -5, 50},
		{"oversized clamped to max", 1000, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Recent(ctx, "SYS-A", tt.limit)
			if err != nil {
				t.Fatalf("Recent(%d) error = %v", tt.limit, err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Recent(%d)) = %d, want %d", tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestRecentRequiresSystemName(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.Recent(context.Background(), "", 10); err == nil {
		t.Error("Recent() without system name succeeded, want error")
	}
}

func TestSinkRecordsControllerMoves(t *testing.T) {
	repo := newTestRepo(t)
	sink := NewSink(repo, SourceCLI)

	move := filter.Move{
		SystemName:   "M000010263",
		WavelengthNm: 632.8,
		Grating:      0,
		Simulated:    true,
	}
	if err := sink.RecordMove(context.Background(), move); err != nil {
		t.Fatalf("RecordMove() error = %v", err)
	}

	got, err := repo.Recent(context.Background(), "M000010263", 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(Recent()) = %d, want 1", len(got))
	}
	if got[0].WavelengthNm != 632.8 {
		t.Errorf("WavelengthNm = %g, want 632.8", got[0].WavelengthNm)
	}
	if !got[0].Simulated {
		t.Error("Simulated = false, want true")
	}
	if got[0].Source != SourceCLI {
		t.Errorf("Source = %q, want %q", got[0].Source, SourceCLI)
	}
}

func TestSinkDefaultsSource(t *testing.T) {
	sink := NewSink(nil, "")
	if sink.source != SourceLibrary {
		t.Errorf("source = %q, want %q", sink.source, SourceLibrary)
	}
}
