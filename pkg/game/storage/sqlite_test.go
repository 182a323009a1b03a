package storage

import (
	"os"
	"path/filepath"
	"testing"

	"dungeonforge/pkg/game/config"
	"dungeonforge/pkg/game/generator"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "layouts.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testLayout(t *testing.T, seed int64) *generator.Layout {
	t.Helper()
	cfg := config.Default()
	cfg.Size = 32
	gen, err := generator.NewSplitGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewSplitGenerator: %v", err)
	}
	layout, err := gen.Generate(seed)
	if err != nil {
		t.Fatalf("Generate(%d): %v", seed, err)
	}
	return layout
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "layouts.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	layout := testLayout(t, 21)

	rec, err := NewRecord(layout)
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}
	id, err := store.SaveLayout(rec)
	if err != nil {
		t.Fatalf("SaveLayout() failed: %v", err)
	}

	got, err := store.Layout(id)
	if err != nil {
		t.Fatalf("Layout() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Layout() returned nil for a saved record")
	}
	if got.Seed != 21 || got.Size != 32 || got.Rooms != layout.Stats.Rooms {
		t.Errorf("record = %+v, want seed 21 size 32 rooms %d", got, layout.Stats.Rooms)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	grid, err := got.Grid()
	if err != nil {
		t.Fatalf("Grid() failed: %v", err)
	}
	if !grid.Equal(layout.Grid) {
		t.Error("archived grid differs from the generated one")
	}
}

func TestStoreLayoutMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Layout(999)
	if err != nil {
		t.Fatalf("Layout() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Layout(999) = %+v, want nil", got)
	}
}

func TestStoreBySeedAndRecent(t *testing.T) {
	store := openTestStore(t)
	for _, seed := range []int64{1, 2, 1, 3} {
		rec, err := NewRecord(testLayout(t, seed))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.SaveLayout(rec); err != nil {
			t.Fatalf("SaveLayout() failed: %v", err)
		}
	}

	bySeed, err := store.LayoutsBySeed(1)
	if err != nil {
		t.Fatalf("LayoutsBySeed() failed: %v", err)
	}
	if len(bySeed) != 2 {
		t.Fatalf("Expected 2 layouts for seed 1, got %d", len(bySeed))
	}
	if bySeed[0].ID < bySeed[1].ID {
		t.Error("LayoutsBySeed is not newest first")
	}

	recent, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 recent layouts, got %d", len(recent))
	}
	if recent[0].Seed != 3 {
		t.Errorf("Expected newest seed 3, got %d", recent[0].Seed)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Count() = %d, want 4", n)
	}
}

func TestStoreRejectsEmptyPayload(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveLayout(LayoutRecord{Seed: 1, Size: 7}); err == nil {
		t.Error("SaveLayout accepted an empty payload")
	}
}
