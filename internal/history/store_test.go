package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pystub.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := openTemp(t)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		Timestamp:       ts,
		FileCount:       4,
		ClassCount:      2,
		EnumCount:       1,
		MethodsCount:    2,
		FunctionCount:   3,
		DiagnosticCount: 1,
		Duration:        250 * time.Millisecond,
	}

	if err := store.SaveSnapshot(snapshot); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadSnapshots(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 snapshot, got %d", len(loaded))
	}

	got := loaded[0]
	if !got.Timestamp.Equal(ts) {
		t.Errorf("Expected timestamp %v, got %v", ts, got.Timestamp)
	}
	if got.ClassCount != 2 || got.FunctionCount != 3 || got.DiagnosticCount != 1 {
		t.Errorf("Expected counts preserved, got %+v", got)
	}
	if got.Duration != 250*time.Millisecond {
		t.Errorf("Expected duration 250ms, got %v", got.Duration)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Errorf("Expected schema version %d, got %d", SchemaVersion, got.SchemaVersion)
	}
}

func TestSaveSnapshotUpsert(t *testing.T) {
	store := openTemp(t)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveSnapshot(Snapshot{Timestamp: ts, ClassCount: 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(Snapshot{Timestamp: ts, ClassCount: 5}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadSnapshots(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected upsert to keep one row, got %d", len(loaded))
	}
	if loaded[0].ClassCount != 5 {
		t.Errorf("Expected updated class count, got %d", loaded[0].ClassCount)
	}
}

func TestLoadSnapshotsSince(t *testing.T) {
	store := openTemp(t)

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{old, recent} {
		if err := store.SaveSnapshot(Snapshot{Timestamp: ts}); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := store.LoadSnapshots(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 snapshot since cutoff, got %d", len(loaded))
	}
	if !loaded[0].Timestamp.Equal(recent) {
		t.Errorf("Expected recent snapshot, got %v", loaded[0].Timestamp)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Error("Expected error for empty history path")
	}
}
