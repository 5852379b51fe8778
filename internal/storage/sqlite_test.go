package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRun(t *testing.T) {
	store := openTemp(t)

	saved, err := store.SaveRun(Run{SimID: "maze", Host: "headless", Ticks: 120, Duration: 1990 * time.Millisecond})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("SaveRun() should assign an ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("SaveRun() should set CreatedAt")
	}

	got, err := store.RunByID(saved.ID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.SimID != "maze" || got.Host != "headless" || got.Ticks != 120 {
		t.Errorf("RunByID() = %+v, expected maze/headless/120", got)
	}
	if got.Duration != 1990*time.Millisecond {
		t.Errorf("Duration = %v, expected 1.99s", got.Duration)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTemp(t)
	if _, err := store.RunByID("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() error = %v, expected %v", err, ErrRunNotFound)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTemp(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	runs := []Run{
		{SimID: "maze", Host: "term", Ticks: 1, CreatedAt: base},
		{SimID: "movement", Host: "raw", Ticks: 2, CreatedAt: base.Add(time.Minute)},
		{SimID: "maze", Host: "ssh", Ticks: 3, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		simID string
		limit int
		ticks []uint64
	}{
		{"", 10, []uint64{3, 2, 1}},
		{"maze", 10, []uint64{3, 1}},
		{"movement", 10, []uint64{2}},
		{"", 2, []uint64{3, 2}},
		{"pong", 10, nil},
	}

	for _, tc := range tests {
		got, err := store.RecentRuns(tc.simID, tc.limit)
		if err != nil {
			t.Fatalf("RecentRuns(%q) failed: %v", tc.simID, err)
		}
		if len(got) != len(tc.ticks) {
			t.Errorf("RecentRuns(%q, %d) returned %d runs, expected %d", tc.simID, tc.limit, len(got), len(tc.ticks))
			continue
		}
		for i, r := range got {
			if r.Ticks != tc.ticks[i] {
				t.Errorf("RecentRuns(%q)[%d].Ticks = %d, expected %d", tc.simID, i, r.Ticks, tc.ticks[i])
			}
		}
	}
}

func TestClearRuns(t *testing.T) {
	store := openTemp(t)
	for _, id := range []string{"maze", "maze", "movement"} {
		if _, err := store.SaveRun(Run{SimID: id, Host: "term"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns("maze"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].SimID != "movement" {
		t.Errorf("after ClearRuns(maze): %+v, expected one movement run", runs)
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.RecentRuns("", 10); len(runs) != 0 {
		t.Errorf("after ClearRuns(\"\"): %d runs, expected 0", len(runs))
	}
}

func TestRunFPS(t *testing.T) {
	tests := []struct {
		run      Run
		expected float64
	}{
		{Run{Ticks: 61, Duration: time.Second}, 60},
		{Run{Ticks: 1, Duration: time.Second}, 0},
		{Run{Ticks: 10}, 0},
	}

	for _, tc := range tests {
		if got := tc.run.FPS(); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("FPS() = %v, expected %v", got, tc.expected)
		}
	}
}
