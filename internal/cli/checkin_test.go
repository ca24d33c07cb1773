package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/wellness-brain/internal/storage"
)

// openTestDB opens a throwaway sqlite database shared by the command tests
// that exercise real stores.
func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "wb.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func resetCheckinFlags() {
	checkinKind = "workout"
	checkinNote = ""
}

func TestCheckinCmd_NilStore(t *testing.T) {
	orig := Checkins
	defer func() { Checkins = orig }()
	Checkins = nil

	err := checkinCmd.RunE(checkinCmd, []string{"u1"})
	if err == nil {
		t.Fatal("expected error when Checkins is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckinCmd_RecordsDataPoint(t *testing.T) {
	orig := Checkins
	defer func() {
		Checkins = orig
		resetCheckinFlags()
	}()
	Checkins = storage.NewCheckinStore(openTestDB(t))
	checkinKind = "sleep"
	checkinNote = "7h"

	if err := checkinCmd.RunE(checkinCmd, []string{"u1"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	count, err := Checkins.CountSince(context.Background(), "u1", time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("counting check-ins: %v", err)
	}
	if count != 1 {
		t.Errorf("counted %d check-ins after recording, want 1", count)
	}

	recent, err := Checkins.Recent(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("reading recent check-ins: %v", err)
	}
	if len(recent) != 1 || recent[0].Kind != "sleep" {
		t.Errorf("recent check-ins = %+v, want one sleep entry", recent)
	}
}
