package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/valter-silva-au/wellness-brain/internal/storage"
)

func TestEngagementSaveCmd_NilStore(t *testing.T) {
	orig := Engagement
	defer func() { Engagement = orig }()
	Engagement = nil

	err := engagementSaveCmd.RunE(engagementSaveCmd, []string{"u1"})
	if err == nil {
		t.Fatal("expected error when Engagement is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEngagementSaveCmd_SavesSnapshot(t *testing.T) {
	orig := Engagement
	defer func() {
		Engagement = orig
		engagementPayload = ""
	}()
	Engagement = storage.NewEngagementStore(openTestDB(t), 7, 10)
	engagementPayload = `{"sessions": 12, "streak_days": 5, "favorite_time": "morning"}`

	if err := engagementSaveCmd.RunE(engagementSaveCmd, []string{"u1"}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	ok, err := Engagement.HasRecentContext(context.Background(), "u1")
	if err != nil {
		t.Fatalf("checking context: %v", err)
	}
	if !ok {
		t.Error("no recent context after saving a snapshot")
	}
}

func TestEngagementCheckCmd(t *testing.T) {
	orig := Engagement
	defer func() { Engagement = orig }()

	Engagement = nil
	if err := engagementCheckCmd.RunE(engagementCheckCmd, []string{"u1"}); err == nil {
		t.Error("expected error when Engagement is nil")
	}

	// Both outcomes report, neither errors.
	Engagement = storage.NewEngagementStore(openTestDB(t), 7, 10)
	if err := engagementCheckCmd.RunE(engagementCheckCmd, []string{"u1"}); err != nil {
		t.Fatalf("RunE without context: %v", err)
	}
}
