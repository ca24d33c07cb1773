package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLog(t *testing.T) EventLog {
	t.Helper()
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestWriteAndReadBack(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: base, Level: "INFO", Type: "decision.made", User: "u1", Data: map[string]any{"decision": "fresh_analysis"}},
		{Time: base.Add(time.Hour), Level: "INFO", Type: "checkin.recorded", User: "u2"},
		{Time: base.Add(2 * time.Hour), Level: "WARN", Type: "decision.degraded", User: "u1"},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("read %d events, want 3", len(got))
	}
	if got[0].Type != "decision.made" || got[0].Data["decision"] != "fresh_analysis" {
		t.Errorf("first event = %+v", got[0])
	}
}

func TestReadFilters(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	types := []string{"decision.made", "decision.made", "analysis.recorded"}
	for i, typ := range types {
		if err := log.Write(Event{Time: base.Add(time.Duration(i) * time.Hour), Level: "INFO", Type: typ}); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	byType, err := log.Read(EventFilter{Type: "decision.made"})
	if err != nil {
		t.Fatalf("reading by type: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("type filter returned %d events, want 2", len(byType))
	}

	since := base.Add(90 * time.Minute)
	bySince, err := log.Read(EventFilter{Since: &since})
	if err != nil {
		t.Fatalf("reading by since: %v", err)
	}
	if len(bySince) != 1 {
		t.Errorf("since filter returned %d events, want 1", len(bySince))
	}
}

func TestReadFiltersByUser(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	users := []string{"u1", "u2", "u1"}
	for i, user := range users {
		err := log.Write(Event{Time: base.Add(time.Duration(i) * time.Hour), Level: "INFO", Type: "decision.made", User: user})
		if err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	got, err := log.Read(EventFilter{User: "u1"})
	if err != nil {
		t.Fatalf("reading by user: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("user filter returned %d events, want 2", len(got))
	}
}

func TestWritePromotesUserAndStampsTime(t *testing.T) {
	log := newTestLog(t)

	before := time.Now().UTC()
	err := log.Write(Event{Level: "INFO", Type: "analysis.recorded", Data: map[string]any{"user_id": "u7"}})
	if err != nil {
		t.Fatalf("writing event: %v", err)
	}

	got, err := log.Read(EventFilter{User: "u7"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("read %d events for promoted user, want 1", len(got))
	}
	if got[0].User != "u7" {
		t.Errorf("User = %q, want u7 promoted from data", got[0].User)
	}
	if got[0].Time.Before(before.Add(-time.Second)) {
		t.Errorf("zero Time was not stamped on write: %v", got[0].Time)
	}
}

func TestReadMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer func() { _ = log.Close() }()

	// Remove the file out from under the reader.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading missing file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("read %d events from a missing file", len(got))
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	content := `{"time":"2026-03-01T10:00:00Z","level":"INFO","type":"decision.made","user":"u1"}
not json at all
{"time":"2026-03-01T11:00:00Z","level":"INFO","type":"decision.made","user":"u1"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer func() { _ = log.Close() }()

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("read %d events, want 2 with the malformed line skipped", len(got))
	}
}
