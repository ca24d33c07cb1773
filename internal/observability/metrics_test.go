package observability

import (
	"testing"
	"time"
)

func TestMetricsCalculatorCalculate(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: base, Level: "INFO", Type: "decision.made", Data: map[string]any{"decision": "fresh_analysis", "memory_quality": "sparse"}},
		{Time: base.Add(time.Hour), Level: "INFO", Type: "decision.made", Data: map[string]any{"decision": "memory_enhanced_cache", "memory_quality": "rich"}},
		{Time: base.Add(2 * time.Hour), Level: "INFO", Type: "decision.made", Data: map[string]any{"decision": "memory_enhanced_cache", "memory_quality": "rich"}},
		{Time: base.Add(3 * time.Hour), Level: "INFO", Type: "decision.archetype_change", Data: map[string]any{"from": "Foundation Builder", "to": "Peak Performer"}},
		{Time: base.Add(4 * time.Hour), Level: "INFO", Type: "decision.degraded"},
		{Time: base.Add(5 * time.Hour), Level: "INFO", Type: "analysis.recorded"},
		{Time: base.Add(6 * time.Hour), Level: "INFO", Type: "checkin.recorded"},
		{Time: base.Add(7 * time.Hour), Level: "INFO", Type: "checkin.recorded"},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := NewMetricsCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if m.EventCount != 8 {
		t.Errorf("EventCount = %d, want 8", m.EventCount)
	}
	if m.DecisionsTotal != 3 {
		t.Errorf("DecisionsTotal = %d, want 3", m.DecisionsTotal)
	}
	if m.DecisionsByOutcome["memory_enhanced_cache"] != 2 {
		t.Errorf("DecisionsByOutcome = %v", m.DecisionsByOutcome)
	}
	if m.DecisionsByQuality["rich"] != 2 || m.DecisionsByQuality["sparse"] != 1 {
		t.Errorf("DecisionsByQuality = %v", m.DecisionsByQuality)
	}
	if m.ArchetypeChanges != 1 {
		t.Errorf("ArchetypeChanges = %d, want 1", m.ArchetypeChanges)
	}
	if m.DegradedDecisions != 1 {
		t.Errorf("DegradedDecisions = %d, want 1", m.DegradedDecisions)
	}
	if m.AnalysesRecorded != 1 {
		t.Errorf("AnalysesRecorded = %d, want 1", m.AnalysesRecorded)
	}
	if m.CheckinsRecorded != 2 {
		t.Errorf("CheckinsRecorded = %d, want 2", m.CheckinsRecorded)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(7*time.Hour)) {
		t.Errorf("NewestEvent = %v", m.NewestEvent)
	}
}

func TestMetricsCalculatorWindow(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	old := Event{Time: base.AddDate(0, 0, -10), Level: "INFO", Type: "decision.made", Data: map[string]any{"decision": "fresh_analysis"}}
	recent := Event{Time: base, Level: "INFO", Type: "decision.made", Data: map[string]any{"decision": "fresh_analysis"}}
	for _, e := range []Event{old, recent} {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := NewMetricsCalculator(log).Calculate(base.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.DecisionsTotal != 1 {
		t.Errorf("DecisionsTotal = %d, want 1 inside the window", m.DecisionsTotal)
	}
}

func TestMetricsCalculatorEmptyLog(t *testing.T) {
	log := newTestLog(t)

	m, err := NewMetricsCalculator(log).Calculate(time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.EventCount != 0 || m.DecisionsTotal != 0 {
		t.Errorf("metrics not empty: %+v", m)
	}
	if m.OldestEvent != nil || m.NewestEvent != nil {
		t.Error("event bounds set for an empty log")
	}
}
