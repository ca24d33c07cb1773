package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated decision metrics derived from the event log.
type Metrics struct {
	DecisionsTotal     int            `json:"decisions_total"`
	DecisionsByOutcome map[string]int `json:"decisions_by_outcome"`
	DecisionsByQuality map[string]int `json:"decisions_by_quality"`
	ArchetypeChanges   int            `json:"archetype_changes"`
	DegradedDecisions  int            `json:"degraded_decisions"`
	AnalysesRecorded   int            `json:"analyses_recorded"`
	CheckinsRecorded   int            `json:"checkins_recorded"`
	EventCount         int            `json:"event_count"`
	OldestEvent        *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent        *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		DecisionsByOutcome: make(map[string]int),
		DecisionsByQuality: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "decision.made":
			m.DecisionsTotal++
			if outcome, ok := event.Data["decision"].(string); ok {
				m.DecisionsByOutcome[outcome]++
			}
			if quality, ok := event.Data["memory_quality"].(string); ok {
				m.DecisionsByQuality[quality]++
			}
		case "decision.archetype_change":
			m.ArchetypeChanges++
		case "decision.degraded":
			m.DegradedDecisions++
		case "analysis.recorded":
			m.AnalysesRecorded++
		case "checkin.recorded":
			m.CheckinsRecorded++
		}
	}

	return m, nil
}
