package observability

import (
	"fmt"
	"time"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	// DegradedRatePercent: share of decisions with degraded lookups above
	// which the collaborator stores are considered unhealthy.
	DegradedRatePercent int `yaml:"degraded_rate_percent" json:"degraded_rate_percent"`
	// StaleRatePercent: share of stale-force-refresh outcomes above which
	// users are systematically outrunning the staleness ceiling.
	StaleRatePercent int `yaml:"stale_rate_percent" json:"stale_rate_percent"`
	// MinDecisions is the sample size below which rate alerts stay quiet.
	MinDecisions int `yaml:"min_decisions" json:"min_decisions"`
	// WindowDays is how far back Evaluate looks.
	WindowDays int `yaml:"window_days" json:"window_days"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		DegradedRatePercent: 20,
		StaleRatePercent:    50,
		MinDecisions:        10,
		WindowDays:          7,
	}
}

// AlertEngine evaluates alert conditions against the event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading events and checking thresholds.
type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates a new AlertEngine with the given EventLog and thresholds.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
	}
}

// Evaluate reads events in the configured window and checks all alert
// conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -ae.thresholds.WindowDays)

	decisions, err := ae.eventLog.Read(EventFilter{Since: &since, Type: "decision.made"})
	if err != nil {
		return nil, fmt.Errorf("reading decision events: %w", err)
	}
	degraded, err := ae.eventLog.Read(EventFilter{Since: &since, Type: "decision.degraded"})
	if err != nil {
		return nil, fmt.Errorf("reading degraded events: %w", err)
	}

	var alerts []Alert
	alerts = append(alerts, ae.checkDegradedRate(now, len(decisions), len(degraded))...)
	alerts = append(alerts, ae.checkStaleRate(now, decisions)...)
	alerts = append(alerts, ae.checkAllSparse(now, decisions)...)

	return alerts, nil
}

// checkDegradedRate fires when too many recent decisions lost at least one
// collaborator lookup, which usually means the backing store is unhealthy.
func (ae *alertEngine) checkDegradedRate(now time.Time, decisions, degraded int) []Alert {
	if decisions < ae.thresholds.MinDecisions {
		return nil
	}
	rate := degraded * 100 / decisions
	if rate <= ae.thresholds.DegradedRatePercent {
		return nil
	}
	return []Alert{{
		ID:          fmt.Sprintf("degraded-rate-%d", now.Unix()),
		Condition:   "degraded_lookup_rate",
		Severity:    SeverityHigh,
		Message:     fmt.Sprintf("%d%% of decisions in the last %dd degraded a lookup (threshold %d%%)", rate, ae.thresholds.WindowDays, ae.thresholds.DegradedRatePercent),
		TriggeredAt: now,
	}}
}

// checkStaleRate fires when stale-force-refresh dominates recent outcomes:
// users are going too long between analyses for the cache to be useful.
func (ae *alertEngine) checkStaleRate(now time.Time, decisions []Event) []Alert {
	if len(decisions) < ae.thresholds.MinDecisions {
		return nil
	}

	stale := 0
	for _, e := range decisions {
		if outcome, ok := e.Data["decision"].(string); ok && outcome == "stale_force_refresh" {
			stale++
		}
	}
	rate := stale * 100 / len(decisions)
	if rate <= ae.thresholds.StaleRatePercent {
		return nil
	}
	return []Alert{{
		ID:          fmt.Sprintf("stale-rate-%d", now.Unix()),
		Condition:   "stale_refresh_rate",
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("%d%% of decisions in the last %dd were stale refreshes (threshold %d%%)", rate, ae.thresholds.WindowDays, ae.thresholds.StaleRatePercent),
		TriggeredAt: now,
	}}
}

// checkAllSparse fires when every recent decision saw sparse memory, which
// suggests the historical analysis counts are not being recorded.
func (ae *alertEngine) checkAllSparse(now time.Time, decisions []Event) []Alert {
	if len(decisions) < ae.thresholds.MinDecisions {
		return nil
	}

	for _, e := range decisions {
		if quality, ok := e.Data["memory_quality"].(string); ok && quality != "sparse" {
			return nil
		}
	}
	return []Alert{{
		ID:          fmt.Sprintf("all-sparse-%d", now.Unix()),
		Condition:   "memory_quality_floor",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("all %d decisions in the last %dd scored sparse memory; check analysis recording", len(decisions), ae.thresholds.WindowDays),
		TriggeredAt: now,
	}}
}
