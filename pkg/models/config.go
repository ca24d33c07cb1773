package models

import "fmt"

// EngineConfig holds the tunable parameters of the freshness decision
// engine. Values are read from .wellnessrc at startup; the defaults below
// are authoritative when no config file exists.
type EngineConfig struct {
	// BaseThreshold is the starting new-data-points threshold before the
	// multiplicative quality, complexity, and time-decay factors apply.
	BaseThreshold int `yaml:"base_threshold" json:"base_threshold"`
	// StalenessDays is the ceiling beyond which a cached analysis is
	// force-refreshed regardless of data volume.
	StalenessDays int `yaml:"staleness_days" json:"staleness_days"`
	// RecentCacheHours is the window inside which a cached analysis is
	// always reused when the data threshold is not met.
	RecentCacheHours float64 `yaml:"recent_cache_hours" json:"recent_cache_hours"`
	// FollowUpCutoffDays bounds how old an analysis may be for a data
	// override to still run as a follow-up rather than an initial analysis.
	FollowUpCutoffDays float64 `yaml:"follow_up_cutoff_days" json:"follow_up_cutoff_days"`
	// MinDaysToFetch and MaxDaysToFetch clamp the suggested context window
	// handed to the plan-generation pipeline.
	MinDaysToFetch int `yaml:"min_days_to_fetch" json:"min_days_to_fetch"`
	MaxDaysToFetch int `yaml:"max_days_to_fetch" json:"max_days_to_fetch"`
	// InitialDaysToFetch is the context window for first-time and forced
	// analyses.
	InitialDaysToFetch int `yaml:"initial_days_to_fetch" json:"initial_days_to_fetch"`
	// TransitionAgeDays is the cache age past which even a compatible
	// archetype switch forces a fresh analysis.
	TransitionAgeDays float64 `yaml:"transition_age_days" json:"transition_age_days"`
	// EngagementRecencyDays and EngagementMinSize gate the contextual
	// engagement contribution to memory quality.
	EngagementRecencyDays int `yaml:"engagement_recency_days" json:"engagement_recency_days"`
	EngagementMinSize     int `yaml:"engagement_min_size" json:"engagement_min_size"`
}

// DefaultEngineConfig returns the authoritative engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		BaseThreshold:         50,
		StalenessDays:         14,
		RecentCacheHours:      1,
		FollowUpCutoffDays:    3,
		MinDaysToFetch:        3,
		MaxDaysToFetch:        7,
		InitialDaysToFetch:    7,
		TransitionAgeDays:     3,
		EngagementRecencyDays: 7,
		EngagementMinSize:     200,
	}
}

// AlertConfig tunes the observability alert conditions.
type AlertConfig struct {
	// DegradedRatePercent fires when more than this share of recent
	// decisions degraded at least one lookup.
	DegradedRatePercent int `yaml:"degraded_rate_percent" json:"degraded_rate_percent"`
	// StaleRatePercent fires when more than this share of recent decisions
	// hit the staleness ceiling.
	StaleRatePercent int `yaml:"stale_rate_percent" json:"stale_rate_percent"`
	// MinDecisions is the sample size below which rate alerts stay quiet.
	MinDecisions int `yaml:"min_decisions" json:"min_decisions"`
	// WindowDays is the event-log window the alert conditions examine.
	WindowDays int `yaml:"window_days" json:"window_days"`
}

// DefaultAlertConfig returns sensible alert thresholds.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		DegradedRatePercent: 20,
		StaleRatePercent:    50,
		MinDecisions:        10,
		WindowDays:          7,
	}
}

// AppConfig is the full .wellnessrc configuration: engine tuning plus the
// paths and alert thresholds of the supporting services.
type AppConfig struct {
	Engine       EngineConfig `yaml:"engine" json:"engine"`
	DatabasePath string       `yaml:"database_path" json:"database_path"`
	EventLogPath string       `yaml:"event_log_path" json:"event_log_path"`
	Alerts       AlertConfig  `yaml:"alerts" json:"alerts"`
}

// DefaultAppConfig returns the defaults used when no .wellnessrc exists.
// Paths are relative to the base path resolved at startup.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Engine:       DefaultEngineConfig(),
		DatabasePath: "wellness.db",
		EventLogPath: ".wb_events.jsonl",
		Alerts:       DefaultAlertConfig(),
	}
}

// Validate checks that the config values are internally consistent.
func (c EngineConfig) Validate() error {
	if c.BaseThreshold < 10 || c.BaseThreshold > 100 {
		return fmt.Errorf("base_threshold %d outside [10, 100]", c.BaseThreshold)
	}
	if c.StalenessDays <= 0 {
		return fmt.Errorf("staleness_days must be positive, got %d", c.StalenessDays)
	}
	if c.RecentCacheHours <= 0 {
		return fmt.Errorf("recent_cache_hours must be positive, got %g", c.RecentCacheHours)
	}
	if c.MinDaysToFetch <= 0 || c.MaxDaysToFetch < c.MinDaysToFetch {
		return fmt.Errorf("days_to_fetch bounds invalid: min %d, max %d", c.MinDaysToFetch, c.MaxDaysToFetch)
	}
	if c.InitialDaysToFetch <= 0 {
		return fmt.Errorf("initial_days_to_fetch must be positive, got %d", c.InitialDaysToFetch)
	}
	if c.TransitionAgeDays <= 0 {
		return fmt.Errorf("transition_age_days must be positive, got %g", c.TransitionAgeDays)
	}
	return nil
}
