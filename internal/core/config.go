package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// configName is the .wellnessrc file read from the base path.
const configName = ".wellnessrc"

// ConfigurationManager loads and validates the .wellnessrc configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.AppConfig, error)
	WriteDefaultConfig() (string, error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	// basePath is the directory where .wellnessrc resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// LoadConfig reads .wellnessrc from the base path. If the file does not
// exist, defaults are returned. Engine values are validated after merging
// so a bad config file fails loudly at startup rather than mid-decision.
func (cm *viperConfigManager) LoadConfig() (*models.AppConfig, error) {
	cfg := models.DefaultAppConfig()

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Viper defaults so missing keys fall back gracefully.
	v.SetDefault("engine.base_threshold", cfg.Engine.BaseThreshold)
	v.SetDefault("engine.staleness_days", cfg.Engine.StalenessDays)
	v.SetDefault("engine.recent_cache_hours", cfg.Engine.RecentCacheHours)
	v.SetDefault("engine.follow_up_cutoff_days", cfg.Engine.FollowUpCutoffDays)
	v.SetDefault("engine.min_days_to_fetch", cfg.Engine.MinDaysToFetch)
	v.SetDefault("engine.max_days_to_fetch", cfg.Engine.MaxDaysToFetch)
	v.SetDefault("engine.initial_days_to_fetch", cfg.Engine.InitialDaysToFetch)
	v.SetDefault("engine.transition_age_days", cfg.Engine.TransitionAgeDays)
	v.SetDefault("engine.engagement_recency_days", cfg.Engine.EngagementRecencyDays)
	v.SetDefault("engine.engagement_min_size", cfg.Engine.EngagementMinSize)
	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("event_log_path", cfg.EventLogPath)
	v.SetDefault("alerts.degraded_rate_percent", cfg.Alerts.DegradedRatePercent)
	v.SetDefault("alerts.stale_rate_percent", cfg.Alerts.StaleRatePercent)
	v.SetDefault("alerts.min_decisions", cfg.Alerts.MinDecisions)
	v.SetDefault("alerts.window_days", cfg.Alerts.WindowDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s: %w", configName, err)
		}
		// No config file found; defaults apply.
	}

	cfg.Engine.BaseThreshold = v.GetInt("engine.base_threshold")
	cfg.Engine.StalenessDays = v.GetInt("engine.staleness_days")
	cfg.Engine.RecentCacheHours = v.GetFloat64("engine.recent_cache_hours")
	cfg.Engine.FollowUpCutoffDays = v.GetFloat64("engine.follow_up_cutoff_days")
	cfg.Engine.MinDaysToFetch = v.GetInt("engine.min_days_to_fetch")
	cfg.Engine.MaxDaysToFetch = v.GetInt("engine.max_days_to_fetch")
	cfg.Engine.InitialDaysToFetch = v.GetInt("engine.initial_days_to_fetch")
	cfg.Engine.TransitionAgeDays = v.GetFloat64("engine.transition_age_days")
	cfg.Engine.EngagementRecencyDays = v.GetInt("engine.engagement_recency_days")
	cfg.Engine.EngagementMinSize = v.GetInt("engine.engagement_min_size")
	cfg.DatabasePath = v.GetString("database_path")
	cfg.EventLogPath = v.GetString("event_log_path")
	cfg.Alerts.DegradedRatePercent = v.GetInt("alerts.degraded_rate_percent")
	cfg.Alerts.StaleRatePercent = v.GetInt("alerts.stale_rate_percent")
	cfg.Alerts.MinDecisions = v.GetInt("alerts.min_decisions")
	cfg.Alerts.WindowDays = v.GetInt("alerts.window_days")

	if err := cfg.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	return &cfg, nil
}

// WriteDefaultConfig writes a .wellnessrc populated with defaults to the
// base path and returns its path. An existing file is left untouched.
func (cm *viperConfigManager) WriteDefaultConfig() (string, error) {
	path := filepath.Join(cm.basePath, configName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(models.DefaultAppConfig())
	if err != nil {
		return "", fmt.Errorf("marshalling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
