package models

import "testing"

func TestDefaultEngineConfigValid(t *testing.T) {
	if err := DefaultEngineConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	mutate := func(f func(*EngineConfig)) EngineConfig {
		c := DefaultEngineConfig()
		f(&c)
		return c
	}

	tests := []struct {
		name string
		cfg  EngineConfig
	}{
		{"threshold too low", mutate(func(c *EngineConfig) { c.BaseThreshold = 5 })},
		{"threshold too high", mutate(func(c *EngineConfig) { c.BaseThreshold = 101 })},
		{"zero staleness", mutate(func(c *EngineConfig) { c.StalenessDays = 0 })},
		{"negative recent cache", mutate(func(c *EngineConfig) { c.RecentCacheHours = -1 })},
		{"inverted fetch bounds", mutate(func(c *EngineConfig) { c.MinDaysToFetch = 8 })},
		{"zero initial fetch", mutate(func(c *EngineConfig) { c.InitialDaysToFetch = 0 })},
		{"zero transition age", mutate(func(c *EngineConfig) { c.TransitionAgeDays = 0 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}
