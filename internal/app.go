// Package internal provides the App struct that wires all components of the
// wellness-brain decision engine together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/wellness-brain/internal/cli"
	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/internal/observability"
	"github.com/valter-silva-au/wellness-brain/internal/storage"
)

// App holds all service dependencies for the wellness-brain system.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	DB         *storage.DB
	Analyses   *storage.AnalysisStore
	Checkins   *storage.CheckinStore
	Engagement *storage.EngagementStore

	// Core services
	CompatModel core.CompatibilityModel
	Thresholds  core.ThresholdCalculator
	Quality     core.MemoryQualityAssessor
	Transitions core.TransitionAssessor
	Engine      core.FreshnessEngine
	Advisor     core.AnalysisAdvisor

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the wellness-brain system.
// basePath is the root directory where all data is stored (typically the
// directory containing .wellnessrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	// --- Storage layer ---
	dbPath := cfg.DatabasePath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(basePath, dbPath)
	}
	app.DB, err = storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	app.Analyses = storage.NewAnalysisStore(app.DB)
	app.Checkins = storage.NewCheckinStore(app.DB)
	app.Engagement = storage.NewEngagementStore(app.DB, cfg.Engine.EngagementRecencyDays, cfg.Engine.EngagementMinSize)

	// --- Observability ---
	logPath := cfg.EventLogPath
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(basePath, logPath)
	}
	app.EventLog, err = observability.NewJSONLEventLog(logPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		thresholds := observability.DefaultAlertThresholds()
		if cfg.Alerts.DegradedRatePercent > 0 {
			thresholds.DegradedRatePercent = cfg.Alerts.DegradedRatePercent
		}
		if cfg.Alerts.StaleRatePercent > 0 {
			thresholds.StaleRatePercent = cfg.Alerts.StaleRatePercent
		}
		if cfg.Alerts.MinDecisions > 0 {
			thresholds.MinDecisions = cfg.Alerts.MinDecisions
		}
		if cfg.Alerts.WindowDays > 0 {
			thresholds.WindowDays = cfg.Alerts.WindowDays
		}
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, thresholds)
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.CompatModel = core.NewCompatibilityModel()
	app.Thresholds = core.NewThresholdCalculator()
	app.Quality = core.NewMemoryQualityAssessor(app.Analyses, app.Engagement)
	app.Transitions = core.NewTransitionAssessor(app.CompatModel, cfg.Engine)
	app.Engine = core.NewFreshnessEngine(app.Quality, app.Thresholds, app.Transitions, cfg.Engine)

	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}
	app.Advisor = core.NewAnalysisAdvisor(app.Engine, app.Analyses, app.Checkins, evtAdapter)

	// --- Wire CLI package-level variables ---
	cli.ConfigMgr = app.ConfigMgr
	cli.Advisor = app.Advisor
	cli.Transitions = app.Transitions
	cli.CompatModel = app.CompatModel
	cli.Analyses = app.Analyses
	cli.Checkins = app.Checkins
	cli.Engagement = app.Engagement

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App: the event log file handle and
// the database connection. Safe to call when either is nil.
func (a *App) Close() error {
	var firstErr error
	if a.EventLog != nil {
		if err := a.EventLog.Close(); err != nil {
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveBasePath determines the base path for the wellness-brain data
// directory. It checks the WB_HOME env var, then walks up from the current
// directory looking for a .wellnessrc, falling back to the cwd.
func ResolveBasePath() string {
	if home := os.Getenv("WB_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".wellnessrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:  time.Now().UTC(),
		Level: "INFO",
		Type:  eventType,
		Data:  data,
	})
}
