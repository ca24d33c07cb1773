package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/wellness-brain/internal/observability"
)

type alertEngineMock struct {
	alerts []observability.Alert
	err    error
}

func (m *alertEngineMock) Evaluate() ([]observability.Alert, error) {
	return m.alerts, m.err
}

func TestAlertsCmd_NilEngine(t *testing.T) {
	orig := AlertEngine
	defer func() { AlertEngine = orig }()
	AlertEngine = nil

	err := alertsCmd.RunE(alertsCmd, nil)
	if err == nil {
		t.Fatal("expected error when AlertEngine is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAlertsCmd_ReportsAlerts(t *testing.T) {
	orig := AlertEngine
	defer func() { AlertEngine = orig }()

	AlertEngine = &alertEngineMock{}
	if err := alertsCmd.RunE(alertsCmd, nil); err != nil {
		t.Fatalf("RunE with no alerts: %v", err)
	}

	AlertEngine = &alertEngineMock{alerts: []observability.Alert{
		{
			Condition:   "degraded_lookup_rate",
			Severity:    observability.SeverityHigh,
			Message:     "30% of decisions in the last 7d degraded a lookup (threshold 20%)",
			TriggeredAt: time.Now().UTC(),
		},
	}}
	if err := alertsCmd.RunE(alertsCmd, nil); err != nil {
		t.Fatalf("RunE with alerts: %v", err)
	}
}
