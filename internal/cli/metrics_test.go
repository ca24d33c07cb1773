package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/wellness-brain/internal/observability"
)

// --- parseSinceDuration unit tests ---

func TestParseSinceDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"empty defaults to 7d", "", false, ""},
		{"whitespace defaults to 7d", "  ", false, ""},
		{"valid 7d", "7d", false, ""},
		{"valid 30d", "30d", false, ""},
		{"valid 24h", "24h", false, ""},
		{"invalid suffix", "abc", true, "unsupported duration format"},
		{"invalid day number", "xd", true, "invalid day duration"},
		{"invalid hour number", "yh", true, "invalid hour duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSinceDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseSinceDurationWindow(t *testing.T) {
	got, err := parseSinceDuration("3d")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Now().UTC().AddDate(0, 0, -3)
	if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
		t.Errorf("parseSinceDuration(3d) = %v, want ~%v", got, want)
	}
}

// --- metricsCmd tests ---

type metricsMock struct {
	calcFn func(since time.Time) (*observability.Metrics, error)
}

func (m *metricsMock) Calculate(since time.Time) (*observability.Metrics, error) {
	return m.calcFn(since)
}

func TestMetricsCmd_NilCalculator(t *testing.T) {
	orig := MetricsCalc
	defer func() { MetricsCalc = orig }()
	MetricsCalc = nil

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error when MetricsCalc is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_InvalidSinceFormat(t *testing.T) {
	orig := MetricsCalc
	origSince := metricsSince
	defer func() {
		MetricsCalc = orig
		metricsSince = origSince
	}()

	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			return &observability.Metrics{}, nil
		},
	}
	metricsSince = "next tuesday"

	err := metricsCmd.RunE(metricsCmd, []string{})
	if err == nil {
		t.Fatal("expected error for unparseable --since")
	}
	if !strings.Contains(err.Error(), "parsing --since") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMetricsCmd_Success(t *testing.T) {
	orig := MetricsCalc
	origSince := metricsSince
	defer func() {
		MetricsCalc = orig
		metricsSince = origSince
	}()

	var gotSince time.Time
	MetricsCalc = &metricsMock{
		calcFn: func(since time.Time) (*observability.Metrics, error) {
			gotSince = since
			return &observability.Metrics{
				DecisionsTotal:     2,
				DecisionsByOutcome: map[string]int{"fresh_analysis": 2},
			}, nil
		},
	}
	metricsSince = "14d"

	if err := metricsCmd.RunE(metricsCmd, []string{}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	want := time.Now().UTC().AddDate(0, 0, -14)
	if gotSince.Sub(want) > time.Minute || want.Sub(gotSince) > time.Minute {
		t.Errorf("Calculate called with since %v, want ~%v", gotSince, want)
	}
}
