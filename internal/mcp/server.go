// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the Wellness Brain decision engine as MCP tools for the coaching LLM
// pipeline.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valter-silva-au/wellness-brain/internal/core"
	"github.com/valter-silva-au/wellness-brain/internal/observability"
	"github.com/valter-silva-au/wellness-brain/pkg/models"
)

// AnalysisRecorder is the subset of the analysis store the server needs to
// move a user's watermark after a fresh analysis completes.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, userID string, archetype string, analysisType core.AnalysisType, completedAt time.Time) (string, error)
}

// Server wraps the decision services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	advisor     core.AnalysisAdvisor
	transitions core.TransitionAssessor
	recorder    AnalysisRecorder
	metricsCalc observability.MetricsCalculator
	alertEngine observability.AlertEngine
}

// NewServer creates a new MCP server with the given service dependencies.
// metricsCalc and alertEngine may be nil if observability is disabled.
func NewServer(advisor core.AnalysisAdvisor, transitions core.TransitionAssessor, recorder AnalysisRecorder, metricsCalc observability.MetricsCalculator, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		advisor:     advisor,
		transitions: transitions,
		recorder:    recorder,
		metricsCalc: metricsCalc,
		alertEngine: alertEngine,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "wb", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type decideInput struct {
	UserID       string `json:"user_id" jsonschema:"required,the user to decide for"`
	Archetype    string `json:"archetype,omitempty" jsonschema:"the requested archetype (e.g. Peak Performer); omit to use the user's current one"`
	ForceRefresh bool   `json:"force_refresh,omitempty" jsonschema:"force a fresh analysis regardless of cache state"`
}

type decideOutput struct {
	Decision          string   `json:"decision"`
	DecisionID        string   `json:"decision_id"`
	Reason            string   `json:"reason"`
	AnalysisMode      string   `json:"analysis_mode"`
	DaysToFetch       int      `json:"days_to_fetch"`
	Threshold         int      `json:"threshold"`
	NewDataPoints     int      `json:"new_data_points"`
	DaysSince         float64  `json:"days_since_analysis"`
	MemoryQuality     string   `json:"memory_quality"`
	ArchetypeChange   bool     `json:"archetype_change"`
	PreviousArchetype string   `json:"previous_archetype,omitempty"`
	Degradations      []string `json:"degradations,omitempty"`
}

type transitionInput struct {
	From string `json:"from" jsonschema:"required,the user's current archetype"`
	To   string `json:"to" jsonschema:"required,the archetype being switched to"`
}

type transitionOutput struct {
	Strategy       string   `json:"strategy"`
	ForceFresh     bool     `json:"force_fresh"`
	TransitionDays int      `json:"transition_days"`
	Compatibility  string   `json:"compatibility"`
	Reason         string   `json:"reason"`
	Timeline       []string `json:"timeline,omitempty"`
	Guidance       []string `json:"guidance,omitempty"`
	SuccessMetrics []string `json:"success_metrics,omitempty"`
}

type listArchetypesInput struct{}

type archetypeOutput struct {
	Archetype        string `json:"archetype"`
	DailyTimeMinutes int    `json:"daily_time_minutes"`
	Complexity       int    `json:"complexity"`
	Focus            string `json:"focus"`
}

type listArchetypesOutput struct {
	Archetypes []archetypeOutput `json:"archetypes"`
	Count      int               `json:"count"`
}

type recordAnalysisInput struct {
	UserID    string `json:"user_id" jsonschema:"required,the user the analysis ran for"`
	Archetype string `json:"archetype" jsonschema:"required,the archetype the analysis ran under"`
	Type      string `json:"type,omitempty" jsonschema:"analysis type: behavior or circadian (default behavior)"`
}

type recordAnalysisOutput struct {
	AnalysisID string `json:"analysis_id"`
	Message    string `json:"message"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	DecisionsTotal     int            `json:"decisions_total"`
	DecisionsByOutcome map[string]int `json:"decisions_by_outcome"`
	DecisionsByQuality map[string]int `json:"decisions_by_quality"`
	ArchetypeChanges   int            `json:"archetype_changes"`
	DegradedDecisions  int            `json:"degraded_decisions"`
	AnalysesRecorded   int            `json:"analyses_recorded"`
	CheckinsRecorded   int            `json:"checkins_recorded"`
	EventCount         int            `json:"event_count"`
	OldestEvent        string         `json:"oldest_event,omitempty"`
	NewestEvent        string         `json:"newest_event,omitempty"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "decide_analysis",
		Description: "Decide whether a fresh behavioral analysis must run for a user before plan generation, or whether the cached analysis remains valid. Returns the decision and full reasoning metadata.",
	}, s.handleDecide)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "assess_transition",
		Description: "Assess a switch between two archetypes: transition strategy, blend window, timeline, and coaching guidance for the UI.",
	}, s.handleAssessTransition)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_archetypes",
		Description: "List the six behavioral archetypes with their daily time commitment, complexity, and focus.",
	}, s.handleListArchetypes)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "record_analysis",
		Description: "Record a completed analysis for a user, moving their freshness watermark. Call after a fresh analysis finishes.",
	}, s.handleRecordAnalysis)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated decision metrics from the event log: outcomes, memory quality distribution, archetype changes, and degraded lookups.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (degraded lookup rate, stale refresh rate, memory quality floor).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) handleDecide(ctx context.Context, _ *gomcp.CallToolRequest, input decideInput) (*gomcp.CallToolResult, decideOutput, error) {
	if input.UserID == "" {
		return errorResult("user_id is required"), decideOutput{}, nil
	}

	var archetype models.Archetype
	if input.Archetype != "" {
		parsed, err := models.ParseArchetype(input.Archetype)
		if err != nil {
			return errorResult(err.Error()), decideOutput{}, nil
		}
		archetype = parsed
	}

	decision, meta := s.advisor.Advise(ctx, input.UserID, archetype, input.ForceRefresh)

	out := decideOutput{
		Decision:          string(decision),
		DecisionID:        meta.DecisionID,
		Reason:            meta.Reason,
		AnalysisMode:      string(meta.AnalysisMode),
		DaysToFetch:       meta.DaysToFetch,
		Threshold:         meta.Threshold,
		NewDataPoints:     meta.NewDataPoints,
		DaysSince:         meta.DaysSinceAnalysis,
		MemoryQuality:     string(meta.MemoryQuality),
		ArchetypeChange:   meta.ArchetypeChange,
		PreviousArchetype: string(meta.PreviousArchetype),
		Degradations:      meta.Degradations,
	}
	return nil, out, nil
}

func (s *Server) handleAssessTransition(_ context.Context, _ *gomcp.CallToolRequest, input transitionInput) (*gomcp.CallToolResult, transitionOutput, error) {
	from, err := models.ParseArchetype(input.From)
	if err != nil {
		return errorResult(err.Error()), transitionOutput{}, nil
	}
	to, err := models.ParseArchetype(input.To)
	if err != nil {
		return errorResult(err.Error()), transitionOutput{}, nil
	}

	plan := s.transitions.AssessTransition(from, to)

	out := transitionOutput{
		Strategy:       string(plan.Strategy),
		ForceFresh:     plan.ForceFresh,
		TransitionDays: plan.TransitionDays,
		Compatibility:  string(plan.Compatibility),
		Reason:         plan.Reason,
		Timeline:       plan.Timeline,
		Guidance:       plan.Guidance,
		SuccessMetrics: plan.SuccessMetrics,
	}
	return nil, out, nil
}

func (s *Server) handleListArchetypes(_ context.Context, _ *gomcp.CallToolRequest, _ listArchetypesInput) (*gomcp.CallToolResult, listArchetypesOutput, error) {
	archetypes := models.AllArchetypes()

	out := listArchetypesOutput{
		Archetypes: make([]archetypeOutput, 0, len(archetypes)),
		Count:      len(archetypes),
	}
	for _, a := range archetypes {
		profile, _ := models.ProfileFor(a)
		out.Archetypes = append(out.Archetypes, archetypeOutput{
			Archetype:        string(a),
			DailyTimeMinutes: profile.DailyTimeMinutes,
			Complexity:       profile.Complexity,
			Focus:            profile.Focus,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRecordAnalysis(ctx context.Context, _ *gomcp.CallToolRequest, input recordAnalysisInput) (*gomcp.CallToolResult, recordAnalysisOutput, error) {
	if s.recorder == nil {
		return errorResult("analysis store not available"), recordAnalysisOutput{}, nil
	}
	if input.UserID == "" {
		return errorResult("user_id is required"), recordAnalysisOutput{}, nil
	}

	archetype, err := models.ParseArchetype(input.Archetype)
	if err != nil {
		return errorResult(err.Error()), recordAnalysisOutput{}, nil
	}

	analysisType := core.AnalysisBehavior
	switch input.Type {
	case "", "behavior":
	case "circadian":
		analysisType = core.AnalysisCircadian
	default:
		return errorResult(fmt.Sprintf("invalid analysis type %q: must be behavior or circadian", input.Type)), recordAnalysisOutput{}, nil
	}

	id, err := s.recorder.RecordAnalysis(ctx, input.UserID, string(archetype), analysisType, time.Now().UTC())
	if err != nil {
		return errorResult(fmt.Sprintf("recording analysis: %s", err)), recordAnalysisOutput{}, nil
	}

	out := recordAnalysisOutput{
		AnalysisID: id,
		Message:    fmt.Sprintf("recorded %s analysis for %s under %s", analysisType, input.UserID, archetype),
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		DecisionsTotal:     metrics.DecisionsTotal,
		DecisionsByOutcome: metrics.DecisionsByOutcome,
		DecisionsByQuality: metrics.DecisionsByQuality,
		ArchetypeChanges:   metrics.ArchetypeChanges,
		DegradedDecisions:  metrics.DegradedDecisions,
		AnalysesRecorded:   metrics.AnalysesRecorded,
		CheckinsRecorded:   metrics.CheckinsRecorded,
		EventCount:         metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (observability may be disabled)"), getAlertsOutput{}, nil
	}

	alerts, err := s.alertEngine.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating alerts: %s", err)), getAlertsOutput{}, nil
	}

	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		DecisionsByOutcome: make(map[string]int),
		DecisionsByQuality: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or
// "24h" into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
