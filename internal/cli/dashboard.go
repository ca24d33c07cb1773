package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelDecisions = iota
	panelQuality
	panelAlerts
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	outcomeCounts map[string]int
	qualityCounts map[string]int
	summary       *decisionSummary
	alerts        []alertSnapshot

	// State.
	loading bool
	err     error
}

type decisionSummary struct {
	decisionsTotal   int
	archetypeChanges int
	degraded         int
	analysesRecorded int
	eventCount       int
}

type alertSnapshot struct {
	severity string
	message  string
	time     string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	outcomes map[string]int
	quality  map[string]int
	summary  *decisionSummary
	alerts   []alertSnapshot
	err      error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	outcomeFresh = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	outcomeCache = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	outcomeStale = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	qualityRich       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	qualityDeveloping = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	qualitySparse     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	severityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	severityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel:   panelDecisions,
		loading:       true,
		outcomeCounts: make(map[string]int),
		qualityCounts: make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.outcomeCounts = msg.outcomes
		m.qualityCounts = msg.quality
		m.summary = msg.summary
		m.alerts = msg.alerts
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" WB Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	decisionsPanel := m.renderDecisionsPanel()
	qualityPanel := m.renderQualityPanel()
	alertsPanel := m.renderAlertsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		decisionsPanel = m.applyPanelStyle(panelDecisions, decisionsPanel, colWidth-4)
		qualityPanel = m.applyPanelStyle(panelQuality, qualityPanel, colWidth-4)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, decisionsPanel, qualityPanel, alertsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		decisionsPanel = m.applyPanelStyle(panelDecisions, decisionsPanel, panelWidth)
		qualityPanel = m.applyPanelStyle(panelQuality, qualityPanel, panelWidth)
		alertsPanel = m.applyPanelStyle(panelAlerts, alertsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, decisionsPanel, qualityPanel, alertsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderDecisionsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Decisions (7d)"))
	b.WriteString("\n")

	if m.summary == nil || m.summary.decisionsTotal == 0 {
		b.WriteString("  No decisions recorded.")
		return b.String()
	}

	// Display outcomes in severity order.
	order := []string{"fresh_analysis", "memory_enhanced_cache", "stale_force_refresh"}
	for _, outcome := range order {
		count, ok := m.outcomeCounts[outcome]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-24s %d", outcome, count)
		b.WriteString(styleForOutcome(outcome).Render(label))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %-24s %d", "Total:", m.summary.decisionsTotal))
	b.WriteString(fmt.Sprintf("\n  %-24s %d", "Archetype changes:", m.summary.archetypeChanges))
	b.WriteString(fmt.Sprintf("\n  %-24s %d", "Degraded:", m.summary.degraded))

	return b.String()
}

func (m dashboardModel) renderQualityPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Memory quality (7d)"))
	b.WriteString("\n")

	if len(m.qualityCounts) == 0 {
		b.WriteString("  No quality data available.")
		return b.String()
	}

	order := []string{"rich", "developing", "sparse"}
	for _, quality := range order {
		count, ok := m.qualityCounts[quality]
		if !ok || count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-14s %d", quality, count)
		b.WriteString(styleForQuality(quality).Render(label))
		b.WriteString("\n")
	}

	if m.summary != nil {
		b.WriteString(fmt.Sprintf("\n  %-14s %d", "Analyses:", m.summary.analysesRecorded))
		b.WriteString(fmt.Sprintf("\n  %-14s %d", "Events:", m.summary.eventCount))
	}

	return b.String()
}

func (m dashboardModel) renderAlertsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Alerts"))
	b.WriteString("\n")

	if len(m.alerts) == 0 {
		b.WriteString("  No active alerts.")
		return b.String()
	}

	for _, a := range m.alerts {
		sev := styleForSeverity(a.severity).Render(fmt.Sprintf("[%s]", strings.ToUpper(a.severity)))
		b.WriteString(fmt.Sprintf("  %s %s\n", sev, a.message))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d alert(s)", len(m.alerts)))

	return b.String()
}

func styleForOutcome(outcome string) lipgloss.Style {
	switch outcome {
	case "fresh_analysis":
		return outcomeFresh
	case "memory_enhanced_cache":
		return outcomeCache
	case "stale_force_refresh":
		return outcomeStale
	default:
		return lipgloss.NewStyle()
	}
}

func styleForQuality(quality string) lipgloss.Style {
	switch quality {
	case "rich":
		return qualityRich
	case "developing":
		return qualityDeveloping
	case "sparse":
		return qualitySparse
	default:
		return lipgloss.NewStyle()
	}
}

func styleForSeverity(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	case "low":
		return severityLow
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	result := dataLoadedMsg{
		outcomes: make(map[string]int),
		quality:  make(map[string]int),
	}

	// Load decision metrics from MetricsCalc.
	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		for outcome, count := range metrics.DecisionsByOutcome {
			result.outcomes[outcome] = count
		}
		for quality, count := range metrics.DecisionsByQuality {
			result.quality[quality] = count
		}
		result.summary = &decisionSummary{
			decisionsTotal:   metrics.DecisionsTotal,
			archetypeChanges: metrics.ArchetypeChanges,
			degraded:         metrics.DegradedDecisions,
			analysesRecorded: metrics.AnalysesRecorded,
			eventCount:       metrics.EventCount,
		}
	}

	// Load alerts from AlertEngine.
	if AlertEngine != nil {
		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			result.err = fmt.Errorf("loading alerts: %w", err)
			return result
		}
		result.alerts = make([]alertSnapshot, 0, len(alerts))

		// Sort alerts by severity: high first, then medium, then low.
		sort.Slice(alerts, func(i, j int) bool {
			return severityRank(string(alerts[i].Severity)) < severityRank(string(alerts[j].Severity))
		})

		for _, a := range alerts {
			result.alerts = append(result.alerts, alertSnapshot{
				severity: string(a.Severity),
				message:  a.Message,
				time:     a.TriggeredAt.Format("2006-01-02 15:04 UTC"),
			})
		}
	}

	return result
}

func severityRank(s string) int {
	switch s {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for decision metrics and alerts",
	Long: `Launch an interactive terminal dashboard showing decision outcomes,
memory quality distribution, and alerts in a live-updating view.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
