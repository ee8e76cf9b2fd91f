package tui

import (
	"fmt"

	"strava-durability/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService) DashboardModel {
	return DashboardModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Press 's' to sync with Strava."
	}

	var sections []string

	// Top row: latest score and baseline side by side
	scoreCard := m.renderScoreCard()
	baselineCard := m.renderBaselineCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, scoreCard, "  ", baselineCard)
	sections = append(sections, topRow)

	// Chart
	if len(m.data.ScoreHistory) > 2 {
		chart := m.renderChart()
		sections = append(sections, chart)
	}

	// Recent rides
	rides := m.renderRecentRides()
	sections = append(sections, rides)

	// Help
	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for rides list")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderScoreCard() string {
	title := cardTitleStyle.Render("Durability")

	score := "-"
	if m.data.CurrentScore != nil {
		score = fmt.Sprintf("%.0f", *m.data.CurrentScore)
	}

	var latest *service.RideWithMetrics
	for i := range m.data.RecentRides {
		if m.data.RecentRides[i].Metrics != nil && m.data.RecentRides[i].Metrics.DurabilityScore != nil {
			latest = &m.data.RecentRides[i]
			break
		}
	}

	lines := []string{
		RenderMetric("Latest score", score, m.data.ScoreTrend),
	}

	if latest != nil {
		met := latest.Metrics
		lines = append(lines,
			RenderMetric("Pw:HR drift", formatPercent(met.PwHrDrift), ""),
			RenderMetric("Power fade", formatPercent(met.PowerFade), ""),
			RenderMetric("EF decline", formatPercent(met.EFDecline), ""),
			"",
			navInactiveStyle.Render(latest.Ride.StartDateLocal.Format("Jan 02")+"  "+truncateName(latest.Ride.Name, 24)),
		)
	} else {
		lines = append(lines, "", navInactiveStyle.Render("No analyzed rides yet"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderBaselineCard() string {
	title := cardTitleStyle.Render("Baseline")

	b := m.data.Baseline
	if b == nil {
		content := navInactiveStyle.Render("No rides in baseline window")
		return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
	}

	lines := []string{
		RenderMetric("Pw:HR drift", formatPercent(b.PwHrDrift), ""),
		RenderMetric("Rolling 5min", formatWatts(b.Rolling5Diff), ""),
		RenderMetric("Power @150bpm", formatWatts(b.Power150Delta), ""),
		RenderMetric("Cadence drop", formatValue(b.CadenceDrop, "%.1f rpm"), ""),
		RenderMetric("HR creep", formatValue(b.HRCreep, "%.1f bpm"), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Durability Score - Recent Trend")

	graph := asciigraph.Plot(m.data.ScoreHistory,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentRides() string {
	title := cardTitleStyle.Render("Recent Rides")

	if len(m.data.RecentRides) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No rides yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-22s  %8s  %5s  %6s  %6s",
		"Date", "Name", "Distance", "NP", "Drift", "Score"))

	var rows []string
	rows = append(rows, header)

	for i, rm := range m.data.RecentRides {
		if i >= 5 {
			break
		}

		r := rm.Ride
		met := rm.Metrics

		np := "-"
		drift := "-"
		score := "-"
		if met != nil {
			if met.NormalizedPower != nil {
				np = fmt.Sprintf("%.0f", *met.NormalizedPower)
			}
			if met.PwHrDrift != nil {
				drift = fmt.Sprintf("%.1f%%", *met.PwHrDrift)
			}
			if met.DurabilityScore != nil {
				score = fmt.Sprintf("%.0f", *met.DurabilityScore)
			}
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-22s  %6.1fkm  %5s  %6s  %6s",
			r.StartDateLocal.Format("Jan 02"),
			truncateName(r.Name, 22),
			r.Distance/1000,
			np,
			drift,
			score,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func formatPercent(v *float64) string {
	return formatValue(v, "%.1f%%")
}

func formatWatts(v *float64) string {
	return formatValue(v, "%+.0f W")
}

func formatValue(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
