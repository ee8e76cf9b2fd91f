package tui

import (
	"fmt"

	"strava-durability/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RidesModel is the rides list screen model
type RidesModel struct {
	queryService *service.QueryService
	rides        []service.RideWithMetrics
	cursor       int
	offset       int
	total        int
	pageSize     int
	loading      bool
	err          error
}

// NewRidesModel creates a new rides model
func NewRidesModel(qs *service.QueryService) RidesModel {
	return RidesModel{
		queryService: qs,
		pageSize:     15,
		loading:      true,
	}
}

// Init initializes the rides screen
func (m RidesModel) Init() tea.Cmd {
	return m.loadPage
}

type ridesLoadedMsg struct {
	rides []service.RideWithMetrics
	total int
	err   error
}

func (m RidesModel) loadPage() tea.Msg {
	rides, err := m.queryService.GetRideList(m.pageSize, m.offset)
	if err != nil {
		return ridesLoadedMsg{err: err}
	}

	total, err := m.queryService.GetTotalRideCount()
	if err != nil {
		return ridesLoadedMsg{err: err}
	}

	return ridesLoadedMsg{rides: rides, total: total}
}

// Update handles messages
func (m RidesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ridesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rides = msg.rides
		m.total = msg.total

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				// Go to previous page
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
				m.loading = true
				return m, m.loadPage
			}
		case "down", "j":
			if m.cursor < len(m.rides)-1 {
				m.cursor++
			} else if m.offset+len(m.rides) < m.total {
				// Go to next page
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "pgup":
			if m.offset > 0 {
				m.offset -= m.pageSize
				if m.offset < 0 {
					m.offset = 0
				}
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "pgdown":
			if m.offset+m.pageSize < m.total {
				m.offset += m.pageSize
				m.cursor = 0
				m.loading = true
				return m, m.loadPage
			}
		case "r":
			m.loading = true
			return m, m.loadPage
		case "enter":
			if len(m.rides) > 0 && m.cursor < len(m.rides) {
				rideID := m.rides[m.cursor].Ride.ID
				return m, func() tea.Msg {
					return OpenRideDetailMsg{RideID: rideID}
				}
			}
		}
	}
	return m, nil
}

// View renders the rides list
func (m RidesModel) View() string {
	if m.loading {
		return "\n  Loading rides..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.rides) == 0 {
		return "\n  No rides found. Press 's' to sync with Strava."
	}

	var sections []string

	// Title with pagination info
	startNum := m.offset + 1
	endNum := m.offset + len(m.rides)
	title := cardTitleStyle.Render(fmt.Sprintf("Rides (%d-%d of %d)", startNum, endNum, m.total))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-25s  %8s  %8s  %5s  %6s  %6s  %6s",
		"Date", "Name", "Distance", "Time", "NP", "Drift", "Fade", "Score"))
	sections = append(sections, header)

	for i, rm := range m.rides {
		r := rm.Ride
		met := rm.Metrics

		np := "-"
		drift := "-"
		fade := "-"
		score := "-"
		if met != nil {
			if met.NormalizedPower != nil {
				np = fmt.Sprintf("%.0f", *met.NormalizedPower)
			}
			if met.PwHrDrift != nil {
				drift = fmt.Sprintf("%.1f%%", *met.PwHrDrift)
			}
			if met.PowerFade != nil {
				fade = fmt.Sprintf("%.1f%%", *met.PowerFade)
			}
			if met.DurabilityScore != nil {
				score = fmt.Sprintf("%.0f", *met.DurabilityScore)
			}
		}

		line := fmt.Sprintf("%-10s  %-25s  %6.1fkm  %8s  %5s  %6s  %6s  %6s",
			r.StartDateLocal.Format("Jan 02"),
			truncateName(r.Name, 25),
			r.Distance/1000,
			formatDuration(r.MovingTime),
			np,
			drift,
			fade,
			score,
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render("▸ "+line))
		} else {
			sections = append(sections, tableRowStyle.Render("  "+line))
		}
	}

	footer := statusStyle.Render("  j/k: move  enter: detail  pgup/pgdn: page  r: refresh")
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
