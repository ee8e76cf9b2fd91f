package tui

import (
	"fmt"

	"strava-durability/internal/report"
	"strava-durability/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RideDetailModel is the ride detail screen model. The body is the text
// report for the active profile, scrollable in a viewport.
type RideDetailModel struct {
	queryService *service.QueryService
	profile      string
	rideID       int64
	detail       *service.RideDetail
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewRideDetailModel creates a new ride detail model
func NewRideDetailModel(qs *service.QueryService, profile string, rideID int64, width, height int) RideDetailModel {
	m := RideDetailModel{
		queryService: qs,
		profile:      profile,
		rideID:       rideID,
		loading:      true,
		width:        width,
		height:       height,
	}
	if m.profile == "" {
		m.profile = "summary"
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the ride detail screen
func (m RideDetailModel) Init() tea.Cmd {
	return m.loadDetail
}

type rideDetailLoadedMsg struct {
	detail *service.RideDetail
	err    error
}

func (m RideDetailModel) loadDetail() tea.Msg {
	detail, err := m.queryService.GetRideDetailByID(m.rideID)
	return rideDetailLoadedMsg{detail: detail, err: err}
}

// Update handles messages
func (m RideDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rideDetailLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.detail
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.detail != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadDetail
		case "p":
			m.profile = nextProfile(m.profile)
			if m.ready && m.detail != nil {
				m.viewport.SetContent(m.renderContent())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the ride detail screen
func (m RideDetailModel) View() string {
	if m.loading {
		return "\n  Loading ride details..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render(fmt.Sprintf("  esc: back  j/k or arrows: scroll  p: profile (%s)  r: refresh", m.profile))

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m RideDetailModel) renderContent() string {
	if m.detail == nil {
		return "No data"
	}

	body, err := report.Render(m.profile, m.detail)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("  Error: %v", err))
	}

	title := cardTitleStyle.Render("Ride Detail")
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func nextProfile(current string) string {
	profiles := report.Profiles()
	for i, p := range profiles {
		if p == current {
			return profiles[(i+1)%len(profiles)]
		}
	}
	return profiles[0]
}
