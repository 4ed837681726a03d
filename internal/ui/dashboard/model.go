package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/export"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
	"github.com/Copay-Africa/copay-administration-sub000/internal/theme"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui"
)

// periods are the summary periods cycled by Tab.
var periods = []string{model.PeriodWeek, model.PeriodMonth, model.PeriodYear, model.PeriodDay}

// summaryLoadedMsg is sent when the analytics summary has been fetched.
type summaryLoadedMsg struct {
	gen     int
	summary model.AnalyticsSummary
	err     error
}

// paymentStatsLoadedMsg is sent when the per-cooperative payment
// aggregate has been fetched.
type paymentStatsLoadedMsg struct {
	gen   int
	stats model.OrganizationPaymentStats
	err   error
}

// exportedMsg is sent when the backend CSV has been written to disk.
type exportedMsg struct {
	path string
	err  error
}

// Model is the dashboard page.
type Model struct {
	client      *api.Client
	log         *zap.Logger
	keys        *keys.KeyMap
	downloadDir string

	periodIndex int
	summary     model.AnalyticsSummary
	payStats    model.OrganizationPaymentStats

	gen        int
	loading    bool
	refreshing bool
	errMsg     string
	notice     string

	width  int
	height int
}

// New creates the dashboard page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, downloadDir string, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		client:      client,
		log:         log,
		keys:        k,
		downloadDir: downloadDir,
		width:       width,
		height:      height,
	}
}

// Init triggers the initial fetches.
func (m *Model) Init() tea.Cmd {
	return m.Load(false)
}

func (m Model) period() string {
	return periods[m.periodIndex]
}

// Load starts the summary and payment aggregate fetches,
// generation-tagged so responses for a superseded period are
// discarded.
func (m *Model) Load(refresh bool) tea.Cmd {
	m.gen++
	if refresh {
		m.refreshing = true
	} else {
		m.loading = true
	}

	gen := m.gen
	period := m.period()
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			summary, err := client.GetAnalyticsSummary(context.Background(), period, "")
			return summaryLoadedMsg{gen: gen, summary: summary, err: err}
		},
		func() tea.Msg {
			stats, err := client.GetOrganizationPaymentStats(context.Background(), model.NewListQuery(model.DefaultPageSize))
			return paymentStatsLoadedMsg{gen: gen, stats: stats, err: err}
		},
	)
}

// Update handles messages for the dashboard page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.refreshing = false
		if msg.err != nil {
			m.summary = model.AnalyticsSummary{}
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("analytics summary fetch failed", zap.Error(msg.err))
			if api.IsAuthError(msg.err) {
				return m, func() tea.Msg { return ui.SessionExpiredMsg{} }
			}
			return m, nil
		}
		m.errMsg = ""
		m.summary = msg.summary
		return m, nil

	case paymentStatsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			// The summary cards still render; only the breakdown
			// panel goes empty.
			m.payStats = model.OrganizationPaymentStats{}
			m.log.Warn("payment stats fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.payStats = msg.stats
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("analytics export failed", zap.Error(msg.err))
			return m, nil
		}
		m.notice = "Exported to " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

// handleKeys processes key input on the dashboard.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load(true)

	case key.Matches(msg, m.keys.CycleFilter):
		m.periodIndex = (m.periodIndex + 1) % len(periods)
		return m, m.Load(false)

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCSV()
	}

	return m, nil
}

// exportCSV fetches the backend-rendered payments CSV for the current
// period and writes it to the download directory.
func (m Model) exportCSV() tea.Cmd {
	client := m.client
	period := m.period()
	dir := m.downloadDir
	return func() tea.Msg {
		text, err := client.ExportAnalytics(context.Background(), "payments", period, "")
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := export.WriteRaw(text, dir, "analytics_"+period, time.Now())
		return exportedMsg{path: path, err: err}
	}
}

// View renders the dashboard page.
func (m Model) View() string {
	var sections []string

	sections = append(sections, theme.HelpStyle.Render(
		fmt.Sprintf("period: %s  (tab cycles, r refresh, E export)", m.period()),
	))

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}
	if m.notice != "" {
		sections = append(sections, theme.DimmedStyle.Render(m.notice))
	}

	if m.loading {
		sections = append(sections, theme.HelpStyle.Render("Loading analytics..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderCards(), m.renderBreakdown())
	if m.refreshing {
		sections = append(sections, theme.HelpStyle.Render("refreshing..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCards draws the headline aggregate widgets.
func (m Model) renderCards() string {
	s := m.summary

	cards := []string{
		theme.StatCardStyle.Render(fmt.Sprintf("Payments\n%d", s.TotalPayments)),
		theme.StatCardStyle.Render(fmt.Sprintf("Volume\n%.2f", s.TotalAmount)),
		theme.StatCardStyle.Render(fmt.Sprintf("Completed\n%s", s.CompletionRate())),
		theme.StatCardStyle.Render(fmt.Sprintf("New members\n%d", s.NewMembers)),
		theme.StatCardStyle.Render(fmt.Sprintf("Active coops\n%d", s.ActiveCoops)),
	}

	row := make([]string, 0, len(cards)*2)
	for i, c := range cards {
		if i > 0 {
			row = append(row, " ")
		}
		row = append(row, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// renderBreakdown draws the payment status slices.
func (m Model) renderBreakdown() string {
	slices := m.payStats.StatusBreakdown
	if len(slices) == 0 {
		return theme.HelpStyle.Render("No payment breakdown for this period.")
	}

	total := 0
	for _, s := range slices {
		total += s.Count
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Payment status"))
	b.WriteString("\n")
	for i, s := range slices {
		b.WriteString(fmt.Sprintf("%-12s %6d  %8.2f  %s",
			s.Status, s.Count, s.Amount, model.Percent(s.Count, total)))
		if i < len(slices)-1 {
			b.WriteString("\n")
		}
	}
	return theme.PanelStyle.Render(b.String())
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
