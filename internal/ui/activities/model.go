package activities

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
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

// entityFilters are the entity-type filter values cycled by Tab.
var entityFilters = []string{
	model.FilterAll,
	model.EntityUser,
	model.EntityPayment,
	model.EntityOrganization,
	model.EntityAnnouncement,
}

// csvHeader is the fixed column set of the activity export.
var csvHeader = []string{"Date", "Action", "Entity", "Description", "User", "IP Address", "Security"}

// listLoadedMsg is sent when a page of activities has been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.Activity]
	err  error
}

// statsLoadedMsg is sent when the activity aggregate has been fetched.
type statsLoadedMsg struct {
	stats model.ActivityStats
	err   error
}

// exportedMsg is sent when a CSV export finished.
type exportedMsg struct {
	path string
	err  error
}

// Model is the activity log page: the audit list, the aggregate
// widgets above it, and CSV export of the loaded rows.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query       model.ListQuery
	items       []model.Activity
	stats       model.ActivityStats
	cursor      int
	entityIndex int
	dateMode    bool
	dateInput   textinput.Model

	downloadDir string
	exportNote  string

	gen        int
	loading    bool
	refreshing bool
	errMsg     string

	width  int
	height int
}

// New creates the activities page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, downloadDir string, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}

	di := textinput.New()
	di.Placeholder = "2026-01-01..2026-01-31"
	di.Prompt = "dates "
	di.Width = width - 10

	return Model{
		client:      client,
		log:         log,
		keys:        k,
		query:       model.NewListQuery(pageSize),
		stats:       model.EmptyActivityStats(),
		dateInput:   di,
		downloadDir: downloadDir,
		width:       width,
		height:      height,
	}
}

// Init triggers the initial list and stats fetches.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Load(false), m.loadStats())
}

// Load starts one list fetch for the current query, generation-tagged
// so stale responses are discarded.
func (m *Model) Load(refresh bool) tea.Cmd {
	m.gen++
	if refresh {
		m.refreshing = true
	} else {
		m.loading = true
	}

	gen := m.gen
	query := m.query
	client := m.client
	securityOnly := query.SecurityOnly
	return func() tea.Msg {
		var page model.ResourceList[model.Activity]
		var err error
		if securityOnly {
			page, err = client.ListSecurityEvents(context.Background(), query)
		} else {
			page, err = client.ListActivities(context.Background(), query)
		}
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// loadStats starts the aggregate fetch.
func (m Model) loadStats() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.GetActivityStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update handles messages for the activities page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.refreshing = false
		if msg.err != nil {
			m.items = nil
			m.cursor = 0
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("activities fetch failed", zap.Error(msg.err))
			if api.IsAuthError(msg.err) {
				return m, func() tea.Msg { return ui.SessionExpiredMsg{} }
			}
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.page.Items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case statsLoadedMsg:
		if msg.err != nil {
			// Keep the widgets drawable with an all-zero aggregate
			// instead of surfacing a second error for the same outage.
			m.stats = model.EmptyActivityStats()
			m.log.Warn("activity stats fetch failed, rendering zero stats",
				zap.Error(msg.err))
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("activity export failed", zap.Error(msg.err))
			return m, nil
		}
		m.exportNote = "exported " + msg.path
		return m, nil

	case tea.KeyMsg:
		if m.dateMode {
			return m.handleDateKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleDateKeys processes key input while editing the date range.
func (m Model) handleDateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.dateMode = false
		start, end := splitDateRange(m.dateInput.Value())
		m.query.SetDateRange(start, end)
		return m, m.Load(false)

	case "esc":
		m.dateMode = false
		m.dateInput.Reset()
		m.query.SetDateRange("", "")
		return m, m.Load(false)
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.Load(true), m.loadStats())

	case key.Matches(msg, m.keys.CycleFilter):
		m.entityIndex = (m.entityIndex + 1) % len(entityFilters)
		m.query.SetEntityType(entityFilters[m.entityIndex])
		return m, m.Load(false)

	case key.Matches(msg, m.keys.ToggleActive):
		m.query.SetSecurityOnly(!m.query.SecurityOnly)
		return m, m.Load(false)

	case key.Matches(msg, m.keys.PrevPage):
		if m.query.Page > 1 {
			m.query.SetPage(m.query.Page - 1)
			return m, m.Load(false)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.query.SetPage(m.query.Page + 1)
		return m, m.Load(false)

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCSV()
	}

	switch msg.String() {
	case "f":
		m.dateMode = true
		m.dateInput.Reset()
		return m, m.dateInput.Focus()
	}

	return m, nil
}

// exportCSV writes the currently loaded rows (not the full backend
// result set) to a dated CSV file.
func (m Model) exportCSV() tea.Cmd {
	table := export.Table{Header: csvHeader}
	for _, a := range m.items {
		userName := ""
		if a.User != nil {
			userName = strings.TrimSpace(a.User.FirstName + " " + a.User.LastName)
		}
		security := "no"
		if a.SecurityEvent {
			security = "yes"
		}
		table.Rows = append(table.Rows, []string{
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.Action,
			a.EntityType,
			a.Description,
			userName,
			a.IPAddress,
			security,
		})
	}

	dir := m.downloadDir
	return func() tea.Msg {
		path, err := export.Write(table, dir, "activities", time.Now())
		return exportedMsg{path: path, err: err}
	}
}

// View renders the activities page.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderStats())

	if m.dateMode {
		sections = append(sections, lipgloss.NewStyle().Padding(0, 1).Render(m.dateInput.View()))
	}

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading activity log..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, theme.HelpStyle.Render("No activity records."))
	default:
		sections = append(sections, m.renderRows(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStats draws the aggregate widgets above the list. Percentages
// never divide by zero; an empty aggregate renders as all zeros.
func (m Model) renderStats() string {
	total := theme.StatCardStyle.Render(fmt.Sprintf("Total\n%d", m.stats.Total))
	security := theme.StatCardStyle.Render(fmt.Sprintf(
		"Security\n%d (%s)",
		m.stats.SecurityEvents,
		model.Percent(m.stats.SecurityEvents, m.stats.Total),
	))
	peak := theme.StatCardStyle.Render("Peak hour\n" + peakHour(m.stats.ByHour))
	return lipgloss.JoinHorizontal(lipgloss.Top, total, " ", security, " ", peak)
}

// renderRows draws the visible slice of the activity table.
func (m Model) renderRows() string {
	var b strings.Builder
	for i, a := range m.items {
		badge := theme.SecurityStyle(a.SecurityEvent).Render(a.EntityType)
		userName := ""
		if a.User != nil {
			userName = a.User.FirstName + " " + a.User.LastName
		}
		line := fmt.Sprintf("%s %s %s  %s  %s",
			a.CreatedAt.Format("Jan 02 15:04"),
			badge,
			a.Action,
			a.Description,
			theme.DimmedStyle.Render(userName),
		)

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// footer renders the pagination and filter summary line.
func (m Model) footer() string {
	summary := ui.PageSummary(m.query, len(m.items))
	if m.refreshing {
		summary += "  refreshing..."
	}
	if m.entityIndex != 0 {
		summary += "  entity: " + entityFilters[m.entityIndex]
	}
	if m.query.SecurityOnly {
		summary += "  security events only"
	}
	if m.exportNote != "" {
		summary += "  " + m.exportNote
	}
	return theme.HelpStyle.Render(summary)
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.dateMode
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.dateInput.Width = width - 10
}

// peakHour returns the busiest hour label from the aggregate buckets.
func peakHour(buckets []model.HourCount) string {
	if len(buckets) == 0 {
		return "-"
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Count > best.Count {
			best = b
		}
	}
	return fmt.Sprintf("%02d:00", best.Hour)
}

// splitDateRange parses "start..end" into its two bounds. Either side
// may be empty; malformed dates are passed through to the backend
// untouched.
func splitDateRange(raw string) (string, string) {
	parts := strings.SplitN(raw, "..", 2)
	if len(parts) == 1 {
		return strings.TrimSpace(parts[0]), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
