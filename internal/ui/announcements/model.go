package announcements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
	"github.com/Copay-Africa/copay-administration-sub000/internal/theme"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui"
)

// statusFilters are the lifecycle filter values cycled by Tab.
var statusFilters = []string{
	model.FilterAll,
	model.AnnouncementDraft,
	model.AnnouncementScheduled,
	model.AnnouncementSending,
	model.AnnouncementSent,
	model.AnnouncementCancelled,
}

// listLoadedMsg is sent when a page of announcements has been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.Announcement]
	err  error
}

// statsLoadedMsg is sent when the aggregate counts have been fetched.
type statsLoadedMsg struct {
	stats model.StatsSummary
	err   error
}

// detailLoadedMsg carries the full record fetched before editing.
type detailLoadedMsg struct {
	announcement *model.Announcement
	err          error
}

// mutationDoneMsg is sent when a create, update, send or delete
// completed; every one of them refetch-confirms.
type mutationDoneMsg struct {
	action string
	err    error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	body        string
	audience    string
	scheduledAt string
}

// Model is the announcements page.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query       model.ListQuery
	items       []model.Announcement
	stats       model.StatsSummary
	cursor      int
	statusIndex int

	form          *huh.Form
	fb            *formBindings
	editID        string
	confirm       bool
	pendingDelete string

	gen        int
	loading    bool
	refreshing bool
	errMsg     string
	formErr    string

	width  int
	height int
}

// New creates the announcements page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		client: client,
		log:    log,
		keys:   k,
		query:  model.NewListQuery(pageSize),
		stats:  model.EmptyStatsSummary(),
		fb:     &formBindings{audience: "ALL"},
		width:  width,
		height: height,
	}
}

// Init triggers the initial list and stats fetches.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Load(false), m.loadStats())
}

// Load starts one list fetch, generation-tagged so stale responses are
// discarded.
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
	return func() tea.Msg {
		page, err := client.ListAnnouncements(context.Background(), query)
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// loadStats starts the aggregate fetch.
func (m Model) loadStats() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.GetAnnouncementStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update handles messages for the announcements page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

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
			m.log.Warn("announcements fetch failed", zap.Error(msg.err))
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
			m.stats = model.EmptyStatsSummary()
			m.log.Warn("announcement stats fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("announcement detail fetch failed", zap.Error(msg.err))
			return m, nil
		}
		a := msg.announcement
		m.editID = a.ID
		m.fb.title = a.Title
		m.fb.body = a.Body
		m.fb.audience = a.Audience
		if a.ScheduledAt != nil {
			m.fb.scheduledAt = a.ScheduledAt.Format("2006-01-02 15:04")
		} else {
			m.fb.scheduledAt = ""
		}
		m.form = m.buildForm()
		return m, m.form.Init()

	case mutationDoneMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("announcement mutation failed",
				zap.String("action", msg.action), zap.Error(msg.err))
			return m, nil
		}
		// Refetch-confirm: the backend owns the lifecycle transitions.
		return m, tea.Batch(m.Load(true), m.loadStats())

	case tea.KeyMsg:
		if m.confirm {
			return m.handleConfirmKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

// updateForm drives the create/edit form while it is open.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		input, err := m.buildInput()
		if err != nil {
			// Keep the entered values and reopen the form.
			m.formErr = err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.form = nil
		m.formErr = ""
		if m.editID != "" {
			return m, m.update(m.editID, input)
		}
		return m, m.create(input)
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.formErr = ""
		m.editID = ""
		return m, nil
	}

	return m, cmd
}

// handleConfirmKeys resolves the delete confirmation prompt.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm = false
		id := m.pendingDelete
		m.pendingDelete = ""
		return m, m.remove(id)
	default:
		m.confirm = false
		m.pendingDelete = ""
		return m, nil
	}
}

// handleKeys processes key input on the list.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
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
		m.statusIndex = (m.statusIndex + 1) % len(statusFilters)
		m.query.SetStatus(statusFilters[m.statusIndex])
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

	case key.Matches(msg, m.keys.New):
		m.editID = ""
		m.fb.title = ""
		m.fb.body = ""
		m.fb.audience = "ALL"
		m.fb.scheduledAt = ""
		m.formErr = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		a, ok := m.selected()
		if !ok || !a.CanEdit() {
			return m, nil
		}
		// Fetch the full record before editing; the list row may be a
		// trimmed projection.
		return m, m.loadDetail(a.ID)

	case key.Matches(msg, m.keys.Send):
		a, ok := m.selected()
		if !ok || !a.CanSend() {
			return m, nil
		}
		return m, m.send(a.ID)

	case key.Matches(msg, m.keys.Delete):
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirm = true
		m.pendingDelete = a.ID
		return m, nil
	}

	return m, nil
}

func (m Model) selected() (model.Announcement, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.Announcement{}, false
	}
	return m.items[m.cursor], true
}

// buildForm constructs the create or edit form.
func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title),
			huh.NewText().
				Title("Body").
				Value(&m.fb.body),
			huh.NewSelect[string]().
				Title("Audience").
				Options(
					huh.NewOption("All members", "ALL"),
					huh.NewOption("Cooperative admins", "ADMINS"),
				).
				Value(&m.fb.audience),
			huh.NewInput().
				Title("Schedule (YYYY-MM-DD HH:MM, empty for draft)").
				Value(&m.fb.scheduledAt),
		),
	)
}

// buildInput validates the form fields client-side and assembles the
// payload. Validation failures never reach the network layer.
func (m Model) buildInput() (model.AnnouncementDraftInput, error) {
	var input model.AnnouncementDraftInput

	title := strings.TrimSpace(m.fb.title)
	if title == "" {
		return input, fmt.Errorf("title is required")
	}
	body := strings.TrimSpace(m.fb.body)
	if body == "" {
		return input, fmt.Errorf("body is required")
	}

	input.Title = title
	input.Body = body
	input.Audience = m.fb.audience

	if raw := strings.TrimSpace(m.fb.scheduledAt); raw != "" {
		at, err := time.Parse("2006-01-02 15:04", raw)
		if err != nil {
			return input, fmt.Errorf("schedule must be YYYY-MM-DD HH:MM")
		}
		if at.Before(time.Now()) {
			return input, fmt.Errorf("schedule must be in the future")
		}
		input.ScheduledAt = &at
	}

	return input, nil
}

func (m Model) create(input model.AnnouncementDraftInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateAnnouncement(context.Background(), input)
		return mutationDoneMsg{action: "create", err: err}
	}
}

func (m Model) update(id string, input model.AnnouncementDraftInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.UpdateAnnouncement(context.Background(), id, input)
		return mutationDoneMsg{action: "update", err: err}
	}
}

func (m Model) loadDetail(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		a, err := client.GetAnnouncement(context.Background(), id)
		return detailLoadedMsg{announcement: a, err: err}
	}
}

func (m Model) send(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SendAnnouncement(context.Background(), id)
		return mutationDoneMsg{action: "send", err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteAnnouncement(context.Background(), id)
		return mutationDoneMsg{action: "delete", err: err}
	}
}

// View renders the announcements page.
func (m Model) View() string {
	if m.form != nil {
		titleText := "New Announcement"
		if m.editID != "" {
			titleText = "Edit Announcement"
		}
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			MarginBottom(1).
			Render(titleText)
		body := title + "\n" + m.form.View()
		if m.formErr != "" {
			body = title + "\n" + theme.ErrorBannerStyle.Render(m.formErr) + "\n" + m.form.View()
		}
		return theme.PanelStyle.Render(body)
	}

	var sections []string

	sections = append(sections, m.renderStats())

	if m.confirm {
		sections = append(sections, theme.ErrorBannerStyle.Render("Delete announcement? y/n"))
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}
	if m.formErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.formErr))
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading announcements..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, theme.HelpStyle.Render("No announcements. Press n to compose one."))
	default:
		sections = append(sections, m.renderRows(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStats draws the aggregate widgets: total and the sent share.
func (m Model) renderStats() string {
	sent := m.stats.ByStatus[model.AnnouncementSent]
	total := theme.StatCardStyle.Render(fmt.Sprintf("Total\n%d", m.stats.Total))
	sentCard := theme.StatCardStyle.Render(fmt.Sprintf(
		"Sent\n%d (%s)", sent, model.Percent(sent, m.stats.Total),
	))
	drafts := theme.StatCardStyle.Render(fmt.Sprintf(
		"Drafts\n%d", m.stats.ByStatus[model.AnnouncementDraft],
	))
	return lipgloss.JoinHorizontal(lipgloss.Top, total, " ", sentCard, " ", drafts)
}

// renderRows draws the announcement table with lifecycle badges.
func (m Model) renderRows() string {
	var b strings.Builder
	for i, a := range m.items {
		badge := theme.AnnouncementStatusStyle(a.Status).Render(a.Status)
		extra := ""
		if a.Status == model.AnnouncementSent {
			extra = theme.DimmedStyle.Render(fmt.Sprintf("  %d recipients", a.RecipientCount))
		} else if a.ScheduledAt != nil {
			extra = theme.DimmedStyle.Render("  " + a.ScheduledAt.Format("Jan 02 15:04"))
		}
		line := fmt.Sprintf("%s %s%s", badge, a.Title, extra)

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
	if m.statusIndex != 0 {
		summary += "  status: " + statusFilters[m.statusIndex]
	}
	return theme.HelpStyle.Render(summary)
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.form != nil || m.confirm
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
