package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
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

// activeFilters are the isActive filter values cycled by Tab.
var activeFilters = []string{model.FilterAll, "true", "false"}

// pinLength is the required PIN length for new accounts.
const pinLength = 4

// listLoadedMsg is sent when a page of users has been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.User]
	err  error
}

// statsLoadedMsg is sent when the user aggregate has been fetched.
type statsLoadedMsg struct {
	stats model.UserStats
	err   error
}

// statusChangedMsg is sent when an activate/deactivate call completed.
type statusChangedMsg struct {
	id      string
	updated *model.User
	err     error
}

// mutationDoneMsg is sent when a create or delete completed.
type mutationDoneMsg struct {
	action string
	err    error
}

// detailLoadedMsg is sent when a single user record has been fetched.
type detailLoadedMsg struct {
	user *model.User
	err  error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	firstName string
	lastName  string
	phone     string
	email     string
	role      string
	pin       string
}

// Model is the users page.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query       model.ListQuery
	items       []model.User
	stats       model.UserStats
	cursor      int
	activeIndex int
	searchMode  bool
	searchInput textinput.Model

	form          *huh.Form
	fb            *formBindings
	confirm       bool
	pendingDelete string
	detail        *model.User

	gen        int
	loading    bool
	refreshing bool
	errMsg     string
	formErr    string

	width  int
	height int
}

// New creates the users page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}

	si := textinput.New()
	si.Placeholder = "search users..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		log:         log,
		keys:        k,
		query:       model.NewListQuery(pageSize),
		searchInput: si,
		fb:          &formBindings{role: model.RoleMember},
		width:       width,
		height:      height,
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
		page, err := client.ListUsers(context.Background(), query)
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// loadStats starts the aggregate fetch.
func (m Model) loadStats() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.GetUserStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update handles messages for the users page.
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
			m.log.Warn("users fetch failed", zap.Error(msg.err))
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
			m.stats = model.UserStats{}
			m.log.Warn("user stats fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case statusChangedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("user status update failed",
				zap.String("id", msg.id), zap.Error(msg.err))
			return m, nil
		}
		// The toggled flag is the only field that changed; patch it
		// from the confirmed response and refresh the aggregate.
		if msg.updated != nil {
			for i := range m.items {
				if m.items[i].ID == msg.id {
					m.items[i].IsActive = msg.updated.IsActive
					break
				}
			}
		}
		return m, m.loadStats()

	case detailLoadedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("user detail fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.detail = msg.user
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("user mutation failed",
				zap.String("action", msg.action), zap.Error(msg.err))
			return m, nil
		}
		return m, tea.Batch(m.Load(true), m.loadStats())

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		if m.confirm {
			return m.handleConfirmKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

// updateForm drives the create form while it is open.
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
		return m, m.create(input)
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.formErr = ""
		return m, nil
	}

	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query.SetSearch(m.searchInput.Value())
		return m, m.Load(false)

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query.SetSearch("")
		return m, m.Load(false)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
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
	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		u, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.loadDetail(u.ID)

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

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.Load(true), m.loadStats())

	case key.Matches(msg, m.keys.CycleFilter):
		m.activeIndex = (m.activeIndex + 1) % len(activeFilters)
		m.query.SetIsActive(activeFilters[m.activeIndex])
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
		m.fb.firstName = ""
		m.fb.lastName = ""
		m.fb.phone = ""
		m.fb.email = ""
		m.fb.role = model.RoleMember
		m.fb.pin = ""
		m.formErr = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.ToggleActive):
		u, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.toggleActive(u)

	case key.Matches(msg, m.keys.Delete):
		u, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirm = true
		m.pendingDelete = u.ID
		return m, nil
	}

	return m, nil
}

func (m Model) selected() (model.User, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.User{}, false
	}
	return m.items[m.cursor], true
}

// buildForm constructs the create form.
func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.fb.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&m.fb.lastName),
			huh.NewInput().
				Title("Phone").
				Value(&m.fb.phone),
			huh.NewInput().
				Title("Email (optional)").
				Value(&m.fb.email),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Member", model.RoleMember),
					huh.NewOption("Admin", model.RoleAdmin),
					huh.NewOption("Super admin", model.RoleSuperAdmin),
				).
				Value(&m.fb.role),
			huh.NewInput().
				Title("PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.pin),
		),
	)
}

// buildInput validates the form fields client-side and assembles the
// payload. Validation failures never reach the network layer.
func (m Model) buildInput() (model.UserInput, error) {
	var input model.UserInput

	firstName := strings.TrimSpace(m.fb.firstName)
	lastName := strings.TrimSpace(m.fb.lastName)
	phone := strings.TrimSpace(m.fb.phone)
	if firstName == "" || lastName == "" {
		return input, fmt.Errorf("first and last name are required")
	}
	if phone == "" {
		return input, fmt.Errorf("phone is required")
	}
	if len(m.fb.pin) != pinLength {
		return input, fmt.Errorf("PIN must be %d digits", pinLength)
	}

	input.FirstName = firstName
	input.LastName = lastName
	input.Phone = phone
	input.Email = strings.TrimSpace(m.fb.email)
	input.Role = m.fb.role
	input.PIN = m.fb.pin
	return input, nil
}

func (m Model) loadDetail(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		u, err := client.GetUser(context.Background(), id)
		return detailLoadedMsg{user: u, err: err}
	}
}

func (m Model) create(input model.UserInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateUser(context.Background(), input)
		return mutationDoneMsg{action: "create", err: err}
	}
}

func (m Model) toggleActive(u model.User) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.UpdateUserStatus(context.Background(), u.ID, !u.IsActive)
		return statusChangedMsg{id: u.ID, updated: updated, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteUser(context.Background(), id)
		return mutationDoneMsg{action: "delete", err: err}
	}
}

// View renders the users page.
func (m Model) View() string {
	if m.detail != nil {
		return m.renderDetail()
	}
	if m.form != nil {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			MarginBottom(1).
			Render("New User")
		body := title + "\n" + m.form.View()
		if m.formErr != "" {
			body = title + "\n" + theme.ErrorBannerStyle.Render(m.formErr) + "\n" + m.form.View()
		}
		return theme.PanelStyle.Render(body)
	}

	var sections []string

	sections = append(sections, m.renderStats())

	if m.searchMode {
		sections = append(sections, lipgloss.NewStyle().Padding(0, 1).Render(m.searchInput.View()))
	}
	if m.confirm {
		sections = append(sections, theme.ErrorBannerStyle.Render("Delete user? y/n"))
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}
	if m.formErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.formErr))
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading users..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, theme.HelpStyle.Render("No users found."))
	default:
		sections = append(sections, m.renderRows(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail draws the single-user panel.
func (m Model) renderDetail() string {
	u := m.detail
	state := "ACTIVE"
	if !u.IsActive {
		state = "INACTIVE"
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(u.FullName())

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Phone:  %s\n", u.Phone))
	if u.Email != "" {
		b.WriteString(fmt.Sprintf("Email:  %s\n", u.Email))
	}
	b.WriteString(fmt.Sprintf("Role:   %s\n", u.Role))
	b.WriteString(fmt.Sprintf("Status: %s\n", theme.ActiveStyle(u.IsActive).Render(state)))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("esc back"))
	return theme.PanelStyle.Render(b.String())
}

// renderStats draws the aggregate widgets with the active share.
func (m Model) renderStats() string {
	total := theme.StatCardStyle.Render(fmt.Sprintf("Total\n%d", m.stats.Total))
	active := theme.StatCardStyle.Render(fmt.Sprintf(
		"Active\n%d (%s)", m.stats.Active, model.Percent(m.stats.Active, m.stats.Total),
	))
	inactive := theme.StatCardStyle.Render(fmt.Sprintf("Inactive\n%d", m.stats.Inactive))
	return lipgloss.JoinHorizontal(lipgloss.Top, total, " ", active, " ", inactive)
}

// renderRows draws the user table.
func (m Model) renderRows() string {
	var b strings.Builder
	for i, u := range m.items {
		state := "ACTIVE"
		if !u.IsActive {
			state = "INACTIVE"
		}
		badge := theme.ActiveStyle(u.IsActive).Render(state)
		line := fmt.Sprintf("%s %s  %s  %s",
			badge,
			u.FullName(),
			theme.DimmedStyle.Render(u.Phone),
			theme.DimmedStyle.Render(u.Role),
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
	if m.activeIndex != 0 {
		summary += "  active: " + activeFilters[m.activeIndex]
	}
	return theme.HelpStyle.Render(summary)
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.searchMode || m.form != nil || m.confirm
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
