package reminders

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

// typeFilters are the reminder type filter values cycled by Tab.
var typeFilters = []string{
	model.FilterAll,
	model.ReminderPaymentDue,
	model.ReminderMeeting,
	model.ReminderCustom,
}

// listLoadedMsg is sent when the due reminders have been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.Reminder]
	err  error
}

// createdMsg is sent when a create mutation completed.
type createdMsg struct {
	err error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title        string
	message      string
	reminderType string
	date         string
}

// Model is the reminders page: the due list with urgency badges and
// the create form.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query     model.ListQuery
	items     []model.Reminder
	cursor    int
	typeIndex int

	form *huh.Form
	fb   *formBindings

	gen        int
	loading    bool
	refreshing bool
	errMsg     string
	formErr    string

	width  int
	height int
}

// New creates the reminders page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		client: client,
		log:    log,
		keys:   k,
		query:  model.NewListQuery(pageSize),
		fb:     &formBindings{reminderType: model.ReminderPaymentDue},
		width:  width,
		height: height,
	}
}

// Init triggers the initial due-list fetch.
func (m *Model) Init() tea.Cmd {
	return m.Load(false)
}

// Load starts one due-list fetch, generation-tagged so stale responses
// are discarded.
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
		page, err := client.GetDueReminders(context.Background(), query)
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// Update handles messages for the reminders page.
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
			m.log.Warn("due reminders fetch failed", zap.Error(msg.err))
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

	case createdMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("reminder create failed", zap.Error(msg.err))
			return m, nil
		}
		return m, m.Load(true)

	case tea.KeyMsg:
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
			// Validation failure: never reaches the network layer.
			// The entered values stay bound and the form reopens.
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
		return m, m.Load(true)

	case key.Matches(msg, m.keys.CycleFilter):
		m.typeIndex = (m.typeIndex + 1) % len(typeFilters)
		m.query.SetType(typeFilters[m.typeIndex])
		return m, m.Load(false)

	case key.Matches(msg, m.keys.New):
		m.fb.title = ""
		m.fb.message = ""
		m.fb.reminderType = model.ReminderPaymentDue
		m.fb.date = ""
		m.formErr = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, nil
}

// buildForm constructs the create form.
func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title),
			huh.NewText().
				Title("Message").
				Value(&m.fb.message),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Payment due", model.ReminderPaymentDue),
					huh.NewOption("Meeting", model.ReminderMeeting),
					huh.NewOption("Custom", model.ReminderCustom),
				).
				Value(&m.fb.reminderType),
			huh.NewInput().
				Title("Date (YYYY-MM-DD HH:MM)").
				Value(&m.fb.date),
		),
	)
}

// buildInput validates the form fields client-side and assembles the
// create payload.
func (m Model) buildInput() (model.ReminderInput, error) {
	var input model.ReminderInput

	title := strings.TrimSpace(m.fb.title)
	if title == "" {
		return input, fmt.Errorf("title is required")
	}

	date, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(m.fb.date))
	if err != nil {
		return input, fmt.Errorf("date must be YYYY-MM-DD HH:MM")
	}

	input.Title = title
	input.Message = strings.TrimSpace(m.fb.message)
	input.Type = m.fb.reminderType
	input.ReminderDate = date
	return input, nil
}

// create issues the create mutation.
func (m Model) create(input model.ReminderInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateReminder(context.Background(), input)
		return createdMsg{err: err}
	}
}

// View renders the reminders page.
func (m Model) View() string {
	if m.form != nil {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			MarginBottom(1).
			Render("New Reminder")
		body := title + "\n" + m.form.View()
		if m.formErr != "" {
			body = title + "\n" + theme.ErrorBannerStyle.Render(m.formErr) + "\n" + m.form.View()
		}
		return theme.PanelStyle.Render(body)
	}

	var sections []string

	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}
	if m.formErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.formErr))
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading due reminders..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, theme.HelpStyle.Render("No reminders due. Press n to create one."))
	default:
		sections = append(sections, m.renderRows(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRows draws the due list with urgency badges.
func (m Model) renderRows() string {
	now := time.Now()
	var b strings.Builder
	for i, r := range m.items {
		urgency := r.Urgency(now)
		badge := theme.UrgencyStyle(urgency).Render(urgency)
		line := fmt.Sprintf("%s %s  %s  %s",
			badge,
			r.Title,
			theme.DimmedStyle.Render(r.Type),
			theme.DimmedStyle.Render(r.ReminderDate.Format("Jan 02 15:04")),
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
	if m.typeIndex != 0 {
		summary += "  type: " + typeFilters[m.typeIndex]
	}
	return theme.HelpStyle.Render(summary)
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.form != nil
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
