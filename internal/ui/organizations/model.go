package organizations

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

// wizardStep tracks progress through the cooperative registration
// wizard. The admin step only opens once the organization step has
// returned an id.
type wizardStep int

const (
	stepNone wizardStep = iota
	stepOrganization
	stepAdmin
	stepTenant
)

// adminPINLength is the required PIN length for the admin account.
const adminPINLength = 4

// listLoadedMsg is sent when a page of cooperatives has been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.Organization]
	err  error
}

// orgCreatedMsg carries the created cooperative. Its id becomes the
// cooperativeId of the admin step.
type orgCreatedMsg struct {
	org *model.Organization
	err error
}

// adminCreatedMsg is sent when the admin account step completed.
type adminCreatedMsg struct {
	err error
}

// tenantCreatedMsg is sent when a tenant has been provisioned.
type tenantCreatedMsg struct {
	err error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	// organization step
	orgName  string
	orgCode  string
	orgPhone string
	orgEmail string

	// admin step
	firstName string
	lastName  string
	phone     string
	email     string
	pin       string

	// tenant form
	tenantName   string
	tenantDomain string
	tenantPlan   string
}

// Model is the organizations page.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query       model.ListQuery
	items       []model.Organization
	cursor      int
	searchMode  bool
	searchInput textinput.Model

	step     wizardStep
	form     *huh.Form
	fb       *formBindings
	newOrgID string

	gen        int
	loading    bool
	refreshing bool
	errMsg     string
	formErr    string
	notice     string

	width  int
	height int
}

// New creates the organizations page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}

	si := textinput.New()
	si.Placeholder = "search cooperatives..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		log:         log,
		keys:        k,
		query:       model.NewListQuery(pageSize),
		searchInput: si,
		fb:          &formBindings{},
		width:       width,
		height:      height,
	}
}

// Init triggers the initial list fetch.
func (m *Model) Init() tea.Cmd {
	return m.Load(false)
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
		page, err := client.ListOrganizations(context.Background(), query)
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// Update handles messages for the organizations page.
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
			m.log.Warn("organizations fetch failed", zap.Error(msg.err))
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

	case orgCreatedMsg:
		if msg.err != nil {
			// The wizard stops here; the admin step never runs
			// without a cooperative id.
			m.step = stepNone
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("organization create failed", zap.Error(msg.err))
			return m, nil
		}
		m.newOrgID = msg.org.ID
		m.step = stepAdmin
		m.form = m.buildAdminForm()
		return m, m.form.Init()

	case adminCreatedMsg:
		m.step = stepNone
		m.newOrgID = ""
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("organization admin create failed", zap.Error(msg.err))
			return m, m.Load(true)
		}
		m.errMsg = ""
		m.notice = "Cooperative registered."
		return m, m.Load(true)

	case tenantCreatedMsg:
		m.step = stepNone
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("tenant create failed", zap.Error(msg.err))
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Tenant provisioned."
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

// updateForm drives whichever wizard form is open.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		switch m.step {
		case stepOrganization:
			input, err := m.buildOrgInput()
			if err != nil {
				m.step = stepNone
				m.formErr = err.Error()
				return m, nil
			}
			m.formErr = ""
			return m, m.createOrg(input)

		case stepAdmin:
			input, err := m.buildAdminInput()
			if err != nil {
				// Keep the wizard on the admin step so the id from
				// the organization step is not lost.
				m.formErr = err.Error()
				m.form = m.buildAdminForm()
				return m, m.form.Init()
			}
			m.formErr = ""
			return m, m.createAdmin(input)

		case stepTenant:
			input, err := m.buildTenantInput()
			if err != nil {
				m.step = stepNone
				m.formErr = err.Error()
				return m, nil
			}
			m.formErr = ""
			return m, m.createTenant(input)
		}
		m.step = stepNone
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.step = stepNone
		m.newOrgID = ""
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

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load(true)

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
		m.notice = ""
		*m.fb = formBindings{}
		m.step = stepOrganization
		m.form = m.buildOrgForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		// "e" provisions a tenant; cooperatives themselves are not
		// editable from the portal.
		m.notice = ""
		m.fb.tenantName = ""
		m.fb.tenantDomain = ""
		m.fb.tenantPlan = ""
		m.step = stepTenant
		m.form = m.buildTenantForm()
		return m, m.form.Init()
	}

	return m, nil
}

// buildOrgForm is the first wizard step.
func (m Model) buildOrgForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cooperative name").
				Value(&m.fb.orgName),
			huh.NewInput().
				Title("Code (optional)").
				Value(&m.fb.orgCode),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&m.fb.orgPhone),
			huh.NewInput().
				Title("Email (optional)").
				Value(&m.fb.orgEmail),
		),
	)
}

// buildAdminForm is the second wizard step.
func (m Model) buildAdminForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Admin first name").
				Value(&m.fb.firstName),
			huh.NewInput().
				Title("Admin last name").
				Value(&m.fb.lastName),
			huh.NewInput().
				Title("Admin phone").
				Value(&m.fb.phone),
			huh.NewInput().
				Title("Admin email (optional)").
				Value(&m.fb.email),
			huh.NewInput().
				Title("Admin PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.pin),
		),
	)
}

func (m Model) buildTenantForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tenant name").
				Value(&m.fb.tenantName),
			huh.NewInput().
				Title("Domain (optional)").
				Value(&m.fb.tenantDomain),
			huh.NewInput().
				Title("Plan (optional)").
				Value(&m.fb.tenantPlan),
		),
	)
}

// buildOrgInput validates the organization step client-side.
func (m Model) buildOrgInput() (model.OrganizationInput, error) {
	var input model.OrganizationInput

	name := strings.TrimSpace(m.fb.orgName)
	if name == "" {
		return input, fmt.Errorf("cooperative name is required")
	}

	input.Name = name
	input.Code = strings.TrimSpace(m.fb.orgCode)
	input.Phone = strings.TrimSpace(m.fb.orgPhone)
	input.Email = strings.TrimSpace(m.fb.orgEmail)
	return input, nil
}

// buildAdminInput validates the admin step client-side and binds the
// cooperative id from the first step.
func (m Model) buildAdminInput() (model.AdminInput, error) {
	var input model.AdminInput

	firstName := strings.TrimSpace(m.fb.firstName)
	lastName := strings.TrimSpace(m.fb.lastName)
	phone := strings.TrimSpace(m.fb.phone)
	if firstName == "" || lastName == "" {
		return input, fmt.Errorf("admin first and last name are required")
	}
	if phone == "" {
		return input, fmt.Errorf("admin phone is required")
	}
	if len(m.fb.pin) != adminPINLength {
		return input, fmt.Errorf("PIN must be %d digits", adminPINLength)
	}

	input.FirstName = firstName
	input.LastName = lastName
	input.Phone = phone
	input.Email = strings.TrimSpace(m.fb.email)
	input.PIN = m.fb.pin
	input.CooperativeID = m.newOrgID
	return input, nil
}

func (m Model) buildTenantInput() (model.TenantInput, error) {
	var input model.TenantInput

	name := strings.TrimSpace(m.fb.tenantName)
	if name == "" {
		return input, fmt.Errorf("tenant name is required")
	}

	input.Name = name
	input.Domain = strings.TrimSpace(m.fb.tenantDomain)
	input.Plan = strings.TrimSpace(m.fb.tenantPlan)
	return input, nil
}

func (m Model) createOrg(input model.OrganizationInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		org, err := client.CreateOrganization(context.Background(), input)
		return orgCreatedMsg{org: org, err: err}
	}
}

func (m Model) createAdmin(input model.AdminInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateOrganizationAdmin(context.Background(), input)
		return adminCreatedMsg{err: err}
	}
}

func (m Model) createTenant(input model.TenantInput) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateTenant(context.Background(), input)
		return tenantCreatedMsg{err: err}
	}
}

// View renders the organizations page.
func (m Model) View() string {
	if m.form != nil {
		return m.renderForm()
	}

	var sections []string

	if m.searchMode {
		sections = append(sections, lipgloss.NewStyle().Padding(0, 1).Render(m.searchInput.View()))
	}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg+"  (r to retry)"))
	}
	if m.formErr != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.formErr))
	}
	if m.notice != "" {
		sections = append(sections, theme.DimmedStyle.Render(m.notice))
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading cooperatives..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, theme.HelpStyle.Render("No cooperatives found. n registers one."))
	default:
		sections = append(sections, m.renderRows(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderForm draws the open wizard step with its progress title.
func (m Model) renderForm() string {
	var name string
	switch m.step {
	case stepOrganization:
		name = "Register Cooperative (1/2)"
	case stepAdmin:
		name = "Admin Account (2/2)"
	case stepTenant:
		name = "Provision Tenant"
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(name)
	body := title + "\n" + m.form.View()
	if m.formErr != "" {
		body = title + "\n" + theme.ErrorBannerStyle.Render(m.formErr) + "\n" + m.form.View()
	}
	return theme.PanelStyle.Render(body)
}

// renderRows draws the cooperative table.
func (m Model) renderRows() string {
	var b strings.Builder
	for i, org := range m.items {
		state := "ACTIVE"
		if !org.IsActive {
			state = "INACTIVE"
		}
		badge := theme.ActiveStyle(org.IsActive).Render(state)
		line := fmt.Sprintf("%s %s  %s  %s",
			badge,
			org.Name,
			theme.DimmedStyle.Render(org.Code),
			theme.DimmedStyle.Render(fmt.Sprintf("%d members", org.MemberCount)),
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

// footer renders the pagination summary line.
func (m Model) footer() string {
	summary := ui.PageSummary(m.query, len(m.items))
	if m.refreshing {
		summary += "  refreshing..."
	}
	return theme.HelpStyle.Render(summary)
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.searchMode || m.form != nil
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
