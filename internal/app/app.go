package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/config"
	"github.com/Copay-Africa/copay-administration-sub000/internal/credential"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/activities"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/announcements"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/command"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/dashboard"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/helpview"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/login"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/notifications"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/organizations"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/reminders"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui/users"
)

// bootMsg kicks off the first data fetches once the program is
// running, so page state mutations happen on the stored model.
type bootMsg struct{}

// unreadCountMsg carries the unread notification total for the header.
type unreadCountMsg struct {
	count int
}

// loggedOutMsg is sent when the logout call has finished.
type loggedOutMsg struct{}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewNotifications
	ViewActivities
	ViewAnnouncements
	ViewReminders
	ViewUsers
	ViewOrganizations
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing,
// layout and the shared API client.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *api.Client
	log          *zap.Logger
	keys         *keys.KeyMap

	loginView     login.Model
	dashboardView dashboard.Model
	notifView     notifications.Model
	activityView  activities.Model
	annView       announcements.Model
	reminderView  reminders.Model
	userView      users.Model
	orgView       organizations.Model
	helpView      helpview.Model
	commandView   command.Model

	cfg         config.Config
	session     *model.Session
	ready       bool
	unreadCount int
}

// New creates the root application model. hasSession tells it whether
// a stored token was restored, in which case sign-in is skipped until
// the backend rejects the token.
func New(client *api.Client, log *zap.Logger, cfg config.Config, hasSession bool) Model {
	if log == nil {
		log = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	startView := ViewLogin
	if hasSession {
		startView = ViewDashboard
	}

	return Model{
		currentView:   startView,
		client:        client,
		log:           log,
		keys:          k,
		cfg:           cfg,
		loginView:     login.New(client, log, 80, 24),
		dashboardView: dashboard.New(client, log, k, cfg.DownloadDir, 80, 24),
		notifView:     notifications.New(client, log, k, cfg.PageSize, 80, 24),
		activityView:  activities.New(client, log, k, cfg.DownloadDir, cfg.PageSize, 80, 24),
		annView:       announcements.New(client, log, k, cfg.PageSize, 80, 24),
		reminderView:  reminders.New(client, log, k, cfg.PageSize, 80, 24),
		userView:      users.New(client, log, k, cfg.PageSize, 80, 24),
		orgView:       organizations.New(client, log, k, cfg.PageSize, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
	}
}

// Init schedules the boot message. Data fetches are deferred to the
// first Update so they run against the stored model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return bootMsg{} }
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.dashboardView.SetSize(contentWidth, contentHeight)
		m.notifView.SetSize(contentWidth, contentHeight)
		m.activityView.SetSize(contentWidth, contentHeight)
		m.annView.SetSize(contentWidth, contentHeight)
		m.reminderView.SetSize(contentWidth, contentHeight)
		m.userView.SetSize(contentWidth, contentHeight)
		m.orgView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case bootMsg:
		if m.currentView == ViewLogin {
			return m, m.loginView.Init()
		}
		return m, tea.Batch(m.dashboardView.Init(), m.fetchUnreadCount())

	case login.LoggedInMsg:
		m.session = msg.Session
		m.currentView = ViewDashboard
		return m, tea.Batch(m.dashboardView.Init(), m.fetchUnreadCount())

	case ui.SessionExpiredMsg:
		return m.dropSession()

	case loggedOutMsg:
		return m.dropSession()

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		// The overlay views close on esc regardless of focus.
		if msg.String() == "esc" &&
			(m.currentView == ViewHelp || m.currentView == ViewCommand) {
			m.currentView = m.previousView
			return m, nil
		}
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}
	}

	return m.updateActiveView(msg)
}

// dropSession clears the token locally and in the keyring and returns
// to the sign-in screen.
func (m Model) dropSession() (tea.Model, tea.Cmd) {
	m.client.SetToken("")
	if err := credential.Delete(credential.SessionTokenKey); err != nil {
		m.log.Warn("clearing stored token failed", zap.Error(err))
	}
	m.session = nil
	m.unreadCount = 0
	m.loginView = login.New(m.client, m.log, m.layout.ContentWidth(), m.layout.ContentHeight())
	m.currentView = ViewLogin
	return m, m.loginView.Init()
}

// handleGlobalKeys processes shortcuts that work on any signed-in
// view. It leaves keys alone while the sign-in screen or a page input
// has focus.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	if m.currentView == ViewLogin || m.capturing() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case "1":
		return m.switchTo(ViewDashboard)
	case "2":
		return m.switchTo(ViewNotifications)
	case "3":
		return m.switchTo(ViewActivities)
	case "4":
		return m.switchTo(ViewAnnouncements)
	case "5":
		return m.switchTo(ViewReminders)
	case "6":
		return m.switchTo(ViewUsers)
	case "7":
		return m.switchTo(ViewOrganizations)
	}

	return m, nil, false
}

// capturing reports whether the active page owns text input.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewNotifications:
		return m.notifView.Capturing()
	case ViewActivities:
		return m.activityView.Capturing()
	case ViewAnnouncements:
		return m.annView.Capturing()
	case ViewReminders:
		return m.reminderView.Capturing()
	case ViewUsers:
		return m.userView.Capturing()
	case ViewOrganizations:
		return m.orgView.Capturing()
	case ViewCommand:
		return true
	}
	return false
}

// switchTo activates a page and starts its mount fetch.
func (m Model) switchTo(view ViewState) (tea.Model, tea.Cmd, bool) {
	if m.currentView == view {
		return m, nil, true
	}
	m.previousView = m.currentView
	m.currentView = view

	var cmd tea.Cmd
	switch view {
	case ViewDashboard:
		cmd = m.dashboardView.Init()
	case ViewNotifications:
		cmd = m.notifView.Init()
	case ViewActivities:
		cmd = m.activityView.Init()
	case ViewAnnouncements:
		cmd = m.annView.Init()
	case ViewReminders:
		cmd = m.reminderView.Init()
	case ViewUsers:
		cmd = m.userView.Init()
	case ViewOrganizations:
		cmd = m.orgView.Init()
	}
	return m, tea.Batch(cmd, m.fetchUnreadCount()), true
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewActivities:
		m.activityView, cmd = m.activityView.Update(msg)
	case ViewAnnouncements:
		m.annView, cmd = m.annView.Update(msg)
	case ViewReminders:
		m.reminderView, cmd = m.reminderView.Update(msg)
	case ViewUsers:
		m.userView, cmd = m.userView.Update(msg)
	case ViewOrganizations:
		m.orgView, cmd = m.orgView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	headerTitle := "Copay Super Admin"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("Copay Super Admin [%d unread]", m.unreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.sessionStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewActivities:
		return m.activityView.View()
	case ViewAnnouncements:
		return m.annView.View()
	case ViewReminders:
		return m.reminderView.View()
	case ViewUsers:
		return m.userView.View()
	case ViewOrganizations:
		return m.orgView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// sessionStatus names the signed-in admin in the header.
func (m Model) sessionStatus() string {
	if m.session == nil {
		return "signed in"
	}
	return m.session.User.FullName()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDashboard:
		return "tab period | E export | r refresh | 2-7 pages | ? help"
	case ViewNotifications:
		return "m read | M read all | tab filter | x unread only | / search | r refresh"
	case ViewActivities:
		return "tab entity | x security | f dates | E export | r refresh"
	case ViewAnnouncements:
		return "n new | e edit | s send | d delete | tab status | r refresh"
	case ViewReminders:
		return "n new | tab type | r refresh"
	case ViewUsers:
		return "n new | x toggle active | d delete | enter detail | / search | r refresh"
	case ViewOrganizations:
		return "n register | e tenant | / search | r refresh"
	default:
		return "q quit | ? help | : command"
	}
}

// fetchUnreadCount queries the unread notification total for the
// header badge. A one-row page is enough; the envelope carries the
// total.
func (m Model) fetchUnreadCount() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		q := model.NewListQuery(1)
		q.SetStatus("unread")
		page, err := client.ListNotifications(context.Background(), q)
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: page.TotalCount}
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "dashboard", "analytics":
		mdl, c, _ := m.switchTo(ViewDashboard)
		return mdl, c
	case "notifications":
		mdl, c, _ := m.switchTo(ViewNotifications)
		return mdl, c
	case "activities", "audit":
		mdl, c, _ := m.switchTo(ViewActivities)
		return mdl, c
	case "announcements":
		mdl, c, _ := m.switchTo(ViewAnnouncements)
		return mdl, c
	case "reminders":
		mdl, c, _ := m.switchTo(ViewReminders)
		return mdl, c
	case "users", "members":
		mdl, c, _ := m.switchTo(ViewUsers)
		return mdl, c
	case "organizations", "orgs", "cooperatives":
		mdl, c, _ := m.switchTo(ViewOrganizations)
		return mdl, c
	case "logout":
		return m, m.logout()
	case "quit", "q":
		return m, tea.Quit
	default:
		return m, nil
	}
}

// logout invalidates the session server-side, then drops it locally.
func (m Model) logout() tea.Cmd {
	client := m.client
	log := m.log
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			log.Warn("logout call failed", zap.Error(err))
		}
		return loggedOutMsg{}
	}
}
