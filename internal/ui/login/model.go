package login

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/credential"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
	"github.com/Copay-Africa/copay-administration-sub000/internal/theme"
)

// pinLength is the required PIN length for the portal.
const pinLength = 4

// LoggedInMsg tells the root model a session is established.
type LoggedInMsg struct {
	Session *model.Session
}

// sessionMsg carries the login call result.
type sessionMsg struct {
	session *model.Session
	err     error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	phone string
	pin   string
}

// Model is the sign-in screen.
type Model struct {
	client *api.Client
	log    *zap.Logger

	form    *huh.Form
	fb      *formBindings
	waiting bool
	errMsg  string

	width  int
	height int
}

// New creates the sign-in screen model.
func New(client *api.Client, log *zap.Logger, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		client: client,
		log:    log,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the credential form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the sign-in screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.waiting = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("login failed", zap.Error(msg.err))
			m.fb.pin = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		}

		// Persist the token so the next run skips sign-in. A keyring
		// failure is logged but does not block the session.
		if err := credential.Set(credential.SessionTokenKey, msg.session.Token); err != nil {
			m.log.Warn("storing session token failed", zap.Error(err))
		}
		return m, func() tea.Msg { return LoggedInMsg{Session: msg.session} }
	}

	if m.waiting {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		phone, pin, err := m.credentials()
		if err != nil {
			// Validation failures re-open the form without touching
			// the network.
			m.errMsg = err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.errMsg = ""
		m.waiting = true
		return m, m.login(phone, pin)
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

// buildForm constructs the credential form.
func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phone").
				Value(&m.fb.phone),
			huh.NewInput().
				Title("PIN").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.pin),
		),
	)
}

// credentials validates the entered credentials client-side.
func (m Model) credentials() (phone, pin string, err error) {
	phone = strings.TrimSpace(m.fb.phone)
	pin = m.fb.pin
	if phone == "" {
		return "", "", fmt.Errorf("phone is required")
	}
	if len(pin) != pinLength {
		return "", "", fmt.Errorf("PIN must be %d digits", pinLength)
	}
	return phone, pin, nil
}

func (m Model) login(phone, pin string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		session, err := client.Login(context.Background(), phone, pin)
		return sessionMsg{session: session, err: err}
	}
}

// View renders the sign-in screen.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Copay Super Admin")

	var body string
	switch {
	case m.waiting:
		body = theme.HelpStyle.Render("Signing in...")
	default:
		body = m.form.View()
	}

	var sections []string
	sections = append(sections, title)
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorBannerStyle.Render(m.errMsg))
	}
	sections = append(sections, body)

	panel := theme.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
