package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/keys"
	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
	"github.com/Copay-Africa/copay-administration-sub000/internal/theme"
	"github.com/Copay-Africa/copay-administration-sub000/internal/ui"
)

// typeFilters are the notification type filter values cycled by Tab.
// The leading sentinel means "no filter" and is never sent.
var typeFilters = []string{
	model.FilterAll,
	model.NotificationPaymentReceived,
	model.NotificationPaymentDue,
	model.NotificationSystemAlert,
	model.NotificationAnnouncement,
}

// listLoadedMsg is sent when a page of notifications has been fetched.
type listLoadedMsg struct {
	gen  int
	page model.ResourceList[model.Notification]
	err  error
}

// markedReadMsg is sent when a mark-as-read mutation completed.
type markedReadMsg struct {
	id      string
	updated *model.Notification
	err     error
}

// markAllDoneMsg is sent when the mark-all-read sequence completed.
type markAllDoneMsg struct {
	err error
}

// detailLoadedMsg is sent when a single notification has been fetched.
type detailLoadedMsg struct {
	notification *model.Notification
	err          error
}

// Model is the notifications page.
type Model struct {
	client *api.Client
	log    *zap.Logger
	keys   *keys.KeyMap

	query       model.ListQuery
	items       []model.Notification
	list        list.Model
	typeIndex   int
	unreadOnly  bool
	searchMode  bool
	searchInput textinput.Model
	detail      *model.Notification

	gen        int
	loading    bool
	refreshing bool
	errMsg     string

	width  int
	height int
}

// New creates the notifications page model.
func New(client *api.Client, log *zap.Logger, k *keys.KeyMap, pageSize, width, height int) Model {
	if log == nil {
		log = zap.NewNop()
	}

	l := list.New([]list.Item{}, itemDelegate{}, width, height-3)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search notifications..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		log:         log,
		keys:        k,
		query:       model.NewListQuery(pageSize),
		list:        l,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init triggers the initial fetch.
func (m *Model) Init() tea.Cmd {
	return m.Load(false)
}

// Load starts one fetch for the current query. When refresh is true
// the previous rows stay visible behind a "refreshing" flag instead of
// the full-page loading state. Each fetch carries a generation number;
// a response from a superseded fetch is discarded on arrival.
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
		page, err := client.ListNotifications(context.Background(), query)
		return listLoadedMsg{gen: gen, page: page, err: err}
	}
}

// UnreadCount returns the number of unread rows currently loaded.
func (m Model) UnreadCount() int {
	count := 0
	for _, n := range m.items {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Update handles messages for the notifications page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.gen != m.gen {
			// A newer fetch is already current; drop the stale result.
			return m, nil
		}
		m.loading = false
		m.refreshing = false
		if msg.err != nil {
			m.items = nil
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("notifications fetch failed", zap.Error(msg.err))
			if api.IsAuthError(msg.err) {
				return m, func() tea.Msg { return ui.SessionExpiredMsg{} }
			}
			return m, m.list.SetItems(nil)
		}
		m.errMsg = ""
		m.items = msg.page.Items
		return m, m.syncListItems()

	case markedReadMsg:
		if msg.err != nil {
			// Leave the list in its last-known-good state.
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("mark notification read failed",
				zap.String("id", msg.id), zap.Error(msg.err))
			return m, nil
		}
		// Patch the single row locally instead of refetching. ReadAt
		// stays unset unless the backend returned the updated record.
		for i := range m.items {
			if m.items[i].ID != msg.id {
				continue
			}
			m.items[i].IsRead = true
			if msg.updated != nil && msg.updated.ReadAt != nil {
				m.items[i].ReadAt = msg.updated.ReadAt
			}
			break
		}
		if m.detail != nil && m.detail.ID == msg.id {
			m.detail.IsRead = true
		}
		return m, m.syncListItems()

	case detailLoadedMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("notification detail fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.detail = msg.notification
		// Opening a notification counts as reading it.
		if m.detail != nil && !m.detail.IsRead {
			return m, m.markRead(m.detail.ID)
		}
		return m, nil

	case markAllDoneMsg:
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err)
			m.log.Warn("mark all read failed", zap.Error(msg.err))
			return m, nil
		}
		return m, m.Load(true)

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
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

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(notificationItem)
		if !ok {
			return m, nil
		}
		return m, m.loadDetail(item.Notification.ID)

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.Load(true)

	case key.Matches(msg, m.keys.CycleFilter):
		m.typeIndex = (m.typeIndex + 1) % len(typeFilters)
		m.query.SetType(typeFilters[m.typeIndex])
		return m, m.Load(false)

	case key.Matches(msg, m.keys.ToggleActive):
		m.unreadOnly = !m.unreadOnly
		if m.unreadOnly {
			m.query.SetStatus("unread")
		} else {
			m.query.SetStatus(model.FilterAll)
		}
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

	case key.Matches(msg, m.keys.MarkRead):
		item, ok := m.list.SelectedItem().(notificationItem)
		if !ok || item.Notification.IsRead {
			return m, nil
		}
		return m, m.markRead(item.Notification.ID)

	case key.Matches(msg, m.keys.MarkAll):
		return m, m.markAllRead()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// loadDetail fetches the full record for one notification.
func (m Model) loadDetail(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		n, err := client.GetNotification(context.Background(), id)
		return detailLoadedMsg{notification: n, err: err}
	}
}

// markRead issues the single mark-as-read mutation for id.
func (m Model) markRead(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		updated, err := client.MarkNotificationRead(context.Background(), id)
		return markedReadMsg{id: id, updated: updated, err: err}
	}
}

// markAllRead marks every loaded unread notification, one request per
// id in sequence, then signals completion so one refresh runs.
func (m Model) markAllRead() tea.Cmd {
	client := m.client
	ids := make([]string, 0, len(m.items))
	for _, n := range m.items {
		if !n.IsRead {
			ids = append(ids, n.ID)
		}
	}
	return func() tea.Msg {
		for _, id := range ids {
			if _, err := client.MarkNotificationRead(context.Background(), id); err != nil {
				return markAllDoneMsg{err: err}
			}
		}
		if err := client.MarkAllNotificationsRead(context.Background()); err != nil {
			return markAllDoneMsg{err: err}
		}
		return markAllDoneMsg{}
	}
}

// syncListItems rebuilds the bubbles list from the raw item slice.
func (m *Model) syncListItems() tea.Cmd {
	items := make([]list.Item, len(m.items))
	for i, n := range m.items {
		items[i] = notificationItem{Notification: n}
	}
	return m.list.SetItems(items)
}

// View renders the notifications page.
func (m Model) View() string {
	if m.detail != nil {
		return m.renderDetail()
	}

	var sections []string

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	}

	if m.errMsg != "" {
		banner := theme.ErrorBannerStyle.Render(m.errMsg + "  (r to retry)")
		sections = append(sections, banner)
	}

	switch {
	case m.loading:
		sections = append(sections, theme.HelpStyle.Render("Loading notifications..."))
	case len(m.items) == 0 && m.errMsg == "":
		sections = append(sections, m.renderEmptyState())
	default:
		sections = append(sections, m.list.View(), m.footer())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail draws the single-notification panel.
func (m Model) renderDetail() string {
	n := m.detail

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(n.Title)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(theme.NotificationTypeStyle(n.Type).Render(n.Type))
	b.WriteString("\n\n")
	b.WriteString(n.Message)
	b.WriteString("\n")
	if n.Payment != nil {
		b.WriteString(fmt.Sprintf("\nPayment:   %s\nAmount:    %.2f\nReference: %s\n",
			n.Payment.Status, n.Payment.Amount, n.Payment.Reference))
	}
	b.WriteString(fmt.Sprintf("\nReceived %s\n", n.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("esc back"))
	return theme.PanelStyle.Render(b.String())
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
	if m.unreadOnly {
		summary += "  unread only"
	}
	return theme.HelpStyle.Render(summary)
}

// renderEmptyState shows guidance text when no rows are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.typeIndex != 0 || m.unreadOnly || m.query.Search != "" {
		return style.Render("No matching notifications.\nTry adjusting your filters.")
	}
	return style.Render("No notifications.")
}

// Capturing reports whether the page currently owns text input, so
// the root model leaves global shortcuts alone.
func (m Model) Capturing() bool {
	return m.searchMode
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}
