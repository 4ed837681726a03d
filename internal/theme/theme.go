package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the portal title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps detail, form, and overlay content areas.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorBannerStyle renders the inline page error string.
var ErrorBannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// DimmedStyle de-emphasizes read or inactive rows.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// StatCardStyle frames one derived-statistic widget.
var StatCardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// AnnouncementStatusStyle returns a color-coded badge style for the
// given announcement lifecycle status.
func AnnouncementStatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.AnnouncementDraft:
		return base.Foreground(ColorGray)
	case model.AnnouncementScheduled:
		return base.Foreground(ColorBlue)
	case model.AnnouncementSending:
		return base.Foreground(ColorYellow)
	case model.AnnouncementSent:
		return base.Foreground(ColorGreen)
	case model.AnnouncementCancelled:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// UrgencyStyle returns a color-coded badge style for a reminder
// urgency label.
func UrgencyStyle(urgency string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch urgency {
	case model.UrgencyOverdue:
		return base.Foreground(ColorRed)
	case model.UrgencyDueToday:
		return base.Foreground(ColorOrange)
	case model.UrgencyUpcoming:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// ActiveStyle returns the badge style for a user or cooperative
// active flag.
func ActiveStyle(isActive bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if isActive {
		return base.Foreground(ColorGreen)
	}
	return base.Foreground(ColorRed)
}

// SecurityStyle returns the badge style for activity rows; security
// events are called out in red.
func SecurityStyle(securityEvent bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if securityEvent {
		return base.Foreground(ColorRed)
	}
	return base.Foreground(ColorGray)
}

// NotificationTypeStyle returns a color-coded style for a
// notification type badge.
func NotificationTypeStyle(t string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch t {
	case model.NotificationPaymentReceived:
		return base.Foreground(ColorGreen)
	case model.NotificationPaymentDue:
		return base.Foreground(ColorOrange)
	case model.NotificationSystemAlert:
		return base.Foreground(ColorRed)
	case model.NotificationAnnouncement:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}
