// Package display provides terminal formatting for apptrack output.
package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tbonnaire/apptrack/internal/types"
)

var (
	// Styles
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))

	HighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	MediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	LowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))

	offerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	rejectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	interviewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

// StatusBadge returns a styled human label for an application status.
func StatusBadge(status string) string {
	label := types.StatusLabel(status)
	switch status {
	case types.StatusOffer, types.StatusAccepted:
		return offerStyle.Render(label)
	case types.StatusRejected, types.StatusWithdrawn:
		return rejectedStyle.Render(label)
	case types.StatusInterview, types.StatusTechnicalTest:
		return interviewStyle.Render(label)
	case types.StatusApplied, types.StatusAcknowledged, types.StatusScreening:
		return pendingStyle.Render(label)
	default:
		return label
	}
}

// PriorityDot returns a colored dot for a priority level.
func PriorityDot(priority string) string {
	switch priority {
	case types.PriorityHigh:
		return HighStyle.Render("●")
	case types.PriorityMedium:
		return MediumStyle.Render("○")
	case types.PriorityLow:
		return LowStyle.Render("○")
	default:
		return Dim.Render("·")
	}
}

// UrgencyMark returns a marker for urgent applications, empty otherwise.
func UrgencyMark(urgency string) string {
	switch urgency {
	case types.UrgencyUrgent:
		return HighStyle.Render("!!")
	case types.UrgencyHigh:
		return MediumStyle.Render("!")
	default:
		return ""
	}
}

// AutoTag returns a marker for auto-created applications.
func AutoTag(auto bool) string {
	if auto {
		return Muted.Render("[auto]")
	}
	return ""
}

// TimeAgo formats an ISO date string as a relative time.
func TimeAgo(isoDate string) string {
	if isoDate == "" {
		return ""
	}

	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", time.RFC3339Nano} {
		t, err = time.Parse(layout, isoDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate[:min(10, len(isoDate))]
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// FormatDate shortens an ISO date string to its date part.
func FormatDate(isoDate string) string {
	if len(isoDate) >= 10 {
		return isoDate[:10]
	}
	return isoDate
}

// Truncate shortens a string to maxLen, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// Percent formats an automation rate.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// SuccessMsg prints a green checkmark + message.
func SuccessMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(Success.Render("✓") + " " + msg)
}

// ErrorMsg prints a red X + message to stderr.
func ErrorMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrStyle.Render("✗")+" "+msg)
}

// WarnMsg prints a muted warning to stderr.
func WarnMsg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, Muted.Render("! "+msg))
}

// Header prints a section header.
func Header(title string) {
	fmt.Println(Bold.Render(title))
}

// SubHeader prints a dim subsection label.
func SubHeader(title string) {
	fmt.Println(Muted.Render(title))
}

// StaleNotice returns the banner shown when rendering cached data.
func StaleNotice(fetchedAt time.Time) string {
	return Muted.Render(fmt.Sprintf("offline: showing cached data from %s", strings.TrimSpace(TimeAgo(fetchedAt.UTC().Format(time.RFC3339)))))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
