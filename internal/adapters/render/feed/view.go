package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// NotificationLines renders grouped notifications one line per entry, with
// group headers. An empty, exhausted list shows the welcome notification.
func NotificationLines(items []domain.Notification, now time.Time, exhausted bool) []string {
	s := newStyles()
	if len(items) == 0 && exhausted {
		items = []domain.Notification{domain.WelcomeNotification()}
	}

	groups := application.GroupByDay(items, now, func(n domain.Notification) time.Time { return n.CreatedAt }, application.NotificationBuckets)

	lines := make([]string, 0, len(items)+len(groups))
	for _, group := range groups {
		lines = append(lines, s.group.Render(string(group.Title)))
		for _, n := range group.Items {
			lines = append(lines, notificationLine(n, s))
		}
	}
	return lines
}

// RideLines renders grouped ride history one line per ride.
func RideLines(items []domain.RideRecord, now time.Time) []string {
	s := newStyles()
	groups := application.GroupByDay(items, now, func(r domain.RideRecord) time.Time { return r.RideStartTime }, application.RideBuckets)

	lines := make([]string, 0, len(items)+len(groups))
	for _, group := range groups {
		lines = append(lines, s.group.Render(string(group.Title)))
		for _, r := range group.Items {
			lines = append(lines, rideLine(r, s))
		}
	}
	return lines
}

func RenderNotifications(items []domain.Notification, now time.Time, exhausted bool) string {
	return render("Notifications", NotificationLines(items, now, exhausted), "No notifications yet.")
}

func RenderRides(items []domain.RideRecord, now time.Time) string {
	return render("Ride history", RideLines(items, now), "No rides yet.")
}

func render(title string, lines []string, emptyText string) string {
	s := newStyles()
	out := []string{s.title.Render(title)}
	if len(lines) == 0 {
		out = append(out, s.empty.Render(emptyText))
	}
	out = append(out, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func notificationLine(n domain.Notification, s styles) string {
	parts := []string{
		s.badge.Render(fmt.Sprintf("[%s]", n.Category.Label())),
		s.item.Render(strings.TrimSpace(n.Title)),
	}
	if message := strings.TrimSpace(n.Message); message != "" {
		parts = append(parts, s.meta.Render(truncate(message, 60)))
	}
	if !n.CreatedAt.IsZero() {
		parts = append(parts, s.meta.Render(n.CreatedAt.Format("15:04")))
	}
	return "  " + strings.Join(parts, " ")
}

func rideLine(r domain.RideRecord, s styles) string {
	parts := []string{s.badge.Render(fmt.Sprintf("[%s]", r.Status.Label()))}

	route := strings.TrimSpace(r.Origin)
	if dest := strings.TrimSpace(r.Destination); dest != "" {
		if route != "" {
			route += " -> "
		}
		route += dest
	}
	if route == "" {
		route = r.Key()
	}
	parts = append(parts, s.item.Render(route))

	if r.DistanceKm > 0 {
		parts = append(parts, s.meta.Render(fmt.Sprintf("%.1f km", r.DistanceKm)))
	}
	if !r.RideStartTime.IsZero() && !r.RideEndTime.IsZero() && r.RideEndTime.After(r.RideStartTime) {
		parts = append(parts, s.meta.Render(domain.FormatElapsed(int(r.RideEndTime.Sub(r.RideStartTime)/time.Second))))
	}
	if !r.RideStartTime.IsZero() {
		parts = append(parts, s.meta.Render(r.RideStartTime.Format("02 Jan 15:04")))
	}
	return "  " + strings.Join(parts, " ")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}
