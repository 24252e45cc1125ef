package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FormatClock renders a backend timestamp as a local wall-clock time. A
// timestamp that fails to parse renders as nothing rather than breaking the
// row.
func FormatClock(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ""
	}
	return t.Local().Format("15:04")
}

var avatarPalette = []string{"204", "82", "39", "214", "135", "45", "168", "112"}

// avatar is the terminal stand-in for the original's circle avatars: the
// first rune of the name, colored stably per name.
func avatar(name string) string {
	initial := "?"
	for _, r := range name {
		initial = string(r)
		break
	}
	var sum int
	for _, r := range name {
		sum += int(r)
	}
	color := avatarPalette[sum%len(avatarPalette)]
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		Render("(" + initial + ")")
}
