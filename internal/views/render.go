package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Frame is one full screen: the schedule pane on the left, the
// command/detail pane on the right, alarm banner and key hints below.
type Frame struct {
	Title       string
	Schedule    string
	Side        string
	Status      string
	StatusError bool
	AlarmLine   string
	KeyHints    string
}

// The schedule pane is dominant; the side pane carries the palette,
// suggestions, and help.
const (
	schedulePaneWidth = 64
	sidePaneWidth     = 44
	summaryWrapWidth  = 62
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	paneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alarmStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1).Foreground(lipgloss.Color("11"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderFrame(f Frame) string {
	schedule := paneStyle.Width(schedulePaneWidth).Render(f.Schedule)
	side := paneStyle.Width(sidePaneWidth).Render(f.Side)
	row := lipgloss.JoinHorizontal(lipgloss.Top, schedule, side)

	status := okStyle.Render(f.Status)
	if f.StatusError {
		status = errorStyle.Render(f.Status)
	}

	lines := []string{titleStyle.Render(f.Title), row, status}
	if f.AlarmLine != "" {
		lines = append(lines, alarmStyle.Render(f.AlarmLine))
	}
	if f.KeyHints != "" {
		lines = append(lines, hintStyle.Render(f.KeyHints))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders the week summary wrapped to the schedule pane.
// On renderer failure the raw markdown still reads fine in a terminal.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(summaryWrapWidth))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
