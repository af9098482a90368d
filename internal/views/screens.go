package views

import (
	"fmt"
	"strings"
)

type PlanPanelData struct {
	Date           string
	Weekday        string
	TableView      string
	SelectedKey    string
	TotalHours     float64
	AvailableHours float64
	Overloaded     bool
	Commitments    []string
}

type WeekDayData struct {
	Date         string
	Weekday      string
	OffDay       bool
	Sessions     int
	Done         int
	Missed       int
	PlannedHours float64
	Overloaded   bool
}

type EditRowData struct {
	Date     string
	Key      string
	From     string
	To       string
	EditedAt string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

var warnStyle = errorStyle.Bold(true)

func RenderPlanPanel(data PlanPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan: %s (%s)\n", data.Date, data.Weekday)
	fmt.Fprintf(&b, "hours: %.1f planned / %.1f available", data.TotalHours, data.AvailableHours)
	if data.Overloaded {
		b.WriteString(" " + warnStyle.Render("OVERLOADED"))
	}
	b.WriteString("\n")
	b.WriteString("actions: [j/k]move [h/l]day [c]complete [x]skip [s]suggest [r]redistribute [u]undo\n")
	b.WriteString(data.TableView)
	if data.SelectedKey != "" {
		fmt.Fprintf(&b, "\nselected: %s", data.SelectedKey)
	}
	if len(data.Commitments) > 0 {
		b.WriteString("\ncommitments:")
		for _, c := range data.Commitments {
			b.WriteString("\n  " + c)
		}
	}
	return strings.TrimSpace(b.String())
}

// WeekSummaryMarkdown builds the markdown body for the week view; the
// caller pipes it through RenderMarkdown.
func WeekSummaryMarkdown(days []WeekDayData) string {
	var b strings.Builder
	b.WriteString("# Week\n\n")
	b.WriteString("| Day | Hours | Sessions | Done | Missed | |\n")
	b.WriteString("|-----|-------|----------|------|--------|--|\n")
	for _, d := range days {
		note := ""
		switch {
		case d.OffDay:
			note = "off day"
		case d.Overloaded:
			note = "overloaded"
		}
		fmt.Fprintf(&b, "| %s %s | %.1f | %d | %d | %d | %s |\n",
			d.Weekday[:3], d.Date, d.PlannedHours, d.Sessions, d.Done, d.Missed, note)
	}
	return b.String()
}

func RenderEditsPanel(rows []EditRowData) string {
	var b strings.Builder
	b.WriteString("session time edits:\n")
	if len(rows) == 0 {
		b.WriteString("(none)")
		return b.String()
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s: %s -> %s (at %s)\n", r.Date, r.Key, r.From, r.To, r.EditedAt)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return "command palette: press / to activate"
	}
	return "command palette:\n" + inputView + "\ncommands: move, complete, skip, suggest, redistribute, undo"
}

func RenderSuggestions(slots []string) string {
	var b strings.Builder
	b.WriteString("open slots:\n")
	for _, s := range slots {
		b.WriteString("  " + s + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "help (%s):\n", data.CurrentView)
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
	}
	return strings.TrimSpace(b.String())
}
