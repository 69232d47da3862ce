package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpSection groups bindings under a heading.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections() []helpSection {
	k := DefaultKeyMap()
	return []helpSection{
		{"views", []key.Binding{k.Tab, k.ViewFleet, k.ViewControl, k.ViewAMS, k.Escape}},
		{"fleet", []key.Binding{k.Up, k.Down, k.Select}},
		{"control", []key.Binding{
			k.JogXNeg, k.JogXPos, k.JogYPos, k.JogYNeg, k.JogZUp, k.JogZDown,
			k.CycleStep, k.HomeXY, k.Extrude, k.Retract, k.CycleLength, k.BedLevel, k.Nozzle,
		}},
		{"filament", []key.Binding{k.SlotPrev, k.SlotNext, k.Select, k.Load, k.Unload, k.Refresh}},
		{"confirmation", []key.Binding{k.Approve, k.Deny}},
		{"general", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the key reference as a centered modal. Any key closes
// it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("gantry keys"))
	b.WriteString("\n")

	for _, section := range helpSections() {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(styles.InfoText.Render(padRight(h.Key, 10)))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))

	box := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
