package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/farmd"
)

// handleFleetKey processes keys for the fleet view.
func (m Model) handleFleetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.fleetRow < len(m.snapshot.Printers)-1 {
			m.fleetRow++
		}
		return m, nil

	case "k", "up":
		if m.fleetRow > 0 {
			m.fleetRow--
		}
		return m, nil

	case "enter":
		return m.selectPrinter()
	}
	return m, nil
}

// selectPrinter retargets every layer at the highlighted printer. The store
// target steers the poller and the stream supervisor; the tracker is
// replaced so the old printer's loaded-tray seed cannot leak into the new
// one.
func (m Model) selectPrinter() (tea.Model, tea.Cmd) {
	if m.fleetRow >= len(m.snapshot.Printers) {
		return m, nil
	}
	p := m.snapshot.Printers[m.fleetRow]

	if m.store != nil && m.store.Target() != p.ID {
		m.store.SetTarget(p.ID)
		m.tracker = ams.NewTracker()
		m.slotCursor = 0
		m.feed.Add("targeting " + p.Name)
	}

	m.currentView = ViewControl
	cmd := tea.Cmd(nil)
	if m.store != nil {
		cmd = fetchSnapshotCmd(m.store)
	}
	return m, cmd
}

// renderFleet renders the printer list.
func (m Model) renderFleet() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	if len(m.snapshot.Printers) == 0 {
		return bg.FillLine(bg.Spaces(2)+bg.Render("no printers registered with farmd", styles.MutedText), m.width)
	}

	target := ""
	if m.store != nil {
		target = m.store.Target()
	}

	var b strings.Builder

	title := fmt.Sprintf("printers (%d)", len(m.snapshot.Printers))
	b.WriteString(bg.FillLine(bg.Spaces(2)+bg.Render(title, styles.MutedText), m.width))
	b.WriteString("\n")

	heading := fmt.Sprintf("   %s %s %s", padRight("NAME", 24), padRight("MODEL", 18), "STATE")
	b.WriteString(bg.FillLine(bg.Render(heading, styles.FaintText), m.width))
	b.WriteString("\n")

	for i, p := range m.snapshot.Printers {
		state := p.State
		if !p.Online {
			state = "offline"
		} else if state == "" {
			state = farmd.StateIdle
		}

		mark := ternary(p.ID == target, "●", " ")
		name := padRight(truncate(p.Name, 24), 24)
		model := padRight(truncate(p.Model, 18), 18)

		if i == m.fleetRow {
			line := fmt.Sprintf(" %s %s %s %s", mark, name, model, state)
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(styles.StatusColor(state)))
			row := bg.Render(fmt.Sprintf(" %s %s %s ", mark, name, model), styles.Text) +
				bg.Render(state, stateStyle)
			b.WriteString(bg.FillLine(row, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString(bg.FillLine("", m.width))
	return b.String()
}
