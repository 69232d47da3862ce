package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/printbed/gantry/internal/control"
)

// handleConfirmKey answers the pending confirmation. y or enter approves,
// n or esc cancels, everything else is swallowed while the modal is up.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		label, _, _ := m.gate.Pending()
		invoke, ok := m.gate.Approve()
		if !ok {
			return m, nil
		}
		ctx := m.ctx
		m.cmdPending = true
		return m, func() tea.Msg {
			return cmdResultMsg{cmd: control.Command{Label: label}, err: invoke(ctx)}
		}

	case "n", "esc":
		if label, _, ok := m.gate.Pending(); ok {
			m.feed.Add(label + ": cancelled")
		}
		m.gate.Cancel()
		return m, nil
	}
	return m, nil
}

// renderConfirm renders the confirmation modal with the daemon's warning.
func (m Model) renderConfirm() string {
	label, c, ok := m.gate.Pending()
	if !ok {
		return m.renderMain()
	}

	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render("confirm: " + label))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.Warning))
	b.WriteString("\n\n")
	b.WriteString(styles.SuccessText.Render("y/enter"))
	b.WriteString(styles.MutedText.Render(" approve    "))
	b.WriteString(styles.DangerText.Render("n/esc"))
	b.WriteString(styles.MutedText.Render(" cancel"))

	box := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Warning)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Padding(1, 2).
		Width(52).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
