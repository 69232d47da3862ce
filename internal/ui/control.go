package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/control"
)

const controlPanelWidth = 34

// handleControlKey processes keys for the control view. Step and length
// cycling are pure UI state; everything else goes to the device and is
// refused with a feed note while the printer cannot take commands.
func (m Model) handleControlKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.stepIdx = (m.stepIdx + 1) % len(jogSteps)
		return m, nil

	case "x":
		m.lengthIdx = (m.lengthIdx + 1) % len(extrudeLengths)
		return m, nil
	}

	if ok, reason := m.requireReady(); !ok {
		m.feed.AddError(reason)
		return m, nil
	}
	if m.cmdPending {
		m.feed.AddError("previous command still sending")
		return m, nil
	}

	step := jogSteps[m.stepIdx]
	length := extrudeLengths[m.lengthIdx]
	c := m.commander()

	var cmd control.Command
	switch msg.String() {
	case "h", "left":
		cmd = c.Move("X", -step)
	case "l", "right":
		cmd = c.Move("X", step)
	case "k", "up":
		cmd = c.Move("Y", step)
	case "j", "down":
		cmd = c.Move("Y", -step)
	case "u":
		cmd = c.Move("Z", step)
	case "d":
		cmd = c.Move("Z", -step)
	case "H":
		cmd = c.Home()
	case "e":
		cmd = c.Extrude(length)
	case "r":
		cmd = c.Extrude(-length)
	case "b":
		cmd = c.BedLevel()
	case "n":
		return m.switchNozzle()
	default:
		return m, nil
	}

	m.cmdPending = true
	return m, issueCmd(m.ctx, cmd)
}

// switchNozzle toggles the active extruder on a dual-nozzle machine.
func (m Model) switchNozzle() (tea.Model, tea.Cmd) {
	if !m.snapshot.Status.DualNozzle() {
		m.feed.AddError("machine has a single nozzle")
		return m, nil
	}

	next := ams.ExtruderRight
	if m.snapshot.Status.ActiveExtruder == ams.ExtruderRight {
		next = ams.ExtruderLeft
	}

	c := m.commander()
	ctx := m.ctx
	m.cmdPending = true
	return m, func() tea.Msg {
		return extruderSelectedMsg{extruder: next, err: c.SelectExtruder(ctx, next)}
	}
}

// renderControl renders the motion and extruder panels side by side.
func (m Model) renderControl() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	outer := NewBgStyle(m.theme.Background)
	outerStyles := m.theme.Styles().WithBackground(m.theme.Background)

	var b strings.Builder

	if ok, reason := m.requireReady(); !ok {
		b.WriteString(outer.FillLine(outer.Spaces(2)+outer.Render(reason+" (commands disabled)", outerStyles.WarningText), m.width))
		b.WriteString("\n")
	}

	motion := m.motionPanel(bg, styles)
	extruder := m.extruderPanel(bg, styles)

	blank := bg.FillLine("", controlPanelWidth)
	for len(motion) < len(extruder) {
		motion = append(motion, blank)
	}
	for len(extruder) < len(motion) {
		extruder = append(extruder, blank)
	}

	gap := outer.Spaces(2)
	for i := range motion {
		b.WriteString(outer.FillLine(gap+motion[i]+gap+extruder[i], m.width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) motionPanel(bg BgStyle, styles Styles) []string {
	title := bg.Render(" motion", styles.AccentText)
	if m.cmdPending {
		title += bg.Space() + bg.Render(m.spin.View(), styles.AccentText)
	}
	rows := []string{
		title,
		"",
		bg.Render(" step: ", styles.MutedText) + m.renderStepChoices(bg, styles),
		"",
		bg.Spaces(6) + bg.Render("▲ k", styles.Text),
		bg.Space() + bg.Render("h ◀", styles.Text) + bg.Spaces(5) + bg.Render("▶ l", styles.Text) + bg.Spaces(5) + bg.Render("u Z+", styles.Text),
		bg.Spaces(6) + bg.Render("▼ j", styles.Text) + bg.Spaces(8) + bg.Render("d Z-", styles.Text),
		"",
		bg.Space() + bg.Render("H home XY", styles.Text) + bg.Spaces(3) + bg.Render("b bed level", styles.Text),
	}
	return fillRows(bg, controlPanelWidth, rows)
}

func (m Model) extruderPanel(bg BgStyle, styles Styles) []string {
	st := m.snapshot.Status

	nozzleRow := bg.Space() + bg.Render("single nozzle", styles.MutedText)
	if st.DualNozzle() {
		nozzleRow = bg.Space() + bg.Render("n nozzle:", styles.Text) + bg.Space() +
			bg.Render(nozzleName(st.ActiveExtruder), styles.InfoText)
	}

	rows := []string{
		bg.Render(" extruder", styles.AccentText),
		"",
		bg.Render(" length: ", styles.MutedText) + m.renderLengthChoices(bg, styles),
		"",
		bg.Space() + bg.Render("e extrude", styles.Text) + bg.Spaces(3) + bg.Render("r retract", styles.Text),
		nozzleRow,
	}
	return fillRows(bg, controlPanelWidth, rows)
}

// renderStepChoices renders the jog step options with the active one
// highlighted.
func (m Model) renderStepChoices(bg BgStyle, styles Styles) string {
	parts := make([]string, len(jogSteps))
	for i, s := range jogSteps {
		label := strconv.FormatFloat(s, 'f', -1, 64) + "mm"
		if i == m.stepIdx {
			parts[i] = styles.Selected.Render(" " + label + " ")
		} else {
			parts[i] = bg.Render(label, styles.MutedText)
		}
	}
	return bg.Join(parts, " ")
}

// renderLengthChoices renders the extrude length options with the active
// one highlighted.
func (m Model) renderLengthChoices(bg BgStyle, styles Styles) string {
	parts := make([]string, len(extrudeLengths))
	for i, l := range extrudeLengths {
		label := strconv.Itoa(l) + "mm"
		if i == m.lengthIdx {
			parts[i] = styles.Selected.Render(" " + label + " ")
		} else {
			parts[i] = bg.Render(label, styles.MutedText)
		}
	}
	return bg.Join(parts, " ")
}

// fillRows pads each row to the panel width with the panel background.
func fillRows(bg BgStyle, width int, rows []string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = bg.FillLine(r, width)
	}
	return out
}
