package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/printbed/gantry/internal/ams"
)

const amsCardWidth = 40

// slotRef addresses one tray in the flattened navigation order.
type slotRef struct {
	unitID int
	slot   int
}

// slotRefs flattens the listed trays of the given units, in order.
func slotRefs(units []ams.Unit) []slotRef {
	var refs []slotRef
	for _, u := range units {
		for _, t := range u.Trays {
			refs = append(refs, slotRef{u.ID, t.Slot})
		}
	}
	return refs
}

// displayUnits lists units in render order, right column before left.
// Units the assignment map hides are not navigable.
func (m Model) displayUnits() []ams.Unit {
	out := make([]ams.Unit, 0, len(m.routing.Right)+len(m.routing.Left))
	out = append(out, m.routing.Right...)
	out = append(out, m.routing.Left...)
	return out
}

// cursorRef resolves the slot cursor to a concrete tray.
func (m Model) cursorRef() (slotRef, bool) {
	refs := slotRefs(m.displayUnits())
	if len(refs) == 0 || m.slotCursor >= len(refs) {
		return slotRef{}, false
	}
	return refs[m.slotCursor], true
}

// handleAMSKey processes keys for the filament view.
func (m Model) handleAMSKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	refs := slotRefs(m.displayUnits())

	switch msg.String() {
	case "j", "down", "l", "right":
		if len(refs) > 0 {
			m.slotCursor = (m.slotCursor + 1) % len(refs)
		}
		return m, nil

	case "k", "up", "h", "left":
		if len(refs) > 0 {
			m.slotCursor = (m.slotCursor - 1 + len(refs)) % len(refs)
		}
		return m, nil

	case "enter":
		if ref, ok := m.cursorRef(); ok {
			m.tracker.Select(ams.GlobalTrayID(ref.unitID, ref.slot))
		}
		return m, nil

	case "L":
		return m.beginLoad()

	case "U":
		return m.beginUnload()

	case "R":
		return m.rescanTray()
	}
	return m, nil
}

// beginLoad submits a load for the selected tray. The optimistic marker is
// set before the round trip so the progress card appears immediately.
func (m Model) beginLoad() (tea.Model, tea.Cmd) {
	if ok, reason := m.requireReady(); !ok {
		m.feed.AddError(reason)
		return m, nil
	}

	sel := m.tracker.Selected()
	if sel < 0 {
		m.feed.AddError("select a tray first (enter)")
		return m, nil
	}
	if m.tracker.InFlight() {
		m.feed.AddError("a filament operation is already in progress")
		return m, nil
	}
	if !m.tracker.CanLoad() {
		m.feed.AddError("selected tray is already loaded")
		return m, nil
	}

	unit, slot, ok := ams.Locate(m.snapshot.Status.Units, sel)
	if !ok {
		m.feed.AddError("selected tray is no longer present")
		return m, nil
	}

	// On dual-nozzle machines the load names the nozzle the unit feeds.
	var extruder *int
	if m.snapshot.Status.DualNozzle() {
		if ext, known := m.routing.ExtruderFor(unit.ID); known {
			e := ext
			extruder = &e
		}
	}

	m.tracker.BeginLoad()
	label := "load " + ams.SlotLabel(unit.ID, slot)
	c := m.commander()
	ctx := m.ctx
	return m, func() tea.Msg {
		return amsResultMsg{kind: ams.OpLoad, verb: label, err: c.LoadFilament(ctx, sel, extruder)}
	}
}

// beginUnload submits an unload of whatever is currently loaded.
func (m Model) beginUnload() (tea.Model, tea.Cmd) {
	if ok, reason := m.requireReady(); !ok {
		m.feed.AddError(reason)
		return m, nil
	}
	if !m.tracker.CanUnload() {
		m.feed.AddError("a filament operation is already in progress")
		return m, nil
	}

	m.tracker.BeginUnload()
	c := m.commander()
	ctx := m.ctx
	return m, func() tea.Msg {
		return amsResultMsg{kind: ams.OpUnload, verb: "unload filament", err: c.UnloadFilament(ctx)}
	}
}

// rescanTray asks the unit to re-read the RFID tag of the tray under the
// cursor. This acts on the cursor, not the load selection.
func (m Model) rescanTray() (tea.Model, tea.Cmd) {
	if ok, reason := m.requireReady(); !ok {
		m.feed.AddError(reason)
		return m, nil
	}

	ref, ok := m.cursorRef()
	if !ok {
		m.feed.AddError("no tray under cursor")
		return m, nil
	}

	label := "re-scan " + ams.SlotLabel(ref.unitID, ref.slot)
	c := m.commander()
	ctx := m.ctx
	unitID, slot := ref.unitID, ref.slot
	return m, func() tea.Msg {
		return amsResultMsg{kind: ams.OpNone, verb: label, err: c.RefreshTray(ctx, unitID, slot)}
	}
}

// renderAMS renders the filament view: unit cards split by nozzle, the
// wiring line, and the operation progress card while one is showing.
func (m Model) renderAMS() string {
	outer := NewBgStyle(m.theme.Background)
	outerStyles := m.theme.Styles().WithBackground(m.theme.Background)

	st := m.snapshot.Status
	if !m.snapshot.HasStatus || len(st.Units) == 0 {
		return outer.FillLine(outer.Spaces(2)+outer.Render("no filament units reported", outerStyles.MutedText), m.width)
	}

	w := ams.Wire(st.Units, m.routing, m.tracker.Selected(), m.tracker.InFlight(), st.TrayNow)

	var rows []string
	gap := outer.Spaces(2)

	if st.DualNozzle() {
		right, n := m.unitColumn(m.routing.Right, "right nozzle", 0, w)
		left, _ := m.unitColumn(m.routing.Left, "left nozzle", n, w)

		blank := outer.FillLine("", amsCardWidth)
		for len(right) < len(left) {
			right = append(right, blank)
		}
		for len(left) < len(right) {
			left = append(left, blank)
		}
		for i := range right {
			rows = append(rows, outer.FillLine(gap+right[i]+gap+left[i], m.width))
		}
	} else {
		col, _ := m.unitColumn(m.displayUnits(), "units", 0, w)
		for _, r := range col {
			rows = append(rows, outer.FillLine(gap+r, m.width))
		}
	}

	rows = append(rows, m.renderWiring(w))

	if m.tracker.InFlight() {
		rows = append(rows, outer.FillLine("", m.width))
		rows = append(rows, m.progressCard()...)
	}

	return strings.Join(rows, "\n")
}

// unitColumn stacks the cards for one nozzle's units. start is the global
// slot index of the first tray in the column; the count of trays consumed
// is returned so the next column continues the numbering.
func (m Model) unitColumn(units []ams.Unit, title string, start int, w ams.Wiring) ([]string, int) {
	outer := NewBgStyle(m.theme.Background)
	outerStyles := m.theme.Styles().WithBackground(m.theme.Background)

	rows := []string{outer.FillLine(outer.Space()+outer.Render(title, outerStyles.MutedText), amsCardWidth)}
	idx := start
	for _, u := range units {
		card, n := m.unitCard(u, idx, w)
		rows = append(rows, card...)
		rows = append(rows, outer.FillLine("", amsCardWidth))
		idx += n
	}
	if len(units) == 0 {
		rows = append(rows, outer.FillLine(outer.Space()+outer.Render("no units", outerStyles.FaintText), amsCardWidth))
		rows = append(rows, outer.FillLine("", amsCardWidth))
	}
	return rows, idx - start
}

// unitCard renders one unit: a header with environment readings, then one
// row per tray.
func (m Model) unitCard(u ams.Unit, start int, w ams.Wiring) ([]string, int) {
	bg := NewBgStyle(m.theme.Surface)
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	details := humidityLabel(u.Humidity)
	if u.Temp != nil {
		details += fmt.Sprintf(" · %.1f°C", *u.Temp)
	}

	header := bg.Space() + bg.Render("unit "+ams.UnitLabel(u.ID), styles.AccentText) +
		bg.Spaces(2) + bg.Render(details, styles.MutedText)
	rows := []string{bg.FillLine(header, amsCardWidth)}

	for i, tr := range u.Trays {
		isCursor := start+i == m.slotCursor
		hl := ams.Highlight(u.ID, tr.Slot, m.tracker.Selected(), w.ActiveTray)
		rows = append(rows, m.trayRow(u, tr, isCursor, hl))
	}
	return rows, len(u.Trays)
}

// trayRow renders one slot: highlight marker, label, color swatch, material
// and fill. The cursor row swaps to the focus background.
func (m Model) trayRow(u ams.Unit, t ams.Tray, isCursor bool, hl ams.SlotHighlight) string {
	surface := ternary(isCursor, m.theme.FocusBg, m.theme.Surface)
	bg := NewBgStyle(surface)
	styles := m.theme.Styles().WithBackground(surface)

	marker := bg.Space()
	switch hl {
	case ams.SlotActive:
		marker = bg.Render("▸", styles.SuccessText)
	case ams.SlotSelected:
		marker = bg.Render("»", styles.AccentText)
	}

	label := bg.Render(padRight(ams.SlotLabel(u.ID, t.Slot), 5), styles.Text)

	var sw string
	if t.Empty() || t.Color == nil || *t.Color == "" {
		sw = bg.Render("░░", styles.FaintText)
	} else {
		sw = lipgloss.NewStyle().
			Foreground(lipgloss.Color(*t.Color)).
			Background(lipgloss.Color(surface)).
			Render("██")
	}

	var detail string
	switch {
	case t.Empty():
		detail = bg.Render("empty", styles.FaintText)
	case t.HasRemain():
		detail = bg.Render(padRight(truncate(t.Type, 9), 10), styles.Text) +
			bg.Render(remainBar(t.Remain), styles.InfoText) +
			bg.Space() + bg.Render(fmt.Sprintf("%d%%", t.Remain), styles.MutedText)
	default:
		// Third-party spool: the reported fill is not trustworthy.
		detail = bg.Render(padRight(truncate(t.Type, 9), 10), styles.Text) +
			bg.Render("third-party", styles.MutedText)
	}

	row := bg.Space() + marker + bg.Space() + label + sw + bg.Space() + detail
	return bg.FillLine(row, amsCardWidth)
}

// renderWiring renders the unit-to-nozzle path line.
func (m Model) renderWiring(w ams.Wiring) string {
	outer := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles().WithBackground(m.theme.Background)

	var line string
	switch {
	case w.External:
		line = outer.Render("external spool ──▶ "+nozzleName(w.Extruder)+" nozzle", styles.InfoText)

	case w.ActiveTray >= 0:
		label := fmt.Sprintf("#%d", w.ActiveTray)
		if u, slot, ok := ams.Locate(m.snapshot.Status.Units, w.ActiveTray); ok {
			label = ams.SlotLabel(u.ID, slot)
		}
		path := lipgloss.NewStyle().
			Foreground(lipgloss.Color(w.Color)).
			Background(lipgloss.Color(m.theme.Background)).
			Render("══════▶")
		line = outer.Render(label, styles.Text) + outer.Space() + path + outer.Space() +
			outer.Render(nozzleName(w.Extruder)+" nozzle", styles.Text)

	default:
		line = outer.Render("no filament path", styles.FaintText)
	}

	if w.Guessed {
		line += outer.Spaces(2) + outer.Render("(assignment guessed)", styles.WarningText)
	}
	return outer.FillLine(outer.Spaces(2)+line, m.width)
}

// progressCard renders the step rows for the showing operation.
func (m Model) progressCard() []string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	outer := NewBgStyle(m.theme.Background)

	kind := m.tracker.Kind()
	title := m.spin.View() + " " + kind.String() + "ing"
	if kind == ams.OpLoad {
		if u, slot, ok := ams.Locate(m.snapshot.Status.Units, m.tracker.Selected()); ok {
			title += " " + ams.SlotLabel(u.ID, slot)
		}
	}

	rows := []string{bg.FillLine(bg.Space()+bg.Render(title, styles.AccentText), amsCardWidth)}
	for _, step := range ams.Steps(kind, m.tracker.Stage()) {
		var mark string
		var markStyle, textStyle lipgloss.Style
		switch step.State {
		case ams.StepDone:
			mark, markStyle, textStyle = "✓", styles.SuccessText, styles.MutedText
		case ams.StepActive:
			mark, markStyle, textStyle = "●", styles.AccentText, styles.Text
		default:
			mark, markStyle, textStyle = "○", styles.FaintText, styles.FaintText
		}
		row := bg.Spaces(2) + bg.Render(mark, markStyle) + bg.Space() + bg.Render(step.Name, textStyle)
		rows = append(rows, bg.FillLine(row, amsCardWidth))
	}

	out := make([]string, len(rows))
	gap := outer.Spaces(2)
	for i, r := range rows {
		out[i] = outer.FillLine(gap+r, m.width)
	}
	return out
}

// humidityLabel renders a humidity reading, "--" when the unit does not
// report one.
func humidityLabel(h *int) string {
	if h == nil {
		return "--% RH"
	}
	return fmt.Sprintf("%d%% RH", *h)
}

// remainBar renders a ten-cell fill bar for a remaining percentage.
func remainBar(remain int) string {
	const cells = 10
	if remain < 0 {
		remain = 0
	}
	if remain > 100 {
		remain = 100
	}
	filled := remain * cells / 100
	return strings.Repeat("▰", filled) + strings.Repeat("▱", cells-filled)
}
