package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/farmd"
)

// connecting reports whether no data has arrived yet. Before the first
// refresh lands there is no snapshot and no error to classify.
func (m Model) connecting() bool {
	return m.snapshot.LastUpdated.IsZero() && m.snapshot.LastError == nil
}

// targetPrinter resolves the current target against the fleet list.
func (m Model) targetPrinter() (farmd.Printer, bool) {
	if m.store == nil {
		return farmd.Printer{}, false
	}
	return m.snapshot.Printer(m.store.Target())
}

// printerState picks the state string for the header badge. Live telemetry
// wins over the fleet listing; an unreachable printer is always "offline".
func (m Model) printerState() string {
	if m.snapshot.HasStatus {
		if !m.snapshot.Status.Online {
			return "offline"
		}
		if s := m.snapshot.Status.State; s != "" {
			return s
		}
		return farmd.StateIdle
	}
	if p, ok := m.targetPrinter(); ok {
		if !p.Online {
			return "offline"
		}
		if p.State != "" {
			return p.State
		}
	}
	return farmd.StateIdle
}

// renderHeader renders the top status line: logo, target printer, state
// badge, nozzle, loaded tray, and data age.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	logo := bg.Render(" gantry ", styles.Logo)

	if m.connecting() {
		line := logo + bg.Spaces(2) + bg.Render("connecting to farmd...", styles.MutedText)
		return bg.FillLine(line, m.width)
	}

	if m.snapshot.IsOffline() {
		parts := []string{
			logo,
			styles.StatusStyle("offline").Render("offline"),
			bg.Render(classifyConnectionError(m.snapshot.LastError), styles.DangerText),
			bg.Render(formatTimestamp(m.snapshot.LastUpdated), styles.FaintText),
		}
		return bg.FillLine(bg.Join(parts, "  "), m.width)
	}

	parts := []string{logo}

	if p, ok := m.targetPrinter(); ok {
		parts = append(parts, bg.Render(truncate(p.Name, 24), styles.Text))
	} else {
		parts = append(parts, bg.Render("no printer selected", styles.MutedText))
	}

	state := m.printerState()
	parts = append(parts, styles.StatusStyle(state).Render(state))

	if m.snapshot.HasStatus && m.snapshot.Status.Online {
		st := m.snapshot.Status
		if st.DualNozzle() {
			parts = append(parts, bg.Render("nozzle:"+nozzleName(st.ActiveExtruder), styles.InfoText))
		}
		parts = append(parts, bg.Render("tray:"+loadedTrayLabel(st), styles.AccentText))
	}

	if m.versionWarning != "" {
		parts = append(parts, bg.Render("! "+truncate(m.versionWarning, 48), styles.WarningText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(formatTimestamp(m.snapshot.LastUpdated), styles.FaintText))
	}

	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

// renderCommandBar renders the second header line: view tabs plus the key
// hints for whichever view is active.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var hints []string
	switch m.currentView {
	case ViewFleet:
		hints = []string{"j/k move", "enter select", "c control", "a filament"}
	case ViewControl:
		hints = []string{"hjkl jog", "u/d Z", "s step", "H home", "e/r extrude", "b level", "n nozzle"}
	case ViewAMS:
		hints = []string{"j/k slot", "L load", "U unload", "R re-scan"}
	}
	hints = append(hints, "? help", "Q quit")

	line := m.renderViewTabs(bg, styles) + bg.Spaces(2) + bg.Render(strings.Join(hints, " · "), styles.FaintText)
	return bg.FillLine(line, m.width)
}

// renderViewTabs renders the fleet/control/filament tab strip.
func (m Model) renderViewTabs(bg BgStyle, styles Styles) string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewFleet, "fleet"},
		{ViewControl, "control"},
		{ViewAMS, "filament"},
	}

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == m.currentView {
			parts = append(parts, styles.Selected.Render(" "+t.label+" "))
		} else {
			parts = append(parts, bg.Render(t.label, styles.MutedText))
		}
	}
	return bg.Join(parts, " ")
}

// nozzleName renders an extruder index as the operator-facing side name.
func nozzleName(extruder int) string {
	if extruder == ams.ExtruderLeft {
		return "left"
	}
	return "right"
}

// loadedTrayLabel renders the trayNow field as a slot label. A tray id that
// no listed unit owns still renders, as the raw id.
func loadedTrayLabel(st farmd.PrinterStatus) string {
	switch {
	case st.TrayNow == ams.TrayExternal:
		return "external"
	case ams.ValidTray(st.TrayNow):
		if u, slot, ok := ams.Locate(st.Units, st.TrayNow); ok {
			return ams.SlotLabel(u.ID, slot)
		}
		return fmt.Sprintf("#%d", st.TrayNow)
	}
	return "none"
}

// classifyConnectionError maps a poll error to a short operator-facing
// description.
func classifyConnectionError(err error) string {
	if err == nil {
		return "no recent data"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "farmd not responding (connection refused)"
	case strings.Contains(msg, "no such host"):
		return "cannot resolve farmd host"
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return "farmd request timed out"
	default:
		return truncate(msg, 60)
	}
}

// formatTimestamp renders a refresh time with a relative age suffix.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	age := time.Since(t)
	switch {
	case age < 2*time.Second:
		return t.Format("15:04:05") + " (now)"
	case age < time.Minute:
		return fmt.Sprintf("%s (%ds ago)", t.Format("15:04:05"), int(age.Seconds()))
	default:
		return fmt.Sprintf("%s (%dm ago)", t.Format("15:04:05"), int(age.Minutes()))
	}
}
