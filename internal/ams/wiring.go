package ams

// fallbackColor stands in for spools that report no color.
const fallbackColor = "#808080"

// Wiring is the derived highlight state for the unit-to-nozzle path
// diagram. It is recomputed from the newest snapshot on every render and
// holds no truth of its own.
type Wiring struct {
	// ActiveTray is the global tray id whose path is lit, -1 when none.
	ActiveTray int
	// External is set when the device reports the external spool holder.
	External bool
	// Color is the hex color to draw the lit path with.
	Color string
	// Extruder is the nozzle the lit path feeds.
	Extruder int
	// Guessed mirrors Routing.Heuristic so the diagram can mark the
	// assignment as a positional guess.
	Guessed bool
}

// Wire projects the path highlight from routing, operation state, and the
// reported tray. A valid trayNow wins outright; otherwise a showing
// operation lights the selected tray so the path appears before the device
// confirms. Unknown colors fall back to gray, and a tray that no known unit
// owns leaves the diagram unlit.
func Wire(units []Unit, r Routing, selected int, opShowing bool, trayNow int) Wiring {
	w := Wiring{ActiveTray: -1, Extruder: ExtruderRight, Guessed: r.Heuristic}

	tray := -1
	switch {
	case ValidTray(trayNow):
		tray = trayNow
	case trayNow == TrayExternal:
		w.External = true
		w.Color = fallbackColor
		return w
	case opShowing && selected >= 0:
		tray = selected
	}
	if tray < 0 {
		return w
	}

	unit, slot, ok := Locate(units, tray)
	if !ok {
		return w
	}

	w.ActiveTray = tray
	w.Color = fallbackColor
	for _, t := range unit.Trays {
		if t.Slot != slot {
			continue
		}
		if t.Color != nil && *t.Color != "" {
			w.Color = *t.Color
		}
		break
	}
	if ext, ok := r.ExtruderFor(unit.ID); ok {
		w.Extruder = ext
	}
	return w
}

// SlotHighlight classifies one slot for rendering.
type SlotHighlight int

const (
	SlotIdle     SlotHighlight = iota
	SlotSelected               // chosen as the load target
	SlotActive                 // currently feeding a nozzle
)

// Highlight classifies a slot against the lit tray and the selection. The
// active path outranks plain selection when both land on the same slot.
func Highlight(unitID, slot, selected, activeTray int) SlotHighlight {
	id := GlobalTrayID(unitID, slot)
	switch {
	case id == activeTray:
		return SlotActive
	case id == selected:
		return SlotSelected
	}
	return SlotIdle
}
