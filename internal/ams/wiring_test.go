package ams

import "testing"

func strptr(s string) *string { return &s }

func wiringUnits() []Unit {
	return []Unit{
		{ID: 0, Trays: []Tray{
			{Slot: 0, Type: "PLA", Color: strptr("#ff0000")},
			{Slot: 1, Type: "PETG", Color: strptr("#00ff00")},
			{Slot: 2, Type: "NONE"},
			{Slot: 3, Type: "ABS", Color: nil},
		}},
		{ID: 1, Trays: []Tray{
			{Slot: 0, Type: "TPU", Color: strptr("#0000ff")},
		}},
	}
}

func TestWire_TrayNowWinsOverSelection(t *testing.T) {
	units := wiringUnits()
	r := Route(units, map[int]int{0: ExtruderRight, 1: ExtruderLeft}, 2)

	w := Wire(units, r, 1, true, 4)

	if w.ActiveTray != 4 {
		t.Fatalf("ActiveTray = %d, want reported tray 4", w.ActiveTray)
	}
	if w.Color != "#0000ff" {
		t.Fatalf("Color = %q, want %q", w.Color, "#0000ff")
	}
	if w.Extruder != ExtruderLeft {
		t.Fatalf("Extruder = %d, want left", w.Extruder)
	}
}

func TestWire_OperationLightsSelectionBeforeDeviceConfirms(t *testing.T) {
	units := wiringUnits()
	r := Route(units, map[int]int{0: ExtruderRight, 1: ExtruderLeft}, 2)

	w := Wire(units, r, 1, true, TrayNone)

	if w.ActiveTray != 1 {
		t.Fatalf("ActiveTray = %d, want selected tray 1", w.ActiveTray)
	}
	if w.Color != "#00ff00" {
		t.Fatalf("Color = %q, want %q", w.Color, "#00ff00")
	}
	if w.Extruder != ExtruderRight {
		t.Fatalf("Extruder = %d, want right", w.Extruder)
	}
}

func TestWire_IdleSelectionStaysUnlit(t *testing.T) {
	units := wiringUnits()
	r := Route(units, nil, 1)

	w := Wire(units, r, 1, false, TrayNone)

	if w.ActiveTray != -1 {
		t.Fatalf("ActiveTray = %d, want -1 with no operation showing", w.ActiveTray)
	}
}

func TestWire_MissingColorFallsBackToGray(t *testing.T) {
	units := wiringUnits()
	r := Route(units, nil, 1)

	w := Wire(units, r, -1, false, 3)

	if w.ActiveTray != 3 {
		t.Fatalf("ActiveTray = %d, want 3", w.ActiveTray)
	}
	if w.Color != "#808080" {
		t.Fatalf("Color = %q, want gray fallback", w.Color)
	}
}

func TestWire_ExternalSpool(t *testing.T) {
	units := wiringUnits()
	r := Route(units, nil, 1)

	w := Wire(units, r, -1, false, TrayExternal)

	if !w.External {
		t.Fatal("External = false, want true for trayNow 254")
	}
	if w.ActiveTray != -1 {
		t.Fatalf("ActiveTray = %d, want -1 for external spool", w.ActiveTray)
	}
}

func TestWire_UnknownTrayLeavesDiagramUnlit(t *testing.T) {
	units := wiringUnits()
	r := Route(units, nil, 1)

	// Tray 40 belongs to unit 10, which this printer does not have.
	w := Wire(units, r, -1, true, 40)

	if w.ActiveTray != -1 {
		t.Fatalf("ActiveTray = %d, want -1 for unknown unit", w.ActiveTray)
	}
}

func TestWire_HeuristicRoutingMarksGuess(t *testing.T) {
	units := wiringUnits()
	r := Route(units, nil, 2)

	w := Wire(units, r, -1, false, 0)

	if !w.Guessed {
		t.Fatal("Guessed = false, want true under parity fallback")
	}
}

func TestHighlight(t *testing.T) {
	// Tray 1 of unit 0 is both selected and the live tray; active wins.
	if got := Highlight(0, 1, 1, 1); got != SlotActive {
		t.Fatalf("Highlight = %v, want active to outrank selected", got)
	}
	if got := Highlight(0, 1, 1, -1); got != SlotSelected {
		t.Fatalf("Highlight = %v, want selected", got)
	}
	if got := Highlight(0, 2, 1, -1); got != SlotIdle {
		t.Fatalf("Highlight = %v, want idle", got)
	}
}
