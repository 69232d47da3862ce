package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// View switching
	ViewFleet   key.Binding
	ViewControl key.Binding
	ViewAMS     key.Binding

	// Fleet
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Control
	JogXNeg     key.Binding
	JogXPos     key.Binding
	JogYPos     key.Binding
	JogYNeg     key.Binding
	JogZUp      key.Binding
	JogZDown    key.Binding
	CycleStep   key.Binding
	HomeXY      key.Binding
	Extrude     key.Binding
	Retract     key.Binding
	CycleLength key.Binding
	BedLevel    key.Binding
	Nozzle      key.Binding

	// AMS
	SlotPrev key.Binding
	SlotNext key.Binding
	Load     key.Binding
	Unload   key.Binding
	Refresh  key.Binding

	// Confirmation modal
	Approve key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "Q"),
			key.WithHelp("Q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to fleet"),
		),

		// View switching
		ViewFleet: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Fleet view"),
		),
		ViewControl: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Control view"),
		),
		ViewAMS: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Filament view"),
		),

		// Fleet
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),

		// Control
		JogXNeg: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Jog X-"),
		),
		JogXPos: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Jog X+"),
		),
		JogYPos: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Jog Y+"),
		),
		JogYNeg: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Jog Y-"),
		),
		JogZUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Jog Z up"),
		),
		JogZDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Jog Z down"),
		),
		CycleStep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle jog step"),
		),
		HomeXY: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Home XY"),
		),
		Extrude: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Extrude"),
		),
		Retract: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retract"),
		),
		CycleLength: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Cycle extrude length"),
		),
		BedLevel: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Bed level"),
		),
		Nozzle: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Switch nozzle"),
		),

		// AMS
		SlotPrev: key.NewBinding(
			key.WithKeys("k", "up", "h", "left"),
			key.WithHelp("k/up", "Previous slot"),
		),
		SlotNext: key.NewBinding(
			key.WithKeys("j", "down", "l", "right"),
			key.WithHelp("j/down", "Next slot"),
		),
		Load: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Load selected tray"),
		),
		Unload: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "Unload filament"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Re-scan tray RFID"),
		),

		// Confirmation modal
		Approve: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Approve"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Tab, k.ViewFleet, k.ViewControl, k.ViewAMS, k.Escape},
		{k.Up, k.Down, k.Select},
		// Control
		{k.JogXNeg, k.JogXPos, k.JogYPos, k.JogYNeg, k.JogZUp, k.JogZDown},
		{k.CycleStep, k.HomeXY, k.Extrude, k.Retract, k.CycleLength, k.BedLevel, k.Nozzle},
		// AMS
		{k.SlotPrev, k.SlotNext, k.Load, k.Unload, k.Refresh},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
