// Package ui implements the terminal interface for gantry using the
// Bubble Tea framework.
//
// # Architecture
//
// The package follows the Elm architecture: a single Model holds all UI
// state, Update folds messages into it, and View renders the whole screen
// from scratch. Network calls never happen inside Update; they run as
// tea.Cmd functions and come back as messages.
//
// # Views
//
// Three views share the model and are switched with single keys:
//
//	fleet     printer list; enter retargets every layer at one printer
//	control   jog pad, extruder moves, homing, bed level, nozzle switch
//	filament  unit cards, tray selection, load/unload, progress card
//
// # Data flow
//
//	    ┌─────────┐  tick   ┌─────────────┐        ┌──────────────────┐
//	    │  Store   │───────▶│ snapshotMsg │───────▶│ Tracker.Observe  │
//	    └─────────┘         └─────────────┘        │ ams.Route        │
//	                                               └──────────────────┘
//	    key press ──▶ Command.Do (goroutine) ──▶ cmdResultMsg ──▶ feed
//
// The poller and the websocket stream write to the state store from their
// own goroutines; the UI only ever reads immutable snapshots of it on a
// timer. Snapshots from an unreachable printer are rendered but never
// folded into the operation tracker.
//
// One device command is in flight at a time: the control view refuses
// further command keys until the result message lands. Filament operations
// have their own serialization through the tracker, and jog keys stay live
// during a load or unload.
//
// # Confirmation flow
//
// A hazardous command comes back from farmd as a confirmation request
// instead of a result. The command is parked in a gate, a modal shows the
// daemon's warning, and approval re-issues the identical command carrying
// the confirmation token. Cancelling issues nothing. One confirmation can
// be pending at a time; the modal swallows all other input while it is up.
package ui
