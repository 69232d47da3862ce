// Package ams models the Automatic Material System attached to farm
// printers: slot addressing, unit-to-nozzle routing, and the filament
// operation state machine.
//
// # Overview
//
// An AMS is a multi-slot filament feeder. A printer can carry several, and
// dual-nozzle machines split them between the left and right extruders.
// This package owns everything the panel needs to reason about them:
//
//   - address.go: pure mapping between (unit id, slot) and global tray ids
//   - router.go: partitioning units between nozzles
//   - ops.go: reconciling user load/unload actions against device telemetry
//   - progress.go: fixed step tables for the operation progress card
//   - wiring.go: derived highlight state for the path diagram
//
// # Addressing
//
// Unit ids 0-127 are standard four-slot units; ids from 128 up are
// high-temperature (HT) units with at most two slots. Global tray ids use a
// fixed stride of four regardless of variant:
//
//	GlobalTrayID(unit, slot) = unit*4 + slot
//
// HT blocks are therefore sparse: unit 128 owns ids 512 and 513, and ids
// 514/515 address nothing. Locate bounds its match by SlotCount so the
// sparse tail never resolves. The stride is a device-side convention and
// must not be "fixed".
//
// Labels follow the printed markings: "A1".."D4" for standard units,
// "HT-A"/"HT-B" for the first HT unit, "HT2-A" style for later instances.
//
// # Routing
//
// The device may report an authoritative unit-to-extruder map. When it
// does, Route partitions strictly by lookup and drops unmapped units from
// both sides. When the map is empty, Route falls back to snapshot-order
// parity (even index right, odd index left) and flags the result Heuristic;
// the parity guess is positional and can flip if unit ordering changes
// between snapshots, so the UI surfaces it as degraded instead of
// presenting it as truth.
//
// # Operation tracking
//
// Tracker implements the optimistic-update-then-reconcile pattern. A user
// Load or Unload shows the progress card immediately, before the command
// round trip returns. Once the device reports an active stage (heating,
// changing, loading, unloading), telemetry wins: the optimistic marker is
// dropped and the displayed direction follows the stage codes. The card
// hides only on the edge where an active stage returns to StageNone, never
// because a snapshot simply lacked an active stage.
//
// The first snapshot ever observed seeds the selection from trayNow when it
// names a real slot (sentinels 254/255 never seed). The seed runs exactly
// once per tracker; after that the user owns the selection.
//
// # Concurrency
//
// Everything here is either a pure function or a plain struct mutated from
// the UI update loop. Snapshots arrive as values cloned by the state store,
// so nothing in this package locks.
//
// # Usage
//
//	tracker := ams.NewTracker()
//	// per status snapshot, on the update loop:
//	tracker.Observe(status.Stage, status.TrayNow)
//	routing := ams.Route(status.Units, status.ExtruderMap, status.Extruders)
//	wiring := ams.Wire(status.Units, routing, tracker.Selected(), tracker.InFlight(), status.TrayNow)
//
// All three results are recomputed every render; none of them cache.
package ams
