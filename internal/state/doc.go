// Package state provides thread-safe state management for the gantry
// application.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// fleet list and per-printer status between the background poller, the
// optional status stream, and the UI. It acts as the coordination point
// where network updates meet UI rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern with two producers:
//
//	Producers:                         Consumer (UI):
//	┌────────────────────┐            ┌────────────────────┐
//	│ Poller             │            │                    │
//	│  FetchPrinters()   │            │                    │
//	│  FetchStatus()     │            │                    │
//	│      ↓             │            │                    │
//	│  store.Update() ───┼───────────→│ store.Snapshot()   │
//	│                    │  (mutex)   │      ↓             │
//	│ Stream             │            │  fold into model   │
//	│  status frame      │            │  render UI         │
//	│      ↓             │            │                    │
//	│  store.ApplyStatus │            │                    │
//	└────────────────────┘            └────────────────────┘
//
// The Store mediates between these independent goroutines, ensuring:
//   - Atomic updates (no partial/torn reads)
//   - No data races (mutex-protected access)
//   - Immutable snapshots (defensive copying)
//
// # Update Semantics
//
// The Update method has special error handling behavior:
//
//	// Success case: Replace entire snapshot
//	store.Update(printers, status, nil)
//	→ snapshot.Printers = printers
//	→ snapshot.Status = status
//	→ snapshot.LastError = nil
//	→ snapshot.LastUpdated = now
//
//	// Error case: Keep old data, record error
//	store.Update(nil, nil, err)
//	→ snapshot.Printers = <unchanged>
//	→ snapshot.Status = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.LastUpdated = now
//
// This ensures the UI always has the most recent successful data to
// display, while also being informed of polling failures. ApplyStatus is
// the stream's narrower entry point: it replaces only the status, keeps the
// fleet list, and resets the failure counter, since a pushed frame proves
// the daemon reachable.
//
// # Defensive Copying
//
// Both Update and Snapshot perform deep copies to prevent shared state.
// Status payloads carry nested slices and pointers (tray colors, spool
// ids, humidity readings), all of which are cloned so a snapshot held by
// the UI can never alias data the next poll overwrites.
//
// # Target Printer
//
// The Store also carries the id of the printer the poller should fetch
// status for. The UI writes it when the operator switches printers; the
// poller reads it at the top of every cycle. Keeping it here avoids a
// second coordination channel between the two.
//
// # Offline Detection
//
// A single failed poll is usually a blip; two in a row means the daemon is
// actually unreachable. IsOffline() applies that threshold so the UI can
// switch to an offline banner without flapping on transient errors.
//
// # Usage Example
//
//	// Poller goroutine:
//	store := &state.Store{}
//	for {
//		printers, err1 := client.FetchPrinters(ctx)
//		status, err2 := client.FetchStatus(ctx, store.Target())
//		store.Update(printers, status, errors.Join(err1, err2))
//		time.Sleep(interval)
//	}
//
//	// UI goroutine:
//	ticker := time.NewTicker(time.Second)
//	for range ticker.C {
//		snap := store.Snapshot()
//		render(snap)
//	}
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Channels (mutex is simpler for few writers/multiple readers)
//   - Incremental updates (full snapshot replacement is easier)
//   - Versioning/history (only latest state matters)
//   - Pub/sub (UI polls snapshots on its own schedule)
//
// The design prioritizes simplicity and correctness over maximum
// performance, which is appropriate for gantry's scale (one daemon, a
// handful of printers, second-scale update frequency).
package state
