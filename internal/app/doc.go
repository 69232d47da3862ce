// Package app provides the orchestration layer for the gantry application.
//
// # Overview
//
// This package wires together configuration, discovery, polling, the status
// stream, state management, and the UI to create the complete gantry TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load gantry configuration from ~/.config/gantry/config.toml
//  2. Apply command-line overrides (printer, poll interval, mDNS discovery)
//     and resolve the farmd address: -discover browses and fails hard,
//     an unset api_bind browses briefly and falls back to the default
//  3. Initialize the HTTP client for the farmd API
//  4. Probe the daemon version and keep any compatibility warning
//  5. Create the shared state.Store and seed the target printer
//  6. Launch the background poller and, when enabled, the status stream
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read gantry config
//	       ├─────> discover.Find()    mDNS lookup (flag or fallback)
//	       ├─────> farmd.NewClient()  Create HTTP client
//	       ├─────> checkVersion()     Compatibility probe
//	       ├─────> state.Store{}      Shared state container
//	       ├─────> StartPoller()      Launch background polls
//	       ├─────> StartStreams()     Launch websocket feed
//	       └─────> ui.Run()           Start TUI (blocks)
//
//	Background loops:
//	┌─────────────────────────────────────────────┐
//	│ Poller:  FetchPrinters + FetchStatus        │
//	│          └─> store.Update()                 │
//	│ Stream:  pushed frames for target printer   │
//	│          └─> store.ApplyStatus()            │
//	│              └─> UI reads store.Snapshot()  │
//	└─────────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs continuously at the configured interval (default: 2
// seconds). While farmd is unreachable the interval doubles per consecutive
// failure, capped at 30 seconds, so a stopped daemon is not hammered. A
// successful poll snaps back to the base cadence.
//
// The target printer lives in the store. The poller adopts the first listed
// printer when nothing is configured; the UI rewrites the target when the
// operator switches printers, and the stream supervisor follows it,
// replacing the websocket connection.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - farmd client initialization failure
//   - mDNS discovery requested but no daemon found
//
// Recoverable errors (logged, loops continue):
//   - Periodic fetch failures and network timeouts
//   - Version probe failure (the UI shows the offline banner instead)
//   - Stream disconnects (reconnected with backoff)
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("gantry failed: %v", err)
//	}
package app
