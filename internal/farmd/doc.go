// Package farmd provides the client for the farmd fleet controller API.
//
// # Overview
//
// farmd is the daemon that owns the printers: it proxies device telemetry
// and executes motion and filament commands. This package is gantry's only
// way to talk to it. It covers the HTTP JSON endpoints, the websocket
// status feed, and the confirmation protocol hazardous commands use.
//
// # Architecture
//
//   - client.go: HTTP client, request plumbing, command envelope decoding
//   - types.go: wire types for printers and status snapshots
//   - confirm.go: the confirmation-required protocol step
//   - version.go: API version compatibility check
//   - stream.go: websocket status subscription with reconnect
//
// # Endpoints
//
//	GET  /api/version                     controller name and version
//	GET  /api/printers                    fleet listing
//	GET  /api/printers/{id}/status        full status snapshot
//	POST /api/printers/{id}/move          single-axis jog
//	POST /api/printers/{id}/home          home an axis set
//	POST /api/printers/{id}/gcode         raw G-code script
//	POST /api/printers/{id}/extruder      switch active extruder
//	POST /api/printers/{id}/ams/load      feed a tray
//	POST /api/printers/{id}/ams/unload    retract filament
//	POST /api/printers/{id}/ams/refresh   RFID re-scan of one slot
//	GET  /api/printers/{id}/ws            websocket status feed
//
// # Command envelope
//
// Every mutation returns the same envelope:
//
//	{"ok": true}
//	{"ok": false, "error": "axis jammed"}
//	{"ok": false, "confirm": {"token": "...", "warning": "..."}}
//
// A present confirm block decodes into *ConfirmationError: the controller
// parked the command and wants explicit approval. Re-issuing the identical
// command with the token attached executes it as pre-approved. This is a
// protocol step, not a failure; use AsConfirmation to tell the two apart.
// Any other non-ok response is a plain command failure, surfaced inline by
// the UI and never fatal.
//
// # Request handling
//
// All requests use context for cancellation, set Accept and User-Agent
// headers, and run under a 5 second timeout. Errors are wrapped with
// fmt.Errorf context:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/printers returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// # Status feed
//
// Stream dials the /ws endpoint (http swapped to ws) and decodes one
// PrinterStatus per frame. It pings idle connections and reconnects with
// exponential backoff capped at 30 seconds. The feed is an optimization:
// the poller keeps running either way, and both write into the same store.
//
// # Version gate
//
// CheckVersion compares the controller's reported version against the
// supported constraint. The result is a warning string for the UI header;
// incompatibility never blocks commands.
//
// # Network assumptions
//
// farmd is expected on localhost or a trusted LAN: no authentication, HTTP
// without TLS, 5 second timeouts. The client is safe for concurrent use.
package farmd
