// Package control builds the device commands the panels are allowed to
// issue and gates the hazardous ones behind operator confirmation.
//
// # Commands
//
// A Command pairs a display label with a Do closure that issues the call.
// Do takes a confirmation token: empty on first submission, and the
// controller's token on re-issue after approval. Commander is the factory;
// it bakes in the feed-rate policy (3000 mm/min for X and Y, 1000 for Z,
// 300 for extrusion) and the only G-code scripts the panel emits, the
// G91/G1/G90 extrude bracket and the G29 bed level.
//
// # Confirmation flow
//
// The controller refuses hazardous commands issued without a token and
// answers with a one-time token plus a warning. The caller parks the
// command in a Gate, shows the warning, and either approves or cancels:
//
//	err := cmd.Do(ctx, "")
//	if ce, ok := farmd.AsConfirmation(err); ok {
//		gate.Park(cmd, ce.Confirmation)
//		// ...show modal; on approve:
//		invoke, _ := gate.Approve()
//		err = invoke(ctx)
//	}
//
// The gate holds one command at a time. Approving re-issues the identical
// command with the token; cancelling issues nothing. Tokens are single-use
// and expire controller-side, so a stale approval fails like any other
// rejected command and the operator simply tries again.
package control
