package control

import (
	"context"

	"github.com/printbed/gantry/internal/farmd"
)

// Gate holds at most one command parked on a confirmation request. The UI
// update loop owns the gate and mutates it single-threaded; the re-issued
// network call runs wherever the caller runs it, after the gate is already
// clear.
type Gate struct {
	cmd     Command
	confirm farmd.Confirmation
	armed   bool
}

// Park stores a command the controller answered with a confirmation
// request. It reports false when another confirmation is already waiting;
// callers keep the new command's control disabled in that case rather than
// queueing behind the modal.
func (g *Gate) Park(cmd Command, c farmd.Confirmation) bool {
	if g.armed {
		return false
	}
	g.cmd = cmd
	g.confirm = c
	g.armed = true
	return true
}

// Pending returns the parked command's label and confirmation for display.
func (g *Gate) Pending() (label string, c farmd.Confirmation, ok bool) {
	if !g.armed {
		return "", farmd.Confirmation{}, false
	}
	return g.cmd.Label, g.confirm, true
}

// Approve releases the parked command bound to its token. The returned
// invoke function re-issues the identical command as pre-approved. The gate
// clears before invoke runs, so a failed re-issue surfaces as an ordinary
// command error rather than a stuck modal.
func (g *Gate) Approve() (invoke func(ctx context.Context) error, ok bool) {
	if !g.armed {
		return nil, false
	}
	cmd := g.cmd
	token := g.confirm.Token
	g.clear()
	return func(ctx context.Context) error {
		return cmd.Do(ctx, token)
	}, true
}

// Cancel drops the parked command without issuing anything.
func (g *Gate) Cancel() {
	g.clear()
}

func (g *Gate) clear() {
	g.cmd = Command{}
	g.confirm = farmd.Confirmation{}
	g.armed = false
}
