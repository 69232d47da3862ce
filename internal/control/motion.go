package control

import (
	"context"
	"fmt"
	"time"

	"github.com/printbed/gantry/internal/farmd"
)

// Feed rates in mm/min, fixed per axis class. Operators pick distances, not
// speeds.
const (
	FeedRateXY      = 3000
	FeedRateZ       = 1000
	FeedRateExtrude = 300
)

// homeAxes is the axis set Home always requests. Z stays put: dropping the
// nozzle onto an unknown bed is the kind of move the confirmation gate
// exists for, not a default.
const homeAxes = "XY"

// ExtruderSettle is how long to wait before refreshing status after an
// extruder switch. The device keeps reporting the old extruder for a
// moment, so an immediate refresh would read back stale state.
const ExtruderSettle = 2 * time.Second

// Command is one gated device command. Do issues it, with an empty token on
// first submission; the gate re-invokes the same Do with the confirmation
// token once the user approves. Label names the command in the event feed
// and the confirmation modal.
type Command struct {
	Label string
	Do    func(ctx context.Context, token string) error
}

// Commander builds commands for one printer. It owns the feed-rate policy
// and the G-code the panel is allowed to emit.
type Commander struct {
	client    *farmd.Client
	printerID string
}

// NewCommander returns a Commander bound to one printer.
func NewCommander(client *farmd.Client, printerID string) *Commander {
	return &Commander{client: client, printerID: printerID}
}

// Move jogs one axis by a signed distance in millimeters. Axis "Z" moves at
// the slow feed rate, anything else at the XY rate.
func (c *Commander) Move(axis string, mm float64) Command {
	feed := FeedRateXY
	if axis == "Z" {
		feed = FeedRateZ
	}
	return Command{
		Label: fmt.Sprintf("move %s %+.1fmm", axis, mm),
		Do: func(ctx context.Context, token string) error {
			return c.client.MoveAxis(ctx, c.printerID, axis, mm, feed, token)
		},
	}
}

// Home homes the X and Y axes.
func (c *Commander) Home() Command {
	return Command{
		Label: "home " + homeAxes,
		Do: func(ctx context.Context, token string) error {
			return c.client.HomeAxes(ctx, c.printerID, homeAxes, token)
		},
	}
}

// ExtrudeScript renders the script for a single extrude or retract of the
// given signed length. The controller stays in whatever positioning mode it
// was last told, so the relative move is bracketed with G91/G90 to restore
// absolute mode afterward.
func ExtrudeScript(mm int) string {
	return fmt.Sprintf("G91\nG1 E%d F%d\nG90", mm, FeedRateExtrude)
}

// Extrude feeds (positive) or retracts (negative) filament.
func (c *Commander) Extrude(mm int) Command {
	verb := "extrude"
	length := mm
	if mm < 0 {
		verb = "retract"
		length = -mm
	}
	return Command{
		Label: fmt.Sprintf("%s %dmm", verb, length),
		Do: func(ctx context.Context, token string) error {
			return c.client.SendGcode(ctx, c.printerID, ExtrudeScript(mm), token)
		},
	}
}

// BedLevel runs the bed mesh calibration.
func (c *Commander) BedLevel() Command {
	return Command{
		Label: "bed level",
		Do: func(ctx context.Context, token string) error {
			return c.client.SendGcode(ctx, c.printerID, "G29", token)
		},
	}
}

// SelectExtruder switches the active extruder. Not gated: the controller
// either switches or refuses. Callers schedule a status refresh after
// ExtruderSettle instead of reading back immediately.
func (c *Commander) SelectExtruder(ctx context.Context, extruder int) error {
	return c.client.SelectExtruder(ctx, c.printerID, extruder)
}

// LoadFilament asks the AMS to feed a tray into the given extruder. A nil
// extruder lets the controller route by the tray's unit assignment.
func (c *Commander) LoadFilament(ctx context.Context, tray int, extruder *int) error {
	return c.client.LoadFilament(ctx, c.printerID, tray, extruder)
}

// UnloadFilament retracts the currently fed filament.
func (c *Commander) UnloadFilament(ctx context.Context) error {
	return c.client.UnloadFilament(ctx, c.printerID)
}

// RefreshTray triggers an RFID re-scan of one slot.
func (c *Commander) RefreshTray(ctx context.Context, unit, slot int) error {
	return c.client.RefreshTray(ctx, c.printerID, unit, slot)
}
