package ams

// OpKind identifies the direction of a filament operation.
type OpKind int

const (
	OpNone OpKind = iota
	OpLoad
	OpUnload
)

// String returns the lowercase name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpLoad:
		return "load"
	case OpUnload:
		return "unload"
	default:
		return "none"
	}
}

// Tracker reconciles user-initiated filament operations against the stage
// telemetry one printer reports. It owns the selected tray, the
// load-triggered flag, and the optimistic operation marker for a single
// panel; every panel gets its own instance and the state resets with it.
//
// All methods must be called from the UI update loop. The tracker has no
// locking of its own.
type Tracker struct {
	selected      int // global tray id, -1 when nothing selected
	loadTriggered bool

	userOp    OpKind // optimistic marker, dropped once the device reports
	deviceOp  OpKind // kind derived from stage telemetry
	lastStage int    // previous observed stage, for edge detection
	synced    bool   // one-shot seed from trayNow happened
}

// NewTracker returns a tracker with nothing selected.
func NewTracker() *Tracker {
	return &Tracker{selected: -1, lastStage: StageNone}
}

// Observe folds one status snapshot into the tracker. Device telemetry is
// authoritative: once an active stage is reported the optimistic marker is
// dropped and the displayed kind follows the stage. The return to idle is
// edge-triggered, so a stream that never reports an active stage cannot
// dismiss a just-started operation.
//
// Only snapshots from a reachable printer should be folded; a zero-value
// placeholder status would seed the selection from tray 0.
func (t *Tracker) Observe(stage, trayNow int) {
	t.seedOnce(trayNow)

	if ActiveStage(stage) {
		t.deviceOp = t.kindForStage(stage)
		t.userOp = OpNone
	} else if ActiveStage(t.lastStage) && stage == StageNone {
		t.settle()
	}
	t.lastStage = stage
}

// seedOnce adopts the loaded tray from the first status snapshot ever seen.
// Sentinel trayNow values never seed, and a later reconnect does not re-run
// the seed: after the first snapshot, selection belongs to the user.
func (t *Tracker) seedOnce(trayNow int) {
	if t.synced {
		return
	}
	t.synced = true
	if ValidTray(trayNow) {
		t.selected = trayNow
		t.loadTriggered = true
	}
}

// kindForStage derives the displayed direction from a stage code. Heating
// and changing do not reveal direction, so they keep whatever operation was
// already showing and default to load.
func (t *Tracker) kindForStage(stage int) OpKind {
	switch stage {
	case StageUnloadingFilament:
		return OpUnload
	case StageLoadingFilament:
		return OpLoad
	}
	if t.deviceOp != OpNone {
		return t.deviceOp
	}
	if t.userOp != OpNone {
		return t.userOp
	}
	return OpLoad
}

// settle ends the displayed operation and applies its effect: a finished
// load arms the triggered flag, a finished unload clears it.
func (t *Tracker) settle() {
	switch t.deviceOp {
	case OpLoad:
		t.loadTriggered = true
	case OpUnload:
		t.loadTriggered = false
	}
	t.deviceOp = OpNone
	t.userOp = OpNone
}

// Select marks a tray as the load target. Selection and the triggered flag
// change together: re-selecting re-arms Load.
func (t *Tracker) Select(trayID int) {
	t.selected = trayID
	t.loadTriggered = false
}

// BeginLoad marks a user-initiated load optimistically, before the command
// round trip returns, so the progress card appears immediately. It reports
// false when no tray is selected, an operation is already showing, or the
// selection was already loaded.
func (t *Tracker) BeginLoad() bool {
	if t.selected < 0 || t.InFlight() || t.loadTriggered {
		return false
	}
	t.userOp = OpLoad
	return true
}

// BeginUnload marks a user-initiated unload optimistically. It reports
// false when an operation is already showing.
func (t *Tracker) BeginUnload() bool {
	if t.InFlight() {
		return false
	}
	t.userOp = OpUnload
	return true
}

// AckLoad records a successful load acknowledgment. Load stays disabled
// until an unload or a new selection re-arms it. The optimistic marker is
// kept: only device telemetry ends the displayed operation.
func (t *Tracker) AckLoad() {
	t.loadTriggered = true
}

// AckUnload records a successful unload acknowledgment, re-arming Load.
func (t *Tracker) AckUnload() {
	t.loadTriggered = false
}

// Fail drops the optimistic marker after a rejected command. Everything
// else stays as it was; retry is an explicit user action.
func (t *Tracker) Fail() {
	t.userOp = OpNone
}

// Selected returns the chosen global tray id, or -1.
func (t *Tracker) Selected() int {
	return t.selected
}

// LoadTriggered reports whether a load completed for the current selection.
func (t *Tracker) LoadTriggered() bool {
	return t.loadTriggered
}

// InFlight reports whether an operation is showing, optimistic or
// device-reported. While true the progress card renders and the filament
// controls are disabled; jog controls are unaffected.
//
// If the device never reports a stage after a command was accepted, the
// optimistic card persists until telemetry says otherwise. There is no
// timeout.
func (t *Tracker) InFlight() bool {
	return t.userOp != OpNone || t.deviceOp != OpNone
}

// Kind returns the operation direction currently displayed. The
// device-derived kind wins over the optimistic one.
func (t *Tracker) Kind() OpKind {
	if t.deviceOp != OpNone {
		return t.deviceOp
	}
	return t.userOp
}

// Stage returns the last observed device stage code.
func (t *Tracker) Stage() int {
	return t.lastStage
}

// CanLoad reports whether the Load control should be enabled.
func (t *Tracker) CanLoad() bool {
	return t.selected >= 0 && !t.loadTriggered && !t.InFlight()
}

// CanUnload reports whether the Unload control should be enabled.
func (t *Tracker) CanUnload() bool {
	return !t.InFlight()
}
