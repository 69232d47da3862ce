package farmd

import "github.com/printbed/gantry/internal/ams"

// Printer describes one fleet member as listed by /api/printers.
type Printer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Model  string `json:"model"`
	Online bool   `json:"online"`
	State  string `json:"state"`
}

// Coarse run states reported in PrinterStatus.State. Anything else is
// displayed verbatim.
const (
	StateIdle    = "idle"
	StateRunning = "running"
	StatePaused  = "paused"
)

// PrinterStatus mirrors /api/printers/{id}/status. The whole payload is
// replaced on every refresh; nothing is patched incrementally.
type PrinterStatus struct {
	Online         bool   `json:"online"`
	State          string `json:"state"`
	ActiveExtruder int    `json:"activeExtruder"`
	Extruders      int    `json:"extruders"`

	// Stage is the device process-stage code, -1 when none.
	Stage int `json:"stage"`
	// TrayNow is the loaded global tray id, with 254/255 as sentinels.
	TrayNow int `json:"trayNow"`

	Units []ams.Unit `json:"amsUnits"`
	// ExtruderMap is the authoritative unit-to-extruder assignment. It may
	// be absent while the device has not reported it yet.
	ExtruderMap map[int]int `json:"amsExtruderMap"`
}

// DualNozzle reports whether the machine carries two extruders.
func (s PrinterStatus) DualNozzle() bool {
	return s.Extruders > 1
}

// printerListResponse mirrors /api/printers.
type printerListResponse struct {
	Printers []Printer `json:"printers"`
}

// VersionInfo mirrors /api/version.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
