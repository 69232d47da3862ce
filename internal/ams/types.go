package ams

// Tray id sentinels reported by the device in trayNow. Values 0-253 address
// a physical slot; the two top values are reserved.
const (
	TrayExternal = 254 // external spool holder, bypasses the AMS
	TrayNone     = 255 // nothing loaded
)

// ValidTray reports whether a global tray id addresses a physical slot.
func ValidTray(id int) bool {
	return id >= 0 && id < TrayExternal
}

// Device process-stage codes. The stage field is an opaque firmware integer;
// only the filament-related subset is interpreted here.
const (
	StageNone              = -1
	StageChangingFilament  = 4
	StageHeatingNozzle     = 7
	StageUnloadingFilament = 22
	StageLoadingFilament   = 24
)

// ActiveStage reports whether a stage code denotes a filament operation in
// progress on the device.
func ActiveStage(stage int) bool {
	switch stage {
	case StageChangingFilament, StageHeatingNozzle, StageUnloadingFilament, StageLoadingFilament:
		return true
	}
	return false
}

// Unit is one filament-feeding unit attached to a printer. Standard units
// (id 0-127) expose four slots; HT units (id >= 128) expose up to two.
// Trays are listed in physical slot order.
type Unit struct {
	ID       int      `json:"id"`
	Humidity *int     `json:"humidity"`
	Temp     *float64 `json:"temp"`
	Trays    []Tray   `json:"trays"`
}

// Tray is one filament slot within a unit.
type Tray struct {
	Slot   int     `json:"slot"`
	Type   string  `json:"type"`
	Color  *string `json:"color"`
	Remain int     `json:"remain"`
	UID    *string `json:"uid"`
}

// Empty reports whether the slot holds no spool.
func (t Tray) Empty() bool {
	return t.Type == "" || t.Type == "NONE"
}

// Native reports whether the spool carries an RFID identity. Third-party
// spools have none and their remaining percentage is not trustworthy.
func (t Tray) Native() bool {
	return t.UID != nil && *t.UID != ""
}

// HasRemain reports whether the remaining-fill bar applies to this tray.
func (t Tray) HasRemain() bool {
	return t.Native() && t.Remain >= 0
}
