package ams

import "fmt"

const (
	// slotStride is the addressing stride between unit id blocks. HT units
	// use the same stride even though they expose fewer slots, so their
	// global ids are sparse within the block.
	slotStride = 4

	// htBase is the first unit id in the high-temperature range.
	htBase = 128
)

// IsHighTemp reports whether a unit id addresses an HT unit.
func IsHighTemp(unitID int) bool {
	return unitID >= htBase
}

// SlotCount returns the number of slots a unit id can expose. The count is
// fixed by the id range, not by how many trays the snapshot happens to list.
func SlotCount(unitID int) int {
	if IsHighTemp(unitID) {
		return 2
	}
	return 4
}

// UnitLabel renders the operator-facing name for a unit: "A".."D" for
// standard units, "HT"/"HT2" style for high-temperature units.
func UnitLabel(unitID int) string {
	if IsHighTemp(unitID) {
		instance := unitID - htBase
		if instance == 0 {
			return "HT"
		}
		return fmt.Sprintf("HT%d", instance+1)
	}
	return string(rune('A' + unitID))
}

// SlotLabel renders the operator-facing name for a slot: "A1".."D4" for
// standard units, "HT-A"/"HT2-A" style for high-temperature units.
func SlotLabel(unitID, slot int) string {
	if IsHighTemp(unitID) {
		return fmt.Sprintf("%s-%c", UnitLabel(unitID), rune('A'+slot))
	}
	return fmt.Sprintf("%s%d", UnitLabel(unitID), slot+1)
}

// GlobalTrayID maps a unit id and local slot index to the device-wide tray
// id used by trayNow and the load command.
func GlobalTrayID(unitID, slot int) int {
	return unitID*slotStride + slot
}

// Locate resolves a global tray id back to its owning unit and local slot.
// A unit matches when the id falls inside its block, bounded by SlotCount so
// the sparse tail of an HT block can never match. The first matching unit
// wins; ids are unique by construction so at most one can.
func Locate(units []Unit, trayID int) (Unit, int, bool) {
	for _, u := range units {
		base := u.ID * slotStride
		if trayID >= base && trayID < base+SlotCount(u.ID) {
			return u, trayID - base, true
		}
	}
	return Unit{}, 0, false
}
