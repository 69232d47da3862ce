package ams

import "testing"

func TestSlotLabel(t *testing.T) {
	tests := []struct {
		name   string
		unitID int
		slot   int
		want   string
	}{
		{"first unit first slot", 0, 0, "A1"},
		{"first unit last slot", 0, 3, "A4"},
		{"fourth unit second slot", 3, 1, "D2"},
		{"first ht unit", 128, 0, "HT-A"},
		{"first ht unit second slot", 128, 1, "HT-B"},
		{"second ht unit", 129, 0, "HT2-A"},
		{"third ht unit second slot", 130, 1, "HT3-B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotLabel(tt.unitID, tt.slot)
			if got != tt.want {
				t.Errorf("SlotLabel(%d, %d) = %q, want %q", tt.unitID, tt.slot, got, tt.want)
			}
		})
	}
}

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		unitID int
		want   string
	}{
		{0, "A"},
		{3, "D"},
		{128, "HT"},
		{129, "HT2"},
		{130, "HT3"},
	}

	for _, tt := range tests {
		if got := UnitLabel(tt.unitID); got != tt.want {
			t.Errorf("UnitLabel(%d) = %q, want %q", tt.unitID, got, tt.want)
		}
	}
}

func TestIsHighTemp(t *testing.T) {
	if IsHighTemp(127) {
		t.Fatal("IsHighTemp(127) = true, want false")
	}
	if !IsHighTemp(128) {
		t.Fatal("IsHighTemp(128) = false, want true")
	}
}

func TestSlotCount(t *testing.T) {
	if got := SlotCount(0); got != 4 {
		t.Fatalf("SlotCount(0) = %d, want 4", got)
	}
	if got := SlotCount(128); got != 2 {
		t.Fatalf("SlotCount(128) = %d, want 2", got)
	}
}

func TestGlobalTrayID_RoundTripsThroughLocate(t *testing.T) {
	units := []Unit{{ID: 0}, {ID: 1}, {ID: 128}, {ID: 129}}

	for _, u := range units {
		for slot := 0; slot < SlotCount(u.ID); slot++ {
			id := GlobalTrayID(u.ID, slot)
			gotUnit, gotSlot, ok := Locate(units, id)
			if !ok {
				t.Fatalf("Locate(%d) not found, want unit %d slot %d", id, u.ID, slot)
			}
			if gotUnit.ID != u.ID || gotSlot != slot {
				t.Fatalf("Locate(%d) = unit %d slot %d, want unit %d slot %d",
					id, gotUnit.ID, gotSlot, u.ID, slot)
			}
		}
	}
}

func TestLocate_SparseHTBlockDoesNotMatch(t *testing.T) {
	units := []Unit{{ID: 128}}

	// Slots 2 and 3 of an HT block are unaddressable.
	for _, id := range []int{128*4 + 2, 128*4 + 3} {
		if _, _, ok := Locate(units, id); ok {
			t.Fatalf("Locate(%d) found a unit, want no match in sparse HT tail", id)
		}
	}
}

func TestLocate_UnknownTray(t *testing.T) {
	if _, _, ok := Locate(nil, 0); ok {
		t.Fatal("Locate with no units reported a match")
	}
	if _, _, ok := Locate([]Unit{{ID: 2}}, 4); ok {
		t.Fatal("Locate(4) matched unit 2, want no match")
	}
}

func TestValidTray(t *testing.T) {
	tests := []struct {
		id   int
		want bool
	}{
		{0, true},
		{37, true},
		{253, true},
		{TrayExternal, false},
		{TrayNone, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := ValidTray(tt.id); got != tt.want {
			t.Errorf("ValidTray(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
