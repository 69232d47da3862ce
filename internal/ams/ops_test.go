package ams

import "testing"

// synced returns a tracker that has seen one empty snapshot, so the initial
// seed is behind it.
func synced() *Tracker {
	tr := NewTracker()
	tr.Observe(StageNone, TrayNone)
	return tr
}

func TestTracker_LoadSequenceSettles(t *testing.T) {
	tr := synced()
	tr.Select(5)

	if !tr.BeginLoad() {
		t.Fatal("BeginLoad() = false, want true with tray selected and nothing in flight")
	}
	if !tr.InFlight() || tr.Kind() != OpLoad {
		t.Fatalf("after BeginLoad: InFlight=%v Kind=%v, want showing load", tr.InFlight(), tr.Kind())
	}

	// Device picks the operation up, then finishes.
	tr.Observe(StageLoadingFilament, TrayNone)
	if !tr.InFlight() || tr.Kind() != OpLoad {
		t.Fatalf("during stage %d: InFlight=%v Kind=%v, want showing load", StageLoadingFilament, tr.InFlight(), tr.Kind())
	}

	tr.Observe(StageNone, 5)
	if tr.InFlight() {
		t.Fatal("InFlight() = true after active stage returned to none, want settled")
	}
	if !tr.LoadTriggered() {
		t.Fatal("LoadTriggered() = false after completed load, want true")
	}
}

func TestTracker_IdleToIdleNeverShowsCard(t *testing.T) {
	tr := synced()

	tr.Observe(StageNone, TrayNone)
	tr.Observe(StageNone, TrayNone)

	if tr.InFlight() {
		t.Fatal("InFlight() = true for an idle-to-idle stream, want no card")
	}
}

func TestTracker_DeviceStageWinsOverOptimistic(t *testing.T) {
	tr := synced()

	if !tr.BeginUnload() {
		t.Fatal("BeginUnload() = false, want true")
	}
	if tr.Kind() != OpUnload {
		t.Fatalf("Kind() = %v, want unload before telemetry", tr.Kind())
	}

	// Device reports a load: telemetry overrides the user marker.
	tr.Observe(StageLoadingFilament, TrayNone)
	if tr.Kind() != OpLoad {
		t.Fatalf("Kind() = %v, want load once the device reports one", tr.Kind())
	}
}

func TestTracker_NeutralStagesKeepDirection(t *testing.T) {
	tr := synced()
	tr.BeginUnload()

	// Heating does not reveal direction; the optimistic unload stands.
	tr.Observe(StageHeatingNozzle, TrayNone)
	if tr.Kind() != OpUnload {
		t.Fatalf("Kind() = %v during heating, want unload kept", tr.Kind())
	}

	tr.Observe(StageUnloadingFilament, TrayNone)
	if tr.Kind() != OpUnload {
		t.Fatalf("Kind() = %v, want unload", tr.Kind())
	}

	tr.Observe(StageNone, TrayNone)
	if tr.InFlight() {
		t.Fatal("InFlight() = true after unload settled, want idle")
	}
	if tr.LoadTriggered() {
		t.Fatal("LoadTriggered() = true after device-confirmed unload, want re-armed")
	}
}

func TestTracker_NeutralStageAloneDefaultsToLoad(t *testing.T) {
	tr := synced()

	// No user action at all; the device starts heating on its own.
	tr.Observe(StageHeatingNozzle, TrayNone)
	if !tr.InFlight() {
		t.Fatal("InFlight() = false, want card for device-initiated operation")
	}
	if tr.Kind() != OpLoad {
		t.Fatalf("Kind() = %v, want load as the direction-neutral default", tr.Kind())
	}
}

func TestTracker_InitialSyncSeedsExactlyOnce(t *testing.T) {
	tr := NewTracker()

	tr.Observe(StageNone, 37)
	if tr.Selected() != 37 {
		t.Fatalf("Selected() = %d, want 37 seeded from first snapshot", tr.Selected())
	}
	if !tr.LoadTriggered() {
		t.Fatal("LoadTriggered() = false, want true after seed")
	}

	// A repeat of the same trayNow must not re-seed.
	tr.Select(8)
	tr.Observe(StageNone, 37)
	if tr.Selected() != 8 {
		t.Fatalf("Selected() = %d after user re-selection, want 8 (no re-seed)", tr.Selected())
	}
	if tr.LoadTriggered() {
		t.Fatal("LoadTriggered() = true, want false after re-selection")
	}
}

func TestTracker_SentinelsNeverSeed(t *testing.T) {
	for _, trayNow := range []int{TrayNone, TrayExternal} {
		tr := NewTracker()
		tr.Observe(StageNone, trayNow)
		if tr.Selected() != -1 {
			t.Fatalf("Selected() = %d after trayNow=%d, want -1", tr.Selected(), trayNow)
		}
		if tr.LoadTriggered() {
			t.Fatalf("LoadTriggered() = true after trayNow=%d, want false", trayNow)
		}
	}
}

func TestTracker_BeginLoadRequiresSelection(t *testing.T) {
	tr := synced()
	if tr.BeginLoad() {
		t.Fatal("BeginLoad() = true with no tray selected, want false")
	}
}

func TestTracker_LoadDisabledUntilRearmed(t *testing.T) {
	tr := synced()
	tr.Select(3)
	tr.BeginLoad()
	tr.AckLoad()
	tr.Observe(StageLoadingFilament, TrayNone)
	tr.Observe(StageNone, 3)

	if tr.CanLoad() {
		t.Fatal("CanLoad() = true after completed load, want disabled until re-armed")
	}
	if tr.BeginLoad() {
		t.Fatal("BeginLoad() = true after completed load, want false")
	}

	// Unload acknowledgment re-arms.
	tr.AckUnload()
	if !tr.CanLoad() {
		t.Fatal("CanLoad() = false after unload ack, want re-armed")
	}

	// So does re-selection.
	tr.AckLoad()
	tr.Select(4)
	if !tr.CanLoad() {
		t.Fatal("CanLoad() = false after re-selection, want re-armed")
	}
}

func TestTracker_SecondOperationRejectedWhileShowing(t *testing.T) {
	tr := synced()
	tr.Select(2)
	tr.BeginLoad()

	if tr.BeginUnload() {
		t.Fatal("BeginUnload() = true while a load is showing, want false")
	}
	if tr.CanUnload() {
		t.Fatal("CanUnload() = true while a load is showing, want false")
	}
}

func TestTracker_FailDropsOptimisticMarker(t *testing.T) {
	tr := synced()
	tr.BeginUnload()
	tr.Fail()

	if tr.InFlight() {
		t.Fatal("InFlight() = true after Fail, want marker dropped")
	}
	if !tr.CanUnload() {
		t.Fatal("CanUnload() = false after Fail, want retry possible")
	}
}

func TestTracker_AckKeepsCardUntilTelemetryEnds(t *testing.T) {
	tr := synced()
	tr.Select(2)
	tr.BeginLoad()
	tr.AckLoad()

	// The acknowledgment alone must not hide the card; only the device
	// edge does.
	if !tr.InFlight() {
		t.Fatal("InFlight() = false after ack, want card until telemetry settles")
	}
}
