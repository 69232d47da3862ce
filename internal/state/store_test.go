package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/farmd"
)

func testStatus() *farmd.PrinterStatus {
	color := "#ffaa00"
	uid := "spool-1"
	humidity := 32
	return &farmd.PrinterStatus{
		Online:    true,
		State:     farmd.StateIdle,
		Extruders: 2,
		Stage:     ams.StageNone,
		TrayNow:   ams.TrayNone,
		Units: []ams.Unit{{
			ID:       0,
			Humidity: &humidity,
			Trays: []ams.Tray{
				{Slot: 0, Type: "PLA", Color: &color, Remain: 80, UID: &uid},
				{Slot: 1},
			},
		}},
		ExtruderMap: map[int]int{0: 0},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	printers := []farmd.Printer{{ID: "p1", Name: "Voron"}, {ID: "p2", Name: "Ender"}}

	before := time.Now()
	s.Update(printers, testStatus(), nil)

	snap := s.Snapshot()
	if !snap.HasStatus || !snap.Status.Online {
		t.Fatalf("snapshot status = %#v, want online HasStatus=true", snap.Status)
	}
	if len(snap.Printers) != 2 || snap.Printers[0].ID != "p1" {
		t.Fatalf("snapshot printers = %#v, want 2 entries", snap.Printers)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Printers[0].ID = "mutated"
	*snap.Status.Units[0].Trays[0].Color = "#000000"
	*snap.Status.Units[0].Humidity = 99
	snap.Status.ExtruderMap[0] = 1

	snap2 := s.Snapshot()
	if snap2.Printers[0].ID != "p1" {
		t.Fatalf("Snapshot should clone printers; got id %q want p1", snap2.Printers[0].ID)
	}
	if got := *snap2.Status.Units[0].Trays[0].Color; got != "#ffaa00" {
		t.Fatalf("Snapshot should clone tray colors; got %q want #ffaa00", got)
	}
	if got := *snap2.Status.Units[0].Humidity; got != 32 {
		t.Fatalf("Snapshot should clone humidity; got %d want 32", got)
	}
	if got := snap2.Status.ExtruderMap[0]; got != 0 {
		t.Fatalf("Snapshot should clone extruder map; got %d want 0", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]farmd.Printer{{ID: "p1"}}, testStatus(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if snap.HasStatus != prev.HasStatus || snap.Status.Online != prev.Status.Online {
		t.Fatalf("status changed on error: got %#v want %#v", snap.Status, prev.Status)
	}
	if len(snap.Printers) != 1 || snap.Printers[0].ID != "p1" {
		t.Fatalf("printers changed on error: got %#v want %#v", snap.Printers, prev.Printers)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	// Initially zero failures
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	// First failure
	s.Update(nil, nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	// Second failure - now offline
	s.Update(nil, nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	// A streamed frame proves the daemon reachable and resets the counter.
	s.ApplyStatus(testStatus())
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after stream frame", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after stream frame")
	}
}

func TestStore_ApplyStatusKeepsFleet(t *testing.T) {
	var s Store

	s.Update([]farmd.Printer{{ID: "p1"}, {ID: "p2"}}, nil, nil)

	status := testStatus()
	status.State = farmd.StateRunning
	s.ApplyStatus(status)

	snap := s.Snapshot()
	if len(snap.Printers) != 2 {
		t.Fatalf("printers = %#v, want fleet kept", snap.Printers)
	}
	if !snap.HasStatus || snap.Status.State != farmd.StateRunning {
		t.Fatalf("status = %#v, want running HasStatus=true", snap.Status)
	}

	// nil frames are ignored rather than clearing state.
	s.ApplyStatus(nil)
	if snap := s.Snapshot(); !snap.HasStatus {
		t.Fatal("HasStatus = false after nil frame, want true")
	}
}

func TestStore_Target(t *testing.T) {
	var s Store

	if got := s.Target(); got != "" {
		t.Fatalf("Target = %q, want empty before selection", got)
	}
	s.SetTarget("p2")
	if got := s.Target(); got != "p2" {
		t.Fatalf("Target = %q, want p2", got)
	}
}

func TestSnapshot_Printer(t *testing.T) {
	snap := Snapshot{Printers: []farmd.Printer{{ID: "p1", Name: "Voron"}, {ID: "p2"}}}

	p, ok := snap.Printer("p1")
	if !ok || p.Name != "Voron" {
		t.Fatalf("Printer(p1) = %#v, %v, want Voron, true", p, ok)
	}
	if _, ok := snap.Printer("nope"); ok {
		t.Fatal("Printer(nope) = true, want false")
	}
}
