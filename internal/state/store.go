package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/printbed/gantry/internal/ams"
	"github.com/printbed/gantry/internal/farmd"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Printers            []farmd.Printer
	Status              farmd.PrinterStatus
	HasStatus           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Printer returns the fleet entry with the given id.
func (s Snapshot) Printer(id string) (farmd.Printer, bool) {
	for _, p := range s.Printers {
		if p.ID == id {
			return p, true
		}
	}
	return farmd.Printer{}, false
}

// Store coordinates concurrent updates to the snapshot. The poller and the
// status stream both write; the UI reads. Target is the printer id the
// poller fetches status for, set by the UI when the operator switches
// printers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	target   string
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(printers []farmd.Printer, status *farmd.PrinterStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Printers = clonePrinters(printers)
	if status != nil {
		s.snapshot.Status = cloneStatus(*status)
		s.snapshot.HasStatus = true
	} else {
		s.snapshot.HasStatus = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// ApplyStatus folds in a status pushed by the stream. The fleet list is left
// alone; a live frame proves the daemon reachable, so the failure counter
// resets.
func (s *Store) ApplyStatus(status *farmd.PrinterStatus) {
	if status == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Status = cloneStatus(*status)
	s.snapshot.HasStatus = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Printers = clonePrinters(s.snapshot.Printers)
	snap.Status = cloneStatus(s.snapshot.Status)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// SetTarget records the printer id status polls should fetch.
func (s *Store) SetTarget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = id
}

// Target returns the printer id status polls should fetch. Empty until a
// printer is chosen.
func (s *Store) Target() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

func clonePrinters(printers []farmd.Printer) []farmd.Printer {
	if len(printers) == 0 {
		return nil
	}
	dup := make([]farmd.Printer, len(printers))
	copy(dup, printers)
	return dup
}

// cloneStatus deep-copies a status so a snapshot held by the UI can never
// alias tray data the next poll overwrites.
func cloneStatus(status farmd.PrinterStatus) farmd.PrinterStatus {
	dup := status
	if len(status.Units) > 0 {
		dup.Units = make([]ams.Unit, len(status.Units))
		for i, u := range status.Units {
			dup.Units[i] = cloneUnit(u)
		}
	}
	if status.ExtruderMap != nil {
		dup.ExtruderMap = make(map[int]int, len(status.ExtruderMap))
		for k, v := range status.ExtruderMap {
			dup.ExtruderMap[k] = v
		}
	}
	return dup
}

func cloneUnit(u ams.Unit) ams.Unit {
	dup := u
	dup.Humidity = clonePtr(u.Humidity)
	dup.Temp = clonePtr(u.Temp)
	if len(u.Trays) > 0 {
		dup.Trays = make([]ams.Tray, len(u.Trays))
		for i, t := range u.Trays {
			dup.Trays[i] = t
			dup.Trays[i].Color = clonePtr(t.Color)
			dup.Trays[i].UID = clonePtr(t.UID)
		}
	}
	return dup
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
