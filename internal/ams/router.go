package ams

// Extruder indices as the device reports them.
const (
	ExtruderRight = 0
	ExtruderLeft  = 1
)

// Routing is the result of partitioning units between nozzles. Right and
// Left preserve snapshot order within each side.
type Routing struct {
	Right []Unit
	Left  []Unit

	// Heuristic is set when no assignment map was available and the split
	// fell back to snapshot-order parity. Parity is positional: if unit
	// ordering changes between snapshots the guess changes with it, so the
	// UI must surface this as degraded rather than treating both modes
	// alike.
	Heuristic bool

	byUnit map[int]int
}

// Route partitions units between the right (0) and left (1) extruders.
//
// With a non-empty assignment map the partition is a strict lookup; units
// missing from the map (or mapped to an index the machine does not have)
// land on neither side and stay invisible until the device reports their
// assignment. With an empty map the split guesses by snapshot-order parity:
// even indices feed the right nozzle, odd the left. Single-nozzle machines
// route every unit to the only extruder without any partition logic.
func Route(units []Unit, assign map[int]int, nozzles int) Routing {
	r := Routing{byUnit: make(map[int]int, len(units))}

	if nozzles <= 1 {
		r.Right = append(r.Right, units...)
		for _, u := range units {
			r.byUnit[u.ID] = ExtruderRight
		}
		return r
	}

	if len(assign) > 0 {
		for _, u := range units {
			ext, ok := assign[u.ID]
			if !ok {
				continue
			}
			switch ext {
			case ExtruderRight:
				r.Right = append(r.Right, u)
			case ExtruderLeft:
				r.Left = append(r.Left, u)
			default:
				continue
			}
			r.byUnit[u.ID] = ext
		}
		return r
	}

	r.Heuristic = true
	for i, u := range units {
		if i%2 == 0 {
			r.Right = append(r.Right, u)
			r.byUnit[u.ID] = ExtruderRight
		} else {
			r.Left = append(r.Left, u)
			r.byUnit[u.ID] = ExtruderLeft
		}
	}
	return r
}

// ExtruderFor returns the extruder a unit feeds, when known.
func (r Routing) ExtruderFor(unitID int) (int, bool) {
	ext, ok := r.byUnit[unitID]
	return ext, ok
}
