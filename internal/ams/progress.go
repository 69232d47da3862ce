package ams

// StepState is the display state of one progress step.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepDone
)

// Step is one row of the operation progress card.
type Step struct {
	Name  string
	State StepState
}

// Steps projects the progress card rows for an operation at a device stage.
// The mapping is a fixed table keyed on (kind, stage), not inferred from
// timing: before the direction-specific stage arrives the first step shows
// active, once it arrives the first step completes and the second runs, and
// a stage belonging to the other direction leaves every step pending.
func Steps(kind OpKind, stage int) []Step {
	switch kind {
	case OpLoad:
		return loadSteps(stage)
	case OpUnload:
		return unloadSteps(stage)
	default:
		return nil
	}
}

func loadSteps(stage int) []Step {
	steps := []Step{
		{Name: "Heat nozzle"},
		{Name: "Push filament"},
		{Name: "Purge old filament"},
	}
	switch stage {
	case StageNone, StageHeatingNozzle, StageChangingFilament:
		steps[0].State = StepActive
	case StageLoadingFilament:
		steps[0].State = StepDone
		steps[1].State = StepActive
	}
	return steps
}

func unloadSteps(stage int) []Step {
	steps := []Step{
		{Name: "Heat nozzle"},
		{Name: "Retract filament"},
	}
	switch stage {
	case StageNone, StageHeatingNozzle, StageChangingFilament:
		steps[0].State = StepActive
	case StageUnloadingFilament:
		steps[0].State = StepDone
		steps[1].State = StepActive
	}
	return steps
}
