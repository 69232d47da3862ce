package farmd

import (
	"errors"
	"fmt"
)

// Confirmation is the payload a command returns when the controller wants
// explicit approval before executing a hazardous move. The token is
// one-time: re-issuing the same command with it attached runs the command
// as pre-approved.
type Confirmation struct {
	Token   string `json:"token"`
	Warning string `json:"warning"`
}

// ConfirmationError signals that a command was parked pending approval. It
// travels as an error so command call sites stay uniform, but it is a
// protocol step, not a failure.
type ConfirmationError struct {
	Confirmation
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Warning)
}

// AsConfirmation extracts the confirmation payload from a command error,
// when present.
func AsConfirmation(err error) (*ConfirmationError, bool) {
	var ce *ConfirmationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
