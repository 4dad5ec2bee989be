package wizard

import "errors"

var (
	ErrInvalidRoleType  = errors.New("invalid role type")
	ErrUnknownField     = errors.New("unknown form field")
	ErrStepOutOfRange   = errors.New("step index out of range")
	ErrNotLastStep      = errors.New("form can only be submitted from the last step")
	ErrSubmitInProgress = errors.New("submission already in progress")
)

// SubmitFailedMessage is shown when a failed submission carries no message.
const SubmitFailedMessage = "Failed to submit form"
