package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is matched by every TransitionError
var ErrInvalidTransition = errors.New("invalid_transition")

// ErrOverrideRequired is returned when a non-compliant draft is approved without override notes
var ErrOverrideRequired = errors.New("override with notes required for non-compliant content")

// ValidationError reports malformed input that never enters the queue
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// TransitionError reports an attempt to move an item from a state that does not allow it
type TransitionError struct {
	ItemID int64
	From   Status
	To     Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: item %d is %s, can't move to %s", e.ItemID, e.From, e.To)
}

// Is makes errors.Is(err, ErrInvalidTransition) work
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsValidation checks whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
