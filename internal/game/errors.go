// internal/game/errors.go
//
// Error kinds returned by the engine. All of them leave the game exactly as it
// was before the failing call.

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned by AppendLetter for anything but a single ASCII letter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWord means the validator answered "not a word". The guess is kept.
	ErrInvalidWord = errors.New("not in word list")

	// ErrGameOver is returned by every mutating call once the game is won or lost.
	ErrGameOver = errors.New("game finished")

	// ErrBusy is returned while a submit is waiting on the validator.
	ErrBusy = errors.New("submit in progress")

	// ErrValidationService matches any *ServiceError.
	ErrValidationService = errors.New("validation service unavailable")

	// ErrSessionAborted is returned by Start when no usable target could be obtained.
	ErrSessionAborted = errors.New("session aborted")

	// ErrLengthMismatch is returned by Evaluate for words of different lengths.
	ErrLengthMismatch = errors.New("guess and target lengths differ")
)

// ServiceError is a transient failure of an external collaborator (word source
// or validator). It is never equivalent to a rejected word.
type ServiceError struct {
	Op  string // "validate" or "word-source"
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrValidationService)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrValidationService, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrValidationService) match without unwrapping Err.
func (e *ServiceError) Is(target error) bool { return target == ErrValidationService }
