// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - RoundResult: the marks for one submitted guess.
//   - Status: lifecycle of a game (in progress → won | lost).
//   - Round: a submitted guess paired with its marks.

package game

import (
	"encoding/json"
	"fmt"
)

// Mark represents the evaluation result for a single letter in a guess.
//   - MarkCorrect: letter is in the target at the same position.
//   - MarkPresent: letter is in the target at another, still unmatched, position.
//   - MarkAbsent:  letter is not in the target, or all its occurrences are used up.
type Mark uint8

const (
	MarkAbsent Mark = iota
	MarkPresent
	MarkCorrect
)

var markNames = [...]string{
	MarkAbsent:  "absent",
	MarkPresent: "present",
	MarkCorrect: "correct",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalJSON encodes a Mark by name so clients don't depend on ordinals.
func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (m *Mark) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range markNames {
		if name == s {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", s)
}

// RoundResult holds one Mark per letter of a submitted guess.
type RoundResult []Mark

// Solved reports whether every letter is MarkCorrect.
func (r RoundResult) Solved() bool {
	if len(r) == 0 {
		return false
	}
	for _, m := range r {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Status is the lifecycle state of a game. Won and Lost are terminal.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Done reports whether the status is terminal.
func (s Status) Done() bool { return s == StatusWon || s == StatusLost }

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Round is one submitted guess and its classification.
type Round struct {
	Word  string      `json:"word"`
	Marks RoundResult `json:"marks"`
}

// Outcome is what SubmitGuess reports back to the caller.
// Submitted is false when the call was a no-op (incomplete guess).
type Outcome struct {
	Result    RoundResult
	Status    Status
	Submitted bool
}
