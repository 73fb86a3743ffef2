// internal/game/source.go
//
// Contracts for the collaborators the engine depends on but does not own.

package game

import "context"

// Validator decides whether a complete guess is a real word.
// A non-nil error means the check itself failed and says nothing about the word.
type Validator interface {
	Validate(ctx context.Context, word string) (bool, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, word string) (bool, error)

func (f ValidatorFunc) Validate(ctx context.Context, word string) (bool, error) {
	return f(ctx, word)
}

// WordSource supplies the target word for a new game.
type WordSource interface {
	Word(ctx context.Context) (string, error)
}

// WordSourceFunc adapts a function to WordSource.
type WordSourceFunc func(ctx context.Context) (string, error)

func (f WordSourceFunc) Word(ctx context.Context) (string, error) { return f(ctx) }

// Fixed returns a WordSource that always yields w.
func Fixed(w string) WordSource {
	return WordSourceFunc(func(context.Context) (string, error) { return w, nil })
}
