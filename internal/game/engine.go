// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create games from a target word or a WordSource (default 6 rows x 5 letters).
//   - Edit the in-progress guess one letter at a time.
//   - Submit a full guess through an external Validator, then score it with Evaluate.
//   - Track state transitions: in_progress → won | lost.
//
// Concurrency:
//   - Every Game has its own mutex; all operations on one game are serialised.
//   - SubmitGuess drops the mutex while the validator runs and holds the busy
//     gate instead, so concurrent edits or a second submit fail with ErrBusy.
//   - The commit after a valid check is all-or-nothing.
package game

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	defaultRows    = 6
	defaultLetters = 5
)

// Option configures a new Game.
type Option func(*settings)

type settings struct {
	rows    int
	letters int
}

// WithRows sets the number of guesses allowed. Values below 1 are ignored.
func WithRows(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.rows = n
		}
	}
}

// WithLetters sets the word length. Values below 1 are ignored.
func WithLetters(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.letters = n
		}
	}
}

func buildSettings(opts []Option) settings {
	s := settings{rows: defaultRows, letters: defaultLetters}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Game holds the state of a single Wordle session.
type Game struct {
	ID string

	mu      sync.Mutex
	target  string
	rows    int
	letters int
	row     int
	guess   []byte
	history []Round
	status  Status
	busy    bool
}

// New constructs a game for a known target word.
// The target must be exactly the configured number of ASCII letters.
func New(target string, opts ...Option) (*Game, error) {
	s := buildSettings(opts)
	w, err := normalizeWord(target, s.letters)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:      uuid.NewString(),
		target:  w,
		rows:    s.rows,
		letters: s.letters,
		guess:   make([]byte, 0, s.letters),
		history: make([]Round, 0, s.rows),
	}, nil
}

// Start obtains a target from src and creates a game for it.
// Any failure, including a malformed word, aborts the session: the returned
// error matches both ErrSessionAborted and ErrValidationService.
func Start(ctx context.Context, src WordSource, opts ...Option) (*Game, error) {
	w, err := src.Word(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionAborted, &ServiceError{Op: "word-source", Err: err})
	}
	g, err := New(w, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionAborted, &ServiceError{Op: "word-source", Err: err})
	}
	return g, nil
}

// AppendLetter adds ch, uppercased, to the current guess.
// A full guess makes this a no-op; a non-letter is rejected with ErrInvalidInput.
func (g *Game) AppendLetter(ch rune) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkMutable(); err != nil {
		return err
	}
	if !isLetter(ch) {
		return fmt.Errorf("%w: %q is not a letter", ErrInvalidInput, ch)
	}
	if len(g.guess) >= g.letters {
		return nil
	}
	g.guess = append(g.guess, byte(upper(ch)))
	return nil
}

// RemoveLastLetter drops the last letter of the current guess, if any.
func (g *Game) RemoveLastLetter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkMutable(); err != nil {
		return err
	}
	if n := len(g.guess); n > 0 {
		g.guess = g.guess[:n-1]
	}
	return nil
}

// SubmitGuess validates and scores the current guess.
//
// An incomplete guess is a no-op and returns an Outcome with Submitted=false.
// Errors:
//   - ErrGameOver / ErrBusy: nothing was attempted.
//   - ErrInvalidWord: the validator rejected the word; the guess is kept.
//   - *ServiceError: the validator failed or ctx ended; retry is allowed.
//
// On success the round is appended to the history, the row advances, the guess
// is cleared and the status becomes Won (all correct), Lost (last row used) or
// stays InProgress.
func (g *Game) SubmitGuess(ctx context.Context, v Validator) (Outcome, error) {
	g.mu.Lock()
	if err := g.checkMutable(); err != nil {
		out := Outcome{Status: g.status}
		g.mu.Unlock()
		return out, err
	}
	if len(g.guess) != g.letters {
		out := Outcome{Status: g.status}
		g.mu.Unlock()
		return out, nil
	}
	word := string(g.guess)
	g.busy = true
	g.mu.Unlock()

	valid, err := g.validate(ctx, v, word)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	if err != nil {
		return Outcome{Status: g.status}, &ServiceError{Op: "validate", Err: err}
	}
	if !valid {
		return Outcome{Status: g.status}, ErrInvalidWord
	}

	marks, err := Evaluate(word, g.target)
	if err != nil {
		return Outcome{Status: g.status}, err
	}
	g.history = append(g.history, Round{Word: word, Marks: marks})
	g.row++
	g.guess = g.guess[:0]
	switch {
	case marks.Solved():
		g.status = StatusWon
	case g.row >= g.rows:
		g.status = StatusLost
	}
	return Outcome{Result: marks, Status: g.status, Submitted: true}, nil
}

// validate runs the collaborator outside the game mutex. A panic in the
// validator is turned into an error so the busy gate is always released.
func (g *Game) validate(ctx context.Context, v Validator, word string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("validator panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err = v.Validate(ctx, word)
	if err == nil {
		if cerr := ctx.Err(); cerr != nil {
			return false, cerr
		}
	}
	return ok, err
}

// checkMutable must be called with g.mu held.
func (g *Game) checkMutable() error {
	if g.status.Done() {
		return ErrGameOver
	}
	if g.busy {
		return ErrBusy
	}
	return nil
}

// Snapshot is a consistent, caller-owned copy of a game's state.
type Snapshot struct {
	ID      string
	Rows    int
	Letters int
	Row     int
	Guess   string
	History []Round
	Status  Status
	Busy    bool
	// Target is only filled in once the game is over.
	Target string
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	hist := make([]Round, len(g.history))
	for i, r := range g.history {
		hist[i] = Round{Word: r.Word, Marks: append(RoundResult(nil), r.Marks...)}
	}
	s := Snapshot{
		ID:      g.ID,
		Rows:    g.rows,
		Letters: g.letters,
		Row:     g.row,
		Guess:   string(g.guess),
		History: hist,
		Status:  g.status,
		Busy:    g.busy,
	}
	if g.status.Done() {
		s.Target = g.target
	}
	return s
}

// Status reports the current lifecycle state.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// normalizeWord uppercases w and checks it is exactly n ASCII letters.
func normalizeWord(w string, n int) (string, error) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) != n {
		return "", fmt.Errorf("target %q: want %d letters, got %d", w, n, len(w))
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", fmt.Errorf("target %q: non-letter at position %d", w, i)
		}
	}
	return w, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
