// internal/words/words.go
//
// Word lists for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to
//     the embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Act as a game.Validator (allowed set) and as game.WordSource
//     (random answer, or the deterministic word of the day).
//
// Loading behaviour (Load):
//  1. AnswersFile and AllowedFile both set: answers from the first, allowed
//     guesses from the second.
//  2. Only AllowedFile set: that file is used for both.
//  3. Neither set: embedded assets/answers.txt and assets/allowed.txt.
//
// Constraints:
//   - Words must be exactly Letters ASCII letters; others are skipped.
//   - Lists are normalised to lowercase.
package words

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/robalobadob/wordle-engine/assets"
	"github.com/robalobadob/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle-engine/internal/game"
)

// ErrEmpty is returned when no answers survive loading.
var ErrEmpty = errors.New("words: answers list is empty")

// Options selects where word lists come from.
type Options struct {
	Letters     int
	AnswersFile string
	AllowedFile string
}

// List is an immutable answer/allowed word set. Safe for concurrent use.
type List struct {
	letters    int
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{}
}

// Load builds a List according to opts.
func Load(opts Options) (*List, error) {
	n := opts.Letters
	if n <= 0 {
		n = 5
	}

	var ansList, allowList []string
	switch {
	case opts.AnswersFile != "" && opts.AllowedFile != "":
		var err error
		if ansList, err = readWordFile(opts.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(opts.AllowedFile, n); err != nil {
			return nil, err
		}

	case opts.AllowedFile != "":
		var err error
		if allowList, err = readWordFile(opts.AllowedFile, n); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		ans, all, err := assets.Lists()
		if err != nil {
			return nil, err
		}
		ansList, allowList = ans, all
	}

	l := New(n, ansList, allowList)
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// New builds a List from in-memory words. Invalid entries are dropped and
// every answer is also allowed.
func New(letters int, answers, allowed []string) *List {
	ans := filter(normalize(answers), letters)
	l := &List{
		letters:    letters,
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range filter(normalize(allowed), letters) {
		l.allowedSet[w] = struct{}{}
	}
	return l
}

// readWordFile loads a word list from disk and keeps only valid n-letter words.
func readWordFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return filter(list, n), nil
}

func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		out = append(out, strings.TrimSpace(strings.ToLower(w)))
	}
	return out
}

func filter(list []string, n int) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if len(w) == n && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Letters is the word length this list was loaded for.
func (l *List) Letters() int { return l.letters }

// Answers returns a copy of the answer list.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Allowed returns every allowed guess (answers included), sorted.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowedSet))
	for w := range l.allowedSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// RandomAnswer returns a cryptographically random answer.
func (l *List) RandomAnswer() (string, error) {
	if len(l.answers) == 0 {
		return "", ErrEmpty
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return "", err
	}
	return l.answers[nBig.Int64()], nil
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

// Validate implements game.Validator against the allowed set. It never fails.
func (l *List) Validate(_ context.Context, word string) (bool, error) {
	return l.IsAllowed(word), nil
}

// RandomSource returns a game.WordSource that picks a random answer per game.
func (l *List) RandomSource() game.WordSource {
	return game.WordSourceFunc(func(context.Context) (string, error) {
		return l.RandomAnswer()
	})
}

// DailySource returns a game.WordSource yielding the word of the day for the
// date reported by now.
func (l *List) DailySource(salt string, now func() time.Time) game.WordSource {
	if now == nil {
		now = time.Now
	}
	return game.WordSourceFunc(func(context.Context) (string, error) {
		if len(l.answers) == 0 {
			return "", ErrEmpty
		}
		sched := daily.Schedule{Salt: salt, Size: len(l.answers)}
		return l.answers[sched.Index(now())], nil
	})
}
