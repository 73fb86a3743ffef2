// internal/game/evaluate.go
//
// Pure guess scoring. No state, safe to call from any goroutine.

package game

// Evaluate scores guess against target using the standard two-pass Wordle
// algorithm.
//
// Pass 1:
//   - Count every target letter.
//   - Mark exact matches Correct and consume one count for each.
//
// Pass 2 (left to right):
//   - For each non-correct guess letter: if a count remains, mark Present and
//     consume it; otherwise mark Absent.
//
// Correct matches are therefore preferred over Present ones, and a letter that
// appears more often in the guess than in the target is Absent once its
// occurrences are used up. Both words must already be normalised to the same
// case.
func Evaluate(guess, target string) (RoundResult, error) {
	n := len(target)
	if len(guess) != n {
		return nil, ErrLengthMismatch
	}
	res := make(RoundResult, n)

	var counts [256]int
	for i := 0; i < n; i++ {
		counts[target[i]]++
	}

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = MarkCorrect
			counts[guess[i]]--
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		c := guess[i]
		if counts[c] > 0 {
			res[i] = MarkPresent
			counts[c]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}
