// assets/embed.go
//
// Default word lists compiled into the binary so the server runs without any
// configured files, plus the line format shared with on-disk lists:
// one word per line, blank lines and "#" comments ignored.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadWords parses a word list, trimming and lowercasing every entry.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// Lists returns the embedded answers and guess-only words.
func Lists() (answers, allowed []string, err error) {
	if answers, err = readEmbedded("answers.txt"); err != nil {
		return nil, nil, err
	}
	if allowed, err = readEmbedded("allowed.txt"); err != nil {
		return nil, nil, err
	}
	return answers, allowed, nil
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}
