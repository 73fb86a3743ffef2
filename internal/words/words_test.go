package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadEmbedded(t *testing.T) {
	l, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, g := l.Stats()
	if a == 0 || g < a {
		t.Fatalf("Stats = (%d, %d)", a, g)
	}
	for _, w := range []string{"crane", "TRACE", "Speed"} {
		if !l.IsAnswer(w) || !l.IsAllowed(w) {
			t.Errorf("%q should be an allowed answer", w)
		}
	}
	if !l.IsAllowed("adieu") || l.IsAnswer("adieu") {
		t.Error("adieu should be allowed but not an answer")
	}
	if l.IsAllowed("zzzzz") {
		t.Error("zzzzz should not be allowed")
	}
}

func TestLoadFiles(t *testing.T) {
	ans := writeFile(t, "answers.txt", "Crane\n toolong\nab1de\n\nslate\n")
	all := writeFile(t, "allowed.txt", "adieu\nroate\n")

	l, err := Load(Options{Letters: 5, AnswersFile: ans, AllowedFile: all})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a, g := l.Stats(); a != 2 || g != 4 {
		t.Fatalf("Stats = (%d, %d), want (2, 4)", a, g)
	}

	l, err = Load(Options{Letters: 5, AllowedFile: all})
	if err != nil {
		t.Fatalf("Load allowed only: %v", err)
	}
	if !l.IsAnswer("adieu") {
		t.Error("allowed-only list should double as answers")
	}
}

func TestLoadEmpty(t *testing.T) {
	p := writeFile(t, "allowed.txt", "toolong\n")
	if _, err := Load(Options{AllowedFile: p}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err %v, want ErrEmpty", err)
	}
	if _, err := Load(Options{AllowedFile: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	l := New(5, []string{"crane"}, []string{"adieu"})
	ctx := context.Background()
	for w, want := range map[string]bool{"CRANE": true, "adieu": true, "QQQQQ": false} {
		got, err := l.Validate(ctx, w)
		if err != nil {
			t.Fatalf("Validate(%q): %v", w, err)
		}
		if got != want {
			t.Errorf("Validate(%q) = %v, want %v", w, got, want)
		}
	}
}

func TestRandomSource(t *testing.T) {
	l := New(5, []string{"crane", "slate"}, nil)
	w, err := l.RandomSource().Word(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsAnswer(w) {
		t.Fatalf("random word %q is not an answer", w)
	}

	empty := New(5, nil, nil)
	if _, err := empty.RandomSource().Word(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err %v, want ErrEmpty", err)
	}
}

func TestDailySource(t *testing.T) {
	l := New(5, []string{"crane", "slate", "trace", "speed"}, nil)
	day := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	src := l.DailySource("salt", func() time.Time { return day })
	a, err := src.Word(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	later := l.DailySource("salt", func() time.Time { return day.Add(10 * time.Hour) })
	b, _ := later.Word(context.Background())
	if a != b {
		t.Fatalf("same day gave %q and %q", a, b)
	}
}
