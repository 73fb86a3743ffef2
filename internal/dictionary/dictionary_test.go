package dictionary

import (
	"context"
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "data", "dict.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestImportAndValidate(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)

	n, err := d.Import(ctx, []string{"Crane", "slate", "crane"}, true)
	if err != nil {
		t.Fatalf("Import answers: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted %d, want 2", n)
	}
	n, err = d.Import(ctx, []string{"adieu", "slate"}, false)
	if err != nil {
		t.Fatalf("Import allowed: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted %d, want 1", n)
	}

	for w, want := range map[string]bool{"CRANE": true, "adieu": true, "zzzzz": false} {
		got, err := d.Validate(ctx, w)
		if err != nil {
			t.Fatalf("Validate(%q): %v", w, err)
		}
		if got != want {
			t.Errorf("Validate(%q) = %v, want %v", w, got, want)
		}
	}

	answers, total, err := d.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if answers != 2 || total != 3 {
		t.Fatalf("Stats = (%d, %d), want (2, 3)", answers, total)
	}
}

func TestReopenKeepsMigrationsAndWords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dict.db")

	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Import(ctx, []string{"crane"}, true); err != nil {
		t.Fatal(err)
	}
	_ = d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	ok, err := d.Validate(ctx, "crane")
	if err != nil || !ok {
		t.Fatalf("Validate after reopen = %v, %v", ok, err)
	}
}

func TestValidateClosedDBIsError(t *testing.T) {
	d := openTest(t)
	_ = d.Close()
	if _, err := d.Validate(context.Background(), "crane"); err == nil {
		t.Fatal("closed database should return an error, not a rejection")
	}
}
