package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robalobadob/wordle-engine/internal/game"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/word-of-the-day":
			if r.URL.Query().Get("random") != "1" {
				t.Errorf("missing random=1 query")
			}
			_, _ = w.Write([]byte(`{"word":"crane","puzzleNumber":1}`))
		case r.Method == http.MethodPost && r.URL.Path == "/validate-word":
			var req struct{ Word string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"word": req.Word, "validWord": req.Word == "trace"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWord(t *testing.T) {
	c := New(newService(t).URL, time.Second)
	w, err := c.Word(context.Background())
	if err != nil {
		t.Fatalf("Word: %v", err)
	}
	if w != "CRANE" {
		t.Fatalf("Word %q, want CRANE", w)
	}
}

func TestValidate(t *testing.T) {
	c := New(newService(t).URL, time.Second)
	ok, err := c.Validate(context.Background(), "TRACE")
	if err != nil || !ok {
		t.Fatalf("Validate(TRACE) = %v, %v", ok, err)
	}
	ok, err = c.Validate(context.Background(), "XQZVW")
	if err != nil || ok {
		t.Fatalf("Validate(XQZVW) = %v, %v", ok, err)
	}
}

func TestValidateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Validate(context.Background(), "TRACE"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestValidateMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"word":"trace"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Validate(context.Background(), "TRACE"); err == nil {
		t.Fatal("a response without validWord must not read as rejection")
	}
}

func TestValidateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, 20*time.Millisecond)
	if _, err := c.Validate(context.Background(), "TRACE"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClientDrivesGame(t *testing.T) {
	c := New(newService(t).URL, time.Second)
	g, err := game.Start(context.Background(), c)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, r := range "trace" {
		if err := g.AppendLetter(r); err != nil {
			t.Fatal(err)
		}
	}
	out, err := g.SubmitGuess(context.Background(), c)
	if err != nil || !out.Submitted {
		t.Fatalf("SubmitGuess: %+v, %v", out, err)
	}

	for _, r := range "zzzzz" {
		_ = g.AppendLetter(r)
	}
	if _, err := g.SubmitGuess(context.Background(), c); !errors.Is(err, game.ErrInvalidWord) {
		t.Fatalf("err %v, want ErrInvalidWord", err)
	}
}

func TestUnreachableServiceIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := game.Start(context.Background(), c)
	if !errors.Is(err, game.ErrSessionAborted) || !errors.Is(err, game.ErrValidationService) {
		t.Fatalf("err %v, want session abort service error", err)
	}
}
