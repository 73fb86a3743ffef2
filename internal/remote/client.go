// internal/remote/client.go
//
// HTTP client for the hosted word service:
//   - GET  /word-of-the-day?random=1  → {"word": "..."}
//   - POST /validate-word {"word": ".."} → {"validWord": true|false}
//
// Client implements both game.WordSource and game.Validator. Transport
// failures, non-2xx responses and undecodable bodies are returned as errors so
// the engine can tell them apart from a word the service rejected.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public word service.
const DefaultBaseURL = "https://words.dev-apis.com"

// Client talks to the word service.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a Client. A zero timeout means no per-request limit beyond the
// caller's context.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

type validateReq struct {
	Word string `json:"word"`
}

type validateRes struct {
	Word      string `json:"word"`
	ValidWord *bool  `json:"validWord"`
}

type wordRes struct {
	Word string `json:"word"`
}

// Validate asks the service whether word is a real word.
func (c *Client) Validate(ctx context.Context, word string) (bool, error) {
	body, err := json.Marshal(validateReq{Word: strings.ToLower(word)})
	if err != nil {
		return false, err
	}
	var out validateRes
	if err := c.do(ctx, http.MethodPost, "/validate-word", body, &out); err != nil {
		return false, err
	}
	if out.ValidWord == nil {
		return false, fmt.Errorf("remote: validate-word: response missing validWord")
	}
	log.Debug().Str("word", word).Bool("valid", *out.ValidWord).Msg("remote validate")
	return *out.ValidWord, nil
}

// Word fetches a random word of the day, uppercased.
func (c *Client) Word(ctx context.Context) (string, error) {
	var out wordRes
	if err := c.do(ctx, http.MethodGet, "/word-of-the-day?random=1", nil, &out); err != nil {
		return "", err
	}
	if out.Word == "" {
		return "", fmt.Errorf("remote: word-of-the-day: empty word")
	}
	return strings.ToUpper(out.Word), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dst any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("remote: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(dst); err != nil {
		return fmt.Errorf("remote: decode %s: %w", path, err)
	}
	return nil
}
