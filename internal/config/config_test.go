package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "5175" {
		t.Errorf("Port %q, want 5175", cfg.Port)
	}
	if cfg.Letters != 5 || cfg.Rows != 6 {
		t.Errorf("dimensions %dx%d, want 6x5", cfg.Rows, cfg.Letters)
	}
	if cfg.WordSource != SourceLocal || cfg.Validator != ValidatorLocal {
		t.Errorf("source/validator %q/%q", cfg.WordSource, cfg.Validator)
	}
	if cfg.RemoteTimeout != 5*time.Second {
		t.Errorf("RemoteTimeout %v, want 5s", cfg.RemoteTimeout)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout %v, want 10s", cfg.RequestTimeout)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("WORD_LENGTH", "6")
	t.Setenv("ROUNDS", "8")
	t.Setenv("VALIDATOR", "remote")
	t.Setenv("REMOTE_TIMEOUT", "250ms")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Letters != 6 || cfg.Rows != 8 {
		t.Errorf("dimensions %dx%d, want 8x6", cfg.Rows, cfg.Letters)
	}
	if cfg.Validator != ValidatorRemote {
		t.Errorf("Validator %q", cfg.Validator)
	}
	if cfg.RemoteTimeout != 250*time.Millisecond {
		t.Errorf("RemoteTimeout %v", cfg.RemoteTimeout)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"WORD_LENGTH", "five", "parse env:"},
		{"ROUNDS", "0", "ROUNDS"},
		{"WORD_SOURCE", "oracle", "WORD_SOURCE"},
		{"VALIDATOR", "magic", "VALIDATOR"},
		{"REMOTE_TIMEOUT", "10s", "shorter than REQUEST_TIMEOUT"},
		{"REQUEST_TIMEOUT", "2s", "shorter than REQUEST_TIMEOUT"},
		{"REQUEST_TIMEOUT", "0s", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err %v, want mention of %q", err, tt.want)
			}
		})
	}
}
