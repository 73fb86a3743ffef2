// internal/config/config.go
//
// Runtime configuration, read from the environment (and a .env file when present).

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Word sources.
const (
	SourceLocal  = "local"
	SourceDaily  = "daily"
	SourceRemote = "remote"
)

// Validators.
const (
	ValidatorLocal  = "local"
	ValidatorSQLite = "sqlite"
	ValidatorRemote = "remote"
)

// Config is the full server configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RequestTimeout bounds every HTTP request; it must exceed RemoteTimeout.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	Letters int `env:"WORD_LENGTH" envDefault:"5"`
	Rows    int `env:"ROUNDS" envDefault:"6"`

	WordSource string `env:"WORD_SOURCE" envDefault:"local"`
	Validator  string `env:"VALIDATOR" envDefault:"local"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	DailySalt   string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	RemoteBaseURL string        `env:"REMOTE_BASE_URL" envDefault:"https://words.dev-apis.com"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"5s"`

	DictionaryDSN string `env:"DICTIONARY_DSN" envDefault:"./data/dictionary.db"`

	JWTSecret    string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads an optional .env file, then parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags can't express.
func (c Config) Validate() error {
	if c.Letters < 1 {
		return fmt.Errorf("config: WORD_LENGTH must be positive, got %d", c.Letters)
	}
	if c.Rows < 1 {
		return fmt.Errorf("config: ROUNDS must be positive, got %d", c.Rows)
	}
	if c.RemoteTimeout <= 0 || c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REMOTE_TIMEOUT and REQUEST_TIMEOUT must be positive")
	}
	if c.RemoteTimeout >= c.RequestTimeout {
		return fmt.Errorf("config: REMOTE_TIMEOUT (%s) must be shorter than REQUEST_TIMEOUT (%s)", c.RemoteTimeout, c.RequestTimeout)
	}
	switch c.WordSource {
	case SourceLocal, SourceDaily, SourceRemote:
	default:
		return fmt.Errorf("config: unknown WORD_SOURCE %q", c.WordSource)
	}
	switch c.Validator {
	case ValidatorLocal, ValidatorSQLite, ValidatorRemote:
	default:
		return fmt.Errorf("config: unknown VALIDATOR %q", c.Validator)
	}
	return nil
}
