package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-engine/internal/config"
	"github.com/robalobadob/wordle-engine/internal/dictionary"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/httpserver"
	"github.com/robalobadob/wordle-engine/internal/remote"
	"github.com/robalobadob/wordle-engine/internal/store"
	"github.com/robalobadob/wordle-engine/internal/words"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("wordle-server")
	}
}

// run wires the server and blocks until it exits. Deferred cleanup runs
// before main reports the error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	list, err := words.Load(words.Options{
		Letters:     cfg.Letters,
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
	})
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}

	client := remote.New(cfg.RemoteBaseURL, cfg.RemoteTimeout)

	var source game.WordSource
	switch cfg.WordSource {
	case config.SourceDaily:
		source = list.DailySource(cfg.DailySalt, time.Now)
	case config.SourceRemote:
		source = client
	default:
		source = list.RandomSource()
	}

	validator, closer, err := buildValidator(cfg, list, client)
	if err != nil {
		return fmt.Errorf("set up validator: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close validator")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	games := store.NewMemoryStore()
	go store.RunJanitor(ctx, games, time.Hour, httpserver.TokenTTL)

	logger := log.Logger
	srv := httpserver.New(httpserver.Options{
		Store:     games,
		Source:    source,
		Validator: validator,
		Rows:      cfg.Rows,
		Letters:   cfg.Letters,
		Secret:    cfg.JWTSecret,
		Origin:    cfg.ClientOrigin,
		Stats:     list.Stats,
		Logger:    &logger,
		Timeout:   cfg.RequestTimeout,
	})

	a, g := list.Stats()
	log.Info().
		Str("port", cfg.Port).
		Str("source", cfg.WordSource).
		Str("validator", cfg.Validator).
		Int("answers", a).
		Int("allowed", g).
		Msg("starting wordle-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// noClose is the closer for validators that hold no resources.
var noClose = closerFunc(func() error { return nil })

// buildValidator picks the configured validity checker. The sqlite dictionary
// is seeded from the loaded word lists on every start; imports are idempotent.
func buildValidator(cfg config.Config, list *words.List, client *remote.Client) (game.Validator, io.Closer, error) {
	switch cfg.Validator {
	case config.ValidatorRemote:
		return client, noClose, nil
	case config.ValidatorSQLite:
		db, err := dictionary.Open(cfg.DictionaryDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary: %w", err)
		}
		ctx := context.Background()
		if _, err := db.Import(ctx, list.Answers(), true); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("seed dictionary: %w", err)
		}
		if _, err := db.Import(ctx, list.Allowed(), false); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("seed dictionary: %w", err)
		}
		answers, total, err := db.Stats(ctx)
		if err == nil {
			log.Info().Str("dsn", cfg.DictionaryDSN).Int("answers", answers).Int("words", total).Msg("dictionary ready")
		}
		return db, db, nil
	default:
		return list, noClose, nil
	}
}

func init() {
	// Human-readable logs when attached to a terminal.
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
