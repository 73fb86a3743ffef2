// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Games live only as long as the process; nothing is persisted.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map, with the time they were saved.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - The map guards only lookup; each *game.Game serialises its own operations.
//   - Sweep drops games saved before a cutoff; RunJanitor calls it periodically.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// ErrNotFound is returned by Get and Delete for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store holds active game sessions.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete discards a game (abandonment).
	Delete(ctx context.Context, id string) error
}

// Sweeper evicts stale sessions.
type Sweeper interface {
	// Sweep removes every game saved before cutoff and reports how many went.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	g     *game.Game
	saved time.Time
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex     // guards games map
	games map[string]entry // keyed by Game.ID
	now   func() time.Time // clock, replaced in tests
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]entry), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, g *game.Game) error {
	if g == nil || g.ID == "" {
		return errors.New("store: game without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = entry{g: g, saved: m.now()}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.g, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

// Len reports the number of stored games.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.saved.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps s every interval, evicting games older than ttl,
// until ctx is done. ttl should match the lifetime of the game token:
// once the token has expired the game can no longer be reached.
func RunJanitor(ctx context.Context, s Sweeper, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Debug().Int("evicted", n).Msg("store: expired games swept")
			}
		}
	}
}
