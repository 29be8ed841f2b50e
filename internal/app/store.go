package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

// SnapshotStore gives the registry best-effort durability: a periodic full
// snapshot to one JSON file, plus an out-of-cycle flush the directory API
// triggers on structural changes. Write failures are logged and never
// surface to clients; durability is not a correctness requirement of live
// gameplay.
type SnapshotStore struct {
	registry *Registry
	path     string
	interval time.Duration
	flush    chan struct{}
}

const defaultSnapshotInterval = 30 * time.Second

func NewSnapshotStore(registry *Registry, path string, interval time.Duration) *SnapshotStore {
	if interval <= 0 {
		interval = defaultSnapshotInterval
	}
	return &SnapshotStore{
		registry: registry,
		path:     path,
		interval: interval,
		flush:    make(chan struct{}, 1),
	}
}

// Load restores the registry from the snapshot file. A missing or corrupt
// file means "no prior state", never a startup failure.
func (s *SnapshotStore) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("module", "app.store").Str("path", s.path).Msg("snapshot unreadable, starting empty")
		}
		return
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn().Err(err).Str("module", "app.store").Str("path", s.path).Msg("snapshot corrupt, starting empty")
		return
	}
	if snap.Rooms == nil {
		snap.Rooms = make(map[domain.RoomID]*domain.Room)
	}
	if snap.Players == nil {
		snap.Players = make(map[domain.PlayerID]*domain.Player)
	}
	if snap.GameStates == nil {
		snap.GameStates = make(map[domain.RoomID]json.RawMessage)
	}
	s.registry.Restore(snap)
}

// Save overwrites the snapshot file atomically: write a temp file in the
// same directory, then rename over the old one, so a crash mid-write
// leaves the previous snapshot intact.
func (s *SnapshotStore) Save() error {
	snap := s.registry.Snapshot()
	snap.Timestamp = time.Now()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Flush requests an out-of-cycle save without blocking the caller. A save
// already pending absorbs the request.
func (s *SnapshotStore) Flush() {
	select {
	case s.flush <- struct{}{}:
	default:
	}
}

// Run drives the periodic snapshot until ctx is canceled, then drains with
// one final save.
func (s *SnapshotStore) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				log.Error().Err(err).Str("module", "app.store").Msg("final snapshot failed")
			} else {
				log.Info().Str("module", "app.store").Str("path", s.path).Msg("final snapshot written")
			}
			return
		case <-ticker.C:
			if err := s.Save(); err != nil {
				log.Error().Err(err).Str("module", "app.store").Msg("periodic snapshot failed")
			}
		case <-s.flush:
			if err := s.Save(); err != nil {
				log.Error().Err(err).Str("module", "app.store").Msg("flush snapshot failed")
			}
		}
	}
}
