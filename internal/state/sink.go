package state

import (
	"context"
	"errors"

	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/storage"
)

// ErrNotReady is returned for writes and mutations attempted before loading
// has finished.
var ErrNotReady = errors.New("registry is still loading")

// Sink writes the current snapshot to storage, replacing the prior record.
type Sink struct {
	Storage storage.Storage
	Key     string // empty uses StorageKey
}

// Write persists snap. Writes are only legal once the session is Ready.
func (s Sink) Write(ctx context.Context, phase Phase, snap registry.Snapshot) error {
	if phase != Ready {
		return ErrNotReady
	}
	if s.Storage == nil {
		return nil
	}
	record, err := MarshalRecord(snap)
	if err != nil {
		return err
	}
	key := s.Key
	if key == "" {
		key = StorageKey
	}
	return s.Storage.Set(ctx, key, record)
}
