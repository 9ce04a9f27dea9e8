package state

import (
	"context"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/babyregalo/internal/codec"
	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/storage"
)

const (
	// StorageKey is the slot holding the persisted registry.
	StorageKey = "baby_shower_registry_data"
	// TokenParam is the share-link query parameter carrying the token.
	TokenParam = "d"
)

// Source records where the session's initial snapshot came from.
type Source int

const (
	SourceDefaults Source = iota
	SourceStorage
	SourceLink
)

func (s Source) String() string {
	switch s {
	case SourceLink:
		return "link"
	case SourceStorage:
		return "storage"
	default:
		return "defaults"
	}
}

// ParseError reports a stored record that could not be used.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse stored registry: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadResult is the outcome of Loader.Load. LinkErr and StorageErr carry the
// failures that were skipped over; neither stops loading.
type LoadResult struct {
	Snapshot   registry.Snapshot
	Source     Source
	LinkErr    error
	StorageErr error
}

// Loader picks the authoritative initial snapshot: a decodable link token
// wins outright, then the persisted record, then defaults.
type Loader struct {
	Storage storage.Storage
	Key     string // empty uses StorageKey
}

// Load never fails; every problem degrades to the next source.
func (l Loader) Load(ctx context.Context, token string) LoadResult {
	var res LoadResult

	if strings.TrimSpace(token) != "" {
		snap, err := codec.Decode(token)
		if err == nil {
			res.Snapshot = snap
			res.Source = SourceLink
			return res
		}
		res.LinkErr = err
	}

	if l.Storage != nil {
		raw, ok, err := l.Storage.Get(ctx, l.key())
		switch {
		case err != nil:
			res.StorageErr = err
		case ok:
			snap, err := ParseRecord(raw)
			if err == nil {
				res.Snapshot = snap
				res.Source = SourceStorage
				return res
			}
			res.StorageErr = err
		}
	}

	res.Snapshot = registry.Empty()
	res.Source = SourceDefaults
	return res
}

func (l Loader) key() string {
	if l.Key == "" {
		return StorageKey
	}
	return l.Key
}

// MarshalRecord renders the snapshot as the TOML record kept in storage.
func MarshalRecord(s registry.Snapshot) (string, error) {
	if s.Gifts == nil {
		s.Gifts = []registry.Gift{}
	}
	bytes, err := toml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal registry: %w", err)
	}
	return string(bytes), nil
}

// ParseRecord reads a stored record. Missing gifts or settings take their
// defaults; malformed text or broken invariants yield a *ParseError.
func ParseRecord(raw string) (registry.Snapshot, error) {
	var rec struct {
		Gifts    *[]registry.Gift   `toml:"gifts"`
		Settings *registry.Settings `toml:"settings"`
	}
	if err := toml.Unmarshal([]byte(raw), &rec); err != nil {
		return registry.Snapshot{}, &ParseError{Err: err}
	}

	snap := registry.Empty()
	if rec.Gifts != nil {
		snap.Gifts = *rec.Gifts
		if snap.Gifts == nil {
			snap.Gifts = []registry.Gift{}
		}
	}
	if rec.Settings != nil {
		snap.Settings = *rec.Settings
	}
	if err := snap.Validate(); err != nil {
		return registry.Snapshot{}, &ParseError{Err: err}
	}
	return snap, nil
}
