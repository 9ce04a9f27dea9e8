package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/five82/babyregalo/internal/registry"
)

// Phase is the session lifecycle: Uninitialized -> Loading -> Ready.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Session owns the in-memory snapshot for one run and forwards every change
// to the sink.
type Session struct {
	mu       sync.RWMutex
	phase    Phase
	snapshot registry.Snapshot
	source   Source
	sink     Sink

	saves          int
	lastPersistErr error
}

// NewSession returns an uninitialized session writing through sink.
func NewSession(sink Sink) *Session {
	return &Session{sink: sink}
}

// Begin moves the session into Loading.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Uninitialized {
		return fmt.Errorf("begin load: session is %s", s.phase)
	}
	s.phase = Loading
	return nil
}

// Finish installs the loaded snapshot, marks the session Ready and writes the
// snapshot once so storage reflects what the session shows. When storage could
// not be read the slot is left alone until the first Apply.
func (s *Session) Finish(ctx context.Context, res LoadResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Loading {
		return fmt.Errorf("finish load: session is %s", s.phase)
	}
	s.snapshot = res.Snapshot.Clone()
	s.source = res.Source
	s.phase = Ready
	if readFailed(res.StorageErr) {
		return nil
	}
	s.persistLocked(ctx)
	return nil
}

// readFailed reports a storage error other than an unusable record.
func readFailed(err error) bool {
	var pe *ParseError
	return err != nil && !errors.As(err, &pe)
}

// Apply replaces the snapshot with fn(current) and persists the result. It
// returns ErrNotReady while loading. Persistence failures are logged and
// recorded but do not fail the mutation.
func (s *Session) Apply(ctx context.Context, fn func(registry.Snapshot) registry.Snapshot) (registry.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Ready {
		return registry.Snapshot{}, ErrNotReady
	}
	s.snapshot = fn(s.snapshot.Clone())
	s.persistLocked(ctx)
	return s.snapshot.Clone(), nil
}

func (s *Session) persistLocked(ctx context.Context) {
	if err := s.sink.Write(ctx, s.phase, s.snapshot); err != nil {
		s.lastPersistErr = err
		log.Printf("persist registry: %v", err)
		return
	}
	s.lastPersistErr = nil
	s.saves++
}

// Snapshot returns a copy of the current snapshot.
func (s *Session) Snapshot() registry.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Phase reports the lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Source reports where the initial snapshot came from.
func (s *Session) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// LastPersistErr returns the error from the most recent write, or nil.
func (s *Session) LastPersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersistErr
}

// Saves returns the number of successful writes.
func (s *Session) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Boot runs the whole load sequence and returns a Ready session along with
// the load diagnostics.
func Boot(ctx context.Context, loader Loader, sink Sink, token string) (*Session, LoadResult) {
	sess := NewSession(sink)
	_ = sess.Begin()
	res := loader.Load(ctx, token)
	if res.LinkErr != nil {
		log.Printf("ignoring share link: %v", res.LinkErr)
	}
	if res.StorageErr != nil {
		log.Printf("ignoring stored registry: %v", res.StorageErr)
	}
	_ = sess.Finish(ctx, res)
	return sess, res
}
