// Package state owns the registry for the duration of a run.
//
// # Overview
//
// Three pieces cooperate:
//
//	Loader  -> decides the initial snapshot (link token, storage, defaults)
//	Session -> holds the snapshot, applies mutations, tracks the lifecycle
//	Sink    -> writes every change back to storage
//
// # Load Priority
//
// Loader.Load tries its sources in order and stops at the first usable one:
//
//  1. A share-link token that codec.Decode accepts. The link is a frozen
//     snapshot chosen by the organizer; it replaces local state outright and
//     storage is not consulted.
//  2. The record stored under StorageKey, parsed as TOML.
//  3. An empty list with default settings.
//
// Failures along the way come back in LoadResult.LinkErr and
// LoadResult.StorageErr. They are diagnostics only; Load itself cannot fail.
//
// # Lifecycle
//
//	Uninitialized --Begin--> Loading --Finish--> Ready
//
// Session.Apply returns ErrNotReady until the session is Ready, and
// Sink.Write refuses any phase other than Ready, so nothing reaches storage
// while loading is in progress. Finish writes the loaded snapshot once,
// unless storage could not be read at all; then the stored record is left
// untouched until the first Apply.
//
// # Persistence
//
// Every Apply writes the full snapshot through the Sink, replacing the prior
// record. A failed write (quota, I/O) is logged and remembered in
// LastPersistErr for the UI to show; the in-memory snapshot is kept.
//
// # Concurrency
//
// The UI runs commands off the main loop, so Session guards its fields with a
// sync.RWMutex and hands out clones. There is still exactly one writer per
// run: two people holding the same share link each have their own session
// and their own storage, and nothing reconciles them.
package state
