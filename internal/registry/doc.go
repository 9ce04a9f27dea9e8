// Package registry defines the gift registry data model and the pure
// transformations applied to it.
//
// # Overview
//
// A Snapshot is the whole registry: an ordered list of gifts plus the event
// settings. Every change is expressed as a method that returns a new Snapshot
// and leaves the receiver untouched:
//
//	s = s.ReplaceList([]string{"Pañales", "Bañera"}, nil)
//	s = s.Claim(s.Gifts[0].ID, "María")
//	s = s.Release(s.Gifts[0].ID)
//	s = s.UpdateSettings(registry.SettingsPatch{HostPhone: &phone})
//
// None of these perform I/O. Persisting the result is the job of
// internal/state, and turning it into a share link is the job of
// internal/codec and internal/share.
//
// # Claims
//
// ClaimedBy is set exactly when IsClaimed is true. Claim trims the guest name
// and ignores blank names so the invariant always holds. Claiming an already
// claimed gift silently replaces the previous guest: two guests holding
// separate copies of a shared link cannot see each other's claims, and the
// registry does not pretend otherwise.
//
// # List edits
//
// ReplaceList matches each organizer line to an existing gift by trimmed,
// Unicode case-folded name. Matches keep their id, description, category
// and claim; everything else is new. When two lines match the same gift only the first
// inherits it, so ids stay unique.
//
// # Guest view
//
// Visible implements the guest list filters (all, available, claimed) and the
// name search.
package registry
