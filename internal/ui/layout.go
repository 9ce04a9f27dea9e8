package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width for the side-by-side organizer panes.
	LayoutWideWidth = 110
)

// Input limits.
const (
	// GuestNameLimit caps the name typed into the claim dialog.
	GuestNameLimit = 60

	// SettingLimit caps the organizer's baby name and phone fields.
	SettingLimit = 80

	// PINLimit caps the organizer PIN prompt.
	PINLimit = 12
)

// Timing constants.
const (
	// MutationTimeout bounds a single persisted change.
	MutationTimeout = 2 * time.Second

	// NoticeDuration is how long transient errors stay in the header.
	NoticeDuration = 4 * time.Second
)
