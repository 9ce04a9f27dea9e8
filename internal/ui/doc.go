// Package ui provides the terminal interface for a gift registry.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the view state and a copy of
// the registry snapshot; every change goes through state.Session.Apply in a
// tea.Cmd, and the resulting snapshot comes back as a mutationMsg. The model
// never edits the snapshot directly.
//
// # Package Structure
//
//   - app.go: Model, Update/View, messages and commands, Run
//   - guest.go: gift list, filter, search and the claim flow
//   - organizer.go: settings editors, list textarea, reservations, share link
//   - modal.go: claim and PIN dialogs
//   - header.go: status bar, command bar, titled boxes
//   - help.go: keyboard shortcut overlay
//   - theme.go, style_helpers.go: palettes and lipgloss helpers
//
// # Views
//
//   - Guest: every gift with its status. f cycles Todos/Libres/Elegidos, /
//     searches by name, enter opens the claim dialog for a free gift.
//   - Organizer: reached with a and the shared PIN. Edits the baby name, the
//     host phone and the gift list (one per line), lists reservations with a
//     release action, and copies the share link.
//
// # Clipboard
//
// After a successful claim, if the host left a phone number, the WhatsApp
// link is copied to the clipboard. The share link is copied on ctrl+y. The
// "copied" marker clears after share.CopiedFor.
//
// # Themes
//
// T cycles themes and stores the choice in the prefs file together with the
// last guest filter.
package ui
