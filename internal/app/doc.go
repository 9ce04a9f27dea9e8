// Package app is the composition root for babyregalo.
//
// # Overview
//
// Open wires configuration, storage and the registry session; the CLI
// commands use it directly. Run does the same for the TUI, after pointing the
// standard logger at the configured log file.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()    Read config.toml + BABYREGALO_* env
//	       ├─────> startLogging()   tea.LogToFile(log_file)
//	       ├─────> storage.Open()   file | sqlite | memory
//	       ├─────> state.Boot()     link token > stored record > defaults
//	       ├─────> prefs.Load()     theme and startup filter
//	       └─────> ui.Run()         Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Open/Run):
//   - Config file unreadable or invalid
//   - Log file or storage backend cannot be opened
//
// Recoverable errors (logged, the run continues):
//   - A share link that does not decode
//   - A stored record that does not parse
//   - Failed writes to storage
//
// # Usage Example
//
//	env, err := app.Open(ctx, app.Options{Link: link})
//	if err != nil {
//		return err
//	}
//	defer env.Close()
//	fmt.Println(env.Session.Snapshot().Settings.BabyName)
package app
