// Package config loads babyregalo's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/babyregalo/config.toml
//  3. If the config file doesn't exist, fall back to defaults
//  4. BABYREGALO_* environment variables override whatever the file said
//  5. Fields that are still empty take their defaults
//
// # Default Values
//
//   - Config file: ~/.config/babyregalo/config.toml
//   - Share base URL: https://babyregalo.app/
//   - Storage backend: file
//   - Data directory: ~/.local/share/babyregalo
//   - Log file: <data_dir>/babyregalo.log
//   - Organizer PIN: 1234
//
// # TOML Format
//
//	share_base_url = "https://babyregalo.app/"
//	storage = "sqlite"            # file | sqlite | memory
//	data_dir = "~/.local/share/babyregalo"
//	log_file = "~/.local/share/babyregalo/babyregalo.log"
//	admin_pin = "1234"
//
// All fields are optional. Tilde expansion is performed on paths.
//
// # Environment
//
//	BABYREGALO_SHARE_BASE_URL, BABYREGALO_STORAGE, BABYREGALO_DATA_DIR,
//	BABYREGALO_LOG_FILE, BABYREGALO_ADMIN_PIN
//
// # Error Handling
//
// Missing config files are not an error. Load returns errors for unreadable
// files, malformed TOML, malformed environment values and unknown storage
// backends.
//
// The organizer PIN only toggles a view. It is a shared constant, not a
// credential.
package config
