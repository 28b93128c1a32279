// Package config loads the Autiplay configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/autiplay/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Profile: local
//   - Theme: light (the in-session toggle is never written back)
//   - Database: ~/.local/share/autiplay/autiplay.db
//   - Sounds: ~/.local/share/autiplay/sounds/{rain,ocean,forest}.mp3
//   - Log file: ~/.local/state/autiplay/autiplay.log
//   - SSH: 127.0.0.1:23234, host key ~/.local/share/autiplay/host_ed25519
//
// # TOML Format
//
//	profile   = "local"
//	theme     = "dark"
//	db_path   = "~/.local/share/autiplay/autiplay.db"
//	sound_dir = "~/Music/calm"
//	player    = ["mpv", "--no-video", "--loop=inf"]
//
//	[ssh]
//	host         = "0.0.0.0"
//	port         = 23234
//	idle_timeout = "10m"
//
// Tilde expansion is performed for every path field.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and out-of-range values. A missing config
// file is not an error.
package config
