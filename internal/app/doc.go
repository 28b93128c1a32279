// Package app is the composition root of AutiPlay.
//
// Open loads config.toml, applies command-line overrides and opens the log
// file and the SQLite store. Run starts the local TUI with an external audio
// player; Serve hosts the same UI over SSH, one profile per SSH user, with
// sounds disabled. Progress and Reset back the non-interactive commands.
//
// The TUI owns the terminal, so logs only go to the file configured by
// log_path. The SSH server also mirrors them to stderr.
package app
