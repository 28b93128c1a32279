// Package logtail reads and formats the tail of the AutiPlay log file.
//
// Read extracts the last N lines with a ring buffer, so memory stays
// proportional to N rather than to the file size. Filter drops lines below a
// charmbracelet/log level; continuation lines stay with the entry they belong
// to. Colorizer highlights the level label for terminal output.
//
// A missing log file is not an error: Read returns no lines.
package logtail
