// Package format renders durations, rates, byte counts and progress bars for
// the CLI reports.
package format
