// Package ui holds the color themes used by report output. Plain ANSI codes
// serve tabular output; lipgloss styles serve headers and status badges.
package ui
