package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for report output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success marks passing kernels.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error marks mismatches and failures.
	Error string
	// Info is used for informational messages.
	Info      string
	Bold      string
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Dim    lipgloss.Style
}

var (
	darkStyles = Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Pass:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
	lightStyles = Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27")),
		Pass:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	plainStyles = Styles{
		Header: lipgloss.NewStyle(),
		Pass:   lipgloss.NewStyle(),
		Fail:   lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// CurrentStyles returns the lipgloss styles matching the active theme.
func CurrentStyles() Styles {
	switch GetCurrentTheme().Name {
	case "none":
		return plainStyles
	case "light":
		return lightStyles
	default:
		return darkStyles
	}
}

// SetTheme changes the active theme by name: "dark", "light", "none" or
// "auto". Auto asks the terminal for its background color. Unknown names
// select the dark theme.
func SetTheme(name string) {
	if name == "auto" {
		name = "dark"
		if !lipgloss.HasDarkBackground() {
			name = "light"
		}
	}

	themeMutex.Lock()
	defer themeMutex.Unlock()
	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme from the noColor flag and the environment.
// The NO_COLOR variable (https://no-color.org/) disables colors when present.
func InitTheme(noColor bool) {
	if noColor {
		SetTheme("none")
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetTheme("none")
		return
	}
	SetTheme("dark")
}
