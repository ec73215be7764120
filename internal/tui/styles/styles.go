package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultAccent is the accent color used until SetAccent is called.
const DefaultAccent = "#A78BFA"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color(DefaultAccent) // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981")     // Green
	WarningColor   = lipgloss.Color("#F59E0B")     // Amber
	ErrorColor     = lipgloss.Color("#F87171")     // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF")     // Gray
	SurfaceColor   = lipgloss.Color("#1F2937")     // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB")     // Light text
	BorderColor    = lipgloss.Color("#6B7280")     // Gray (gray-500)

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Operation status colors
	StatusRunning   = lipgloss.Color("#60A5FA") // Blue
	StatusSucceeded = lipgloss.Color("#10B981") // Green
	StatusFailed    = lipgloss.Color("#F87171") // Red

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Spinner overlay shown while the loading signal is on
	Spinner = lipgloss.NewStyle().
		Foreground(PrimaryColor)

	Overlay = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(PrimaryColor).
		Padding(0, 1)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Footer / status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)
)

var accentMu sync.Mutex

// SetAccent recolors every accent-derived style. The color is expected to
// be a validated hex string; an empty string restores DefaultAccent.
func SetAccent(hex string) {
	if hex == "" {
		hex = DefaultAccent
	}
	accentMu.Lock()
	defer accentMu.Unlock()

	PrimaryColor = lipgloss.Color(hex)
	Primary = Primary.Foreground(PrimaryColor)
	Title = Title.Foreground(PrimaryColor)
	Spinner = Spinner.Foreground(PrimaryColor)
	Overlay = Overlay.Background(PrimaryColor)
}

// StatusColor returns the color for a given operation status
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "running":
		return StatusRunning
	case "ok":
		return StatusSucceeded
	case "failed":
		return StatusFailed
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for a given operation status
func StatusIcon(status string) string {
	switch status {
	case "running":
		return "●"
	case "ok":
		return "✓"
	case "failed":
		return "✗"
	default:
		return "○"
	}
}
