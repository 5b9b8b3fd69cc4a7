package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: one lime accent on grays.
const (
	ColorLime     = "154" // Primary accent
	ColorLimeDim  = "106" // Key letters, inactive accents
	ColorGreen    = "34"  // Call key
	ColorWhite    = "255" // Names, query
	ColorGray     = "245" // Numbers, labels
	ColorDarkGray = "238" // Key borders, separators
	ColorRed      = "196" // Errors
)

// Styles holds all UI styles for keypad rendering.
type Styles struct {
	Header   lipgloss.Style
	Query    lipgloss.Style
	Hint     lipgloss.Style
	Name     lipgloss.Style
	Number   lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style

	Key        lipgloss.Style
	KeyLetters lipgloss.Style
	CallKey    lipgloss.Style
	Panel      lipgloss.Style
}

// DefaultStyles returns styles for color terminals.
func DefaultStyles() Styles {
	key := lipgloss.NewStyle().
		Width(7).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDarkGray))

	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Query:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Name:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Number:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),

		Key:        key.Foreground(lipgloss.Color(ColorWhite)),
		KeyLetters: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),
		CallKey:    key.Foreground(lipgloss.Color(ColorGreen)).BorderForeground(lipgloss.Color(ColorGreen)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
	}
}

// NoColorStyles returns styles without color, keeping layout.
func NoColorStyles() Styles {
	key := lipgloss.NewStyle().Width(7).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	return Styles{
		Header:     lipgloss.NewStyle(),
		Query:      lipgloss.NewStyle(),
		Hint:       lipgloss.NewStyle(),
		Name:       lipgloss.NewStyle(),
		Number:     lipgloss.NewStyle(),
		Selected:   lipgloss.NewStyle().Reverse(true),
		Dim:        lipgloss.NewStyle(),
		Error:      lipgloss.NewStyle(),
		Status:     lipgloss.NewStyle(),
		Key:        key,
		KeyLetters: lipgloss.NewStyle(),
		CallKey:    key,
		Panel:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
