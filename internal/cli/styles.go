package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors of one display theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Border    lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
}

var (
	LightPalette = Palette{
		Primary:   lipgloss.Color("#000000"),
		Secondary: lipgloss.Color("#666666"),
		Border:    lipgloss.Color("#EAEAEA"),
		Accent:    lipgloss.Color("#0070F3"),
		Success:   lipgloss.Color("#0070F3"),
		Error:     lipgloss.Color("#F31260"),
		Warning:   lipgloss.Color("#F5A623"),
	}

	DarkPalette = Palette{
		Primary:   lipgloss.Color("#FFFFFF"),
		Secondary: lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#333333"),
		Accent:    lipgloss.Color("#0070F3"),
		Success:   lipgloss.Color("#17C964"),
		Error:     lipgloss.Color("#F31260"),
		Warning:   lipgloss.Color("#F5A623"),
	}
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
)

// Styles renders terminal output in one theme.
type Styles struct {
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Subtle   lipgloss.Style
	Amount   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles returns the dark styles when dark is set, the light ones otherwise.
func NewStyles(dark bool) Styles {
	p := LightPalette
	if dark {
		p = DarkPalette
	}
	return Styles{
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		Subtle:  lipgloss.NewStyle().Foreground(p.Secondary),
		Amount:  lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}

// FormatSuccess formats a success message with icon.
func (s Styles) FormatSuccess(message string) string {
	return s.Success.Render(SuccessIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func (s Styles) FormatWarning(message string) string {
	return s.Warning.Render(WarningIcon + " " + message)
}

// FormatError formats an error message with icon.
func (s Styles) FormatError(message string) string {
	return s.Error.Render(ErrorIcon + " " + message)
}

// Swatch renders a colored block for a hex color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// Bar renders a horizontal bar of width cells filled to fraction, clamped to
// [0, 1]. Fractions above 1 render in the error color.
func (s Styles) Bar(fraction float64, width int) string {
	over := fraction > 1
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if over {
		return s.Error.Render(bar)
	}
	return s.Header.Render(bar)
}
