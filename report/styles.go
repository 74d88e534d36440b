package report

import "github.com/charmbracelet/lipgloss"

// Style definitions.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)

	WinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling. Off for pipes and --no-color.
	Color bool
}

func (o Options) render(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

func (o Options) signed(profitable bool, text string) string {
	if profitable {
		return o.render(WinStyle, text)
	}
	return o.render(LossStyle, text)
}
