package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/ui/theme"
)

// OptionList renders lettered answer options. It is a pure view: the
// caller owns selection and reveal state.
type OptionList struct {
	Options  []string
	Selected int
	Revealed bool
	Correct  int
	Chosen   int
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case o.Revealed && i == o.Correct:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line)
		case o.Revealed && i == o.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line)
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		case i == o.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line)
		}
		s += "\n"
	}
	return s
}
