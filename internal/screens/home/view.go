package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/ui/components"
	"github.com/devika/tutora/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleArtFull = ` ████████╗██╗   ██╗████████╗ ██████╗ ██████╗  █████╗
 ╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗██╔══██╗
    ██║   ██║   ██║   ██║   ██║   ██║██████╔╝███████║
    ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗██╔══██║
    ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║██║  ██║
    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const titleArtCompact = "T · U · T · O · R · A"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleArtFull
	if compact {
		art = titleArtCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s homeStats, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	avgStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			doneStyle.Render(fmt.Sprintf("✓%d/%d", s.completed, s.lessons)),
			quizStyle.Render(fmt.Sprintf("▣%d", s.quizzes)),
			avgText(s, true, avgStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			doneStyle.Render(fmt.Sprintf("✓ %d/%d lessons", s.completed, s.lessons)),
			quizStyle.Render(fmt.Sprintf("▣ %d quizzes", s.quizzes)),
			avgText(s, false, avgStyle, dimStyle),
		)
	}

	return components.StatPanel(stats, cw)
}

func avgText(s homeStats, compact bool, active, dim lipgloss.Style) string {
	if s.quizzes == 0 {
		if compact {
			return dim.Render("★ -")
		}
		return dim.Render("★ no quizzes yet")
	}
	if compact {
		return active.Render(fmt.Sprintf("★%d%%", s.avgPct))
	}
	return active.Render(fmt.Sprintf("★ %d%% avg", s.avgPct))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderOfflineBanner renders a warning banner when no LLM API key is configured.
func renderOfflineBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No API key set, lessons use canned content (see tutora --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	text := fmt.Sprintf("New version %s available, run: tutora update", latestVersion)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderHomeFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func renderHomeFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
