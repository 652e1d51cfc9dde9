package home

import (
	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Amber, star eyes. Strong quiz average
	MascotAlert                            // Rose, exclamation. Unfinished lessons piling up
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ abc │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ◡  │
│ abc │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ○  │
│ abc │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotAlert:
		art = mascotAlert
		fg = theme.Error
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
