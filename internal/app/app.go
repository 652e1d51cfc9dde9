package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/ui/layout"
)

// headerStatsMsg carries the header counters: completed lessons and the
// average quiz percentage.
type headerStatsMsg struct {
	done   int
	avgPct int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router       *router.Router
	progressRepo store.ProgressRepo
	resultRepo   store.QuizResultRepo
	width        int
	height       int
	done         int
	avgPct       int
}

// newAppModel creates the root model over an initial screen. The repos
// feed the header counters; both may be nil.
func newAppModel(first screen.Screen, progressRepo store.ProgressRepo, resultRepo store.QuizResultRepo) AppModel {
	return AppModel{
		router:       router.New(first),
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadHeaderStats)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.done = msg.done
		m.avgPct = msg.avgPct
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		// Navigation is when quiz scores and completions land, so the
		// header counters reload alongside it.
		return m, tea.Batch(m.router.Update(msg), m.loadHeaderStats)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// loadHeaderStats counts completed lessons and averages quiz scores for
// the header bar.
func (m AppModel) loadHeaderStats() tea.Msg {
	if m.progressRepo == nil || m.resultRepo == nil {
		return headerStatsMsg{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stats headerStatsMsg
	entries, err := m.progressRepo.Overview(ctx)
	if err != nil {
		slog.Warn("failed to load header stats", "error", err)
	} else {
		for _, e := range entries {
			if e.Completed {
				stats.done++
			}
		}
	}

	totals, err := m.resultRepo.Totals(ctx)
	if err != nil {
		slog.Warn("failed to load quiz totals", "error", err)
	} else if totals.Attempts > 0 {
		stats.avgPct = int(math.Round(totals.AvgPercentage))
	}
	return stats
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.done, m.avgPct, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
			}
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over the given initial screen.
func Run(first screen.Screen, progressRepo store.ProgressRepo, resultRepo store.QuizResultRepo) error {
	p := tea.NewProgram(newAppModel(first, progressRepo, resultRepo))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
