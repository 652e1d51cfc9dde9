package home

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/screens/history"
	"github.com/devika/tutora/internal/screens/library"
	"github.com/devika/tutora/internal/screens/newlesson"
	"github.com/devika/tutora/internal/selfupdate"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/tutor"
	"github.com/devika/tutora/internal/ui/components"
)

// homeStats summarizes stored progress for the dashboard.
type homeStats struct {
	lessons   int
	completed int
	quizzes   int
	avgPct    int
}

type statsLoadedMsg struct {
	stats homeStats
}

type updateAvailableMsg struct {
	version string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	stats         homeStats
	mascotVariant MascotVariant
	offline       bool
	latestVersion string
	updateChecked bool

	progressRepo store.ProgressRepo
	resultRepo   store.QuizResultRepo
	checker      *selfupdate.Checker
	version      string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. st, checker, and version may be zero when
// the corresponding feature is unavailable; offline marks a missing LLM
// provider, which only affects the banner since lessons fall back to
// canned content.
func New(lessonService *lessons.Service, generator quizgen.Generator, tutorService *tutor.Service, st *store.Store, recorder quiz.Recorder, checker *selfupdate.Checker, version string, offline bool) *HomeScreen {
	var (
		progressRepo store.ProgressRepo
		resultRepo   store.QuizResultRepo
	)
	if st != nil {
		progressRepo = st.ProgressRepo()
		resultRepo = st.QuizResultRepo()
	}

	menuLabels := []string{"New Lesson", "Library", "History", "Exit"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: newlesson.New(lessonService, generator, tutorService, progressRepo, recorder),
				}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: library.New(progressRepo, generator, tutorService, recorder),
				}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(resultRepo)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:         components.NewMenu(items),
		menuLabels:   menuLabels,
		offline:      offline,
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
		checker:      checker,
		version:      version,
	}
}

// Init reloads the dashboard stats. It runs again each time a child
// screen pops back, so finished lessons and quizzes show up immediately.
func (h *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{h.loadStats}
	if h.checker != nil && !h.updateChecked {
		h.updateChecked = true
		cmds = append(cmds, h.checkUpdate)
	}
	return tea.Batch(cmds...)
}

func (h *HomeScreen) loadStats() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s homeStats
	if h.progressRepo != nil {
		overview, err := h.progressRepo.Overview(ctx)
		if err != nil {
			slog.Warn("failed to load lesson overview", "error", err)
		}
		s.lessons = len(overview)
		for _, ls := range overview {
			if ls.Completed {
				s.completed++
			}
		}
	}
	if h.resultRepo != nil {
		totals, err := h.resultRepo.Totals(ctx)
		if err != nil {
			slog.Warn("failed to load quiz totals", "error", err)
		} else {
			s.quizzes = totals.Attempts
			s.avgPct = int(math.Round(totals.AvgPercentage))
		}
	}
	return statsLoadedMsg{stats: s}
}

func (h *HomeScreen) checkUpdate() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.checker.Check(ctx, &selfupdate.CheckInput{Version: h.version})
	if err != nil || !result.UpdateAvailable {
		return nil
	}
	return updateAvailableMsg{version: result.LatestVersion}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		h.mascotVariant = mascotFor(msg.stats)
		return h, nil

	case updateAvailableMsg:
		h.latestVersion = msg.version
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// mascotFor picks the mascot pose from stored progress. A backlog of
// unfinished lessons gets a nudge, a strong quiz average gets a cheer.
func mascotFor(s homeStats) MascotVariant {
	switch {
	case s.lessons-s.completed >= 3:
		return MascotAlert
	case s.quizzes > 0 && s.avgPct >= 80:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	// 1. Title
	sections = append(sections, renderTitle(cw, compact))

	// 2. Mascot (full mode only)
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	// 3. Stats bar (double-bordered, same width)
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	// 4. Notices
	if h.offline {
		sections = append(sections, renderOfflineBanner(cw))
	}
	if h.latestVersion != "" {
		sections = append(sections, renderUpdateNote(h.latestVersion, cw))
	}

	// 5. Menu (same width box)
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	// Wrap in the outer frame, centered in the full area
	return renderHomeFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
