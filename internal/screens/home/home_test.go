package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMascotFor(t *testing.T) {
	tests := []struct {
		name  string
		stats homeStats
		want  MascotVariant
	}{
		{"fresh start", homeStats{}, MascotIdle},
		{"strong average", homeStats{lessons: 2, completed: 2, quizzes: 3, avgPct: 85}, MascotCelebrating},
		{"backlog", homeStats{lessons: 5, completed: 1}, MascotAlert},
		{"backlog wins over average", homeStats{lessons: 5, completed: 0, quizzes: 3, avgPct: 90}, MascotAlert},
		{"good average needs attempts", homeStats{lessons: 1, completed: 1, avgPct: 100}, MascotIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mascotFor(tt.stats); got != tt.want {
				t.Errorf("mascotFor(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestLoadStatsWithoutStore(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "", false)

	msg := h.loadStats()
	loaded, ok := msg.(statsLoadedMsg)
	if !ok {
		t.Fatalf("expected statsLoadedMsg, got %T", msg)
	}
	if loaded.stats != (homeStats{}) {
		t.Errorf("stats = %+v, want zero values", loaded.stats)
	}
}

func TestStatsLoadedUpdatesMascot(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "", false)

	updated, _ := h.Update(statsLoadedMsg{stats: homeStats{lessons: 4, completed: 4, quizzes: 2, avgPct: 90}})
	hs := updated.(*HomeScreen)
	if hs.stats.completed != 4 {
		t.Errorf("completed = %d, want 4", hs.stats.completed)
	}
	if hs.mascotVariant != MascotCelebrating {
		t.Errorf("mascot = %v, want MascotCelebrating", hs.mascotVariant)
	}
}

func TestMenuNavigation(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "", false)

	if h.menu.Selected != 0 {
		t.Fatalf("initial selection = %d, want 0", h.menu.Selected)
	}

	updated, _ := h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	hs := updated.(*HomeScreen)
	if hs.menu.Selected != 1 {
		t.Errorf("selection after down = %d, want 1", hs.menu.Selected)
	}

	updated, _ = hs.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	hs = updated.(*HomeScreen)
	if hs.menu.Selected != 0 {
		t.Errorf("selection after up = %d, want 0", hs.menu.Selected)
	}
}

func TestExitEmitsQuit(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "", false)

	// Navigate to the last item (Exit) and press enter.
	scr := h
	for i := 0; i < len(h.menuLabels)-1; i++ {
		updated, _ := scr.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		scr = updated.(*HomeScreen)
	}
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command from Exit item")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg from Exit item")
	}
}

func TestUpdateNoteShown(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "v1.0.0", false)

	updated, _ := h.Update(updateAvailableMsg{version: "v1.2.0"})
	hs := updated.(*HomeScreen)

	view := hs.View(110, 34)
	if !strings.Contains(view, "v1.2.0") {
		t.Error("expected update note with new version in view")
	}
}

func TestOfflineBannerShown(t *testing.T) {
	h := New(nil, nil, nil, nil, nil, nil, "", true)

	view := h.View(110, 34)
	if !strings.Contains(view, "No API key") {
		t.Error("expected offline banner in view")
	}
}
