package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

func TestSessionBrowserNavigation(t *testing.T) {
	m := NewSessionBrowserModel(testDataset())
	m.Height = 1

	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	next, _ := m.Update(down)
	m = next.(SessionBrowserModel)
	if m.Cursor != 1 || m.Offset != 1 {
		t.Fatalf("after down: cursor=%d offset=%d, want 1, 1", m.Cursor, m.Offset)
	}

	next, _ = m.Update(down)
	m = next.(SessionBrowserModel)
	if m.Cursor != 1 {
		t.Errorf("cursor should stop at the last session, got %d", m.Cursor)
	}

	next, _ = m.Update(up)
	m = next.(SessionBrowserModel)
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("after up: cursor=%d offset=%d, want 0, 0", m.Cursor, m.Offset)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestSessionBrowserWindowSize(t *testing.T) {
	m := NewSessionBrowserModel(testDataset())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(SessionBrowserModel)
	if m.Width != 96 || m.Height != 24 {
		t.Errorf("size = %dx%d, want 96x24", m.Width, m.Height)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	m = next.(SessionBrowserModel)
	if m.Width != 20 || m.Height != 3 {
		t.Errorf("small window size = %dx%d, want 20x3", m.Width, m.Height)
	}
}

func TestSessionBrowserView(t *testing.T) {
	m := NewSessionBrowserModel(testDataset())
	view := m.View()

	for _, want := range []string{
		"117th Congress (2021 - 2022)",
		"116th Congress (2019 - 2020)",
		"D 2 - 1",
		"Majority:",
		"[1/2]",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if empty := NewSessionBrowserModel(nil).View(); !strings.Contains(empty, "no sessions") {
		t.Error("empty dataset should say so")
	}
}

func TestChamberSplit(t *testing.T) {
	ds := testDataset()
	if got := chamberSplit(&ds[0], congress.House); got != "—" {
		t.Errorf("absent chamber = %q", got)
	}
	// tie in 2019 goes to the executive party
	if got := chamberSplit(&ds[1], congress.House); got != "R 1 - 1" {
		t.Errorf("116th House = %q, want %q", got, "R 1 - 1")
	}
}

func TestBarStrip(t *testing.T) {
	scores := testDataset()[0].SenateScores
	agg := chart.Aggregate(scores, 2021)

	strip := barStrip(scores, agg, 40)
	if n := strings.Count(strip, "│"); n != 1 {
		t.Errorf("zero line cells = %d, want 1", n)
	}
	if n := strings.Count(strip, "█"); n != 39 {
		t.Errorf("bar cells = %d, want 39", n)
	}

	positive := []congress.Score{{Party: congress.Republican, Score: 1}, {Party: congress.Democrat, Score: 1}}
	if strings.Contains(barStrip(positive, chart.Aggregate(positive, 2021), 40), "│") {
		t.Error("no negative score means no zero line")
	}

	if barStrip(nil, chart.Aggregates{}, 40) != "" || barStrip(scores, agg, 0) != "" {
		t.Error("empty input should draw nothing")
	}
}
