package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/render/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pxPerCell scales terminal cells to chart pixels so the one-pixel bar
// gaps stay small next to the bars.
const pxPerCell = 16

// =============================================================================
// SessionBrowserModel - Interactive session browser
// =============================================================================

// SessionBrowserModel is the bubbletea model for browsing sessions. The
// table lists sessions; the selected one is drawn below as bar strips.
type SessionBrowserModel struct {
	Sessions congress.Dataset
	Cursor   int
	Offset   int
	Height   int
	Width    int
}

// NewSessionBrowserModel creates a new browser model.
func NewSessionBrowserModel(ds congress.Dataset) SessionBrowserModel {
	return SessionBrowserModel{
		Sessions: ds,
		Height:   10,
		Width:    80,
	}
}

func (m SessionBrowserModel) Init() tea.Cmd {
	return nil
}

func (m SessionBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sessions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-4, 20)
		// leave room for the header, two strips and their labels
		m.Height = max(msg.Height-16, 3)
	}
	return m, nil
}

func (m SessionBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bipartisan Index"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Sessions) == 0 {
		b.WriteString(listDimStyle.Render("  no sessions"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Sessions))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := &m.Sessions[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, s.Description(), chamberSplit(s, congress.Senate), chamberSplit(s, congress.House)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Session", "Senate", "House").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	s := &m.Sessions[m.Cursor]
	for _, c := range s.Chambers() {
		scores, _ := s.Scores(c)
		agg := chart.Aggregate(scores, s.StartYear)
		b.WriteString(panelLine(sink.InfoPanels(c, agg)))
		b.WriteString("\n")
		b.WriteString(barStrip(scores, agg, m.Width))
		b.WriteString("\n\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sessions))))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// chamberSplit summarizes one chamber as "D 50 - 50", or "—" when absent.
func chamberSplit(s *congress.Session, c congress.Chamber) string {
	scores, ok := s.Scores(c)
	if !ok {
		return "—"
	}
	agg := chart.Aggregate(scores, s.StartYear)
	return string(agg.Majority) + " " + agg.Distribution()
}

// panelLine joins the info panels on one line with colored party badges.
func panelLine(panels []sink.Panel) string {
	parts := make([]string, len(panels))
	for i, p := range panels {
		var line strings.Builder
		for _, seg := range p {
			if seg.Badge != "" {
				line.WriteString(partyStyle(seg.Badge).Bold(true).Render(string(seg.Badge)))
				continue
			}
			line.WriteString(StyleValue.Render(seg.Text))
		}
		parts[i] = line.String()
	}
	return strings.Join(parts, listDimStyle.Render(" │ "))
}

// barStrip draws the chart geometry into width terminal cells. Each cell
// takes the party color of the bar under its center; the cell holding the
// middle of the zero-line slot is drawn as a dim rule.
func barStrip(scores []congress.Score, agg chart.Aggregates, width int) string {
	if width <= 0 || len(scores) == 0 {
		return ""
	}
	geom := chart.Bars(scores, agg, float64(width*pxPerCell))

	zeroCol := -1
	if geom.ZeroLineX >= 0 {
		zeroCol = min(int((geom.ZeroLineX+chart.ZeroLineWidth/2)/pxPerCell), width-1)
	}

	var b strings.Builder
	bar := 0
	for col := range width {
		if col == zeroCol {
			b.WriteString(listDimStyle.Render("│"))
			continue
		}
		x := (float64(col) + 0.5) * pxPerCell
		for bar < len(geom.Bars)-1 && x >= geom.Bars[bar+1].X {
			bar++
		}
		g := geom.Bars[bar]
		if x >= g.X+g.Width+chart.BarGap {
			b.WriteString(" ")
			continue
		}
		b.WriteString(partyStyle(g.Party).Render("█"))
	}
	return b.String()
}
