// Package viz replays a finished generation run in the terminal,
// painting placements one per frame. Each terminal row shows two grid
// rows using half-block characters, so a 128x128 run fits a tall
// terminal; presets meant for live viewing stay small.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/grid"
)

type TickMsg time.Time

// Model replays the placement sequence of a completed run onto a fresh
// grid, one placement per tick.
type Model struct {
	g          *grid.Grid
	placements []engine.Placement
	step       int
	running    bool
	fps        int
	engineName string

	// placements per tick; >1 keeps big runs watchable
	stride int
}

func NewModel(res *engine.Result, engineName string, fps int) Model {
	g, _ := grid.New(res.Grid.W(), res.Grid.H())

	stride := len(res.Placements) / (fps * 30)
	if stride < 1 {
		stride = 1
	}

	return Model{
		g:          g,
		placements: res.Placements,
		running:    true,
		fps:        fps,
		engineName: engineName,
		stride:     stride,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stride && m.step < len(m.placements); i++ {
		p := m.placements[m.step]
		m.g.Set(p.Cell, p.Color)
		m.step++
	}
}

func (m *Model) reset() {
	m.g, _ = grid.New(m.g.W(), m.g.H())
	m.step = 0
	m.running = true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("colorfield live · %s", m.engineName)))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(m.renderGrid()))
	b.WriteString("\n")

	status := "running"
	if m.step >= len(m.placements) {
		status = "done"
	} else if !m.running {
		status = pausedStyle.Render("paused")
	}

	b.WriteString(labelStyle.Render("step"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d", m.step, len(m.placements))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("status"))
	b.WriteString(valueStyle.Render(status))
	b.WriteString(helpStyle.Render("\nspace pause · r restart · q quit"))

	return b.String()
}

// renderGrid draws two grid rows per terminal line: the upper half
// block takes the even row's color, the background the odd row's.
func (m Model) renderGrid() string {
	var b strings.Builder
	for row := 0; row < m.g.H(); row += 2 {
		for col := 0; col < m.g.W(); col++ {
			fg := m.cellColor(row, col)
			var bg lipgloss.TerminalColor = emptyCell
			if row+1 < m.g.H() {
				bg = m.cellColor(row+1, col)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(fg).Background(bg).Render("▀"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) cellColor(row, col int) lipgloss.TerminalColor {
	c, ok := m.g.ColorAt(m.g.Index(row, col))
	if !ok {
		return emptyCell
	}
	return lipgloss.Color(c.String())
}

// RunLive replays a result in the terminal until the user quits.
func RunLive(res *engine.Result, engineName string, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	p := tea.NewProgram(NewModel(res, engineName, fps))
	_, err := p.Run()
	return err
}
