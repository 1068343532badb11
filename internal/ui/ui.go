// Package ui runs the dashboard as a full-screen Bubble Tea program.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameFunc renders one dashboard frame for the given terminal width.
type FrameFunc func(ctx context.Context, width int) string

// Model shows the most recent frame and requests a new one every interval.
type Model struct {
	ctx      context.Context
	frame    FrameFunc
	interval time.Duration

	latest   string
	rendered time.Time
	width    int
	height   int
	quitting bool
}

func New(ctx context.Context, frame FrameFunc, interval time.Duration) *Model {
	return &Model{
		ctx:      ctx,
		frame:    frame,
		interval: interval,
	}
}

// Messages
type (
	tickMsg  struct{}
	frameMsg struct {
		text string
		at   time.Time
	}
)

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{} })
}

// frameCmd samples off the update loop; the disk I/O section blocks for a
// few milliseconds.
func (m *Model) frameCmd() tea.Cmd {
	width := m.width
	return func() tea.Msg {
		return frameMsg{text: m.frame(m.ctx, width), at: time.Now()}
	}
}

func (m *Model) Init() tea.Cmd { return m.frameCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case frameMsg:
		m.latest = msg.text
		m.rendered = msg.at
		return m, tickCmd(m.interval)
	case tickMsg:
		return m, m.frameCmd()
	}
	return m, nil
}

// Styles
var (
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.latest == "" {
		return subtleStyle.Render("Sampling...")
	}
	status := fmt.Sprintf("q quit  refreshed %s  every %s",
		m.rendered.Format("15:04:05"), m.interval)
	return m.latest + subtleStyle.Render(status)
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
