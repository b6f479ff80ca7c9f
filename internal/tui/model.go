package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Navigator is what the arrow keys act on; [pager.Controller] implements it.
type Navigator interface {
	Advance()
	Retreat()
}

type frameMsg string

type closedMsg struct{}

type model struct {
	title  string
	frames <-chan string
	nav    Navigator
	frame  string
}

func newModel(title string, frames <-chan string, nav Navigator) model {
	return model{title: title, frames: frames, nav: nav}
}

// waitFrame blocks for the next rendered frame.
func waitFrame(frames <-chan string) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return closedMsg{}
		}
		return frameMsg(frame)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitFrame(m.frames),
		tea.HideCursor,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "left", "p", "h":
			m.nav.Retreat()
		case "right", "n", "l", " ":
			m.nav.Advance()
		}

	case frameMsg:
		m.frame = string(msg)
		return m, waitFrame(m.frames)

	case closedMsg:
		return m, tea.Quit
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D7D8A2"))
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F5F")).
			Foreground(lipgloss.Color("#7FDBFF"))
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDC074"))
)

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		screenStyle.Render(m.frame),
		keyStyle.Render("←/p previous  |  →/n/space next  |  q quit"),
	)
}

// Run shows the frames of d in the terminal until the user quits, d is closed or ctx is done.
// Arrow keys navigate with nav.
func Run(ctx context.Context, d *Display, nav Navigator, title string) error {
	p := tea.NewProgram(newModel(title, d.Frames(), nav),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return err
	}
	return nil
}
