package tui

import (
	"context"
	"errors"

	"github.com/aschey/livetimer/chrono"
	"github.com/aschey/livetimer/internal/display"
	"github.com/aschey/livetimer/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).PaddingLeft(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).PaddingLeft(1)
)

// Controller is the part of chrono.Timer the interactive view drives.
type Controller interface {
	Pause() error
	Resume() error
	Stop() (chrono.Result, error)
}

type keyMap struct {
	Pause key.Binding
	Stop  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Stop}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Pause: key.NewBinding(key.WithKeys("p", " "),
		key.WithHelp("p/space", "pause/resume")),
	Stop: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "stop")),
}

type frameMsg display.Frame

type closedMsg struct{}

type stopMsg struct{}

type Model struct {
	timer  Controller
	frames display.StatusChan
	keys   keyMap
	help   help.Model

	line    string
	paused  bool
	stopped bool
	result  chrono.Result
	err     error
}

// NewModel shows the frames a timer writes into frames, which must be the timer's sink.
func NewModel(timer Controller, frames display.StatusChan) Model {
	return Model{
		timer:  timer,
		frames: frames,
		keys:   defaultKeys,
		help:   help.New(),
	}
}

func waitForFrame(frames display.StatusChan) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return closedMsg{}
		}
		return frameMsg(frame)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.line = msg.Line
		m.paused = msg.Phase == timer.Paused
		return m, waitForFrame(m.frames)

	case closedMsg:
		// The closing line has been shown, nothing else will arrive.
		return m, tea.Quit

	case stopMsg:
		return m.stop()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			return m.stop()
		case key.Matches(msg, m.keys.Pause):
			return m.togglePause()
		}
	}

	return m, nil
}

func (m Model) togglePause() (tea.Model, tea.Cmd) {
	if m.stopped {
		return m, nil
	}
	var err error
	if m.paused {
		err = m.timer.Resume()
	} else {
		err = m.timer.Pause()
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.paused = !m.paused
	return m, nil
}

// stop keeps the program running until the frame channel is closed so the closing line is drawn.
func (m Model) stop() (tea.Model, tea.Cmd) {
	if m.stopped {
		return m, nil
	}
	result, err := m.timer.Stop()
	m.stopped = true
	m.result = result
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	view := lineStyle.Render(m.line) + "\n"
	if m.err != nil {
		view += errorStyle.Render(m.err.Error()) + "\n"
	}
	if !m.stopped {
		view += "\n" + m.help.View(m.keys) + "\n"
	}
	return view
}

// Result returns the measurement once the timer has been stopped from the view.
func (m Model) Result() (chrono.Result, error) {
	if !m.stopped {
		return chrono.Result{}, errors.New("timer was not stopped")
	}
	return m.result, m.err
}

// Run shows the interactive view until the user stops the timer or ctx is cancelled.
func Run(ctx context.Context, t Controller, frames display.StatusChan, opts ...tea.ProgramOption) (chrono.Result, error) {
	p := tea.NewProgram(NewModel(t, frames), opts...)

	stopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-stopCtx.Done()
		if ctx.Err() != nil {
			p.Send(stopMsg{})
		}
	}()

	final, err := p.Run()
	if err != nil {
		return chrono.Result{}, err
	}
	return final.(Model).Result()
}
