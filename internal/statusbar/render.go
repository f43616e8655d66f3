package statusbar

import (
	"github.com/aschey/livetimer/internal/display"
	"github.com/aschey/livetimer/internal/format"
	"github.com/aschey/livetimer/internal/timer"
	"github.com/charmbracelet/lipgloss"
)

var (
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type phaseLabel struct {
	status string
	style  lipgloss.Style
}

// Running frames and the closing frame carry no label, so the closing line
// is exactly the rendered final elapsed time.
func labelForPhase(phase timer.Phase) phaseLabel {
	switch phase {
	case timer.Paused:
		return phaseLabel{status: "[paused]", style: pausedStyle}
	case timer.Idle:
		return phaseLabel{status: "[not started]", style: stoppedStyle}
	default:
		return phaseLabel{}
	}
}

func renderLine(snapshot timer.Snapshot, template string) string {
	text := format.Render(snapshot.Elapsed, template)
	label := labelForPhase(snapshot.Phase)
	if label.status == "" {
		return text
	}
	return text + " " + label.style.Render(label.status)
}

func (s *StatusBar) frame(snapshot timer.Snapshot) display.Frame {
	return display.Frame{
		Line:    renderLine(snapshot, s.template),
		Elapsed: snapshot.Elapsed,
		Phase:   snapshot.Phase,
	}
}
