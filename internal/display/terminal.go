package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathan-fiscaletti/consolesize-go"
)

// Terminal keeps redrawing a single line on out using a carriage return.
type Terminal struct {
	out       io.Writer
	width     func() int
	lastWidth int
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, width: consoleWidth}
}

func consoleWidth() int {
	size, _ := consolesize.GetConsoleSize()
	return size
}

func (t *Terminal) Refresh(frame Frame) error {
	_, err := fmt.Fprint(t.out, "\r"+t.fit(frame.Line))
	return err
}

func (t *Terminal) Finish(frame Frame) error {
	_, err := fmt.Fprint(t.out, "\r"+t.fit(frame.Line)+"\n")
	t.lastWidth = 0
	return err
}

func (t *Terminal) fit(line string) string {
	// Writing into the last column makes some terminals wrap, which breaks the carriage return.
	if size := t.width(); size > 1 && lipgloss.Width(line) >= size {
		line = lipgloss.NewStyle().MaxWidth(size - 1).Render(line)
	}

	width := lipgloss.Width(line)
	if pad := t.lastWidth - width; pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	t.lastWidth = width
	return line
}
