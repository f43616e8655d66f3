package display

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/superhawk610/bar"
)

// Bar draws a progress bar toward a target duration, with the status line next to it.
// The bar fills up at the target but the timer keeps counting.
type Bar struct {
	bar    *bar.Bar
	out    io.Writer
	target time.Duration
	total  int
}

// barOutput keeps the bar off the process stdout.
type barOutput struct {
	out io.Writer
}

func (o barOutput) ClearLine() {
	fmt.Fprint(o.out, "\r\033[2K")
}

func (o barOutput) Printf(format string, vals ...interface{}) {
	fmt.Fprintf(o.out, format, vals...)
}

func NewBar(out io.Writer, target time.Duration) *Bar {
	// The bar divides by its total, which must stay positive for sub-millisecond targets.
	total := max(int(target/time.Millisecond), 1)
	b := bar.NewWithOpts(
		bar.WithDimensions(total, 30),
		bar.WithOutput(barOutput{out: out}),
		bar.WithFormat(
			fmt.Sprintf("%s %s | %s",
				lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(":bar"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(":percent"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Render(":elapsed"))))

	return &Bar{bar: b, out: out, target: target, total: total}
}

func (b *Bar) Refresh(frame Frame) error {
	b.bar.Update(b.progress(frame.Elapsed), bar.Context{bar.Ctx("elapsed", frame.Line)})
	return nil
}

// Finish draws the last frame and ends the line. bar.Done is not used since it prints to stdout.
func (b *Bar) Finish(frame Frame) error {
	if err := b.Refresh(frame); err != nil {
		return err
	}
	_, err := fmt.Fprintln(b.out)
	return err
}

func (b *Bar) progress(elapsed time.Duration) int {
	if elapsed >= b.target {
		return b.total
	}
	return int(elapsed / time.Millisecond)
}
