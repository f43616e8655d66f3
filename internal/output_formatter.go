package internal

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addColor(replaceStr string, searchStr string, style lipgloss.Style) string {
	return strings.ReplaceAll(replaceStr, searchStr, style.Render(searchStr))
}

func FormatHelp(c *cobra.Command) {
	fmt.Fprintf(c.OutOrStdout(), "%s\n\n", c.Long)
	_ = c.Usage()
}

// FormatUsage renders cobra's default usage text into a buffer and prints a colored copy.
func FormatUsage(c *cobra.Command, usageFunc func(c *cobra.Command) error, exampleText string) error {
	out := c.OutOrStdout()
	var buf bytes.Buffer
	c.SetOut(&buf)
	err := usageFunc(c)
	c.SetOut(out)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, colorUsage(c, buf.String(), exampleText))
	return err
}

func colorUsage(c *cobra.Command, usage string, exampleText string) string {
	subtext := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	defaultText := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	outStr := usage
	outStr = addColor(outStr, "Usage:", title)
	outStr = addColor(outStr, "Examples:", title)
	outStr = addColor(outStr, "Flags:", title)
	outStr = addColor(outStr, "[flags]", subtext)
	outStr = addColor(outStr, "[-- command [args...]]", subtext)
	if len(exampleText) > 0 {
		outStr = addColor(outStr, exampleText, defaultText)
	}

	c.Flags().VisitAll(func(flag *pflag.Flag) {
		outStr = addColor(outStr, flag.Usage, subtext)
		outStr = addColor(outStr, flag.Value.Type(), defaultText)
	})

	return outStr
}
