package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aschey/livetimer/chrono"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const timeLayout = "2006-01-02 15:04:05.000 MST"

// summary is the serialized shape of a result. Durations and timestamps are
// spelled out so the output does not depend on how time.Duration marshals.
type summary struct {
	Start     string  `json:"start" yaml:"start"`
	End       string  `json:"end" yaml:"end"`
	StartUnix float64 `json:"startUnix" yaml:"startUnix"`
	EndUnix   float64 `json:"endUnix" yaml:"endUnix"`
	Elapsed   string  `json:"elapsed" yaml:"elapsed"`
	Seconds   float64 `json:"seconds" yaml:"seconds"`
	Format    string  `json:"format" yaml:"format"`
	TimedOut  bool    `json:"timedOut" yaml:"timedOut"`
}

func newSummary(result chrono.Result) summary {
	return summary{
		Start:     result.StartTime.Format(time.RFC3339Nano),
		End:       result.EndTime.Format(time.RFC3339Nano),
		StartUnix: result.StartUnix(),
		EndUnix:   result.EndUnix(),
		Elapsed:   result.String(),
		Seconds:   result.Seconds(),
		Format:    result.Format,
		TimedOut:  result.TimedOut,
	}
}

// Write prints result to w as a table, JSON or YAML. The "none" format prints nothing.
func Write(w io.Writer, result chrono.Result, format string) error {
	switch format {
	case "none":
		return nil
	case "json":
		output, err := json.MarshalIndent(newSummary(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(newSummary(result)); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return encoder.Close()
	case "table", "":
		return writeTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, result chrono.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Start", "End", "Elapsed", "Seconds")
	if err := table.Append(
		result.StartTime.Local().Format(timeLayout),
		result.EndTime.Local().Format(timeLayout),
		result.String(),
		strconv.FormatFloat(result.Seconds(), 'f', 3, 64),
	); err != nil {
		return err
	}
	return table.Render()
}
