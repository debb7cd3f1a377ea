package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/speckJ8/graph-algorithms/pkg/plot"
)

// Report output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// StressReport summarizes a stress run.
type StressReport struct {
	Count           int           `json:"count" yaml:"count"`
	Seed            int64         `json:"seed" yaml:"seed"`
	Duplicates      bool          `json:"duplicates" yaml:"duplicates"`
	Nodes           int           `json:"nodes" yaml:"nodes"`
	Height          int           `json:"height" yaml:"height"`
	HeightBound     float64       `json:"height_bound" yaml:"height_bound"`
	BlackHeight     int           `json:"black_height" yaml:"black_height"`
	Rotations       int           `json:"rotations" yaml:"rotations"`
	Recolors        int           `json:"recolors" yaml:"recolors"`
	RootChanges     int           `json:"root_changes" yaml:"root_changes"`
	Validations     int           `json:"validations" yaml:"validations"`
	ArenaBytes      uint64        `json:"arena_bytes" yaml:"arena_bytes"`
	Hibernated      bool          `json:"hibernated" yaml:"hibernated"`
	HibernatedBytes uint64        `json:"hibernated_bytes" yaml:"hibernated_bytes"`
	ReleasedNodes   int           `json:"released_nodes" yaml:"released_nodes"`
	Elapsed         string        `json:"elapsed" yaml:"elapsed"`
	Samples         []plot.Sample `json:"samples,omitempty" yaml:"samples,omitempty"`
}

func writeReport(w io.Writer, format string, report *StressReport) error {
	switch format {
	case FormatTable:
		return writeTable(w, report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)

		err := enc.Encode(report)
		if err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(report)
		if err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeTable(w io.Writer, report *StressReport) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Nodes", humanize.Comma(int64(report.Nodes))},
		{"Height", fmt.Sprintf("%d (bound %.2f)", report.Height, report.HeightBound)},
		{"Black height", report.BlackHeight},
		{"Rotations", humanize.Comma(int64(report.Rotations))},
		{"Recolors", humanize.Comma(int64(report.Recolors))},
		{"Root changes", report.RootChanges},
		{"Validations", report.Validations},
		{"Arena", humanize.IBytes(report.ArenaBytes)},
		{"Hibernated", hibernatedCell(report)},
		{"Released", humanize.Comma(int64(report.ReleasedNodes))},
		{"Elapsed", report.Elapsed},
	})
	tbl.AppendFooter(table.Row{"Seed", strconv.FormatInt(report.Seed, 10)})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table report: %w", err)
	}

	return nil
}

func hibernatedCell(report *StressReport) string {
	if !report.Hibernated {
		return "no"
	}

	return humanize.IBytes(report.HibernatedBytes)
}
