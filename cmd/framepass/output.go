package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputDot   outputFormat = "dot"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case outputTable, outputJSON, outputDot:
		return f, nil
	default:
		return "", fmt.Errorf("--output must be table, json, or dot (got %q)", value)
	}
}

// column is one table column. Counts and indexes are numeric and
// right-aligned; everything else reads left to right.
type column struct {
	title   string
	numeric bool
}

var (
	colPass       = column{title: "Pass", numeric: true}
	colSeq        = column{title: "#", numeric: true}
	colFeature    = column{title: "Feature"}
	colSetter     = column{title: "Setter"}
	colCaps       = column{title: "Caps"}
	colReason     = column{title: "Reason"}
	colSteps      = column{title: "Steps", numeric: true}
	colPasses     = column{title: "Passes", numeric: true}
	colUnresolved = column{title: "Unresolved", numeric: true}
)

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
