package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// PrintComparisonResults outputs the comparison, dispatching based on the output format configured.
func PrintComparisonResults(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Saved JSON comparison")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForComparison(w, result)
		}, "Saved CSV comparison")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg, duration)
		}, "Saved comparison")
	}
}

// writeComparisonTable writes the metrics with change indicators.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Current: %s\nCompare: %s\n\n", result.CurrentRange, result.CompareRange); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Before", "After", "Change"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var green, red, cyan, yellow func(...any) string
	if cfg.UseColors {
		green = color.New(color.FgGreen).SprintFunc()
		red = color.New(color.FgRed).SprintFunc()
		cyan = color.New(color.FgCyan).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		green = fmt.Sprint
		red = fmt.Sprint
		cyan = fmt.Sprint
		yellow = fmt.Sprint
	}

	var data [][]string
	for _, m := range result.Metrics {
		var changeStr string
		switch m.Change {
		case schema.NewChange:
			changeStr = cyan("NEW")
		case schema.FlatChange:
			changeStr = yellow("—")
		case schema.NeutralChange:
			changeStr = yellow("~0%")
		case schema.IncreaseChange:
			changeStr = green(fmt.Sprintf("+%d%% ▲", m.Percent))
		case schema.DecreaseChange:
			changeStr = red(fmt.Sprintf("%d%% ▼", m.Percent))
		}
		data = append(data, []string{
			m.Label,
			strconv.Itoa(m.Compare),
			strconv.Itoa(m.Current),
			changeStr,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Comparison completed in %v\n", duration)
	return err
}

// writeCSVResultsForComparison writes the comparison metrics to a CSV writer.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult) error {
	header := []string{"metric", "compare", "current", "change", "percent"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range result.Metrics {
			row := []string{
				m.Label,
				strconv.Itoa(m.Compare),
				strconv.Itoa(m.Current),
				string(m.Change),
				strconv.Itoa(m.Percent),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
