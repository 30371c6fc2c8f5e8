package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/myimpact/impact/core"
	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// PrintStats outputs window analytics, dispatching based on the output format configured.
func PrintStats(stats schema.ActivityStats, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForStats(w, stats)
		}, "Saved JSON stats")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForStats(w, stats)
		}, "Saved CSV stats")
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTables(w, stats, cfg, duration)
		}, "Saved stats")
	}
}

// writeStatsTables writes the summary line plus one table per distribution.
func writeStatsTables(w io.Writer, stats schema.ActivityStats, cfg *contract.Config, duration time.Duration) error {
	header := fmt.Sprint
	if cfg.UseColors {
		header = contract.HeaderColor.Sprint
	}

	orgLabel := schema.OrgDisplayName(cfg.Org)
	dateRange := schema.FormatDateRange(cfg.StartTime, cfg.EndTime)
	if _, err := fmt.Fprintf(w, "%s\n\n", header(fmt.Sprintf("Activity for %s (%s)", orgLabel, dateRange))); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "PRs merged: %d  PRs reviewed: %d  Collaborators: %d\n",
		stats.MergedCount, stats.ReviewedCount, stats.Collaborators); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg cycle time: %s  Longest streak: %d wk  Current streak: %d wk\n\n",
		core.FormatCycleTime(stats.AvgCycleHours), stats.Streak.Longest, stats.Streak.Current); err != nil {
		return err
	}

	if err := writeChartTable(w, "Month", stats.Monthly); err != nil {
		return err
	}
	if err := writeChartTable(w, "Organization", stats.Organizations); err != nil {
		return err
	}
	if err := writeChartTable(w, "Repository", stats.Repositories); err != nil {
		return err
	}
	if err := writeHeatmapTable(w, stats.Heatmap, cfg); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Report generated in %v\n", duration)
	return err
}

// writeChartTable renders one labeled distribution as a two-column table.
func writeChartTable(w io.Writer, label string, points []schema.ChartPoint) error {
	if len(points) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{label, "PRs"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range points {
		data = append(data, []string{p.Name, strconv.Itoa(p.Count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeHeatmapTable renders the weekly heatmap with intensity cells.
func writeHeatmapTable(w io.Writer, cells []schema.WeekActivity, cfg *contract.Config) error {
	if len(cells) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Week", "PRs", "Activity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	green := fmt.Sprint
	if cfg.UseColors {
		green = color.New(color.FgGreen).SprintFunc()
	}

	var data [][]string
	for _, c := range cells {
		data = append(data, []string{c.Week, strconv.Itoa(c.Count), green(intensityCell(c.Intensity))})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// intensityCell renders an intensity class as a bar of filled blocks.
func intensityCell(intensity int) string {
	if intensity <= 0 {
		return "·"
	}
	return strings.Repeat("■", intensity)
}

// writeJSONResultsForStats marshals the schema.ActivityStats to JSON and writes it.
func writeJSONResultsForStats(w io.Writer, stats schema.ActivityStats) error {
	return writeJSON(w, stats)
}

// writeCSVResultsForStats writes every distribution as section-tagged rows
// so the whole bundle fits a single flat file.
func writeCSVResultsForStats(w io.Writer, stats schema.ActivityStats) error {
	header := []string{"section", "name", "count", "extra"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rows := [][]string{
			{"totals", "merged", strconv.Itoa(stats.MergedCount), ""},
			{"totals", "reviewed", strconv.Itoa(stats.ReviewedCount), ""},
			{"totals", "collaborators", strconv.Itoa(stats.Collaborators), ""},
			{"totals", "avg_cycle_hours", fmt.Sprintf("%.2f", stats.AvgCycleHours), core.FormatCycleTime(stats.AvgCycleHours)},
			{"streak", "longest", strconv.Itoa(stats.Streak.Longest), ""},
			{"streak", "current", strconv.Itoa(stats.Streak.Current), ""},
		}
		for _, p := range stats.Monthly {
			rows = append(rows, []string{"monthly", p.Name, strconv.Itoa(p.Count), ""})
		}
		for _, p := range stats.Organizations {
			rows = append(rows, []string{"organization", p.Name, strconv.Itoa(p.Count), ""})
		}
		for _, p := range stats.Repositories {
			rows = append(rows, []string{"repository", p.Name, strconv.Itoa(p.Count), ""})
		}
		for _, c := range stats.Heatmap {
			rows = append(rows, []string{"week", c.Week, strconv.Itoa(c.Count), strconv.Itoa(c.Intensity)})
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
