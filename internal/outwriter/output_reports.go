package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// PrintReportList outputs saved report headers, dispatching on output format.
func PrintReportList(reports []schema.SavedReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, reports)
		}, "Saved JSON report list")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForReportList(w, reports)
		}, "Saved CSV report list")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportListTable(w, reports)
		}, "Saved report list")
	}
}

// writeReportListTable renders the headers of all saved reports.
func writeReportListTable(w io.Writer, reports []schema.SavedReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No saved reports. Run 'impact report --save NAME' to create one.")
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"ID", "Name", "Created", "Org", "Range", "PRs", "Summary"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range reports {
		summary := "no"
		if r.HasSummary() {
			summary = "yes"
		}
		data = append(data, []string{
			r.ID,
			r.Name,
			r.CreatedAt,
			r.OrgName,
			r.DateRange,
			strconv.Itoa(r.PRCount),
			summary,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForReportList writes report headers to a CSV writer.
func writeCSVResultsForReportList(w io.Writer, reports []schema.SavedReport) error {
	header := []string{"id", "name", "created_at", "org_name", "date_range", "pr_count", "has_summary"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range reports {
			row := []string{
				r.ID,
				r.Name,
				r.CreatedAt,
				r.OrgName,
				r.DateRange,
				strconv.Itoa(r.PRCount),
				strconv.FormatBool(r.HasSummary()),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintReport outputs one saved report with its records.
func PrintReport(report schema.SavedReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Saved JSON report")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForReport(w, report)
		}, "Saved CSV report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportDetail(w, report, cfg)
		}, "Saved report")
	}
}

// writeReportDetail renders the header, the summary, and the record table.
func writeReportDetail(w io.Writer, report schema.SavedReport, cfg *contract.Config) error {
	header := fmt.Sprint
	if cfg.UseColors {
		header = contract.HeaderColor.Sprint
	}

	if _, err := fmt.Fprintf(w, "%s\n", header(report.Name)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "ID: %s  Created: %s\n%s (%s)  %d PRs\n\n",
		report.ID, report.CreatedAt, report.OrgName, report.DateRange, report.PRCount); err != nil {
		return err
	}

	if report.HasSummary() {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", header("Summary"), report.Summary); err != nil {
			return err
		}
	}

	if len(report.PullRequests) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Repository", "Title", "Merged"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	titleWidth := maxTitleWidth(cfg)
	var data [][]string
	for _, pr := range report.PullRequests {
		data = append(data, []string{
			pr.Repository.NameWithOwner,
			truncate(pr.Title, titleWidth),
			pr.ClosedAt,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForReport writes the report records to a CSV writer.
func writeCSVResultsForReport(w io.Writer, report schema.SavedReport) error {
	header := []string{"report_id", "repository", "title", "url", "created_at", "closed_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, pr := range report.PullRequests {
			row := []string{
				report.ID,
				pr.Repository.NameWithOwner,
				pr.Title,
				pr.URL,
				pr.CreatedAt,
				pr.ClosedAt,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintStoreStatus outputs reports-store status information.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Saved JSON status")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusText(w, status)
		}, "Saved status")
	}
}

// writeStoreStatusText renders the status as plain lines.
func writeStoreStatusText(w io.Writer, status schema.StoreStatus) error {
	if _, err := fmt.Fprintf(w, "Backend: %s\nConnected: %t\n", status.Backend, status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Total reports: %d\nWith summary: %d\n", status.TotalReports, status.SummaryCount); err != nil {
		return err
	}
	if status.TotalReports == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Last report: %s\nOldest report: %s\n",
		status.LastReportTime.Format("2006-01-02 15:04:05"),
		status.OldestReportTime.Format("2006-01-02 15:04:05"))
	return err
}
