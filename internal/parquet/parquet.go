// Package parquet exports saved report data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/myimpact/impact/schema"
)

// WriteReportRowsParquet writes flattened report rows to a Parquet file.
// The schema is derived from the schema.ReportRow struct tags.
func WriteReportRowsParquet(rows []schema.ReportRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[schema.ReportRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertReports flattens saved reports for Parquet export.
func ConvertReports(reports []schema.SavedReport) []schema.ReportRow {
	rows := make([]schema.ReportRow, len(reports))
	for i, r := range reports {
		rows[i] = r.Row()
	}
	return rows
}
