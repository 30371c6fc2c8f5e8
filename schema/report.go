package schema

// SavedReport is a persisted snapshot of a fetch window and its records.
// The JSON field names are the wire format for exports and the MCP surface,
// so they stay snake_case and stable.
type SavedReport struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CreatedAt    string        `json:"created_at"`
	OrgName      string        `json:"org_name"`
	DateRange    string        `json:"date_range"`
	PRCount      int           `json:"pr_count"`
	Summary      string        `json:"summary"`
	PullRequests []PullRequest `json:"pull_requests"`
}

// HasSummary reports whether the report carries a narrative summary.
// An empty string on the wire means none.
func (r SavedReport) HasSummary() bool {
	return r.Summary != ""
}

// ReportRow is the flattened shape used for tabular and parquet export of
// saved reports. Records are dropped, only the report header survives.
type ReportRow struct {
	ID        string `json:"id" parquet:"id,snappy"`
	Name      string `json:"name" parquet:"name,snappy"`
	CreatedAt string `json:"created_at" parquet:"created_at,snappy"`
	OrgName   string `json:"org_name" parquet:"org_name,snappy"`
	DateRange string `json:"date_range" parquet:"date_range,snappy"`
	PRCount   int32  `json:"pr_count" parquet:"pr_count,snappy"`
	Summary   string `json:"summary" parquet:"summary,optional,snappy"`
}

// Row flattens a saved report for export.
func (r SavedReport) Row() ReportRow {
	return ReportRow{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		OrgName:   r.OrgName,
		DateRange: r.DateRange,
		PRCount:   int32(r.PRCount),
		Summary:   r.Summary,
	}
}
