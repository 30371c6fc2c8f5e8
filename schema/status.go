package schema

import "time"

// StoreStatus represents the status of the reports store.
type StoreStatus struct {
	Backend          string    `json:"backend"`
	Connected        bool      `json:"connected"`
	TotalReports     int       `json:"total_reports"`
	LastReportTime   time.Time `json:"last_report_time"`
	OldestReportTime time.Time `json:"oldest_report_time"`
	SummaryCount     int       `json:"summary_count"`
}
