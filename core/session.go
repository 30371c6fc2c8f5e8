package core

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newReportID builds a unique report id from the current unix-millis plus a
// short random base36 suffix to break same-millisecond collisions.
func newReportID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))]
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// Session tracks the in-memory record set, its narrative summary, and the
// association with a saved report. A session is single-process and never
// shared across goroutines.
type Session struct {
	Merged   []schema.PullRequest
	Reviewed []schema.ReviewedPullRequest
	Summary  string

	loadedID         string
	hadSummaryAtLoad bool
}

// NewSession creates an empty session with no loaded report.
func NewSession() *Session {
	return &Session{}
}

// LoadedID returns the id of the loaded report, or "" when none is loaded.
func (s *Session) LoadedID() string {
	return s.loadedID
}

// HadSummaryAtLoad reports whether the loaded report already carried a
// summary when it was loaded. False when no report is loaded.
func (s *Session) HadSummaryAtLoad() bool {
	return s.loadedID != "" && s.hadSummaryAtLoad
}

// BeginFetch resets the session for a fresh record fetch. Any loaded-report
// association and prior summary are dropped before new records arrive.
func (s *Session) BeginFetch() {
	s.Summary = ""
	s.loadedID = ""
	s.hadSummaryAtLoad = false
}

// SetRecords replaces the session record set after a fetch.
func (s *Session) SetRecords(merged []schema.PullRequest, reviewed []schema.ReviewedPullRequest) {
	s.Merged = merged
	s.Reviewed = reviewed
}

// BuildReport snapshots the current records and summary under a fresh id.
// The name must be non-empty after trimming. Building a report does not
// associate the session with it; only loading does that.
func (s *Session) BuildReport(name, orgName string, start, end time.Time) (schema.SavedReport, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return schema.SavedReport{}, &contract.ValidationError{Message: "report name must not be empty"}
	}
	now := time.Now()
	records := make([]schema.PullRequest, len(s.Merged))
	copy(records, s.Merged)
	return schema.SavedReport{
		ID:           newReportID(now),
		Name:         trimmed,
		CreatedAt:    now.UTC().Format(time.RFC3339),
		OrgName:      schema.OrgDisplayName(orgName),
		DateRange:    schema.FormatDateRange(start, end),
		PRCount:      len(records),
		Summary:      s.Summary,
		PullRequests: records,
	}, nil
}

// LoadReport replaces the session state with a saved report's snapshot and
// associates the session with it. Loading the same report twice is a no-op
// beyond the replacement itself.
func (s *Session) LoadReport(r schema.SavedReport) {
	s.Merged = make([]schema.PullRequest, len(r.PullRequests))
	copy(s.Merged, r.PullRequests)
	s.Reviewed = nil
	s.Summary = r.Summary
	s.loadedID = r.ID
	s.hadSummaryAtLoad = r.HasSummary()
}

// CanUpdate reports whether the loaded report may absorb the session
// summary. Only a loaded report that had no summary at load time, combined
// with a non-empty session summary, qualifies.
func (s *Session) CanUpdate() bool {
	return s.loadedID != "" && !s.hadSummaryAtLoad && s.Summary != ""
}

// MarkUpdated records that the loaded report now carries the session
// summary, so repeat updates become no-ops.
func (s *Session) MarkUpdated() {
	s.hadSummaryAtLoad = true
}

// ForgetReport drops the loaded-report association, for example after the
// loaded report is deleted from the store. Records and summary stay.
func (s *Session) ForgetReport(id string) {
	if s.loadedID == id {
		s.loadedID = ""
		s.hadSummaryAtLoad = false
	}
}
