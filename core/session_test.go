package core

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

var (
	sessionStart = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sessionEnd   = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
)

func TestNewReportIDShape(t *testing.T) {
	now := time.Date(2024, time.November, 15, 10, 0, 0, 0, time.UTC)
	id := newReportID(now)
	assert.Regexp(t, regexp.MustCompile(`^1731664800000-[0-9a-z]{9}$`), id)
}

func TestNewReportIDUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[newReportID(now)] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestBuildReportValidatesName(t *testing.T) {
	s := NewSession()
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.BuildReport(name, "", sessionStart, sessionEnd)
		var verr *contract.ValidationError
		assert.ErrorAs(t, err, &verr, "name %q", name)
	}
}

func TestBuildReportSnapshotsRecords(t *testing.T) {
	s := NewSession()
	s.SetRecords([]schema.PullRequest{mergedPR("acme/api", "2024-11-05T10:00:00Z")}, nil)
	s.Summary = "a busy quarter"

	report, err := s.BuildReport("  Q4 recap  ", "acme", sessionStart, sessionEnd)
	require.NoError(t, err)

	assert.Equal(t, "Q4 recap", report.Name)
	assert.Equal(t, "acme", report.OrgName)
	assert.Equal(t, "Jun 1, 2024 - Dec 1, 2024", report.DateRange)
	assert.Equal(t, 1, report.PRCount)
	assert.Len(t, report.PullRequests, 1)
	assert.Equal(t, "a busy quarter", report.Summary)

	// Building does not associate the session with the report.
	assert.Empty(t, s.LoadedID())

	// The snapshot is independent of later session mutations.
	s.SetRecords(nil, nil)
	assert.Len(t, report.PullRequests, 1)
}

func TestBuildReportAllOrganizations(t *testing.T) {
	s := NewSession()
	report, err := s.BuildReport("empty window", "", sessionStart, sessionEnd)
	require.NoError(t, err)
	assert.Equal(t, "All Organizations", report.OrgName)
	assert.Zero(t, report.PRCount)
}

func TestBeginFetchClearsAssociation(t *testing.T) {
	s := NewSession()
	s.LoadReport(schema.SavedReport{ID: "r1", Summary: "old"})
	require.Equal(t, "r1", s.LoadedID())

	s.BeginFetch()
	assert.Empty(t, s.LoadedID())
	assert.Empty(t, s.Summary)
	assert.False(t, s.HadSummaryAtLoad())
}

func TestLoadReportSetsFlags(t *testing.T) {
	s := NewSession()

	s.LoadReport(schema.SavedReport{ID: "r1", Summary: ""})
	assert.Equal(t, "r1", s.LoadedID())
	assert.False(t, s.HadSummaryAtLoad())

	s.LoadReport(schema.SavedReport{ID: "r2", Summary: "done"})
	assert.Equal(t, "r2", s.LoadedID())
	assert.True(t, s.HadSummaryAtLoad())
	assert.Equal(t, "done", s.Summary)
}

func TestCanUpdate(t *testing.T) {
	s := NewSession()

	// Nothing loaded.
	s.Summary = "fresh"
	assert.False(t, s.CanUpdate())

	// Loaded without summary, then summary generated.
	s.LoadReport(schema.SavedReport{ID: "r1"})
	assert.False(t, s.CanUpdate(), "no summary yet")
	s.Summary = "fresh"
	assert.True(t, s.CanUpdate())

	// After the write the gate closes.
	s.MarkUpdated()
	assert.False(t, s.CanUpdate())

	// Loaded with a summary never qualifies.
	s.LoadReport(schema.SavedReport{ID: "r2", Summary: "existing"})
	s.Summary = "replacement"
	assert.False(t, s.CanUpdate())
}

func TestForgetReport(t *testing.T) {
	s := NewSession()
	s.LoadReport(schema.SavedReport{ID: "r1", Summary: "kept"})

	s.ForgetReport("other")
	assert.Equal(t, "r1", s.LoadedID())

	s.ForgetReport("r1")
	assert.Empty(t, s.LoadedID())
	assert.Equal(t, "kept", s.Summary, "records and summary stay")
}

func TestErrorTaxonomy(t *testing.T) {
	verr := &contract.ValidationError{Message: "report name must not be empty"}
	nerr := &contract.NotFoundError{Resource: "report", ID: "r9"}
	berr := &contract.BoundaryError{Message: "gh: rate limit exceeded"}

	assert.Equal(t, "report name must not be empty", verr.Error())
	assert.Equal(t, "report not found: r9", nerr.Error())
	assert.Equal(t, "gh: rate limit exceeded", berr.Error())

	wrapped := errors.Join(verr)
	var target *contract.ValidationError
	assert.ErrorAs(t, wrapped, &target)
}
