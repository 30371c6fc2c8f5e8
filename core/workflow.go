package core

import (
	"context"
	"fmt"
	"time"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// Workflow coordinates the session, the fetch and summary boundaries, and
// the reports store for one command invocation.
type Workflow struct {
	Session *Session

	cfg     *contract.Config
	client  contract.ActivityClient
	summary contract.SummaryClient
	store   contract.ReportStore
}

// NewWorkflow creates a workflow with an empty session.
func NewWorkflow(cfg *contract.Config, client contract.ActivityClient, summary contract.SummaryClient, store contract.ReportStore) *Workflow {
	return &Workflow{
		Session: NewSession(),
		cfg:     cfg,
		client:  client,
		summary: summary,
		store:   store,
	}
}

// GenerateReport fetches both record kinds for the configured window and
// replaces the session state. A failed primary fetch clears the record set
// and surfaces the error. A failed review fetch degrades to an empty review
// list, since review data only feeds secondary metrics.
func (w *Workflow) GenerateReport(ctx context.Context) error {
	w.Session.BeginFetch()

	merged, err := w.client.FetchMerged(ctx, w.cfg.StartTime, w.cfg.EndTime, w.orgFilter())
	if err != nil {
		w.Session.SetRecords(nil, nil)
		return fmt.Errorf("fetch merged pull requests: %w", err)
	}

	reviewed, err := w.client.FetchReviewed(ctx, w.cfg.StartTime, w.cfg.EndTime, w.orgFilter())
	if err != nil {
		contract.LogWarn("fetching reviewed pull requests", err)
		reviewed = nil
	}

	w.Session.SetRecords(merged, reviewed)
	return nil
}

// RefreshOrganizations lists the orgs seen in the window. Failure degrades
// to an empty list with a warning, never an error.
func (w *Workflow) RefreshOrganizations(ctx context.Context) []string {
	orgs, err := w.client.FetchOrganizations(ctx, w.cfg.StartTime, w.cfg.EndTime)
	if err != nil {
		contract.LogWarn("fetching organizations", err)
		return nil
	}
	return orgs
}

// Compare fetches the comparison window independently of the session and
// builds the period-over-period result. An unset compare window defaults to
// the period immediately preceding the current one.
func (w *Workflow) Compare(ctx context.Context) (schema.ComparisonResult, error) {
	compareStart, compareEnd := w.cfg.CompareStart, w.cfg.CompareEnd
	if compareStart.IsZero() && compareEnd.IsZero() {
		compareStart, compareEnd = DefaultCompareRange(w.cfg.StartTime, w.cfg.EndTime)
	}

	current, err := w.fetchPeriod(ctx, w.cfg.StartTime, w.cfg.EndTime)
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("fetch current period: %w", err)
	}
	compare, err := w.fetchPeriod(ctx, compareStart, compareEnd)
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("fetch comparison period: %w", err)
	}

	return schema.ComparisonResult{
		CurrentRange: schema.FormatDateRange(w.cfg.StartTime, w.cfg.EndTime),
		CompareRange: schema.FormatDateRange(compareStart, compareEnd),
		Metrics:      CompareMetrics(current, compare),
	}, nil
}

// fetchPeriod gathers the counters for one window without touching the
// session. Review failures degrade the same way GenerateReport does.
func (w *Workflow) fetchPeriod(ctx context.Context, start, end time.Time) (schema.PeriodActivity, error) {
	merged, err := w.client.FetchMerged(ctx, start, end, w.orgFilter())
	if err != nil {
		return schema.PeriodActivity{}, err
	}
	reviewed, err := w.client.FetchReviewed(ctx, start, end, w.orgFilter())
	if err != nil {
		contract.LogWarn("fetching reviewed pull requests", err)
		reviewed = nil
	}
	return schema.PeriodActivity{Merged: merged, Reviewed: reviewed}, nil
}

// GenerateSummary produces the narrative for the session records and stores
// it on the session. A failure leaves any prior summary untouched.
func (w *Workflow) GenerateSummary(ctx context.Context) error {
	apiKey, err := w.store.GetAPIKey()
	if err != nil {
		return fmt.Errorf("read API key: %w", err)
	}
	if apiKey == "" {
		return &contract.ValidationError{Message: "Please configure your OpenAI API key in settings"}
	}
	if len(w.Session.Merged) == 0 {
		return &contract.ValidationError{Message: "no pull requests to summarize"}
	}

	dateRange := schema.FormatDateRange(w.cfg.StartTime, w.cfg.EndTime)
	text, err := w.summary.GenerateSummary(ctx, apiKey, w.Session.Merged, dateRange, schema.OrgDisplayName(w.cfg.Org))
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}
	w.Session.Summary = text
	return nil
}

// SummarizeSaved loads a stored report, generates its narrative with the
// report's own labels, and persists the summary when the lifecycle allows it.
// Returns the summarized report and whether the store was updated. A report
// that already carries a summary is never overwritten.
func (w *Workflow) SummarizeSaved(ctx context.Context, id string) (schema.SavedReport, bool, error) {
	report, err := w.LoadReport(id)
	if err != nil {
		return schema.SavedReport{}, false, err
	}
	if report.HasSummary() {
		// Short-circuit before the paid boundary call.
		w.Session.Summary = report.Summary
		return report, false, nil
	}

	apiKey, err := w.store.GetAPIKey()
	if err != nil {
		return schema.SavedReport{}, false, fmt.Errorf("read API key: %w", err)
	}
	if apiKey == "" {
		return schema.SavedReport{}, false, &contract.ValidationError{Message: "Please configure your OpenAI API key in settings"}
	}
	if len(report.PullRequests) == 0 {
		return schema.SavedReport{}, false, &contract.ValidationError{Message: "no pull requests to summarize"}
	}

	text, err := w.summary.GenerateSummary(ctx, apiKey, report.PullRequests, report.DateRange, report.OrgName)
	if err != nil {
		return schema.SavedReport{}, false, fmt.Errorf("generate summary: %w", err)
	}
	w.Session.Summary = text
	report.Summary = text

	updated, err := w.UpdateReport()
	if err != nil {
		return schema.SavedReport{}, false, err
	}
	return report, updated, nil
}

// SaveReport snapshots the session under the given name and persists it.
// Saving never associates the session with the stored report.
func (w *Workflow) SaveReport(name string) (schema.SavedReport, error) {
	report, err := w.Session.BuildReport(name, w.cfg.Org, w.cfg.StartTime, w.cfg.EndTime)
	if err != nil {
		return schema.SavedReport{}, err
	}
	if err := w.store.Save(report); err != nil {
		return schema.SavedReport{}, fmt.Errorf("save report: %w", err)
	}
	return report, nil
}

// LoadReport fetches a saved report by id and loads it into the session.
func (w *Workflow) LoadReport(id string) (schema.SavedReport, error) {
	report, err := w.store.Get(id)
	if err != nil {
		return schema.SavedReport{}, err
	}
	w.Session.LoadReport(report)
	return report, nil
}

// UpdateReport writes the session summary back to the loaded report when
// the lifecycle allows it. Returns true when a write happened. The silent
// no-op path is deliberate so callers can invoke it unconditionally after
// summary generation.
func (w *Workflow) UpdateReport() (bool, error) {
	if !w.Session.CanUpdate() {
		return false, nil
	}
	if err := w.store.UpdateSummary(w.Session.LoadedID(), w.Session.Summary); err != nil {
		return false, err
	}
	w.Session.MarkUpdated()
	return true, nil
}

// DeleteReport removes a saved report. Deleting the currently loaded report
// reverts the session to the no-report-loaded state.
func (w *Workflow) DeleteReport(id string) error {
	if err := w.store.Delete(id); err != nil {
		return err
	}
	w.Session.ForgetReport(id)
	return nil
}

// orgFilter maps the sentinel to "no filter" for the fetch boundary.
func (w *Workflow) orgFilter() string {
	if w.cfg.Org == schema.AllOrganizations {
		return ""
	}
	return w.cfg.Org
}
