// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/myimpact/impact/schema"
)

// ActivityClient defines the operations for fetching contribution records.
// This allows the workflow logic to be tested without a real GitHub CLI.
type ActivityClient interface {
	// FetchMerged returns merged pull requests authored by the user within
	// the window, optionally filtered to one organization.
	FetchMerged(ctx context.Context, start, end time.Time, org string) ([]schema.PullRequest, error)

	// FetchReviewed returns pull requests reviewed by the user within the
	// window, optionally filtered to one organization.
	FetchReviewed(ctx context.Context, start, end time.Time, org string) ([]schema.ReviewedPullRequest, error)

	// FetchOrganizations returns the distinct owner names seen in the
	// user's merged pull requests within the window, sorted ascending.
	FetchOrganizations(ctx context.Context, start, end time.Time) ([]string, error)
}

// SummaryClient defines the operation for generating a narrative summary.
type SummaryClient interface {
	// GenerateSummary produces a first-person narrative for the records.
	GenerateSummary(ctx context.Context, apiKey string, merged []schema.PullRequest, dateRange, orgLabel string) (string, error)
}

// ReportStore defines the interface for saved-report persistence.
// This allows mocking the store for testing.
type ReportStore interface {
	// Save persists a report snapshot under its id.
	Save(report schema.SavedReport) error

	// List returns all saved reports, newest first.
	List() ([]schema.SavedReport, error)

	// Get returns one report by id.
	Get(id string) (schema.SavedReport, error)

	// UpdateSummary rewrites the summary of an existing report.
	UpdateSummary(id, summary string) error

	// Delete removes a report by id.
	Delete(id string) error

	// GetAPIKey returns the stored OpenAI API key, or "" when unset.
	GetAPIKey() (string, error)

	// SetAPIKey stores the OpenAI API key.
	SetAPIKey(key string) error

	// GetStatus returns status information about the reports store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
