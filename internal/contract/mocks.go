package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/myimpact/impact/schema"
)

// MockActivityClient is a mock implementation of ActivityClient for testing.
type MockActivityClient struct {
	mock.Mock
}

var _ ActivityClient = &MockActivityClient{} // Compile-time check

// FetchMerged implements the ActivityClient interface.
func (m *MockActivityClient) FetchMerged(ctx context.Context, start, end time.Time, org string) ([]schema.PullRequest, error) {
	args := m.Called(ctx, start, end, org)
	prs, _ := args.Get(0).([]schema.PullRequest)
	return prs, args.Error(1)
}

// FetchReviewed implements the ActivityClient interface.
func (m *MockActivityClient) FetchReviewed(ctx context.Context, start, end time.Time, org string) ([]schema.ReviewedPullRequest, error) {
	args := m.Called(ctx, start, end, org)
	prs, _ := args.Get(0).([]schema.ReviewedPullRequest)
	return prs, args.Error(1)
}

// FetchOrganizations implements the ActivityClient interface.
func (m *MockActivityClient) FetchOrganizations(ctx context.Context, start, end time.Time) ([]string, error) {
	args := m.Called(ctx, start, end)
	orgs, _ := args.Get(0).([]string)
	return orgs, args.Error(1)
}

// MockSummaryClient is a mock implementation of SummaryClient for testing.
type MockSummaryClient struct {
	mock.Mock
}

var _ SummaryClient = &MockSummaryClient{} // Compile-time check

// GenerateSummary implements the SummaryClient interface.
func (m *MockSummaryClient) GenerateSummary(ctx context.Context, apiKey string, merged []schema.PullRequest, dateRange, orgLabel string) (string, error) {
	args := m.Called(ctx, apiKey, merged, dateRange, orgLabel)
	return args.String(0), args.Error(1)
}

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ ReportStore = &MockReportStore{} // Compile-time check

// Save implements the ReportStore interface.
func (m *MockReportStore) Save(report schema.SavedReport) error {
	args := m.Called(report)
	return args.Error(0)
}

// List implements the ReportStore interface.
func (m *MockReportStore) List() ([]schema.SavedReport, error) {
	args := m.Called()
	reports, _ := args.Get(0).([]schema.SavedReport)
	return reports, args.Error(1)
}

// Get implements the ReportStore interface.
func (m *MockReportStore) Get(id string) (schema.SavedReport, error) {
	args := m.Called(id)
	report, _ := args.Get(0).(schema.SavedReport)
	return report, args.Error(1)
}

// UpdateSummary implements the ReportStore interface.
func (m *MockReportStore) UpdateSummary(id, summary string) error {
	args := m.Called(id, summary)
	return args.Error(0)
}

// Delete implements the ReportStore interface.
func (m *MockReportStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// GetAPIKey implements the ReportStore interface.
func (m *MockReportStore) GetAPIKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// SetAPIKey implements the ReportStore interface.
func (m *MockReportStore) SetAPIKey(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
