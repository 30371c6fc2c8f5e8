package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myimpact/impact/schema"
)

// mergedPR builds a merged record for the given repo and merge time.
func mergedPR(nameWithOwner, closedAt string) schema.PullRequest {
	short := nameWithOwner
	for i := range nameWithOwner {
		if nameWithOwner[i] == '/' {
			short = nameWithOwner[i+1:]
			break
		}
	}
	return schema.PullRequest{
		Title:      "change " + short,
		URL:        "https://github.com/" + nameWithOwner + "/pull/1",
		ClosedAt:   closedAt,
		Repository: schema.Repository{Name: short, NameWithOwner: nameWithOwner},
	}
}

func TestMonthlyDistributionFirstSeenOrder(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-12-05T10:00:00Z"),
		mergedPR("acme/api", "2024-11-20T10:00:00Z"),
		mergedPR("acme/web", "2024-12-10T10:00:00Z"),
		mergedPR("acme/web", "2025-01-02T10:00:00Z"),
	}
	got := MonthlyDistribution(merged)

	assert.Equal(t, []schema.ChartPoint{
		{Name: "Dec '24", Count: 2},
		{Name: "Nov '24", Count: 1},
		{Name: "Jan '25", Count: 1},
	}, got)
}

func TestMonthlyDistributionSkipsBadTimestamps(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "not-a-date"),
		mergedPR("acme/api", "2024-11-20T10:00:00Z"),
	}
	got := MonthlyDistribution(merged)
	assert.Equal(t, []schema.ChartPoint{{Name: "Nov '24", Count: 1}}, got)
}

func TestMonthlyDistributionEmpty(t *testing.T) {
	assert.Empty(t, MonthlyDistribution(nil))
}

func TestOrganizationDistribution(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("zeta/one", "2024-11-01T10:00:00Z"),
		mergedPR("acme/two", "2024-11-02T10:00:00Z"),
		mergedPR("acme/three", "2024-11-03T10:00:00Z"),
		mergedPR("beta/four", "2024-11-04T10:00:00Z"),
	}
	got := OrganizationDistribution(merged)

	assert.Equal(t, schema.ChartPoint{Name: "acme", Count: 2}, got[0])
	// Equal counts keep first-seen order.
	assert.Equal(t, []schema.ChartPoint{
		{Name: "zeta", Count: 1},
		{Name: "beta", Count: 1},
	}, got[1:])
}

func TestRepositoryDistributionTopTen(t *testing.T) {
	var merged []schema.PullRequest
	for i := 0; i < 12; i++ {
		repo := fmt.Sprintf("acme/repo-%02d", i)
		for j := 0; j <= i; j++ {
			merged = append(merged, mergedPR(repo, "2024-11-01T10:00:00Z"))
		}
	}
	got := RepositoryDistribution(merged)

	assert.Len(t, got, schema.MaxRepositoryEntries)
	assert.Equal(t, "repo-11", got[0].Name)
	assert.Equal(t, 12, got[0].Count)
	assert.Equal(t, "repo-02", got[len(got)-1].Name)
}
