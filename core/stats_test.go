package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myimpact/impact/schema"
)

func reviewedPR(login, createdAt string) schema.ReviewedPullRequest {
	return schema.ReviewedPullRequest{
		Title:      "reviewed",
		CreatedAt:  createdAt,
		Author:     schema.Author{Login: login},
		Repository: schema.Repository{Name: "api", NameWithOwner: "acme/api"},
	}
}

func TestComputeStreaksEmpty(t *testing.T) {
	assert.Equal(t, schema.StreakStats{}, ComputeStreaks(nil))
}

func TestComputeStreaksSingleWeek(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-11-05T10:00:00Z"),
		mergedPR("acme/api", "2024-11-06T10:00:00Z"),
	}
	assert.Equal(t, schema.StreakStats{Longest: 1, Current: 1}, ComputeStreaks(merged))
}

func TestComputeStreaksConsecutiveWeeks(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-11-05T10:00:00Z"), // week 2024-11-03
		mergedPR("acme/api", "2024-11-12T10:00:00Z"), // week 2024-11-10
		mergedPR("acme/api", "2024-11-19T10:00:00Z"), // week 2024-11-17
	}
	assert.Equal(t, schema.StreakStats{Longest: 3, Current: 3}, ComputeStreaks(merged))
}

func TestComputeStreaksGapResets(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-10-01T10:00:00Z"), // week 2024-09-29
		mergedPR("acme/api", "2024-10-08T10:00:00Z"), // week 2024-10-06
		mergedPR("acme/api", "2024-10-15T10:00:00Z"), // week 2024-10-13
		mergedPR("acme/api", "2024-11-19T10:00:00Z"), // week 2024-11-17, after a gap
	}
	// Longest run is the three October weeks; the current run is just the
	// last active week.
	assert.Equal(t, schema.StreakStats{Longest: 3, Current: 1}, ComputeStreaks(merged))
}

func TestAverageCycleTime(t *testing.T) {
	merged := []schema.PullRequest{
		{CreatedAt: "2024-11-01T00:00:00Z", ClosedAt: "2024-11-01T12:00:00Z"}, // 12h
		{CreatedAt: "2024-11-02T00:00:00Z", ClosedAt: "2024-11-03T00:00:00Z"}, // 24h
	}
	assert.InDelta(t, 18.0, AverageCycleTime(merged), 0.001)
}

func TestAverageCycleTimeSkipsIneligible(t *testing.T) {
	merged := []schema.PullRequest{
		{CreatedAt: "2024-11-01T00:00:00Z", ClosedAt: "2024-11-01T12:00:00Z"}, // 12h
		{ClosedAt: "2024-11-03T00:00:00Z"},                                    // missing createdAt
		{CreatedAt: "bad", ClosedAt: "2024-11-03T00:00:00Z"},                  // malformed
	}
	// Only the eligible record divides the sum.
	assert.InDelta(t, 12.0, AverageCycleTime(merged), 0.001)
}

func TestAverageCycleTimeNoneEligible(t *testing.T) {
	merged := []schema.PullRequest{{ClosedAt: "2024-11-03T00:00:00Z"}}
	assert.Zero(t, AverageCycleTime(merged))
}

func TestUniqueCollaborators(t *testing.T) {
	reviewed := []schema.ReviewedPullRequest{
		reviewedPR("alice", "2024-11-01T00:00:00Z"),
		reviewedPR("bob", "2024-11-02T00:00:00Z"),
		reviewedPR("alice", "2024-11-03T00:00:00Z"),
		reviewedPR("", "2024-11-04T00:00:00Z"),
	}
	assert.Equal(t, 2, UniqueCollaborators(reviewed))
}

func TestFormatCycleTime(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "<1h"},
		{0.9, "<1h"},
		{1, "1h"},
		{5.4, "5h"},
		{23.4, "23h"},
		{24, "1.0d"},
		{36, "1.5d"},
		{167, "7.0d"},
		{168, "7d"},
		{250, "10d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCycleTime(tt.hours), "hours=%v", tt.hours)
	}
}

func TestBuildStats(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-11-05T10:00:00Z"),
		mergedPR("acme/web", "2024-11-06T10:00:00Z"),
	}
	reviewed := []schema.ReviewedPullRequest{reviewedPR("alice", "2024-11-05T00:00:00Z")}

	stats := BuildStats(merged, reviewed)
	assert.Equal(t, 2, stats.MergedCount)
	assert.Equal(t, 1, stats.ReviewedCount)
	assert.Equal(t, 1, stats.Collaborators)
	assert.Len(t, stats.Monthly, 1)
	assert.Len(t, stats.Repositories, 2)
	assert.Equal(t, schema.StreakStats{Longest: 1, Current: 1}, stats.Streak)
}
