package core

import (
	"sort"
	"time"

	"github.com/myimpact/impact/schema"
)

// recordTime parses a record timestamp. Records carry RFC3339 strings
// straight from the fetch boundary; malformed ones are skipped by callers.
func recordTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthlyDistribution groups merged records by calendar month of merge time.
// Buckets appear in first-seen record order, not chronological order.
func MonthlyDistribution(merged []schema.PullRequest) []schema.ChartPoint {
	counts := make(map[string]int, len(merged))
	var order []string
	for _, pr := range merged {
		t, ok := recordTime(pr.ClosedAt)
		if !ok {
			continue
		}
		key := MonthBucket(t)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	points := make([]schema.ChartPoint, 0, len(order))
	for _, key := range order {
		points = append(points, schema.ChartPoint{Name: key, Count: counts[key]})
	}
	return points
}

// OrganizationDistribution groups merged records by the owner prefix of the
// fully qualified repo name, sorted by count descending. Ties keep
// first-seen order, so equal-count orgs are stable across runs.
func OrganizationDistribution(merged []schema.PullRequest) []schema.ChartPoint {
	return countByKey(merged, func(pr schema.PullRequest) string {
		return pr.Repository.Owner()
	}, 0)
}

// RepositoryDistribution groups merged records by repo short name, sorted by
// count descending, capped at the busiest repos.
func RepositoryDistribution(merged []schema.PullRequest) []schema.ChartPoint {
	return countByKey(merged, func(pr schema.PullRequest) string {
		return pr.Repository.Name
	}, schema.MaxRepositoryEntries)
}

// countByKey counts records per key, sorts descending with a stable sort,
// and optionally truncates to limit entries.
func countByKey(merged []schema.PullRequest, key func(schema.PullRequest) string, limit int) []schema.ChartPoint {
	counts := make(map[string]int, len(merged))
	var order []string
	for _, pr := range merged {
		k := key(pr)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	points := make([]schema.ChartPoint, 0, len(order))
	for _, k := range order {
		points = append(points, schema.ChartPoint{Name: k, Count: counts[k]})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Count > points[j].Count
	})

	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}
