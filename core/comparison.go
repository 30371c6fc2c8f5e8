package core

import (
	"math"
	"time"

	"github.com/myimpact/impact/schema"
)

// CompareMetrics builds the period-over-period rows for two windows of
// activity. Metric order is fixed so output stays stable across runs.
func CompareMetrics(current, compare schema.PeriodActivity) []schema.ComparisonMetric {
	return []schema.ComparisonMetric{
		classify("PRs merged", len(current.Merged), len(compare.Merged)),
		classify("PRs reviewed", len(current.Reviewed), len(compare.Reviewed)),
		classify("Repositories", distinctRepos(current.Merged), distinctRepos(compare.Merged)),
	}
}

// classify derives the change descriptor for one metric pair. A zero
// baseline with current activity is "new" rather than an infinite percent,
// and changes under one percent are treated as noise.
func classify(label string, current, compare int) schema.ComparisonMetric {
	m := schema.ComparisonMetric{Label: label, Current: current, Compare: compare}
	switch {
	case compare == 0 && current > 0:
		m.Change = schema.NewChange
	case compare == 0 && current == 0:
		m.Change = schema.FlatChange
	default:
		pct := float64(current-compare) / float64(compare) * 100
		if math.Abs(pct) < 1 {
			m.Change = schema.NeutralChange
			return m
		}
		m.Percent = int(math.Round(pct))
		if pct > 0 {
			m.Change = schema.IncreaseChange
		} else {
			m.Change = schema.DecreaseChange
		}
	}
	return m
}

func distinctRepos(merged []schema.PullRequest) int {
	repos := make(map[string]struct{}, len(merged))
	for _, pr := range merged {
		repos[pr.Repository.Name] = struct{}{}
	}
	return len(repos)
}

// DefaultCompareRange returns the window immediately preceding the current
// one, with equal duration. The compare window ends one tick before the
// current one starts so the two never overlap.
func DefaultCompareRange(start, end time.Time) (time.Time, time.Time) {
	compareEnd := start.Add(-time.Second)
	compareStart := compareEnd.Add(-end.Sub(start))
	return compareStart, compareEnd
}
