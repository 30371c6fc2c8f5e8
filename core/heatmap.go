package core

import (
	"sort"

	"github.com/myimpact/impact/schema"
)

// WeeklyHeatmap groups merged records into Sunday-start week buckets,
// ascending by week, and assigns each week an intensity class 0..4 relative
// to the busiest week in the window.
func WeeklyHeatmap(merged []schema.PullRequest) []schema.WeekActivity {
	counts := make(map[string]int)
	for _, pr := range merged {
		t, ok := recordTime(pr.ClosedAt)
		if !ok {
			continue
		}
		counts[WeekBucket(t)]++
	}

	weeks := make([]string, 0, len(counts))
	maxCount := 0
	for week, count := range counts {
		weeks = append(weeks, week)
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Strings(weeks)

	cells := make([]schema.WeekActivity, 0, len(weeks))
	for _, week := range weeks {
		count := counts[week]
		cells = append(cells, schema.WeekActivity{
			Week:      week,
			Count:     count,
			Intensity: intensity(count, maxCount),
		})
	}
	return cells
}

// intensity maps a count to a class 0..4 relative to the window maximum.
// Zero is reserved for truly empty weeks; any activity scores at least 1.
func intensity(count, maxCount int) int {
	if count == 0 {
		return 0
	}
	if maxCount < 1 {
		maxCount = 1
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio <= 0.25:
		return 1
	case ratio <= 0.5:
		return 2
	case ratio <= 0.75:
		return 3
	default:
		return 4
	}
}
