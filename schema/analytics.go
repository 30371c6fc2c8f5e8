package schema

// ChartPoint is a single labeled count in a distribution.
type ChartPoint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeekActivity is one cell of the weekly heatmap.
type WeekActivity struct {
	Week      string `json:"week"`  // Sunday-start ISO date, YYYY-MM-DD
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"` // 0..4
}

// StreakStats holds the longest and current weekly activity streaks.
type StreakStats struct {
	Longest int `json:"longest"`
	Current int `json:"current"`
}

// ActivityStats bundles the derived metrics for one fetch window.
type ActivityStats struct {
	Monthly       []ChartPoint   `json:"monthly"`
	Organizations []ChartPoint   `json:"organizations"`
	Repositories  []ChartPoint   `json:"repositories"`
	Heatmap       []WeekActivity `json:"heatmap"`
	Streak        StreakStats    `json:"streak"`
	AvgCycleHours float64        `json:"avg_cycle_hours"`
	Collaborators int            `json:"collaborators"`
	MergedCount   int            `json:"merged_count"`
	ReviewedCount int            `json:"reviewed_count"`
}

// PeriodActivity is the raw record set of one comparison window.
type PeriodActivity struct {
	Merged   []PullRequest
	Reviewed []ReviewedPullRequest
}

// ComparisonMetric is one row of a period-over-period comparison.
type ComparisonMetric struct {
	Label   string      `json:"label"`
	Current int         `json:"current"`
	Compare int         `json:"compare"`
	Change  ChangeClass `json:"change"`
	Percent int         `json:"percent"` // rounded percent, meaningful for increase/decrease only
}

// ComparisonResult is a full comparison between two windows.
type ComparisonResult struct {
	CurrentRange string             `json:"current_range"`
	CompareRange string             `json:"compare_range"`
	Metrics      []ComparisonMetric `json:"metrics"`
}
