package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myimpact/impact/schema"
)

func TestWeeklyHeatmapAscendingWeeks(t *testing.T) {
	merged := []schema.PullRequest{
		mergedPR("acme/api", "2024-11-20T10:00:00Z"), // week of 2024-11-17
		mergedPR("acme/api", "2024-11-05T10:00:00Z"), // week of 2024-11-03
		mergedPR("acme/api", "2024-11-06T10:00:00Z"), // week of 2024-11-03
	}
	got := WeeklyHeatmap(merged)

	assert.Equal(t, []schema.WeekActivity{
		{Week: "2024-11-03", Count: 2, Intensity: 4},
		{Week: "2024-11-17", Count: 1, Intensity: 2},
	}, got)
}

func TestWeeklyHeatmapEmpty(t *testing.T) {
	assert.Empty(t, WeeklyHeatmap(nil))
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		maxCount int
		want     int
	}{
		{"zero count is zero class", 0, 10, 0},
		{"quarter boundary", 1, 4, 1},
		{"half boundary", 2, 4, 2},
		{"three quarter boundary", 3, 4, 3},
		{"max count", 4, 4, 4},
		{"single active week", 1, 1, 4},
		{"max floored at one", 1, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intensity(tt.count, tt.maxCount))
		})
	}
}

func TestIntensityNeverZeroForActivity(t *testing.T) {
	for count := 1; count <= 20; count++ {
		got := intensity(count, 20)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 4)
	}
}
