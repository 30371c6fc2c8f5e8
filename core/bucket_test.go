package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthBucket(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, time.November, 15, 10, 0, 0, 0, time.UTC), "Nov '24"},
		{time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), "Nov '24"},
		{time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC), "Jan '25"},
		{time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), "Dec '99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthBucket(tt.in))
	}
}

func TestMonthBucketStableWithinMonth(t *testing.T) {
	first := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, MonthBucket(first), MonthBucket(last))
}

func TestWeekBucket(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"sunday maps to itself", time.Date(2024, time.November, 3, 15, 30, 0, 0, time.UTC), "2024-11-03"},
		{"monday maps back one day", time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC), "2024-11-03"},
		{"saturday maps back six days", time.Date(2024, time.November, 9, 23, 59, 59, 0, time.UTC), "2024-11-03"},
		{"crosses month boundary", time.Date(2024, time.December, 2, 12, 0, 0, 0, time.UTC), "2024-12-01"},
		{"crosses year boundary", time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC), "2024-12-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekBucket(tt.in))
		})
	}
}

func TestWeekBucketSameWeekSameKey(t *testing.T) {
	sunday := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		day := sunday.AddDate(0, 0, d)
		assert.Equal(t, "2024-11-03", WeekBucket(day), "day %d of week", d)
	}
}
