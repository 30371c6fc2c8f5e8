package core

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/myimpact/impact/schema"
)

// ComputeStreaks walks the distinct active weeks in ascending order and
// tracks runs of consecutive weeks. A gap of more than seven days between
// week starts breaks the run. The current streak is the run ending at the
// most recent active week, regardless of today's date.
func ComputeStreaks(merged []schema.PullRequest) schema.StreakStats {
	active := make(map[string]struct{})
	for _, pr := range merged {
		t, ok := recordTime(pr.ClosedAt)
		if !ok {
			continue
		}
		active[WeekBucket(t)] = struct{}{}
	}
	if len(active) == 0 {
		return schema.StreakStats{}
	}

	weeks := make([]time.Time, 0, len(active))
	for week := range active {
		t, err := time.Parse(weekLayout, week)
		if err != nil {
			continue
		}
		weeks = append(weeks, t)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	longest, current := 1, 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Sub(weeks[i-1]) <= 7*24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return schema.StreakStats{Longest: longest, Current: current}
}

// AverageCycleTime returns the mean open-to-merge duration in hours over
// records carrying both timestamps. Records missing either timestamp are
// excluded from both the sum and the divisor.
func AverageCycleTime(merged []schema.PullRequest) float64 {
	var totalHours float64
	var eligible int
	for _, pr := range merged {
		created, okC := recordTime(pr.CreatedAt)
		closed, okM := recordTime(pr.ClosedAt)
		if !okC || !okM {
			continue
		}
		totalHours += closed.Sub(created).Hours()
		eligible++
	}
	if eligible == 0 {
		return 0
	}
	return totalHours / float64(eligible)
}

// UniqueCollaborators counts distinct author logins across reviewed records.
// Empty logins are skipped.
func UniqueCollaborators(reviewed []schema.ReviewedPullRequest) int {
	logins := make(map[string]struct{}, len(reviewed))
	for _, pr := range reviewed {
		if pr.Author.Login == "" {
			continue
		}
		logins[pr.Author.Login] = struct{}{}
	}
	return len(logins)
}

// FormatCycleTime renders an hour count at a precision that matches its
// magnitude: sub-hour, hours, fractional days, then whole days.
func FormatCycleTime(hours float64) string {
	switch {
	case hours < 1:
		return "<1h"
	case hours < 24:
		return fmt.Sprintf("%dh", int(math.Round(hours)))
	case hours < 24*7:
		return fmt.Sprintf("%.1fd", hours/24)
	default:
		return fmt.Sprintf("%dd", int(math.Round(hours/24)))
	}
}

// BuildStats derives the full metric bundle for one window's records.
func BuildStats(merged []schema.PullRequest, reviewed []schema.ReviewedPullRequest) schema.ActivityStats {
	return schema.ActivityStats{
		Monthly:       MonthlyDistribution(merged),
		Organizations: OrganizationDistribution(merged),
		Repositories:  RepositoryDistribution(merged),
		Heatmap:       WeeklyHeatmap(merged),
		Streak:        ComputeStreaks(merged),
		AvgCycleHours: AverageCycleTime(merged),
		Collaborators: UniqueCollaborators(reviewed),
		MergedCount:   len(merged),
		ReviewedCount: len(reviewed),
	}
}
