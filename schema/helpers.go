package schema

import (
	"fmt"
	"time"
)

// OrgDisplayName formats an org filter for display. The empty string and the
// AllOrganizations sentinel both render as the unfiltered label.
func OrgDisplayName(org string) string {
	if org == "" || org == AllOrganizations {
		return "All Organizations"
	}
	return org
}

// FormatDateRange renders a window as "Jan 2, 2006 - Mar 4, 2006".
func FormatDateRange(start, end time.Time) string {
	const layout = "Jan 2, 2006"
	return fmt.Sprintf("%s - %s", start.Format(layout), end.Format(layout))
}

// DefaultDateRange returns the last six months ending today, midnight-aligned
// at the start and end-of-day at the end.
func DefaultDateRange(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	start := end.AddDate(0, -6, 0)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	return start, end
}
