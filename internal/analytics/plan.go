package analytics

import (
	"time"

	"github.com/modamart/shop-analytics/internal/entity"
)

// plans is the full token -> bucketing plan table. Adding a range is a
// new table entry; nothing else branches on the token.
var plans = map[entity.TimeRangeToken]entity.BucketingPlan{
	entity.TimeRange7Days: {
		Token:       entity.TimeRange7Days,
		WindowDays:  7,
		BucketCount: 7,
		Labels:      []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		GroupKey:    entity.GroupKeyDayOfWeek,
	},
	entity.TimeRange30Days: {
		Token:       entity.TimeRange30Days,
		WindowDays:  30,
		BucketCount: 4,
		Labels:      []string{"Week 1", "Week 2", "Week 3", "Week 4"},
		GroupKey:    entity.GroupKeyWeekOfWindow,
	},
	entity.TimeRange6Months: {
		Token:       entity.TimeRange6Months,
		WindowDays:  180,
		BucketCount: 6,
		Labels:      []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		GroupKey:    entity.GroupKeyMonthOfYear,
	},
}

// ResolvePlan maps a time-range token to its bucketing plan. Unknown
// tokens deliberately fall back to the 7 day plan instead of erroring;
// the dashboard never rejects a range parameter.
func ResolvePlan(token string) entity.BucketingPlan {
	if p, ok := plans[entity.TimeRangeToken(token)]; ok {
		return p
	}
	return plans[entity.TimeRange7Days]
}

// CurrentWindow is the reporting interval [now - windowDays, now).
func CurrentWindow(now time.Time, p entity.BucketingPlan) entity.TimeWindow {
	return entity.TimeWindow{
		From: now.AddDate(0, 0, -p.WindowDays),
		To:   now,
	}
}

// PreviousWindow is the equal-length interval immediately before the
// current one. Every metric compares against this same baseline.
func PreviousWindow(now time.Time, p entity.BucketingPlan) entity.TimeWindow {
	return entity.TimeWindow{
		From: now.AddDate(0, 0, -2*p.WindowDays),
		To:   now.AddDate(0, 0, -p.WindowDays),
	}
}
