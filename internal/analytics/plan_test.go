package analytics

import (
	"testing"
	"time"

	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestResolvePlan(t *testing.T) {
	tests := []struct {
		token       string
		windowDays  int
		bucketCount int
		groupKey    entity.GroupKey
	}{
		{"7days", 7, 7, entity.GroupKeyDayOfWeek},
		{"30days", 30, 4, entity.GroupKeyWeekOfWindow},
		{"6months", 180, 6, entity.GroupKeyMonthOfYear},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p := ResolvePlan(tt.token)
			assert.Equal(t, tt.windowDays, p.WindowDays)
			assert.Equal(t, tt.bucketCount, p.BucketCount)
			assert.Equal(t, tt.groupKey, p.GroupKey)
			assert.Len(t, p.Labels, p.BucketCount)
		})
	}
}

func TestResolvePlanUnknownTokenFallsBack(t *testing.T) {
	for _, token := range []string{"", "bogus", "90days", "7DAYS"} {
		p := ResolvePlan(token)
		assert.Equal(t, ResolvePlan("7days"), p, "token %q", token)
	}
}

func TestResolvePlanLabels(t *testing.T) {
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, ResolvePlan("7days").Labels)
	assert.Equal(t, []string{"Week 1", "Week 2", "Week 3", "Week 4"}, ResolvePlan("30days").Labels)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, ResolvePlan("6months").Labels)
}

func TestWindows(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := ResolvePlan("7days")

	cur := CurrentWindow(now, p)
	assert.Equal(t, now, cur.To)
	assert.Equal(t, now.AddDate(0, 0, -7), cur.From)

	prev := PreviousWindow(now, p)
	assert.Equal(t, cur.From, prev.To)
	assert.Equal(t, now.AddDate(0, 0, -14), prev.From)
}
