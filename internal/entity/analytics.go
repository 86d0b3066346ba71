package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRangeToken selects the reporting window on the dashboard.
type TimeRangeToken string

const (
	TimeRange7Days   TimeRangeToken = "7days"
	TimeRange30Days  TimeRangeToken = "30days"
	TimeRange6Months TimeRangeToken = "6months"
)

// GroupKey names the SQL expression grouped aggregate reads bucket by.
// All keys are 1-based, matching MySQL WEEKDAY()+1 / MONTH() conventions.
type GroupKey int

const (
	GroupKeyDayOfWeek GroupKey = iota + 1
	GroupKeyWeekOfWindow
	GroupKeyMonthOfYear
)

// BucketingPlan maps a time-range token onto a display axis: how many
// days the window spans, how many buckets the charts show, their labels
// and the grouping key that produces the bucket numbers.
type BucketingPlan struct {
	Token       TimeRangeToken
	WindowDays  int
	BucketCount int
	Labels      []string
	GroupKey    GroupKey
}

// TimeWindow is a half-open [From, To) interval for a single aggregate read.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// BucketValue is one sparse row of a grouped aggregate read.
// Bucket is 1-based.
type BucketValue struct {
	Bucket int
	Value  decimal.Decimal
}

// CategoryRevenue is the all-time revenue attributed to one product category.
type CategoryRevenue struct {
	Category string
	Revenue  decimal.Decimal
}

// Trend is the direction of a period-over-period movement.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Metric is a single dashboard card: a display-formatted value plus the
// period-over-period movement. Change is always non-negative; direction
// lives in Trend only.
type Metric struct {
	Value  string  `json:"value"`
	Change float64 `json:"change"`
	Trend  Trend   `json:"trend"`
}

// Series is an ordered, label-aligned sequence of chart values.
// len(Data) == len(Labels) always.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Dataset is one named line of a MultiSeries.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// MultiSeries holds several datasets sharing one label axis.
type MultiSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// DashboardMetrics are the six cards shown at the top of the dashboard.
// All six are computed over the same window boundaries so they compare
// meaningfully against each other.
type DashboardMetrics struct {
	Revenue        Metric `json:"revenue"`
	Orders         Metric `json:"orders"`
	Customers      Metric `json:"customers"`
	AvgOrder       Metric `json:"avgOrder"`
	ConversionRate Metric `json:"conversionRate"`
	PageViews      Metric `json:"pageViews"`
}

// Dashboard is the full analytics payload for one time range.
type Dashboard struct {
	Metrics         DashboardMetrics `json:"metrics"`
	RevenueOverTime Series           `json:"revenueOverTime"`
	OrdersOverTime  Series           `json:"ordersOverTime"`
	SalesByCategory Series           `json:"salesByCategory"`
	TrafficSources  MultiSeries      `json:"trafficSources"`
}
