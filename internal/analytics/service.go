package analytics

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/modamart/shop-analytics/internal/dependency"
	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// pageViewsPerOrder derives the placeholder page-view count from
	// order volume; no real view tracking exists.
	pageViewsPerOrder = 50

	// topCategories is the number of categories the sales share chart shows.
	topCategories = 5
)

// trafficSplit is the simulated organic/direct/social share of order
// volume. The traffic chart is derived, not measured.
var trafficSplit = []struct {
	label string
	share float64
}{
	{"Organic", 0.45},
	{"Direct", 0.35},
	{"Social", 0.20},
}

// Service recomputes dashboard analytics from the transactional store
// on every call. Nothing is cached between requests.
type Service struct {
	reader dependency.Analytics
	now    func() time.Time
}

func New(reader dependency.Analytics) *Service {
	return &Service{
		reader: reader,
		now:    time.Now,
	}
}

// Metrics computes the six dashboard cards for a time-range token. All
// six share the same window boundaries; the underlying reads run
// concurrently and any failure fails the whole computation rather than
// returning a partially zeroed dashboard.
func (s *Service) Metrics(ctx context.Context, token string) (*entity.DashboardMetrics, error) {
	plan := ResolvePlan(token)
	now := s.now()
	cur := CurrentWindow(now, plan)
	prev := PreviousWindow(now, plan)

	var (
		revenueCur, revenuePrev decimal.Decimal
		avgCur, avgPrev         decimal.Decimal
		ordersCur, ordersPrev   int
		usersCur, usersPrev     int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenueCur, err = s.reader.SumOrderTotals(gctx, cur, entity.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("revenue current: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		revenuePrev, err = s.reader.SumOrderTotals(gctx, prev, entity.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("revenue previous: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		ordersCur, err = s.reader.CountOrders(gctx, cur)
		if err != nil {
			return fmt.Errorf("orders current: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		ordersPrev, err = s.reader.CountOrders(gctx, prev)
		if err != nil {
			return fmt.Errorf("orders previous: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		usersCur, err = s.reader.CountActiveUsers(gctx, cur)
		if err != nil {
			return fmt.Errorf("customers current: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		usersPrev, err = s.reader.CountActiveUsers(gctx, prev)
		if err != nil {
			return fmt.Errorf("customers previous: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		avgCur, err = s.reader.AvgOrderTotal(gctx, cur, entity.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("avg order current: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		avgPrev, err = s.reader.AvgOrderTotal(gctx, prev, entity.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("avg order previous: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &entity.DashboardMetrics{
		Revenue:   metricOf(formatCurrency(revenueCur), revenueCur, revenuePrev),
		Orders:    metricOf(formatInteger(int64(ordersCur)), decimal.NewFromInt(int64(ordersCur)), decimal.NewFromInt(int64(ordersPrev))),
		Customers: metricOf(formatInteger(int64(usersCur)), decimal.NewFromInt(int64(usersCur)), decimal.NewFromInt(int64(usersPrev))),
		AvgOrder:  metricOf(formatCurrency(avgCur), avgCur, avgPrev),
		PageViews: pageViewsMetric(ordersCur),
	}

	convCur := conversionRate(ordersCur, usersCur)
	convPrev := conversionRate(ordersPrev, usersPrev)
	m.ConversionRate = metricOf(formatPercent(convCur), convCur, convPrev)

	return m, nil
}

// RevenueSeries returns order revenue per bucket over the plan's
// window, cancelled orders excluded.
func (s *Service) RevenueSeries(ctx context.Context, token string) (*entity.Series, error) {
	plan := ResolvePlan(token)
	w := CurrentWindow(s.now(), plan)
	rows, err := s.reader.GroupOrderTotalsByBucket(ctx, plan.GroupKey, w, entity.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("revenue series: %w", err)
	}
	series := alignSeries(plan, rows)
	return &series, nil
}

// OrdersSeries returns order counts per bucket over the plan's window.
func (s *Service) OrdersSeries(ctx context.Context, token string) (*entity.Series, error) {
	plan := ResolvePlan(token)
	w := CurrentWindow(s.now(), plan)
	rows, err := s.reader.GroupOrderCountsByBucket(ctx, plan.GroupKey, w)
	if err != nil {
		return nil, fmt.Errorf("orders series: %w", err)
	}
	series := alignSeries(plan, rows)
	return &series, nil
}

// CategorySeries returns the top five categories by all-time revenue as
// percentage shares of total revenue. The active time range does not
// apply here; category share is always computed over the full history,
// and the shares sum to less than 100 whenever more than five
// categories exist.
func (s *Service) CategorySeries(ctx context.Context) (*entity.Series, error) {
	rows, total, err := s.reader.CategoryRevenueTotals(ctx, topCategories)
	if err != nil {
		return nil, fmt.Errorf("category series: %w", err)
	}
	labels := make([]string, len(rows))
	data := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Category
		if total.IsPositive() {
			share := r.Revenue.Div(total).Mul(hundred).Round(1)
			data[i], _ = share.Float64()
		}
	}
	return &entity.Series{Labels: labels, Data: data}, nil
}

// TrafficSeries splits the orders series into a fixed 45/35/20
// organic/direct/social breakdown, truncated to whole counts per
// bucket. Simulated: there is no real traffic source tracking.
func (s *Service) TrafficSeries(ctx context.Context, token string) (*entity.MultiSeries, error) {
	orders, err := s.OrdersSeries(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("traffic series: %w", err)
	}
	datasets := make([]entity.Dataset, len(trafficSplit))
	for i, src := range trafficSplit {
		data := make([]float64, len(orders.Data))
		for j, v := range orders.Data {
			data[j] = math.Trunc(v * src.share)
		}
		datasets[i] = entity.Dataset{Label: src.label, Data: data}
	}
	return &entity.MultiSeries{Labels: orders.Labels, Datasets: datasets}, nil
}

// Dashboard assembles the full analytics payload for one token. The
// five computations are independent reads and run concurrently; one
// failure fails the request so the dashboard is never partially stale.
func (s *Service) Dashboard(ctx context.Context, token string) (*entity.Dashboard, error) {
	d := &entity.Dashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.Metrics(gctx, token)
		if err != nil {
			return err
		}
		d.Metrics = *m
		return nil
	})
	g.Go(func() error {
		sr, err := s.RevenueSeries(gctx, token)
		if err != nil {
			return err
		}
		d.RevenueOverTime = *sr
		return nil
	})
	g.Go(func() error {
		sr, err := s.OrdersSeries(gctx, token)
		if err != nil {
			return err
		}
		d.OrdersOverTime = *sr
		return nil
	})
	g.Go(func() error {
		sr, err := s.CategorySeries(gctx)
		if err != nil {
			return err
		}
		d.SalesByCategory = *sr
		return nil
	})
	g.Go(func() error {
		ms, err := s.TrafficSeries(gctx, token)
		if err != nil {
			return err
		}
		d.TrafficSources = *ms
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return d, nil
}

func metricOf(value string, current, previous decimal.Decimal) entity.Metric {
	change, trend := trendOf(current, previous)
	f, _ := change.Float64()
	return entity.Metric{Value: value, Change: f, Trend: trend}
}

// conversionRate divides two independently scoped counts: orders placed
// in the window over accounts created in it. The counts never join.
func conversionRate(orders, users int) decimal.Decimal {
	if users == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(orders)).
		Div(decimal.NewFromInt(int64(users))).
		Mul(hundred).
		Round(2)
}

// pageViewsMetric is a placeholder card: views are derived from order
// volume and the movement is synthetic, always trending up between 5
// and 20 percent.
func pageViewsMetric(orders int) entity.Metric {
	views := int64(orders) * pageViewsPerOrder
	change := math.Round((5+rand.Float64()*15)*10) / 10
	return entity.Metric{
		Value:  formatInteger(views),
		Change: change,
		Trend:  entity.TrendUp,
	}
}
