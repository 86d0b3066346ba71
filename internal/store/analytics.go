package store

import (
	"context"
	"fmt"

	"github.com/modamart/shop-analytics/internal/dependency"
	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

func (ms *MYSQLStore) Analytics() dependency.Analytics {
	return ms
}

// bucketExpr returns the 1-based SQL grouping expression for a key.
// WEEKDAY is 0=Mon..6=Sun, so +1 lines the keys up with a Mon-first
// label axis; MONTH is already 1-based. The week key counts back from
// the window end, so bucket 1 is the most recent week.
func bucketExpr(key entity.GroupKey) string {
	switch key {
	case entity.GroupKeyWeekOfWindow:
		return "CEILING((DATEDIFF(:to, o.created_at) + 1) / 7)"
	case entity.GroupKeyMonthOfYear:
		return "MONTH(o.created_at)"
	default:
		return "WEEKDAY(o.created_at) + 1"
	}
}

func (ms *MYSQLStore) SumOrderTotals(ctx context.Context, w entity.TimeWindow, excludeStatus entity.OrderStatus) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `db:"total"`
	}
	query := `
		SELECT COALESCE(SUM(o.total), 0) AS total
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
	`
	params := map[string]any{"from": w.From, "to": w.To}
	if excludeStatus != "" {
		query += " AND o.status <> :excludeStatus"
		params["excludeStatus"] = string(excludeStatus)
	}
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum order totals: %w", err)
	}
	return r.Total, nil
}

func (ms *MYSQLStore) CountOrders(ctx context.Context, w entity.TimeWindow) (int, error) {
	type row struct {
		N int `db:"n"`
	}
	query := `
		SELECT COUNT(*) AS n
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
	`
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, map[string]any{"from": w.From, "to": w.To})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return r.N, nil
}

func (ms *MYSQLStore) CountActiveUsers(ctx context.Context, w entity.TimeWindow) (int, error) {
	type row struct {
		N int `db:"n"`
	}
	query := `
		SELECT COUNT(*) AS n
		FROM users u
		WHERE u.status = :status
		AND u.created_at >= :from AND u.created_at < :to
	`
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, map[string]any{
		"from":   w.From,
		"to":     w.To,
		"status": string(entity.UserStatusActive),
	})
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return r.N, nil
}

func (ms *MYSQLStore) AvgOrderTotal(ctx context.Context, w entity.TimeWindow, excludeStatus entity.OrderStatus) (decimal.Decimal, error) {
	type row struct {
		Avg decimal.Decimal `db:"avg_total"`
	}
	query := `
		SELECT COALESCE(AVG(o.total), 0) AS avg_total
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
	`
	params := map[string]any{"from": w.From, "to": w.To}
	if excludeStatus != "" {
		query += " AND o.status <> :excludeStatus"
		params["excludeStatus"] = string(excludeStatus)
	}
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg order total: %w", err)
	}
	return r.Avg.Round(2), nil
}

func (ms *MYSQLStore) GroupOrderTotalsByBucket(ctx context.Context, key entity.GroupKey, w entity.TimeWindow, excludeStatus entity.OrderStatus) ([]entity.BucketValue, error) {
	expr := bucketExpr(key)
	statusCond := ""
	params := map[string]any{"from": w.From, "to": w.To}
	if excludeStatus != "" {
		statusCond = "AND o.status <> :excludeStatus"
		params["excludeStatus"] = string(excludeStatus)
	}
	query := fmt.Sprintf(`
		SELECT %s AS bucket,
			COALESCE(SUM(o.total), 0) AS value
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
		%s
		GROUP BY bucket
		ORDER BY bucket
	`, expr, statusCond)
	rows, err := QueryListNamed[struct {
		Bucket int             `db:"bucket"`
		Value  decimal.Decimal `db:"value"`
	}](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("group order totals: %w", err)
	}
	result := make([]entity.BucketValue, len(rows))
	for i, r := range rows {
		result[i] = entity.BucketValue{Bucket: r.Bucket, Value: r.Value}
	}
	return result, nil
}

func (ms *MYSQLStore) GroupOrderCountsByBucket(ctx context.Context, key entity.GroupKey, w entity.TimeWindow) ([]entity.BucketValue, error) {
	expr := bucketExpr(key)
	query := fmt.Sprintf(`
		SELECT %s AS bucket,
			COUNT(*) AS value
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
		GROUP BY bucket
		ORDER BY bucket
	`, expr)
	rows, err := QueryListNamed[struct {
		Bucket int             `db:"bucket"`
		Value  decimal.Decimal `db:"value"`
	}](ctx, ms.DB(), query, map[string]any{"from": w.From, "to": w.To})
	if err != nil {
		return nil, fmt.Errorf("group order counts: %w", err)
	}
	result := make([]entity.BucketValue, len(rows))
	for i, r := range rows {
		result[i] = entity.BucketValue{Bucket: r.Bucket, Value: r.Value}
	}
	return result, nil
}

// CategoryRevenueTotals aggregates item revenue per category across the
// full order history, cancelled orders excluded. All categories are
// read so the grand total covers revenue outside the returned top list.
func (ms *MYSQLStore) CategoryRevenueTotals(ctx context.Context, limit int) ([]entity.CategoryRevenue, decimal.Decimal, error) {
	query := `
		SELECT c.name AS category,
			COALESCE(SUM(oi.quantity * oi.price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN products p ON oi.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE o.status <> :excludeStatus
		GROUP BY c.id, c.name
		ORDER BY revenue DESC
	`
	rows, err := QueryListNamed[struct {
		Category string          `db:"category"`
		Revenue  decimal.Decimal `db:"revenue"`
	}](ctx, ms.DB(), query, map[string]any{"excludeStatus": string(entity.OrderStatusCancelled)})
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("category revenue totals: %w", err)
	}
	total := decimal.Zero
	result := make([]entity.CategoryRevenue, len(rows))
	for i, r := range rows {
		total = total.Add(r.Revenue)
		result[i] = entity.CategoryRevenue{Category: r.Category, Revenue: r.Revenue}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, total, nil
}
