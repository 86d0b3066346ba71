package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

type (
	// Analytics is the read-only aggregate view of the transactional
	// store the dashboard engine consumes. Every read is side-effect-free
	// and scoped to an explicit window; excludeStatus, when non-empty,
	// removes orders with that status from the aggregate.
	Analytics interface {
		// SumOrderTotals returns the sum of order totals placed in the window.
		SumOrderTotals(ctx context.Context, w entity.TimeWindow, excludeStatus entity.OrderStatus) (decimal.Decimal, error)
		// CountOrders returns the number of orders placed in the window,
		// regardless of status.
		CountOrders(ctx context.Context, w entity.TimeWindow) (int, error)
		// CountActiveUsers returns the number of active users whose
		// account was created in the window.
		CountActiveUsers(ctx context.Context, w entity.TimeWindow) (int, error)
		// AvgOrderTotal returns the average order total in the window.
		AvgOrderTotal(ctx context.Context, w entity.TimeWindow, excludeStatus entity.OrderStatus) (decimal.Decimal, error)
		// GroupOrderTotalsByBucket sums order totals per 1-based bucket key.
		GroupOrderTotalsByBucket(ctx context.Context, key entity.GroupKey, w entity.TimeWindow, excludeStatus entity.OrderStatus) ([]entity.BucketValue, error)
		// GroupOrderCountsByBucket counts orders per 1-based bucket key.
		GroupOrderCountsByBucket(ctx context.Context, key entity.GroupKey, w entity.TimeWindow) ([]entity.BucketValue, error)
		// CategoryRevenueTotals returns the top limit categories by
		// all-time revenue, descending, together with the grand total
		// across all categories. limit <= 0 returns every category.
		CategoryRevenueTotals(ctx context.Context, limit int) ([]entity.CategoryRevenue, decimal.Decimal, error)
	}

	Repository interface {
		Analytics() Analytics
		Ping(ctx context.Context) error
		Now() time.Time
		Close()
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
