package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/modamart/shop-analytics/internal/analytics"
	"github.com/modamart/shop-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader is an empty transactional store unless failWith is set.
type fakeReader struct {
	failWith error
}

func (f *fakeReader) SumOrderTotals(context.Context, entity.TimeWindow, entity.OrderStatus) (decimal.Decimal, error) {
	return decimal.Zero, f.failWith
}

func (f *fakeReader) CountOrders(context.Context, entity.TimeWindow) (int, error) {
	return 0, f.failWith
}

func (f *fakeReader) CountActiveUsers(context.Context, entity.TimeWindow) (int, error) {
	return 0, f.failWith
}

func (f *fakeReader) AvgOrderTotal(context.Context, entity.TimeWindow, entity.OrderStatus) (decimal.Decimal, error) {
	return decimal.Zero, f.failWith
}

func (f *fakeReader) GroupOrderTotalsByBucket(context.Context, entity.GroupKey, entity.TimeWindow, entity.OrderStatus) ([]entity.BucketValue, error) {
	return nil, f.failWith
}

func (f *fakeReader) GroupOrderCountsByBucket(context.Context, entity.GroupKey, entity.TimeWindow) ([]entity.BucketValue, error) {
	return nil, f.failWith
}

func (f *fakeReader) CategoryRevenueTotals(context.Context, int) ([]entity.CategoryRevenue, decimal.Decimal, error) {
	return nil, decimal.Zero, f.failWith
}

func newTestRouter(r *fakeReader) http.Handler {
	return newRouter(analytics.New(r), func(context.Context) error { return nil }, nil)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboardEmptyStore(t *testing.T) {
	h := newTestRouter(&fakeReader{})
	rec := get(t, h, "/api/analytics?timeRange=7days")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    entity.Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	assert.Equal(t, "$0.00", body.Data.Metrics.Revenue.Value)
	assert.Equal(t, "0", body.Data.Metrics.Orders.Value)
	assert.Equal(t, "0", body.Data.Metrics.Customers.Value)
	assert.Equal(t, "$0.00", body.Data.Metrics.AvgOrder.Value)
	assert.Equal(t, "0.00%", body.Data.Metrics.ConversionRate.Value)
	assert.Equal(t, "0", body.Data.Metrics.PageViews.Value)

	for _, s := range []entity.Series{body.Data.RevenueOverTime, body.Data.OrdersOverTime} {
		require.Len(t, s.Labels, 7)
		require.Len(t, s.Data, 7)
		for _, v := range s.Data {
			assert.Zero(t, v)
		}
	}
	assert.Len(t, body.Data.TrafficSources.Labels, 7)
	require.Len(t, body.Data.TrafficSources.Datasets, 3)
	for _, ds := range body.Data.TrafficSources.Datasets {
		assert.Len(t, ds.Data, 7)
	}
}

func TestChartEndpointsBucketCounts(t *testing.T) {
	h := newTestRouter(&fakeReader{})
	for token, want := range map[string]int{"7days": 7, "30days": 4, "6months": 6} {
		for _, path := range []string{"/api/analytics/revenue-chart", "/api/analytics/orders-chart"} {
			rec := get(t, h, path+"?timeRange="+token)
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Success bool          `json:"success"`
				Data    entity.Series `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Success)
			assert.Len(t, body.Data.Labels, want, "%s token %q", path, token)
			assert.Len(t, body.Data.Data, want, "%s token %q", path, token)
		}
	}
}

func TestUnknownTokenBehavesLikeDefault(t *testing.T) {
	h := newTestRouter(&fakeReader{})
	for _, path := range []string{
		"/api/analytics/revenue-chart",
		"/api/analytics/orders-chart",
		"/api/analytics/traffic-sources",
	} {
		def := get(t, h, path+"?timeRange=7days")
		bogus := get(t, h, path+"?timeRange=bogus")
		require.Equal(t, http.StatusOK, def.Code)
		require.Equal(t, http.StatusOK, bogus.Code)
		assert.JSONEq(t, def.Body.String(), bogus.Body.String(), "path %s", path)
	}
}

func TestCategorySalesIgnoresTimeRange(t *testing.T) {
	h := newTestRouter(&fakeReader{})
	rec := get(t, h, "/api/analytics/category-sales")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool          `json:"success"`
		Data    entity.Series `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Data, len(body.Data.Labels))
}

func TestReadFailureReturns500(t *testing.T) {
	h := newTestRouter(&fakeReader{failWith: errors.New("db gone")})
	for _, path := range []string{
		"/api/analytics?timeRange=7days",
		"/api/analytics/metrics?timeRange=7days",
		"/api/analytics/revenue-chart?timeRange=7days",
		"/api/analytics/orders-chart?timeRange=7days",
		"/api/analytics/category-sales",
		"/api/analytics/traffic-sources?timeRange=7days",
	} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusInternalServerError, rec.Code, "path %s", path)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "internal server error", body.Error)
		assert.NotContains(t, rec.Body.String(), "db gone", "internal detail must not leak")
	}
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(&fakeReader{})
	rec := get(t, h, "/api/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
