package analytics

import (
	"github.com/modamart/shop-analytics/internal/entity"
)

// alignSeries reconciles sparse grouped rows against the plan's dense
// label axis. Bucket keys are 1-based; keys outside the axis are
// dropped silently, which covers the partial fifth week a 30 day window
// can produce. Duplicate keys overwrite; the grouped reads emit at most
// one row per bucket.
func alignSeries(plan entity.BucketingPlan, rows []entity.BucketValue) entity.Series {
	data := make([]float64, plan.BucketCount)
	for _, r := range rows {
		idx := r.Bucket - 1
		if idx < 0 || idx >= plan.BucketCount {
			continue
		}
		v, _ := r.Value.Float64()
		data[idx] = v
	}
	return entity.Series{Labels: plan.Labels, Data: data}
}
