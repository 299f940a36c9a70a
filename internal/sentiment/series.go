package sentiment

import (
	"math"

	"github.com/insightify/insightify-go/internal/domain"
)

// PercentageSeries converts bucket counts into percentages of total and drops
// every bucket whose percentage is exactly 0. A total below 1 divides by 1.
//
// An empty result means there is nothing to chart; callers show a
// "no distribution data" state instead of an empty chart.
func PercentageSeries(b domain.Breakdown, total int) domain.ChartSeries {
	denominator := float64(total)
	if denominator < 1 {
		denominator = 1
	}

	slices := make([]domain.Bucket, 0, len(domain.BucketKeys))
	for _, bucket := range b.Buckets() {
		value := bucket.Value / denominator * 100
		if value == 0 || math.IsNaN(value) {
			continue
		}
		bucket.Value = value
		slices = append(slices, bucket)
	}
	return domain.ChartSeries{Slices: slices}
}

// Series returns the VADER and TextBlob percentage series of a view model.
func Series(vm domain.SentimentViewModel) (vader, textblob domain.ChartSeries) {
	return PercentageSeries(vm.Vader.Breakdown, vm.TotalComments),
		PercentageSeries(vm.TextBlob.Breakdown, vm.TotalComments)
}
