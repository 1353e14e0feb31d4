package confidence

import (
	"sort"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/common"
)

// Median returns the median of values. Even-length sequences average the two
// middle values; odd-length sequences take the middle value exactly. An empty
// sequence is EMPTY_CORPUS: the statistic is undefined, not zero.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, common.NewAppError(constants.KindEmptyCorpus, "median of empty sequence", nil)
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Sum returns the total of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the mean of values, or EMPTY_CORPUS for an empty sequence.
func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, common.NewAppError(constants.KindEmptyCorpus, "average of empty sequence", nil)
	}
	return Sum(values) / float64(len(values)), nil
}
