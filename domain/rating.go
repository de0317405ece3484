package domain

// Rating is an ordinal quality label derived from a numeric measurement
type Rating string

const (
	RatingExcellent  Rating = "EXCELLENT"
	RatingVeryGood   Rating = "VERY_GOOD"
	RatingGood       Rating = "GOOD"
	RatingAcceptable Rating = "ACCEPTABLE"
	RatingPoor       Rating = "POOR"
	RatingHigh       Rating = "HIGH"  // worst band for memory
	RatingLarge      Rating = "LARGE" // worst band for binary size
)

// Metric names a rated measurement
type Metric string

const (
	MetricStartupTime Metric = "startup_time"
	MetricPeakMemory  Metric = "memory_usage"
	MetricBinarySize  Metric = "binary_size"
)

// ratingTable is a monotone threshold table: the first boundary the value
// is strictly below wins; values at or above the last boundary get worst.
type ratingTable struct {
	boundaries [4]float64
	labels     [4]Rating
	worst      Rating
	// acceptable is the single pass/fail cutoff for the metric
	acceptable float64
}

var ratingTables = map[Metric]ratingTable{
	MetricStartupTime: {
		boundaries: [4]float64{0.1, 0.5, 1.0, 3.0},
		labels:     [4]Rating{RatingExcellent, RatingVeryGood, RatingGood, RatingAcceptable},
		worst:      RatingPoor,
		acceptable: 3.0,
	},
	MetricPeakMemory: {
		boundaries: [4]float64{50, 100, 200, 500},
		labels:     [4]Rating{RatingExcellent, RatingVeryGood, RatingGood, RatingAcceptable},
		worst:      RatingHigh,
		acceptable: 500,
	},
	MetricBinarySize: {
		boundaries: [4]float64{5, 10, 20, 50},
		labels:     [4]Rating{RatingExcellent, RatingVeryGood, RatingGood, RatingAcceptable},
		worst:      RatingLarge,
		acceptable: 50,
	},
}

// Rate converts a raw measurement into its ordinal rating for the metric.
// Unknown metrics rate GOOD, the neutral band.
func Rate(metric Metric, value float64) Rating {
	table, ok := ratingTables[metric]
	if !ok {
		return RatingGood
	}
	for i, boundary := range table.boundaries {
		if value < boundary {
			return table.labels[i]
		}
	}
	return table.worst
}

// Acceptable reports the pass/fail verdict for the metric's single cutoff.
func Acceptable(metric Metric, value float64) bool {
	table, ok := ratingTables[metric]
	if !ok {
		return true
	}
	return value < table.acceptable
}

// AcceptableCutoff returns the metric's pass/fail boundary, 0 for unknown
// metrics.
func AcceptableCutoff(metric Metric) float64 {
	return ratingTables[metric].acceptable
}

// ratingScores maps ordinal labels to numeric scores for averaging
var ratingScores = map[Rating]float64{
	RatingExcellent:  5,
	RatingVeryGood:   4,
	RatingGood:       3,
	RatingAcceptable: 2,
	RatingPoor:       1,
	RatingHigh:       1,
	RatingLarge:      1,
}

// Score returns the numeric score for a rating, defaulting to the neutral 3.
func Score(r Rating) float64 {
	if s, ok := ratingScores[r]; ok {
		return s
	}
	return 3
}

// OverallRating reduces per-metric ratings to a single label via the
// arithmetic mean of their scores. Metrics without a rating must be
// excluded by the caller, not passed as zero. An empty input rates GOOD.
func OverallRating(ratings []Rating) (Rating, float64) {
	if len(ratings) == 0 {
		return RatingGood, 3
	}
	var sum float64
	for _, r := range ratings {
		sum += Score(r)
	}
	score := sum / float64(len(ratings))
	return ratingForScore(score), score
}

func ratingForScore(score float64) Rating {
	switch {
	case score >= 4.5:
		return RatingExcellent
	case score >= 3.5:
		return RatingVeryGood
	case score >= 2.5:
		return RatingGood
	case score >= 1.5:
		return RatingAcceptable
	default:
		return RatingPoor
	}
}

// PassingRating reports whether an overall benchmark rating maps to a
// zero exit status.
func PassingRating(r Rating) bool {
	switch r {
	case RatingExcellent, RatingVeryGood, RatingGood:
		return true
	default:
		return false
	}
}
