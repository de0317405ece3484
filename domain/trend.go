package domain

// Direction classifies the pass-rate movement over the analysis window
type Direction string

const (
	DirectionInsufficientData Direction = "insufficient_data"
	DirectionImproving        Direction = "improving"
	DirectionDeclining        Direction = "declining"
	DirectionStable           Direction = "stable"
)

// TrendSnapshot is derived from the recency-ordered reports inside the
// analysis window. Latency fields track a single named benchmark and carry
// no direction of their own.
type TrendSnapshot struct {
	Direction          Direction `json:"trend"`
	PassRateCurrent    float64   `json:"pass_rate_current"`
	PassRateAverage    float64   `json:"pass_rate_average"`
	StartupTimeCurrent float64   `json:"startup_time_current"`
	StartupTimeAverage float64   `json:"startup_time_average"`
	TotalReports       int       `json:"total_reports"`
}
