package dto

type StatusDistribution struct {
	Pending int64 `json:"pending"`
	Replied int64 `json:"replied"`
}

type FeedbackStats struct {
	Total   int64 `json:"total"`
	Sent    int64 `json:"sent"`
	Pending int64 `json:"pending"`
}

type OverviewResponse struct {
	TotalReviews       int64              `json:"total_reviews"`
	AverageRating      string             `json:"average_rating"`
	RatingDistribution map[int]int64      `json:"rating_distribution"`
	StatusDistribution StatusDistribution `json:"status_distribution"`
	FeedbackStats      FeedbackStats      `json:"feedback_stats"`
}

type ResponseTimeResponse struct {
	PendingReplies  int64  `json:"pending_replies"`
	AvgResponseTime string `json:"avg_response_time"`
}

type TrendPoint struct {
	Date          string  `json:"date"`
	AverageRating float64 `json:"average_rating"`
}

type WeekdayPoint struct {
	Day           string  `json:"day"`
	AverageRating float64 `json:"average_rating"`
}

type MonthPoint struct {
	Month        string `json:"month"`
	TotalReviews int64  `json:"total_reviews"`
}
