package handlers

// AppHandlers holds the HTTP handlers.
type AppHandlers struct {
	CompanyHandler  *CompanyHandler
	ReviewHandler   *ReviewHandler
	FeedbackHandler *FeedbackHandler
	StatsHandler    *StatsHandler
}
