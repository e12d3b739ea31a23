package dto

// DashboardSummaryResponse aggregates work-request counts for one fiscal year.
type DashboardSummaryResponse struct {
	FiscalYear string              `json:"fiscalYear"`
	Total      int                 `json:"total"`
	ByStatus   []StatusCount       `json:"byStatus"`
	ByCategory []CategoryCount     `json:"byCategory"`
	Feedback   FeedbackRatingStats `json:"feedback"`
}

// StatusCount is the number of requests per lifecycle status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CategoryCount is the number of requests per category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FeedbackRatingStats summarises collected feedback ratings.
type FeedbackRatingStats struct {
	Total   int            `json:"total"`
	Ratings map[string]int `json:"ratings"`
}
