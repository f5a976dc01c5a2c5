package models

// DailyStats is one calendar-day bucket of complaint counts.
type DailyStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatusCounts mirrors the public dashboard stats payload.
type StatusCounts struct {
	Total    int64 `json:"total"`
	Received int64 `json:"received"`
	InReview int64 `json:"in_review"`
	Resolved int64 `json:"resolved"`
}
