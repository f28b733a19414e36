package transfer

// PostEngagement is the shape stored in a post's engagement_data column.
type PostEngagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

type PlatformPerformance struct {
	Platform   string `json:"platform"`
	Posts      int    `json:"posts"`
	Engagement int    `json:"engagement"`
}

type TopPost struct {
	ID         int64          `json:"id"`
	Platform   string         `json:"platform"`
	Content    string         `json:"content"`
	Engagement PostEngagement `json:"engagement"`
	Total      int            `json:"total"`
}

// DashboardSummary is the response body of GET /api/analytics/dashboard.
type DashboardSummary struct {
	TotalPosts          int                   `json:"total_posts"`
	PendingApproval     int                   `json:"pending_approval"`
	ScheduledPosts      int                   `json:"scheduled_posts"`
	PublishedPosts      int                   `json:"published_posts"`
	TotalEngagement     int                   `json:"total_engagement"`
	PlatformPerformance []PlatformPerformance `json:"platform_performance"`
	TopPerformingPosts  []TopPost             `json:"top_performing_posts"`
}
