package service

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

const topPostCount = 3

// AnalyticsService aggregates a user's posts into the dashboard summary.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID int64) (*transfer.DashboardSummary, error)
}

type analyticsService struct {
	pr repository.PostRepository
}

func NewAnalyticsService(pr repository.PostRepository) AnalyticsService {
	return &analyticsService{pr: pr}
}

func (s *analyticsService) Dashboard(ctx context.Context, userID int64) (*transfer.DashboardSummary, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &transfer.DashboardSummary{TotalPosts: len(posts)}
	byPlatform := make(map[string]*transfer.PlatformPerformance)

	for _, post := range posts {
		switch post.Status {
		case models.PostStatusPending:
			summary.PendingApproval++
		case models.PostStatusScheduled:
			summary.ScheduledPosts++
		case models.PostStatusPublished:
			summary.PublishedPosts++
		}

		engagement := parseEngagement(post.EngagementData)
		total := engagement.Likes + engagement.Comments + engagement.Shares
		summary.TotalEngagement += total

		for _, platform := range post.Platforms {
			perf, ok := byPlatform[platform]
			if !ok {
				perf = &transfer.PlatformPerformance{Platform: platform}
				byPlatform[platform] = perf
			}
			perf.Posts++
			perf.Engagement += total
		}

		if post.Status == models.PostStatusPublished && total > 0 {
			platform := ""
			if len(post.Platforms) > 0 {
				platform = post.Platforms[0]
			}
			summary.TopPerformingPosts = append(summary.TopPerformingPosts, transfer.TopPost{
				ID:         post.ID,
				Platform:   platform,
				Content:    post.Content,
				Engagement: engagement,
				Total:      total,
			})
		}
	}

	for _, perf := range byPlatform {
		summary.PlatformPerformance = append(summary.PlatformPerformance, *perf)
	}
	sort.Slice(summary.PlatformPerformance, func(i, j int) bool {
		return summary.PlatformPerformance[i].Platform < summary.PlatformPerformance[j].Platform
	})

	sort.Slice(summary.TopPerformingPosts, func(i, j int) bool {
		return summary.TopPerformingPosts[i].Total > summary.TopPerformingPosts[j].Total
	})
	if len(summary.TopPerformingPosts) > topPostCount {
		summary.TopPerformingPosts = summary.TopPerformingPosts[:topPostCount]
	}

	return summary, nil
}

// parseEngagement tolerates posts that have no engagement data yet.
func parseEngagement(data string) transfer.PostEngagement {
	var engagement transfer.PostEngagement
	if data == "" {
		return engagement
	}
	if err := json.Unmarshal([]byte(data), &engagement); err != nil {
		return transfer.PostEngagement{}
	}
	return engagement
}
