package models

import (
	"time"

	"github.com/lib/pq"
)

type Campaign struct {
	ID                 int64          `db:"id" json:"id"`
	UserID             int64          `db:"user_id" json:"user_id"`
	Name               string         `db:"name" json:"name"`
	BusinessName       string         `db:"business_name" json:"business_name"`
	ProductName        string         `db:"product_name" json:"product_name"`
	TargetAudience     string         `db:"target_audience" json:"target_audience"`
	BrandTone          string         `db:"brand_tone" json:"brand_tone"`
	KeyMessages        pq.StringArray `db:"key_messages" json:"key_messages"`
	CallToAction       string         `db:"call_to_action" json:"call_to_action"`
	Platform           string         `db:"platform" json:"platform"`
	VisualStyle        string         `db:"visual_style" json:"visual_style"`
	ColorScheme        string         `db:"color_scheme" json:"color_scheme"`
	StartDate          time.Time      `db:"start_date" json:"start_date"`
	EndDate            time.Time      `db:"end_date" json:"end_date"`
	Status             string         `db:"status" json:"status"`
	GenerationProgress int            `db:"generation_progress" json:"generation_progress"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	CampaignStatusDraft      = "draft"
	CampaignStatusGenerating = "generating"
	CampaignStatusReview     = "review"
	CampaignStatusActive     = "active"
	CampaignStatusPaused     = "paused"
	CampaignStatusCompleted  = "completed"
)

// CampaignDays and CampaignPostsPerDay define the fixed 7-day, 2-posts-a-day
// cadence every generated campaign follows.
const (
	CampaignDays        = 7
	CampaignPostsPerDay = 2
	CampaignTotalPosts  = CampaignDays * CampaignPostsPerDay
)
