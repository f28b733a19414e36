package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID              int64          `db:"id" json:"id"`
	UserID          int64          `db:"user_id" json:"user_id"`
	CampaignID      *int64         `db:"campaign_id" json:"campaign_id"`
	Content         string         `db:"content" json:"content"`
	ImageURL        string         `db:"image_url" json:"image_url"`
	VideoURL        string         `db:"video_url" json:"video_url"`
	ImagePrompt     string         `db:"image_prompt" json:"image_prompt"`
	VideoPrompt     string         `db:"video_prompt" json:"video_prompt"`
	Platforms       pq.StringArray `db:"platforms" json:"platforms"`
	Status          string         `db:"status" json:"status"`
	ScheduledFor    *time.Time     `db:"scheduled_for" json:"scheduled_for"`
	PublishedAt     *time.Time     `db:"published_at" json:"published_at"`
	AIGenerated     bool           `db:"ai_generated" json:"ai_generated"`
	ApprovedBy      *int64         `db:"approved_by" json:"approved_by"`
	RejectionReason string         `db:"rejection_reason" json:"rejection_reason"`
	EngagementData  string         `db:"engagement_data" json:"engagement_data,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusPending   = "pending"
	PostStatusApproved  = "approved"
	PostStatusRejected  = "rejected"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)
