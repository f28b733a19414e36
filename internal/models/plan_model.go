package models

import (
	"time"

	"github.com/lib/pq"
)

type SubscriptionPlan struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	DisplayName     string         `db:"display_name" json:"display_name"`
	MonthlyPrice    string         `db:"monthly_price" json:"monthly_price"`
	YearlyPrice     string         `db:"yearly_price" json:"yearly_price"`
	CreditsPerMonth int            `db:"credits_per_month" json:"credits_per_month"`
	MaxPlatforms    int            `db:"max_platforms" json:"max_platforms"`
	TeamMembers     int            `db:"team_members" json:"team_members"`
	VideoGeneration bool           `db:"video_generation" json:"video_generation"`
	Features        pq.StringArray `db:"features" json:"features"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}
