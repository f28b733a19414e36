package models

import "time"

type User struct {
	ID                  int64      `db:"id" json:"id"`
	GoogleID            string     `db:"google_id" json:"google_id"`
	Email               string     `db:"email" json:"email"`
	Name                string     `db:"name" json:"name"`
	ProfilePicture      string     `db:"profile_picture" json:"profile_picture"`
	BusinessName        string     `db:"business_name" json:"business_name"`
	Credits             int        `db:"credits" json:"credits"`
	TotalCreditsUsed    int        `db:"total_credits_used" json:"total_credits_used"`
	PlanID              string     `db:"plan_id" json:"plan_id"`
	SubscriptionID      string     `db:"subscription_id" json:"subscription_id"`
	SubscriptionStatus  string     `db:"subscription_status" json:"subscription_status"`
	SubscriptionEndDate *time.Time `db:"subscription_end_date" json:"subscription_end_date"`
	IsAdmin             bool       `db:"is_admin" json:"is_admin"`
	AdminPassword       string     `db:"admin_password" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	SubscriptionStatusFree      = "free"
	SubscriptionStatusTrial     = "trial"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)
