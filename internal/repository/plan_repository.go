package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/contentpilot/internal/models"
)

type PlanRepository interface {
	List(ctx context.Context) ([]*models.SubscriptionPlan, error)
	GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, bool, error)
}

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, name, display_name, monthly_price, yearly_price, credits_per_month, max_platforms, team_members, video_generation, features, created_at`

func (r *planRepository) List(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	query := "SELECT " + planColumns + " FROM subscription_plans ORDER BY credits_per_month ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var plans []*models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.MonthlyPrice, &p.YearlyPrice,
			&p.CreditsPerMonth, &p.MaxPlatforms, &p.TeamMembers, &p.VideoGeneration,
			&p.Features, &p.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		plans = append(plans, &p)
	}
	return plans, nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, bool, error) {
	query := "SELECT " + planColumns + " FROM subscription_plans WHERE id = $1"

	var p models.SubscriptionPlan
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.DisplayName,
		&p.MonthlyPrice, &p.YearlyPrice, &p.CreditsPerMonth, &p.MaxPlatforms,
		&p.TeamMembers, &p.VideoGeneration, &p.Features, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &p, true, nil
}
