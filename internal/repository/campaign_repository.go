package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentpilot/internal/models"
)

type CampaignRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Campaign, error)
	UpdateStatus(ctx context.Context, campaignID int64, status string, progress int) error
	ListGeneratingBefore(ctx context.Context, cutoff time.Time) ([]*models.Campaign, error)
	CheckByUserID(ctx context.Context, campaignID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `id, user_id, name, business_name, product_name, target_audience, brand_tone, key_messages, call_to_action, platform, visual_style, color_scheme, start_date, end_date, status, generation_progress, created_at, updated_at`

func scanCampaign(scan func(dest ...any) error) (*models.Campaign, error) {
	var c models.Campaign
	err := scan(&c.ID, &c.UserID, &c.Name, &c.BusinessName, &c.ProductName, &c.TargetAudience,
		&c.BrandTone, &c.KeyMessages, &c.CallToAction, &c.Platform, &c.VisualStyle,
		&c.ColorScheme, &c.StartDate, &c.EndDate, &c.Status, &c.GenerationProgress,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (int64, error) {
	query := `
		INSERT INTO campaigns (user_id, name, business_name, product_name, target_audience, brand_tone, key_messages, call_to_action, platform, visual_style, color_scheme, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, campaign.UserID, campaign.Name, campaign.BusinessName,
		campaign.ProductName, campaign.TargetAudience, campaign.BrandTone, campaign.KeyMessages,
		campaign.CallToAction, campaign.Platform, campaign.VisualStyle, campaign.ColorScheme,
		campaign.StartDate, campaign.EndDate, campaign.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	query := "SELECT " + campaignColumns + " FROM campaigns WHERE id = $1"
	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return campaign, nil
}

func (r *campaignRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	query := "SELECT " + campaignColumns + " FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, campaignID int64, status string, progress int) error {
	query := `
		UPDATE campaigns
		SET status = $1,
			generation_progress = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, progress, time.Now(), campaignID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ListGeneratingBefore returns campaigns stuck in the generating state since
// before cutoff, used by the reclaim job after a crash.
func (r *campaignRepository) ListGeneratingBefore(ctx context.Context, cutoff time.Time) ([]*models.Campaign, error) {
	query := "SELECT " + campaignColumns + " FROM campaigns WHERE status = $1 AND updated_at < $2"
	rows, err := r.db.QueryContext(ctx, query, models.CampaignStatusGenerating, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

func (r *campaignRepository) CheckByUserID(ctx context.Context, campaignID, userID int64) (bool, error) {
	query := "SELECT 1 FROM campaigns WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, campaignID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *campaignRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM campaigns WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
