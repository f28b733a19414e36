package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/service"
)

type stubCampaignRepo struct {
	campaigns map[int64]*models.Campaign
}

func (f *stubCampaignRepo) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	campaign, ok := f.campaigns[id]
	if !ok {
		return nil, errors.New("campaign not found")
	}
	return campaign, nil
}

func (f *stubCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *stubCampaignRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	return nil, nil
}

func (f *stubCampaignRepo) UpdateStatus(ctx context.Context, campaignID int64, status string, progress int) error {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return errors.New("campaign not found")
	}
	campaign.Status = status
	campaign.GenerationProgress = progress
	campaign.UpdatedAt = time.Now()
	return nil
}

func (f *stubCampaignRepo) ListGeneratingBefore(ctx context.Context, cutoff time.Time) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, campaign := range f.campaigns {
		if campaign.Status == models.CampaignStatusGenerating && campaign.UpdatedAt.Before(cutoff) {
			out = append(out, campaign)
		}
	}
	return out, nil
}

func (f *stubCampaignRepo) CheckByUserID(ctx context.Context, campaignID, userID int64) (bool, error) {
	return false, nil
}

func (f *stubCampaignRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type stubCredits struct {
	refunds map[int64]int
}

func (f *stubCredits) Debit(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	return 0, nil
}

func (f *stubCredits) Credit(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	if txType == models.CreditTypeRefund {
		f.refunds[userID] += amount
	}
	return amount, nil
}

func (f *stubCredits) History(ctx context.Context, userID int64) ([]*models.CreditTransaction, error) {
	return nil, nil
}

func TestReclaimStuckCampaigns(t *testing.T) {
	repo := &stubCampaignRepo{campaigns: map[int64]*models.Campaign{
		1: {ID: 1, UserID: 1, Name: "stuck", Status: models.CampaignStatusGenerating, GenerationProgress: 50, UpdatedAt: time.Now().Add(-2 * time.Hour)},
		2: {ID: 2, UserID: 2, Name: "fresh", Status: models.CampaignStatusGenerating, GenerationProgress: 10, UpdatedAt: time.Now().Add(-5 * time.Minute)},
		3: {ID: 3, UserID: 3, Name: "done", Status: models.CampaignStatusReview, GenerationProgress: 100, UpdatedAt: time.Now().Add(-3 * time.Hour)},
	}}
	credits := &stubCredits{refunds: make(map[int64]int)}

	NewCampaignReclaimJob(repo, credits).ReclaimStuckCampaigns()

	// Only the stale generating campaign is reverted and refunded.
	assert.Equal(t, models.CampaignStatusDraft, repo.campaigns[1].Status)
	assert.Equal(t, 0, repo.campaigns[1].GenerationProgress)
	require.Len(t, credits.refunds, 1)
	assert.Equal(t, service.CostCampaignGeneration, credits.refunds[1])

	assert.Equal(t, models.CampaignStatusGenerating, repo.campaigns[2].Status)
	assert.Equal(t, models.CampaignStatusReview, repo.campaigns[3].Status)
}
