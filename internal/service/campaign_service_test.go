package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type fakeCampaignRepository struct {
	campaigns map[int64]*models.Campaign
	nextID    int64
}

func newFakeCampaignRepository() *fakeCampaignRepository {
	return &fakeCampaignRepository{campaigns: make(map[int64]*models.Campaign)}
}

// GetByID mirrors the SQL repository and reports a missing row as (nil, nil).
func (f *fakeCampaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	campaign, ok := f.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *campaign
	return &copied, nil
}

func (f *fakeCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) (int64, error) {
	f.nextID++
	campaign.ID = f.nextID
	copied := *campaign
	f.campaigns[campaign.ID] = &copied
	return campaign.ID, nil
}

func (f *fakeCampaignRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, campaign := range f.campaigns {
		if campaign.UserID == userID {
			copied := *campaign
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepository) UpdateStatus(ctx context.Context, campaignID int64, status string, progress int) error {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return errors.New("campaign not found")
	}
	campaign.Status = status
	campaign.GenerationProgress = progress
	return nil
}

func (f *fakeCampaignRepository) ListGeneratingBefore(ctx context.Context, cutoff time.Time) ([]*models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepository) CheckByUserID(ctx context.Context, campaignID, userID int64) (bool, error) {
	campaign, ok := f.campaigns[campaignID]
	return ok && campaign.UserID == userID, nil
}

func (f *fakeCampaignRepository) Remove(ctx context.Context, id int64) error {
	delete(f.campaigns, id)
	return nil
}

type fakeCampaignEnqueuer struct {
	enqueued []int64
	fail     bool
}

func (f *fakeCampaignEnqueuer) EnqueueCampaignGeneration(ctx context.Context, campaignID, userID int64) error {
	if f.fail {
		return errors.New("redis unavailable")
	}
	f.enqueued = append(f.enqueued, campaignID)
	return nil
}

func newTestCampaignService(balance int) (CampaignService, *fakeCampaignRepository, *fakeCreditRepository, *fakeCampaignEnqueuer) {
	cr := newFakeCampaignRepository()
	credits := newFakeCreditRepository()
	credits.balances[1] = balance
	enqueuer := &fakeCampaignEnqueuer{}
	s := NewCampaignService(cr, newFakePostRepository(), NewCreditService(credits), enqueuer)
	return s, cr, credits, enqueuer
}

func draftCampaign(repo *fakeCampaignRepository) int64 {
	id, _ := repo.Create(context.Background(), &models.Campaign{
		UserID:       1,
		Name:         "Launch week",
		BusinessName: "Sunrise Bakery",
		Platform:     "instagram",
		StartDate:    time.Now(),
		Status:       models.CampaignStatusDraft,
	})
	return id
}

func TestCreateCampaignDefaultsEndDate(t *testing.T) {
	s, cr, _, _ := newTestCampaignService(0)

	id, err := s.Create(context.Background(), 1, &transfer.CampaignCreation{
		Name:         "Launch week",
		BusinessName: "Sunrise Bakery",
		Platform:     "instagram",
		StartDate:    "2026-03-02",
	})
	require.NoError(t, err)

	campaign := cr.campaigns[id]
	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, "2026-03-08", campaign.EndDate.Format("2006-01-02"))
}

func TestGenerateDebitsUpFront(t *testing.T) {
	s, cr, credits, enqueuer := newTestCampaignService(1000)
	id := draftCampaign(cr)

	err := s.Generate(context.Background(), id, 1)
	require.NoError(t, err)

	assert.Equal(t, 1000-CostCampaignGeneration, credits.balances[1])
	assert.Equal(t, models.CampaignStatusGenerating, cr.campaigns[id].Status)
	assert.Equal(t, 0, cr.campaigns[id].GenerationProgress)
	assert.Equal(t, []int64{id}, enqueuer.enqueued)
}

func TestGenerateInsufficientCredits(t *testing.T) {
	s, cr, credits, enqueuer := newTestCampaignService(100)
	id := draftCampaign(cr)

	err := s.Generate(context.Background(), id, 1)
	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, CostCampaignGeneration, insufficient.Required)
	assert.Equal(t, 100, insufficient.Available)

	assert.Equal(t, 100, credits.balances[1])
	assert.Equal(t, models.CampaignStatusDraft, cr.campaigns[id].Status)
	assert.Empty(t, enqueuer.enqueued)
}

func TestGenerateRejectsNonDraft(t *testing.T) {
	s, cr, credits, _ := newTestCampaignService(1000)
	id := draftCampaign(cr)
	cr.campaigns[id].Status = models.CampaignStatusGenerating

	err := s.Generate(context.Background(), id, 1)
	assert.Error(t, err)
	assert.Equal(t, 1000, credits.balances[1])
}

func TestGenerateEnqueueFailureRefunds(t *testing.T) {
	s, cr, credits, enqueuer := newTestCampaignService(1000)
	enqueuer.fail = true
	id := draftCampaign(cr)

	err := s.Generate(context.Background(), id, 1)
	assert.Error(t, err)

	assert.Equal(t, 1000, credits.balances[1])
	assert.Equal(t, models.CampaignStatusDraft, cr.campaigns[id].Status)
}

func TestRemoveGeneratingCampaignFails(t *testing.T) {
	s, cr, _, _ := newTestCampaignService(1000)
	id := draftCampaign(cr)
	cr.campaigns[id].Status = models.CampaignStatusGenerating

	err := s.Remove(context.Background(), 1, id)
	assert.Error(t, err)
	assert.Contains(t, cr.campaigns, id)
}

func TestCampaignOwnership(t *testing.T) {
	s, cr, _, _ := newTestCampaignService(1000)
	id := draftCampaign(cr)

	err := s.Generate(context.Background(), id, 2)
	assert.Error(t, err)

	_, err = s.CampaignInfo(context.Background(), id, 2)
	assert.Error(t, err)
}
