package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

// CampaignEnqueuer hands the generation pipeline off to the asynq worker.
type CampaignEnqueuer interface {
	EnqueueCampaignGeneration(ctx context.Context, campaignID, userID int64) error
}

type CampaignService interface {
	Create(ctx context.Context, userID int64, cc *transfer.CampaignCreation) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Campaign, error)
	CampaignInfo(ctx context.Context, campaignID, userID int64) (*models.Campaign, error)
	Posts(ctx context.Context, campaignID, userID int64) ([]*models.Post, error)
	Generate(ctx context.Context, campaignID, userID int64) error
	Remove(ctx context.Context, userID, campaignID int64) error
}

type campaignService struct {
	cr      repository.CampaignRepository
	pr      repository.PostRepository
	credits CreditService
	queue   CampaignEnqueuer
}

func NewCampaignService(cr repository.CampaignRepository, pr repository.PostRepository, credits CreditService, queue CampaignEnqueuer) CampaignService {
	return &campaignService{
		cr:      cr,
		pr:      pr,
		credits: credits,
		queue:   queue,
	}
}

func (s *campaignService) Create(ctx context.Context, userID int64, cc *transfer.CampaignCreation) (int64, error) {
	if cc == nil {
		err := errors.New("campaign creation data is nil")
		slog.Error(err.Error())
		return 0, err
	}
	if cc.Name == "" || cc.BusinessName == "" {
		err := errors.New("campaign name and business name are required")
		slog.Info(err.Error())
		return 0, err
	}

	startDate := time.Now()
	if cc.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", cc.StartDate)
		if err != nil {
			err = fmt.Errorf("invalid start date format: %w", err)
			slog.Error(err.Error())
			return 0, err
		}
		startDate = parsed
	}

	campaign := models.Campaign{
		UserID:         userID,
		Name:           cc.Name,
		BusinessName:   cc.BusinessName,
		ProductName:    cc.ProductName,
		TargetAudience: cc.TargetAudience,
		BrandTone:      cc.BrandTone,
		KeyMessages:    cc.KeyMessages,
		CallToAction:   cc.CallToAction,
		Platform:       cc.Platform,
		VisualStyle:    cc.VisualStyle,
		ColorScheme:    cc.ColorScheme,
		StartDate:      startDate,
		EndDate:        startDate.AddDate(0, 0, models.CampaignDays-1),
		Status:         models.CampaignStatusDraft,
	}

	campaignID, err := s.cr.Create(ctx, &campaign)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaignID, nil
}

func (s *campaignService) List(ctx context.Context, userID int64) ([]*models.Campaign, error) {
	campaigns, err := s.cr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting campaigns list")
	}
	return campaigns, nil
}

func (s *campaignService) CampaignInfo(ctx context.Context, campaignID, userID int64) (*models.Campaign, error) {
	return s.ownedCampaign(ctx, userID, campaignID)
}

func (s *campaignService) Posts(ctx context.Context, campaignID, userID int64) ([]*models.Post, error) {
	if _, err := s.ownedCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	posts, err := s.pr.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("Error getting campaign posts")
	}
	return posts, nil
}

// Generate debits the full campaign cost up front, marks the campaign
// generating, and enqueues the pipeline. The worker refunds the debit if
// the pipeline fails.
func (s *campaignService) Generate(ctx context.Context, campaignID, userID int64) error {
	campaign, err := s.ownedCampaign(ctx, userID, campaignID)
	if err != nil {
		return err
	}

	if campaign.Status != models.CampaignStatusDraft {
		err = fmt.Errorf("campaign in status %s cannot be generated", campaign.Status)
		slog.Info(err.Error())
		return err
	}

	if _, err = s.credits.Debit(ctx, userID, CostCampaignGeneration, models.CreditTypeUsage,
		fmt.Sprintf("Campaign generation: %s", campaign.Name)); err != nil {
		return err
	}

	if err = s.cr.UpdateStatus(ctx, campaignID, models.CampaignStatusGenerating, 0); err != nil {
		slog.Error(err.Error())
		s.refund(ctx, userID, campaign.Name)
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	if err = s.queue.EnqueueCampaignGeneration(ctx, campaignID, userID); err != nil {
		slog.Error(err.Error())
		s.refund(ctx, userID, campaign.Name)
		if uerr := s.cr.UpdateStatus(ctx, campaignID, models.CampaignStatusDraft, 0); uerr != nil {
			slog.Error(uerr.Error())
		}
		return fmt.Errorf("failed to enqueue generation: %w", err)
	}
	return nil
}

func (s *campaignService) Remove(ctx context.Context, userID, campaignID int64) error {
	campaign, err := s.ownedCampaign(ctx, userID, campaignID)
	if err != nil {
		return err
	}

	if campaign.Status == models.CampaignStatusGenerating {
		err = errors.New("campaign is generating, try again later")
		slog.Info(err.Error())
		return err
	}

	if err := s.cr.Remove(ctx, campaignID); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

func (s *campaignService) refund(ctx context.Context, userID int64, name string) {
	if _, err := s.credits.Credit(ctx, userID, CostCampaignGeneration, models.CreditTypeRefund,
		fmt.Sprintf("Refund for campaign: %s", name)); err != nil {
		slog.Error(err.Error())
	}
}

func (s *campaignService) ownedCampaign(ctx context.Context, userID, campaignID int64) (*models.Campaign, error) {
	var err error

	if userID == 0 {
		err = errors.New("user is not valid")
		slog.Info(err.Error())
		return nil, err
	}
	if campaignID == 0 {
		err = errors.New("campaign id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	exists, err := s.cr.CheckByUserID(ctx, campaignID, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if !exists {
		err = errors.New("campaign doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	campaign, err := s.cr.GetByID(ctx, campaignID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if campaign == nil {
		err = errors.New("campaign doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	return campaign, nil
}
