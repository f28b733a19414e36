package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/service"
)

// Campaigns still generating after this long are assumed orphaned by a
// crashed worker.
const generationTimeout = time.Hour

type CampaignReclaimJob struct {
	cr      repository.CampaignRepository
	credits service.CreditService
}

func NewCampaignReclaimJob(cr repository.CampaignRepository, credits service.CreditService) *CampaignReclaimJob {
	return &CampaignReclaimJob{
		cr:      cr,
		credits: credits,
	}
}

// ReclaimStuckCampaigns resets orphaned campaigns to draft and refunds
// the generation debit so the user can retry.
func (c *CampaignReclaimJob) ReclaimStuckCampaigns() {
	ctx := context.Background()

	cutoff := time.Now().Add(-generationTimeout)

	campaigns, err := c.cr.ListGeneratingBefore(ctx, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, campaign := range campaigns {
		if err := c.cr.UpdateStatus(ctx, campaign.ID, models.CampaignStatusDraft, 0); err != nil {
			slog.Info(err.Error())
			continue
		}

		_, err := c.credits.Credit(ctx, campaign.UserID, service.CostCampaignGeneration, models.CreditTypeRefund,
			fmt.Sprintf("Refund for campaign: %s", campaign.Name))
		if err != nil {
			slog.Info(err.Error())
		}

		slog.Info(fmt.Sprintf("reclaimed stuck campaign %d", campaign.ID))
	}
}
