package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

// Progress checkpoints reported while a campaign generates.
const (
	progressThemes    = 10
	progressContent   = 50
	progressImages    = 85
	progressPersisted = 100
)

const (
	slotConcurrency = 4
	imageBatchSize  = 3
	imageBatchDelay = time.Second
)

// Posting times for the two daily slots.
var slotHours = [models.CampaignPostsPerDay]int{9, 18}

func (j *Queue) HandleGenerateCampaignTask(ctx context.Context, task *asynq.Task) error {
	var payload GenerateCampaignPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.GenerateCampaign(ctx, payload.CampaignID, payload.UserID)
}

// GenerateCampaign runs the full pipeline: themes, captions and image
// prompts, images, then a single transactional insert of all posts. Any
// failure resets the campaign to draft and refunds the up-front debit;
// the error is only observable through the campaign status.
func (j *Queue) GenerateCampaign(ctx context.Context, campaignID, userID int64) error {
	campaign, err := j.cr.GetByID(ctx, campaignID)
	if err != nil {
		log.Printf("Error loading campaign %d: %v", campaignID, err)
		return nil
	}
	if campaign == nil {
		log.Printf("Campaign %d no longer exists, skipping generation", campaignID)
		return nil
	}
	if campaign.Status != models.CampaignStatusGenerating {
		log.Printf("Campaign %d is %s, skipping generation", campaignID, campaign.Status)
		return nil
	}

	posts, err := j.generatePosts(ctx, campaign)
	if err != nil {
		log.Printf("Campaign %d generation failed: %v", campaignID, err)
		j.failCampaign(ctx, campaign, userID)
		return nil
	}

	if err := j.pr.CreateBatch(ctx, posts); err != nil {
		log.Printf("Campaign %d persist failed: %v", campaignID, err)
		j.failCampaign(ctx, campaign, userID)
		return nil
	}

	if err := j.cr.UpdateStatus(ctx, campaignID, models.CampaignStatusReview, progressPersisted); err != nil {
		log.Printf("Error updating campaign %d: %v", campaignID, err)
	}
	return nil
}

func (j *Queue) generatePosts(ctx context.Context, campaign *models.Campaign) ([]*models.Post, error) {
	themes, err := j.ai.GenerateCampaignThemes(ctx, j.generationRequest(campaign, ""))
	if err != nil {
		return nil, fmt.Errorf("themes: %w", err)
	}
	if len(themes) < models.CampaignTotalPosts {
		return nil, fmt.Errorf("expected %d themes, got %d", models.CampaignTotalPosts, len(themes))
	}
	j.updateProgress(ctx, campaign.ID, progressThemes)

	slots := make([]transfer.CampaignPost, models.CampaignTotalPosts)
	errs := make([]error, models.CampaignTotalPosts)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, slotConcurrency)

	for i := 0; i < models.CampaignTotalPosts; i++ {
		day := i / models.CampaignPostsPerDay
		slot := i % models.CampaignPostsPerDay

		start := campaign.StartDate
		slots[i].DayNumber = day + 1
		slots[i].PostNumber = slot + 1
		slots[i].ScheduledFor = time.Date(start.Year(), start.Month(), start.Day()+day,
			slotHours[slot], 0, 0, 0, start.Location())

		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, theme string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			req := j.generationRequest(campaign, theme)

			content, err := j.ai.GenerateText(ctx, req)
			if err != nil {
				errs[i] = fmt.Errorf("content for slot %d: %w", i, err)
				return
			}

			imagePrompt, err := j.ai.GenerateImagePrompt(ctx, theme, req)
			if err != nil {
				errs[i] = fmt.Errorf("image prompt for slot %d: %w", i, err)
				return
			}

			slots[i].Content = content
			slots[i].ImagePrompt = imagePrompt
		}(i, themes[i])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	j.updateProgress(ctx, campaign.ID, progressContent)

	// Images run in small batches to stay under the provider's rate limit.
	for batch := 0; batch < models.CampaignTotalPosts; batch += imageBatchSize {
		end := batch + imageBatchSize
		if end > models.CampaignTotalPosts {
			end = models.CampaignTotalPosts
		}

		var batchWg sync.WaitGroup
		for i := batch; i < end; i++ {
			batchWg.Add(1)
			go func(i int) {
				defer batchWg.Done()

				url, err := j.ai.GenerateImage(ctx, &transfer.ImageRequest{
					Prompt:          slots[i].ImagePrompt,
					VisualStyle:     campaign.VisualStyle,
					ColorScheme:     campaign.ColorScheme,
					AspectRatio:     "1:1",
					BusinessContext: campaign.BusinessName,
				})
				if err != nil {
					errs[i] = fmt.Errorf("image for slot %d: %w", i, err)
					return
				}
				slots[i].ImageURL = url
			}(i)
		}
		batchWg.Wait()

		if end < models.CampaignTotalPosts {
			time.Sleep(imageBatchDelay)
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	j.updateProgress(ctx, campaign.ID, progressImages)

	campaignID := campaign.ID
	posts := make([]*models.Post, 0, models.CampaignTotalPosts)
	for i := range slots {
		scheduledFor := slots[i].ScheduledFor
		posts = append(posts, &models.Post{
			UserID:       campaign.UserID,
			CampaignID:   &campaignID,
			Content:      slots[i].Content,
			ImageURL:     slots[i].ImageURL,
			ImagePrompt:  slots[i].ImagePrompt,
			Platforms:    []string{campaign.Platform},
			Status:       models.PostStatusPending,
			ScheduledFor: &scheduledFor,
			AIGenerated:  true,
		})
	}
	return posts, nil
}

func (j *Queue) generationRequest(campaign *models.Campaign, theme string) *transfer.GenerationRequest {
	req := &transfer.GenerationRequest{
		BusinessName:   campaign.BusinessName,
		ProductName:    campaign.ProductName,
		TargetAudience: campaign.TargetAudience,
		BrandTone:      campaign.BrandTone,
		KeyMessages:    campaign.KeyMessages,
		CallToAction:   campaign.CallToAction,
		Platform:       campaign.Platform,
	}
	if theme != "" {
		req.AdditionalContext = "Post theme: " + theme
	}
	return req
}

func (j *Queue) updateProgress(ctx context.Context, campaignID int64, progress int) {
	if err := j.cr.UpdateStatus(ctx, campaignID, models.CampaignStatusGenerating, progress); err != nil {
		log.Printf("Error updating campaign %d progress: %v", campaignID, err)
	}
}

func (j *Queue) failCampaign(ctx context.Context, campaign *models.Campaign, userID int64) {
	if err := j.cr.UpdateStatus(ctx, campaign.ID, models.CampaignStatusDraft, 0); err != nil {
		log.Printf("Error resetting campaign %d: %v", campaign.ID, err)
	}

	_, err := j.credits.Credit(ctx, userID, service.CostCampaignGeneration, models.CreditTypeRefund,
		fmt.Sprintf("Refund for campaign: %s", campaign.Name))
	if err != nil {
		log.Printf("Error refunding campaign %d: %v", campaign.ID, err)
	}
}

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	post, err := j.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		log.Printf("Post %d no longer exists, skipping publish", payload.PostID)
		return nil
	}
	if post.Status != models.PostStatusScheduled {
		log.Printf("Post %d is %s, skipping publish", post.ID, post.Status)
		return nil
	}

	return j.pr.MarkPublished(ctx, post.ID, time.Now())
}
