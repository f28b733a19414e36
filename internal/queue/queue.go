package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueCampaignGeneration schedules the generation pipeline for a
// campaign. The task is never retried by asynq: a failed run refunds the
// user and resets the campaign, so they restart it explicitly.
func (j *Queue) EnqueueCampaignGeneration(ctx context.Context, campaignID, userID int64) error {
	payload, err := json.Marshal(GenerateCampaignPayload{CampaignID: campaignID, UserID: userID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeGenerateCampaign, payload)

	_, err = j.client.EnqueueContext(ctx, task, asynq.MaxRetry(0))
	if err != nil {
		return err
	}

	log.Printf("Campaign generation scheduled: campaign=%d", campaignID)
	return nil
}

// EnqueuePostPublish schedules publication of an approved post at its
// scheduled time.
func (j *Queue) EnqueuePostPublish(ctx context.Context, postID int64, processIn time.Duration) error {
	payload, err := json.Marshal(PublishPostPayload{PostID: postID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, payload)

	_, err = j.client.EnqueueContext(ctx, task, asynq.ProcessIn(processIn))
	if err != nil {
		return err
	}

	log.Printf("Post publish scheduled: post=%d in=%s", postID, processIn)
	return nil
}
