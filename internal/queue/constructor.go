package queue

import (
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/service"
)

type Queue struct {
	client  *asynq.Client
	pr      repository.PostRepository
	cr      repository.CampaignRepository
	ai      service.AIService
	credits service.CreditService
}

func NewQueue(
	client *asynq.Client,
	pr repository.PostRepository,
	cr repository.CampaignRepository,
	ai service.AIService,
	credits service.CreditService) *Queue {
	return &Queue{
		client:  client,
		pr:      pr,
		cr:      cr,
		ai:      ai,
		credits: credits,
	}
}

const (
	TaskTypeGenerateCampaign = "campaign:generate"
	TaskTypePublishPost      = "post:publish"
)

type GenerateCampaignPayload struct {
	CampaignID int64 `json:"campaign_id"`
	UserID     int64 `json:"user_id"`
}

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
