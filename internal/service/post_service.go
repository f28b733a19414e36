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

// DefaultRejectionReason is recorded when a reviewer rejects a post
// without giving one.
const DefaultRejectionReason = "Does not meet content guidelines"

// PublishEnqueuer schedules the durable publish task for an approved post.
// Implemented by the asynq queue.
type PublishEnqueuer interface {
	EnqueuePostPublish(ctx context.Context, postID int64, processIn time.Duration) error
}

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	ListByStatus(ctx context.Context, userID int64, status string) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Approve(ctx context.Context, userID, postID int64) (*models.Post, error)
	Reject(ctx context.Context, userID, postID int64, reason string) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	pr      repository.PostRepository
	credits CreditService
	queue   PublishEnqueuer
}

func NewPostService(pr repository.PostRepository, credits CreditService, queue PublishEnqueuer) PostService {
	return &postService{
		pr:      pr,
		credits: credits,
		queue:   queue,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (int64, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return 0, err
	}
	if pc.Content == "" {
		err := errors.New("content cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}
	if len(pc.Platforms) == 0 {
		err := errors.New("no platforms selected")
		slog.Info(err.Error())
		return 0, err
	}

	var scheduledFor *time.Time
	if pc.ScheduledFor != "" {
		t, err := time.Parse("2006-01-02T15:04", pc.ScheduledFor)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return 0, err
		}
		scheduledFor = &t
	}

	// AI generated content is charged when it is generated, a plain
	// post costs one credit here.
	if !pc.AIGenerated {
		if _, err := s.credits.Debit(ctx, userID, CostTextPost, models.CreditTypeUsage, "Manual post creation"); err != nil {
			return 0, err
		}
	}

	post := models.Post{
		UserID:       userID,
		Content:      pc.Content,
		ImageURL:     pc.ImageURL,
		VideoURL:     pc.VideoURL,
		Platforms:    pc.Platforms,
		Status:       models.PostStatusDraft,
		ScheduledFor: scheduledFor,
		AIGenerated:  pc.AIGenerated,
	}

	postID, err := s.pr.Create(ctx, nil, &post)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	return postID, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting posts list")
	}
	return posts, nil
}

func (s *postService) ListByStatus(ctx context.Context, userID int64, status string) ([]*models.Post, error) {
	posts, err := s.pr.GetByStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("Error getting posts list")
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Approve marks a reviewed post approved. If the post carries a schedule
// it moves straight to scheduled and a publish task is enqueued. Calling
// Approve on an already approved or scheduled post is a no-op.
func (s *postService) Approve(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	switch post.Status {
	case models.PostStatusApproved, models.PostStatusScheduled, models.PostStatusPublished:
		return post, nil
	case models.PostStatusDraft, models.PostStatusPending, models.PostStatusRejected:
	default:
		err = fmt.Errorf("post in status %s cannot be approved", post.Status)
		slog.Info(err.Error())
		return nil, err
	}

	status := models.PostStatusApproved
	if post.ScheduledFor != nil {
		status = models.PostStatusScheduled
	}

	if err = s.pr.UpdateApproval(ctx, postID, userID, status); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to approve post: %w", err)
	}

	if status == models.PostStatusScheduled {
		// A schedule in the past publishes immediately.
		delay := time.Until(*post.ScheduledFor)
		if delay < 0 {
			delay = 0
		}
		if err = s.queue.EnqueuePostPublish(ctx, postID, delay); err != nil {
			slog.Error(err.Error())
			return nil, fmt.Errorf("failed to schedule publish: %w", err)
		}
	}

	post.Status = status
	post.ApprovedBy = &userID
	return post, nil
}

// Reject is idempotent and fills in DefaultRejectionReason when the
// reviewer gives none.
func (s *postService) Reject(ctx context.Context, userID, postID int64, reason string) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == models.PostStatusRejected {
		return post, nil
	}
	if post.Status == models.PostStatusPublished || post.Status == models.PostStatusArchived {
		err = fmt.Errorf("post in status %s cannot be rejected", post.Status)
		slog.Info(err.Error())
		return nil, err
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}

	if err = s.pr.UpdateRejection(ctx, postID, reason); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to reject post: %w", err)
	}

	post.Status = models.PostStatusRejected
	post.RejectionReason = reason
	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *postService) ownedPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	var err error

	if userID == 0 {
		err = errors.New("user is not valid")
		slog.Info(err.Error())
		return nil, err
	}
	if postID == 0 {
		err = errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	exists, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if !exists {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if post == nil {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}
