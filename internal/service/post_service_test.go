package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type fakePostRepository struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: make(map[int64]*models.Post)}
}

// GetByID mirrors the SQL repository and reports a missing row as (nil, nil).
func (f *fakePostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	f.nextID++
	post.ID = f.nextID
	copied := *post
	f.posts[post.ID] = &copied
	return post.ID, nil
}

func (f *fakePostRepository) CreateBatch(ctx context.Context, posts []*models.Post) error {
	for _, post := range posts {
		if _, err := f.Create(ctx, nil, post); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakePostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.UserID == userID {
			copied := *post
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePostRepository) GetByStatus(ctx context.Context, userID int64, status string) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.UserID == userID && post.Status == status {
			copied := *post
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePostRepository) GetByCampaignID(ctx context.Context, campaignID int64) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if post.CampaignID != nil && *post.CampaignID == campaignID {
			copied := *post
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledFor.Before(*out[j].ScheduledFor)
	})
	return out, nil
}

func (f *fakePostRepository) UpdateApproval(ctx context.Context, postID, approvedBy int64, status string) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	post.ApprovedBy = &approvedBy
	return nil
}

func (f *fakePostRepository) UpdateRejection(ctx context.Context, postID int64, reason string) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusRejected
	post.RejectionReason = reason
	return nil
}

func (f *fakePostRepository) MarkPublished(ctx context.Context, postID int64, publishedAt time.Time) error {
	post, ok := f.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = models.PostStatusPublished
	post.PublishedAt = &publishedAt
	return nil
}

func (f *fakePostRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	post, ok := f.posts[postID]
	return ok && post.UserID == userID, nil
}

func (f *fakePostRepository) Remove(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

type fakePublishEnqueuer struct {
	enqueued map[int64]time.Duration
}

func newFakePublishEnqueuer() *fakePublishEnqueuer {
	return &fakePublishEnqueuer{enqueued: make(map[int64]time.Duration)}
}

func (f *fakePublishEnqueuer) EnqueuePostPublish(ctx context.Context, postID int64, processIn time.Duration) error {
	f.enqueued[postID] = processIn
	return nil
}

func newTestPostService(balance int) (PostService, *fakePostRepository, *fakeCreditRepository, *fakePublishEnqueuer) {
	pr := newFakePostRepository()
	cr := newFakeCreditRepository()
	cr.balances[1] = balance
	enqueuer := newFakePublishEnqueuer()
	return NewPostService(pr, NewCreditService(cr), enqueuer), pr, cr, enqueuer
}

func TestCreatePostDebitsOneCredit(t *testing.T) {
	s, pr, cr, _ := newTestPostService(10)

	postID, err := s.CreatePost(context.Background(), 1, &transfer.PostCreation{
		Content:   "Fresh sourdough out of the oven",
		Platforms: []string{"instagram"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, cr.balances[1])

	post := pr.posts[postID]
	require.NotNil(t, post)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.False(t, post.AIGenerated)
}

func TestCreatePostAIGeneratedNotCharged(t *testing.T) {
	s, _, cr, _ := newTestPostService(10)

	_, err := s.CreatePost(context.Background(), 1, &transfer.PostCreation{
		Content:     "Generated caption",
		Platforms:   []string{"instagram"},
		AIGenerated: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, cr.balances[1])
}

func TestCreatePostInsufficientCredits(t *testing.T) {
	s, pr, _, _ := newTestPostService(0)

	_, err := s.CreatePost(context.Background(), 1, &transfer.PostCreation{
		Content:   "Fresh sourdough out of the oven",
		Platforms: []string{"instagram"},
	})
	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Empty(t, pr.posts)
}

func TestApprovePost(t *testing.T) {
	s, pr, _, enqueuer := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  1,
		Content: "pending caption",
		Status:  models.PostStatusPending,
	})

	post, err := s.Approve(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusApproved, post.Status)
	require.NotNil(t, post.ApprovedBy)
	assert.Equal(t, int64(1), *post.ApprovedBy)
	assert.Empty(t, enqueuer.enqueued)
}

func TestApproveScheduledPostEnqueuesPublish(t *testing.T) {
	s, pr, _, enqueuer := newTestPostService(10)

	scheduledFor := time.Now().Add(2 * time.Hour)
	pr.Create(context.Background(), nil, &models.Post{
		UserID:       1,
		Content:      "pending caption",
		Status:       models.PostStatusPending,
		ScheduledFor: &scheduledFor,
	})

	post, err := s.Approve(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, post.Status)

	delay, ok := enqueuer.enqueued[1]
	require.True(t, ok)
	assert.Greater(t, delay, time.Hour)
}

func TestApprovePostWithPastScheduleEnqueuesImmediately(t *testing.T) {
	s, pr, _, enqueuer := newTestPostService(10)

	scheduledFor := time.Now().Add(-time.Hour)
	pr.Create(context.Background(), nil, &models.Post{
		UserID:       1,
		Content:      "pending caption",
		Status:       models.PostStatusPending,
		ScheduledFor: &scheduledFor,
	})

	_, err := s.Approve(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), enqueuer.enqueued[1])
}

func TestApprovePostIdempotent(t *testing.T) {
	s, pr, _, enqueuer := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  1,
		Content: "pending caption",
		Status:  models.PostStatusPending,
	})

	_, err := s.Approve(context.Background(), 1, 1)
	require.NoError(t, err)

	post, err := s.Approve(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusApproved, post.Status)
	assert.Empty(t, enqueuer.enqueued)
}

func TestRejectPostDefaultReason(t *testing.T) {
	s, pr, _, _ := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  1,
		Content: "pending caption",
		Status:  models.PostStatusPending,
	})

	post, err := s.Reject(context.Background(), 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRejected, post.Status)
	assert.Equal(t, DefaultRejectionReason, post.RejectionReason)
}

func TestRejectPostIdempotent(t *testing.T) {
	s, pr, _, _ := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  1,
		Content: "pending caption",
		Status:  models.PostStatusPending,
	})

	_, err := s.Reject(context.Background(), 1, 1, "off brand")
	require.NoError(t, err)

	post, err := s.Reject(context.Background(), 1, 1, "another reason")
	require.NoError(t, err)
	assert.Equal(t, "off brand", post.RejectionReason)
}

func TestRejectPublishedPostFails(t *testing.T) {
	s, pr, _, _ := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  1,
		Content: "live caption",
		Status:  models.PostStatusPublished,
	})

	_, err := s.Reject(context.Background(), 1, 1, "too late")
	assert.Error(t, err)
}

func TestPostOwnership(t *testing.T) {
	s, pr, _, _ := newTestPostService(10)

	pr.Create(context.Background(), nil, &models.Post{
		UserID:  2,
		Content: "someone else's post",
		Status:  models.PostStatusPending,
	})

	_, err := s.Approve(context.Background(), 1, 1)
	assert.Error(t, err)

	_, err = s.PostInfo(context.Background(), 1, 1)
	assert.Error(t, err)
}
