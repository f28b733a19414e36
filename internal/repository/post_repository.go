package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/maheshrc27/contentpilot/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	CreateBatch(ctx context.Context, posts []*models.Post) error
	GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	GetByStatus(ctx context.Context, userID int64, status string) ([]*models.Post, error)
	GetByCampaignID(ctx context.Context, campaignID int64) ([]*models.Post, error)
	UpdateApproval(ctx context.Context, postID, approvedBy int64, status string) error
	UpdateRejection(ctx context.Context, postID int64, reason string) error
	MarkPublished(ctx context.Context, postID int64, publishedAt time.Time) error
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, campaign_id, content, image_url, video_url, image_prompt, video_prompt, platforms, status, scheduled_for, published_at, ai_generated, approved_by, rejection_reason, engagement_data, created_at, updated_at`

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var post models.Post
	err := scan(&post.ID, &post.UserID, &post.CampaignID, &post.Content, &post.ImageURL,
		&post.VideoURL, &post.ImagePrompt, &post.VideoPrompt, &post.Platforms, &post.Status,
		&post.ScheduledFor, &post.PublishedAt, &post.AIGenerated, &post.ApprovedBy,
		&post.RejectionReason, &post.EngagementData, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, campaign_id, content, image_url, video_url, image_prompt, video_prompt, platforms, status, scheduled_for, ai_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	var err error

	args := []any{post.UserID, post.CampaignID, post.Content, post.ImageURL, post.VideoURL,
		post.ImagePrompt, post.VideoPrompt, pq.Array([]string(post.Platforms)), post.Status,
		post.ScheduledFor, post.AIGenerated}
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// CreateBatch inserts all posts in one transaction so a mid-batch failure
// persists nothing.
func (r *postRepository) CreateBatch(ctx context.Context, posts []*models.Post) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	for _, post := range posts {
		id, err := r.Create(ctx, tx, post)
		if err != nil {
			return err
		}
		post.ID = id
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE user_id = $1 ORDER BY created_at DESC"
	return r.queryPosts(ctx, query, userID)
}

func (r *postRepository) GetByStatus(ctx context.Context, userID int64, status string) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC"
	return r.queryPosts(ctx, query, userID, status)
}

func (r *postRepository) GetByCampaignID(ctx context.Context, campaignID int64) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE campaign_id = $1 ORDER BY scheduled_for ASC, created_at ASC"
	return r.queryPosts(ctx, query, campaignID)
}

func (r *postRepository) UpdateApproval(ctx context.Context, postID, approvedBy int64, status string) error {
	query := `
		UPDATE posts
		SET status = $1,
			approved_by = $2,
			rejection_reason = '',
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, approvedBy, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateRejection(ctx context.Context, postID int64, reason string) error {
	query := `
		UPDATE posts
		SET status = $1,
			rejection_reason = $2,
			approved_by = NULL,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusRejected, reason, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) MarkPublished(ctx context.Context, postID int64, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			published_at = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, publishedAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
