package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and their
// like/repost membership sets.
//
// The feed is a flat list of post rows ordered by timestamp descending; ties
// are broken by id descending so pagination is deterministic. Likes and
// reposts live in join tables keyed (post_id, user_id) with a uniqueness
// constraint, and are materialized onto the Post payload as arrays of user
// IDs at query time.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error)
	List(ctx context.Context, limit int) ([]*models.Post, error)
	ListWindow(ctx context.Context, limit int, before, after *int64) ([]*models.Post, error)
	CountSince(ctx context.Context, timestamp int64) (int, error)
	CountByUserID(ctx context.Context, userID uint) (int, error)
	SumLikesByAuthor(ctx context.Context, userID uint) (int, error)
	Delete(ctx context.Context, id uint) error

	HasLiked(ctx context.Context, postID, userID uint) (bool, error)
	Like(ctx context.Context, postID, userID uint) error
	Unlike(ctx context.Context, postID, userID uint) error
	CountLikes(ctx context.Context, postID uint) (int, error)

	HasReposted(ctx context.Context, postID, userID uint) (bool, error)
	AddRepost(ctx context.Context, postID, userID uint) error
	RemoveRepost(ctx context.Context, postID, userID uint) error
	CountReposts(ctx context.Context, postID uint) (int, error)
	FindRepostRow(ctx context.Context, originalID, userID uint) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Reposts == nil {
		post.Reposts = []uint{}
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRowNotFound
			}
			return models.NewInternalError(err)
		}
		return r.attachEngagement(ctx, []*models.Post{&post})
	})
	if errors.Is(err, errRowNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachEngagement(ctx, posts); err != nil {
		return nil, err
	}
	return ensureSlice(posts), nil
}

func (r *postRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachEngagement(ctx, posts); err != nil {
		return nil, err
	}
	return ensureSlice(posts), nil
}

// ListWindow returns posts within the (before, after) timestamp window,
// newest first. Both bounds are exclusive. A non-positive limit returns the
// entire filtered set; callers that pass both bounds rely on this to load a
// known window in full.
func (r *postRepository) ListWindow(ctx context.Context, limit int, before, after *int64) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).Order("timestamp DESC, id DESC")
	if before != nil {
		q = q.Where("timestamp < ?", *before)
	}
	if after != nil {
		q = q.Where("timestamp > ?", *after)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var posts []*models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachEngagement(ctx, posts); err != nil {
		return nil, err
	}
	return ensureSlice(posts), nil
}

func (r *postRepository) CountSince(ctx context.Context, timestamp int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("timestamp > ?", timestamp).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

func (r *postRepository) CountByUserID(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// SumLikesByAuthor counts likes received across every post authored by the
// given user, repost rows included.
func (r *postRepository) SumLikesByAuthor(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// Delete hard-deletes the post row only. Like/repost membership rows and
// originalID back-references held by other rows are left in place.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, postID, userID uint) error {
	// ON CONFLICT DO NOTHING makes concurrent double-likes collapse into a
	// single row instead of violating the uniqueness constraint.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&models.Like{PostID: postID, UserID: userID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, postID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

func (r *postRepository) HasReposted(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Repost{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) AddRepost(ctx context.Context, postID, userID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&models.Repost{PostID: postID, UserID: userID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) RemoveRepost(ctx context.Context, postID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Repost{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) CountReposts(ctx context.Context, postID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Repost{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return int(count), nil
}

// FindRepostRow locates the materialized repost row a user created for the
// given original post. Returns (nil, nil) when none exists.
func (r *postRepository) FindRepostRow(ctx context.Context, originalID, userID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("original_id = ? AND user_id = ? AND is_repost = ?", originalID, userID, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ensureSlice keeps empty result sets marshaling as [] instead of null.
func ensureSlice(posts []*models.Post) []*models.Post {
	if posts == nil {
		return []*models.Post{}
	}
	return posts
}

// attachEngagement populates the Likes and Reposts arrays for a batch of
// posts with two grouped queries instead of one pair per row.
func (r *postRepository) attachEngagement(ctx context.Context, posts []*models.Post) error {
	for _, p := range posts {
		p.Likes = []uint{}
		p.Reposts = []uint{}
	}
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, l := range likes {
		if p := byID[l.PostID]; p != nil {
			p.Likes = append(p.Likes, l.UserID)
		}
	}

	var reposts []models.Repost
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id").
		Find(&reposts).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, rp := range reposts {
		if p := byID[rp.PostID]; p != nil {
			p.Reposts = append(p.Reposts, rp.UserID)
		}
	}

	return nil
}
