// Package service contains the application business logic.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// DefaultFeedLimit caps getAllPosts when the caller does not ask for a
// specific page size.
const DefaultFeedLimit = 50

// FeedService implements posts, likes, reposts, and feed pagination.
type FeedService struct {
	posts repository.PostRepository
	users repository.UserRepository

	// nowMillis is swappable in tests for deterministic timestamps.
	nowMillis func() int64
}

// NewFeedService creates a feed service backed by the given repositories.
func NewFeedService(posts repository.PostRepository, users repository.UserRepository) *FeedService {
	return &FeedService{
		posts:     posts,
		users:     users,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// CreatePost creates a post authored by userID. The author's name and avatar
// are snapshotted onto the row so later profile edits leave history intact.
// The length cap counts characters, not bytes, and is checked before the
// content is trimmed for storage.
func (s *FeedService) CreatePost(ctx context.Context, userID uint, content, imageURL string) (*models.Post, error) {
	if utf8.RuneCountInString(content) > models.MaxPostContentLength {
		return nil, models.NewValidationError("Post content cannot exceed 500 characters")
	}
	content = strings.TrimSpace(content)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	post := &models.Post{
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Content:    content,
		ImageURL:   imageURL,
		Timestamp:  s.nowMillis(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	middleware.PostMutations.WithLabelValues("create").Inc()
	middleware.Logger.InfoContext(ctx, "Post created",
		"post_id", post.ID,
		"user_id", userID,
	)
	return post, nil
}

// GetAllPosts returns the newest posts. A non-positive limit falls back to
// DefaultFeedLimit. The default-sized first page is served cache-aside with a
// short TTL; every mutation invalidates it.
func (s *FeedService) GetAllPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit != DefaultFeedLimit {
		return s.posts.List(ctx, limit)
	}

	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedFirstPageKey, &posts, cache.FeedTTL, func() error {
		fetched, err := s.posts.List(ctx, limit)
		if err != nil {
			return err
		}
		posts = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsPaginated returns posts inside the (before, after) timestamp
// window, newest first. Both bounds are exclusive. A nil limit pointer means
// the caller did not constrain the page size; the filtered set is returned
// in full.
func (s *FeedService) GetPostsPaginated(ctx context.Context, limit *int, before, after *int64) ([]*models.Post, error) {
	middleware.FeedQueries.WithLabelValues(windowKind(before, after)).Inc()

	n := 0
	if limit != nil {
		n = *limit
	}
	return s.posts.ListWindow(ctx, n, before, after)
}

func windowKind(before, after *int64) string {
	switch {
	case before != nil && after != nil:
		return "range"
	case before != nil:
		return "before"
	case after != nil:
		return "after"
	default:
		return "initial"
	}
}

// HasNewPostsSince counts posts strictly newer than the given watermark.
// A nil watermark means the client has no baseline yet and sees zero.
func (s *FeedService) HasNewPostsSince(ctx context.Context, timestamp *int64) (int, error) {
	if timestamp == nil {
		return 0, nil
	}
	return s.posts.CountSince(ctx, *timestamp)
}

// GetUserPosts returns every post authored by the user, reposts included,
// newest first.
func (s *FeedService) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.posts.GetByUserID(ctx, userID)
}

// GetPost fetches a single post. Absence is not an error; the caller decides
// how to surface a nil post.
func (s *FeedService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// GetUserPostsCount returns how many posts the user has authored.
func (s *FeedService) GetUserPostsCount(ctx context.Context, userID uint) (int, error) {
	return s.posts.CountByUserID(ctx, userID)
}

// GetUserTotalLikes sums the likes received across all of the user's posts.
func (s *FeedService) GetUserTotalLikes(ctx context.Context, userID uint) (int, error) {
	return s.posts.SumLikesByAuthor(ctx, userID)
}

// ToggleLike flips userID's like on the post and reports the resulting state
// with the fresh total.
func (s *FeedService) ToggleLike(ctx context.Context, postID, userID uint) (*models.LikeResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	liked, err := s.posts.HasLiked(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.posts.Unlike(ctx, postID, userID); err != nil {
			return nil, err
		}
		middleware.PostMutations.WithLabelValues("unlike").Inc()
	} else {
		if err := s.posts.Like(ctx, postID, userID); err != nil {
			return nil, err
		}
		middleware.PostMutations.WithLabelValues("like").Inc()
	}

	total, err := s.posts.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{Liked: !liked, TotalLikes: total}, nil
}

// ToggleRepost flips userID's repost of the post. Reposting materializes a
// new feed row carrying a snapshot of the original's content and image at
// this instant; un-reposting removes that row again.
func (s *FeedService) ToggleRepost(ctx context.Context, postID, userID uint) (*models.RepostResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	reposted, err := s.posts.HasReposted(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if reposted {
		if err := s.posts.RemoveRepost(ctx, postID, userID); err != nil {
			return nil, err
		}
		row, err := s.posts.FindRepostRow(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		if row != nil {
			if err := s.posts.Delete(ctx, row.ID); err != nil {
				return nil, err
			}
		}
		middleware.PostMutations.WithLabelValues("unrepost").Inc()
	} else {
		if err := s.posts.AddRepost(ctx, postID, userID); err != nil {
			return nil, err
		}
		repost := &models.Post{
			UserID:     user.ID,
			UserName:   user.Name,
			UserAvatar: user.Avatar,
			Content:    post.Content,
			ImageURL:   post.ImageURL,
			Timestamp:  s.nowMillis(),
			OriginalID: &post.ID,
			IsRepost:   true,
		}
		if err := s.posts.Create(ctx, repost); err != nil {
			return nil, err
		}
		middleware.PostMutations.WithLabelValues("repost").Inc()
	}

	total, err := s.posts.CountReposts(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.RepostResult{Reposted: !reposted, TotalReposts: total}, nil
}

// DeletePost removes a post owned by userID. Only the row itself is deleted;
// like/repost membership rows and repost back-references are untouched.
func (s *FeedService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post")
	}
	if post.UserID != userID {
		return models.NewPermissionError("You can only delete your own posts")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	middleware.PostMutations.WithLabelValues("delete").Inc()
	middleware.Logger.InfoContext(ctx, "Post deleted",
		"post_id", postID,
		"user_id", userID,
	)
	return nil
}
