package models

// MaxPostContentLength is the hard cap on post content at creation time.
const MaxPostContentLength = 500

// Post represents a feed entry. UserName and UserAvatar are snapshots of the
// author taken at creation time; author profile edits do not retroactively
// update historical posts.
//
// A repost is a full Post row of its own (IsRepost = true) whose Content and
// ImageURL are copied from the original at repost time, with OriginalID
// pointing back at the source post. The composite unique index on
// (original_id, user_id) guarantees at most one repost row per user per
// original; rows with a NULL original_id never collide.
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index;uniqueIndex:idx_posts_original_user" json:"userId"`
	UserName   string `gorm:"not null" json:"userName"`
	UserAvatar string `json:"userAvatar,omitempty"`
	Content    string `gorm:"type:text;not null" json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
	// Timestamp is the creation instant in Unix milliseconds. It is the feed
	// ordering key and the pagination/freshness watermark.
	Timestamp  int64 `gorm:"not null;index" json:"timestamp"`
	OriginalID *uint `gorm:"index;uniqueIndex:idx_posts_original_user" json:"originalID,omitempty"`
	IsRepost   bool  `gorm:"not null;default:false" json:"isRepost"`

	// Likes and Reposts hold the user IDs that have liked/reposted this post.
	// They are materialized from the likes/reposts join tables at query time.
	Likes   []uint `gorm:"-" json:"likes"`
	Reposts []uint `gorm:"-" json:"reposts"`
}

// Like marks that a user has liked a post. The composite unique index makes
// concurrent double-likes collapse into a single row.
type Like struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"userId"`
}

// Repost marks that a user has reposted a post. PostID references the
// original post, not the materialized repost row.
type Repost struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index;uniqueIndex:idx_reposts_post_user" json:"postId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_reposts_post_user" json:"userId"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	TotalLikes int  `json:"totalLikes"`
}

// RepostResult is the outcome of a repost toggle.
type RepostResult struct {
	Reposted     bool `json:"reposted"`
	TotalReposts int  `json:"totalReposts"`
}
