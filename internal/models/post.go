package models

import "time"

// Post is a short text item. CreatedAt is server-assigned on insert;
// feed ordering ties on CreatedAt are broken by ID.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Body      string    `json:"body" gorm:"size:280;not null"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// CreatePostRequest defines the request body for creating a new post.
// Length limits apply to the trimmed body; the handler trims before binding
// rules run a second time server-side.
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,max=280"`
}

// FeedPost is a post annotated with author display fields for the feed view.
type FeedPost struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
	AuthorName     string    `json:"author_name"`
}

// PostWithCounts is a post with read-time like/reply aggregates.
type PostWithCounts struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	LikeCount  int64     `json:"like_count"`
	ReplyCount int64     `json:"reply_count"`
}
