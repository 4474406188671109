package models

import "time"

// Reply is a short response to a post. Visibility follows the parent post;
// rows cascade away with it.
type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Body      string    `json:"body" gorm:"size:280;not null"`
	CreatedAt time.Time `json:"created_at"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// CreateReplyRequest defines the request body for replying to a post
type CreateReplyRequest struct {
	Body string `json:"body" validate:"required,max=280"`
}

// ReplyView is a reply row shaped for the replies listing.
type ReplyView struct {
	AuthorName string    `json:"name"`
	Body       string    `json:"reply"`
	CreatedAt  time.Time `json:"created_at"`
}
