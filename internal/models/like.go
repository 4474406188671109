package models

import "time"

// Like marks that a user liked a post, once. Rows cascade away with the post
// so read-time counts never include a deleted post.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_like_post_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_like_post_user;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}
