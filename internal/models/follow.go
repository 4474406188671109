package models

import "time"

// Follow is a directed edge: the follower's feed includes the followed
// user's posts. The pair is unique and self-edges are rejected at the
// database level.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null;check:chk_no_self_follow,follower_id <> following_id"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time `json:"created_at"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID"`
}
