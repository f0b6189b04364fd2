package model

import "time"

// UserFollow 关注关系，取消关注时物理删除
type UserFollow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`       // 关注者
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"` // 被关注者
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
