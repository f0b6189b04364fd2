package model

import "time"

const (
	MomentDeleted int8 = iota
	MomentNormal
	MomentBlocked
)

const (
	VisibilityPublic int8 = iota
	VisibilityFollowers
	VisibilityPrivate
)

type Moment struct {
	Model
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	Content         string `gorm:"type:text;not null" json:"content"`
	Images          string `gorm:"type:text" json:"images"` // 配图URL列表，JSON 数组
	LocationName    string `gorm:"type:varchar(100)" json:"location_name"`
	LocationAddress string `gorm:"type:varchar(255)" json:"location_address"`
	Visibility      int8   `gorm:"not null;default:0" json:"visibility"`
	LikeCount       int64  `gorm:"not null;default:0" json:"like_count"`    // 冗余字段
	CommentCount    int64  `gorm:"not null;default:0" json:"comment_count"` // 冗余字段
	ViewCount       int64  `gorm:"not null;default:0" json:"view_count"`    // 冗余字段
	Status          int8   `gorm:"not null;default:1;index" json:"status"`
	User            *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type MomentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MomentID  uint      `gorm:"not null;uniqueIndex:idx_moment_user" json:"moment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_moment_user;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// MomentComment ParentID 为空表示一级评论
type MomentComment struct {
	ID            uint            `gorm:"primaryKey" json:"comment_id"`
	MomentID      uint            `gorm:"not null;index" json:"moment_id"`
	UserID        uint            `gorm:"not null" json:"user_id"`
	ParentID      *uint           `gorm:"index" json:"parent_id"`
	ReplyToUserID *uint           `json:"reply_to_user_id"`
	Content       string          `gorm:"type:varchar(2000);not null" json:"content"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies       []MomentComment `gorm:"-" json:"replies,omitempty"`
}
