package model

// User 由认证服务维护，本服务只读取资料并维护关注计数
type User struct {
	Model
	Nickname       string `gorm:"type:varchar(50);not null" json:"nickname"`
	AvatarURL      string `gorm:"type:varchar(255)" json:"avatar_url"`
	Gender         int8   `gorm:"default:0" json:"gender"`
	Bio            string `gorm:"type:varchar(255)" json:"bio"`
	CreditScore    int    `gorm:"default:100" json:"credit_score"`
	FollowerCount  int64  `gorm:"not null;default:0" json:"follower_count"`  // 粉丝数（冗余字段）
	FollowingCount int64  `gorm:"not null;default:0" json:"following_count"` // 关注数（冗余字段）
}
