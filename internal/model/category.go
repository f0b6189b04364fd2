package model

// Category 活动分类，由运营在库中维护，停用后不再出现在列表里
type Category struct {
	Model
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	SortOrder int    `gorm:"not null;index" json:"sort_order"` // 越小越靠前
	IsActive  bool   `gorm:"not null" json:"is_active"`
}
