package model

import "time"

// ActivityStatus 活动状态
type ActivityStatus int8

const (
	ActivityRecruiting ActivityStatus = iota // 招募中
	ActivityFull                             // 已满员
	ActivityEnded                            // 活动结束
	ActivityCancelled                        // 已取消
)

var activityStatusNames = map[ActivityStatus]string{
	ActivityRecruiting: "招募中",
	ActivityFull:       "已满员",
	ActivityEnded:      "已结束",
	ActivityCancelled:  "已取消",
}

func (s ActivityStatus) String() string {
	if name, ok := activityStatusNames[s]; ok {
		return name
	}
	return "未知"
}

// Closed 结束或取消后不再回到招募中
func (s ActivityStatus) Closed() bool {
	return s == ActivityEnded || s == ActivityCancelled
}

// CanTransitTo recruiting→{full,ended,cancelled}; full→{recruiting,ended,cancelled}
func (s ActivityStatus) CanTransitTo(to ActivityStatus) bool {
	switch s {
	case ActivityRecruiting:
		return to == ActivityFull || to == ActivityEnded || to == ActivityCancelled
	case ActivityFull:
		return to == ActivityRecruiting || to == ActivityEnded || to == ActivityCancelled
	default:
		return false
	}
}

type Activity struct {
	Model
	InitiatorID     uint           `gorm:"not null;index" json:"initiator_id"`        // 发起人ID
	CategoryID      uint           `gorm:"default:0" json:"category_id"`              // 分类ID
	Title           string         `gorm:"type:varchar(100);not null" json:"title"`   // 标题
	Description     string         `gorm:"type:text" json:"description"`              // 详细描述/要求
	Images          string         `gorm:"type:text" json:"images"`                   // 活动配图，JSON 数组
	LocationName    string         `gorm:"type:varchar(100)" json:"location_name"`    // 地点名称
	LocationAddress string         `gorm:"type:varchar(255)" json:"location_address"` // 详细地址
	StartTime       time.Time      `json:"start_time"`                                // 活动开始时间
	MaxParticipants int            `gorm:"not null" json:"max_participants"`          // 最大参与人数，含发起人
	PaymentType     int8           `gorm:"default:3" json:"payment_type"`             // 1-AA制 2-发起人请客 3-免费 4-各付各的
	Status          ActivityStatus `gorm:"not null;default:0;index" json:"status"`    // 活动状态
	Initiator       *User          `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
}

// Seats 发起人之外可以加入的人数
func (a *Activity) Seats() int64 {
	return int64(a.MaxParticipants - 1)
}
