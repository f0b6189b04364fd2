package model

// ParticipantStatus 参与记录状态
type ParticipantStatus int8

const (
	ParticipantPending  ParticipantStatus = iota // 申请中
	ParticipantApproved                          // 已通过（群成员）
	ParticipantRejected                          // 已拒绝
	ParticipantLeft                              // 主动退出
)

var participantStatusNames = map[ParticipantStatus]string{
	ParticipantPending:  "申请中",
	ParticipantApproved: "已通过",
	ParticipantRejected: "已拒绝",
	ParticipantLeft:     "已退出",
}

func (s ParticipantStatus) String() string {
	if name, ok := participantStatusNames[s]; ok {
		return name
	}
	return "未知"
}

// Active 申请中或已通过的记录占用或竞争名额
func (s ParticipantStatus) Active() bool {
	return s == ParticipantPending || s == ParticipantApproved
}

// Participant 每个 (activity_id, user_id) 只有一行，退出后再申请复用同一行
type Participant struct {
	Model
	ActivityID uint              `gorm:"not null;uniqueIndex:idx_activity_user" json:"activity_id"`
	UserID     uint              `gorm:"not null;uniqueIndex:idx_activity_user;index" json:"user_id"`
	Status     ParticipantStatus `gorm:"not null;default:0;index" json:"status"`
	ApplyMsg   string            `gorm:"type:varchar(255)" json:"apply_msg"` // 申请留言
	User       *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
