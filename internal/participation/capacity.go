package participation

import (
	"activity-partner/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Occupied 已通过的参与人数，不含发起人
func Occupied(db *gorm.DB, activityID uint) (int64, error) {
	var n int64
	err := db.Model(&model.Participant{}).
		Where("activity_id = ? AND status = ?", activityID, model.ParticipantApproved).
		Count(&n).Error
	return n, err
}

// HasSeat 发起人隐式占用一个名额，所以可加入人数为 MaxParticipants-1。
// 结果只在调用方事务内有效，调用方需先锁住活动行。
// 计数使用锁定读，读到的是已提交的最新数据而不是事务快照
func HasSeat(tx *gorm.DB, activity *model.Activity) (bool, int64, error) {
	occupied, err := Occupied(tx.Clauses(clause.Locking{Strength: "UPDATE"}), activity.ID)
	if err != nil {
		return false, 0, err
	}
	return occupied < activity.Seats(), occupied, nil
}
