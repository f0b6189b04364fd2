package participation

import (
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
)

// Decision 审核动作
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Authorize 只有活动发起人可以审核、取消、结束活动或导出名单
func Authorize(activity *model.Activity, actorID uint) error {
	if activity.InitiatorID != actorID {
		return response.ErrNotReviewer
	}
	return nil
}
