package participant

import (
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/internal/participation"
	"activity-partner/tools"

	"github.com/gin-gonic/gin"
)

type JoinReq struct {
	Message string `json:"message" binding:"max=255"` // 申请留言
}

type ReviewReq struct {
	Action participation.Decision `json:"action" binding:"required,oneof=approve reject"`
}

type ListReq struct {
	Status *model.ParticipantStatus `form:"status"`
	Offset int                      `form:"offset" binding:"min=0"`
	Limit  int                      `form:"limit" binding:"min=0"`
}

// Join 申请加入活动
func Join(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activityID, ok := tools.ParamID(c, "activity_id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不合法"))
		return
	}

	var req JoinReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Error("绑定申请请求失败", "error", err)
			response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
			return
		}
	}

	p, err := ledger.Apply(c.Request.Context(), activityID, userID, req.Message)
	if err != nil {
		log.Warn("申请加入活动失败", "error", err, "activity_id", activityID, "user_id", userID)
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"participant_id": p.ID,
		"status":         p.Status,
	})
}

// Review 发起人审核申请
func Review(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	participantID, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("申请ID不合法"))
		return
	}

	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定审核请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := ledger.Review(c.Request.Context(), participantID, userID, req.Action); err != nil {
		log.Warn("审核申请失败", "error", err, "participant_id", participantID, "user_id", userID)
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

// Leave 退出活动或撤回申请
func Leave(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activityID, ok := tools.ParamID(c, "activity_id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不合法"))
		return
	}

	if err := ledger.Leave(c.Request.Context(), activityID, userID); err != nil {
		log.Warn("退出活动失败", "error", err, "activity_id", activityID, "user_id", userID)
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

// ListParticipants 活动的参与记录，offset/limit 原样透传
func ListParticipants(c *gin.Context) {
	activityID, ok := tools.ParamID(c, "activity_id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不合法"))
		return
	}

	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	page, err := ledger.ListParticipants(c.Request.Context(), activityID, req.Status, req.Offset, req.Limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, page)
}

// MyApplications 我提交的申请
func MyApplications(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	response.Success(c, ledger.MyApplications(c.Request.Context(), userID))
}

// MyActivities 我发起的活动及其申请
func MyActivities(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	list, err := ledger.MyActivitiesWithApplications(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}
