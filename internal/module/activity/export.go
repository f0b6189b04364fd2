package activity

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/internal/global/sentry/tracing"
	"activity-partner/internal/model"
	"activity-partner/internal/participation"
	"activity-partner/tools"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const rosterSheet = "参与名单"

// RosterRow 导出名单的一行
type RosterRow struct {
	UserID   uint      `excel:"用户ID"`
	Nickname string    `excel:"昵称"`
	ApplyMsg string    `excel:"申请留言"`
	JoinedAt time.Time `excel:"通过时间"`
}

// ExportRoster 导出已通过成员名单，只有发起人可以导出
func ExportRoster(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	id, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID不合法"))
		return
	}

	activity, err := ledger.GetActivity(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if err := participation.Authorize(activity, userID); err != nil {
		response.Fail(c, response.ErrForbidden.WithTips("只有发起人可以导出名单"))
		return
	}

	var participants []model.Participant
	if err := database.DB.Preload("User").
		Where("activity_id = ? AND status = ?", id, model.ParticipantApproved).
		Order("updated_at ASC").
		Find(&participants).Error; err != nil {
		log.Error("查询参与名单失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]RosterRow, 0, len(participants)+1)
	if activity.Initiator != nil {
		rows = append(rows, RosterRow{
			UserID:   activity.InitiatorID,
			Nickname: activity.Initiator.Nickname + "（发起人）",
			JoinedAt: activity.CreatedAt,
		})
	}
	for _, p := range participants {
		row := RosterRow{UserID: p.UserID, ApplyMsg: p.ApplyMsg, JoinedAt: p.UpdatedAt}
		if p.User != nil {
			row.Nickname = p.User.Nickname
		}
		rows = append(rows, row)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	err = tracing.Trace(c.Request.Context(), "excel.export", rosterSheet, func() error {
		if err := tools.ExportToExcel(f, rosterSheet, rows); err != nil {
			return err
		}
		return f.DeleteSheet("Sheet1")
	})
	if err != nil {
		log.Error("生成名单失败", "error", err, "id", id)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	if err := tools.SendExcel(c, f, fmt.Sprintf("%s-参与名单.xlsx", activity.Title)); err != nil {
		log.Error("发送名单失败", "error", err, "id", id)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	log.Info("导出参与名单", "id", id, "count", len(participants))
}
