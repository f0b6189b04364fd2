package activity

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/internal/module/category"
	"activity-partner/tools"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ActivityCreateReq 定义创建活动请求的结构体
type ActivityCreateReq struct {
	Title           string   `json:"title" binding:"required,max=100"`             // 标题
	Description     string   `json:"description"`                                  // 详细描述/要求
	CategoryID      uint     `json:"category_id"`                                  // 分类ID
	Images          []string `json:"images"`                                       // 活动配图
	LocationName    string   `json:"location_name"`                                // 地点名称
	LocationAddress string   `json:"location_address"`                             // 详细地址
	StartTime       int64    `json:"start_time" binding:"required"`                // 开始时间，Unix 秒
	MaxParticipants int      `json:"max_participants" binding:"required,min=2"`    // 最大人数，含发起人
	PaymentType     int8     `json:"payment_type" binding:"omitempty,min=1,max=4"` // 费用方式
}

// ActivityDetail 活动详情，当前人数包含发起人
type ActivityDetail struct {
	model.Activity
	CurrentParticipants int64                    `json:"current_participants"`
	MyStatus            *model.ParticipantStatus `json:"my_status,omitempty"` // 当前用户的参与状态
	IsInitiator         bool                     `json:"is_initiator"`
}

// CreateActivity 处理创建活动请求，发起人为当前用户
func CreateActivity(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.PaymentType == 0 {
		req.PaymentType = 3
	}
	if err := category.CheckActive(database.DB.WithContext(c.Request.Context()), req.CategoryID); err != nil {
		response.Fail(c, err)
		return
	}

	images := ""
	if len(req.Images) > 0 {
		raw, err := json.Marshal(req.Images)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("图片格式错误"))
			return
		}
		images = string(raw)
	}

	activity := model.Activity{
		InitiatorID:     userID,
		CategoryID:      req.CategoryID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Images:          images,
		LocationName:    strings.TrimSpace(req.LocationName),
		LocationAddress: strings.TrimSpace(req.LocationAddress),
		StartTime:       time.Unix(req.StartTime, 0),
		MaxParticipants: req.MaxParticipants,
		PaymentType:     req.PaymentType,
		Status:          model.ActivityRecruiting,
	}
	if err := database.DB.Create(&activity).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功",
		"id", activity.ID,
		"initiator_id", userID,
		"max_participants", activity.MaxParticipants,
	)

	response.Success(c, gin.H{
		"activity_id": activity.ID,
	})
}

// ListActivitiesReq 定义获取活动列表的查询参数结构体
type ListActivitiesReq struct {
	Status      *model.ActivityStatus `form:"status"`       // 活动状态筛选
	InitiatorID uint                  `form:"initiator_id"` // 发起人筛选
	CategoryID  uint                  `form:"category_id"`  // 分类筛选
	Page        int                   `form:"page"`         // 页码，默认为1
	PageSize    int                   `form:"page_size"`    // 每页大小，默认为10
}

// ListActivities 获取活动列表，按创建时间倒序
func ListActivities(c *gin.Context) {
	var req ListActivitiesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.Activity{})
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	if req.InitiatorID != 0 {
		query = query.Where("initiator_id = ?", req.InitiatorID)
	}
	if req.CategoryID != 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取活动总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	activities := []model.Activity{}
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Initiator").Order("created_at DESC").Offset(offset).Limit(req.PageSize).Find(&activities).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"activities":  activities,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	})
}

// GetActivity 获取单个活动详情，登录用户额外返回自己的参与状态
func GetActivity(c *gin.Context) {
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

	detail := ActivityDetail{Activity: *activity}
	if occupied, err := ledger.Occupancy(c.Request.Context(), id); err != nil {
		log.Warn("统计活动人数失败", "error", err, "id", id)
	} else {
		detail.CurrentParticipants = occupied + 1
	}

	if userID := jwt.CurrentUserID(c); userID != 0 {
		detail.IsInitiator = userID == activity.InitiatorID
		var p model.Participant
		err := database.DB.Select("status").Where("activity_id = ? AND user_id = ?", id, userID).Take(&p).Error
		switch {
		case err == nil:
			detail.MyStatus = &p.Status
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Warn("查询参与状态失败", "error", err, "id", id, "user_id", userID)
		}
	}

	response.Success(c, detail)
}

func CancelActivity(c *gin.Context) {
	closeActivity(c, model.ActivityCancelled)
}

func EndActivity(c *gin.Context) {
	closeActivity(c, model.ActivityEnded)
}

func closeActivity(c *gin.Context, to model.ActivityStatus) {
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

	if err := ledger.Close(c.Request.Context(), id, userID, to); err != nil {
		log.Warn("变更活动状态失败", "error", err, "id", id, "user_id", userID, "to", to.String())
		response.Fail(c, err)
		return
	}
	response.Success(c)
}
