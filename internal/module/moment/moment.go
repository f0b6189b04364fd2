package moment

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/tools"
	"context"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CreateMomentReq struct {
	Content         string   `json:"content" binding:"required"`
	Images          []string `json:"images"`
	LocationName    string   `json:"location_name"`
	LocationAddress string   `json:"location_address"`
	Visibility      int8     `json:"visibility" binding:"min=0,max=2"`
}

// UpdateMomentReq 只更新非 nil 的字段
type UpdateMomentReq struct {
	Content         *string   `json:"content"`
	Images          *[]string `json:"images"`
	LocationName    *string   `json:"location_name"`
	LocationAddress *string   `json:"location_address"`
	Visibility      *int8     `json:"visibility" binding:"omitempty,min=0,max=2"`
}

type ListMomentsReq struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// MomentDetail 详情附带当前用户是否点赞
type MomentDetail struct {
	model.Moment
	Liked bool `json:"liked"`
}

func marshalImages(images []string) (string, error) {
	if len(images) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(images)
	return string(raw), err
}

// findMoment 只查询正常状态的动态
func findMoment(id uint) (*model.Moment, error) {
	var m model.Moment
	err := database.DB.Preload("User").Where("id = ? AND status = ?", id, model.MomentNormal).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrMomentNotFound
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &m, nil
}

// visible 私密动态仅作者可见，粉丝可见的动态需要已关注作者
func visible(ctx context.Context, m *model.Moment, viewerID uint) bool {
	if m.UserID == viewerID {
		return true
	}
	switch m.Visibility {
	case model.VisibilityPublic:
		return true
	case model.VisibilityFollowers:
		if viewerID == 0 {
			return false
		}
		ok, err := graph.IsFollowing(ctx, viewerID, m.UserID)
		if err != nil {
			log.Warn("查询关注关系失败", "error", err, "viewer_id", viewerID, "author_id", m.UserID)
		}
		return ok
	default:
		return false
	}
}

func CreateMoment(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateMomentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定发布动态请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("内容不能为空"))
		return
	}
	images, err := marshalImages(req.Images)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("图片格式错误"))
		return
	}

	m := model.Moment{
		UserID:          userID,
		Content:         content,
		Images:          images,
		LocationName:    strings.TrimSpace(req.LocationName),
		LocationAddress: strings.TrimSpace(req.LocationAddress),
		Visibility:      req.Visibility,
		Status:          model.MomentNormal,
	}
	if err := database.DB.Create(&m).Error; err != nil {
		log.Error("发布动态失败", "error", err, "user_id", userID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("发布动态", "id", m.ID, "user_id", userID)
	response.Success(c, gin.H{"moment_id": m.ID})
}

// GetMoment 查看详情，同时记录一次浏览
func GetMoment(c *gin.Context) {
	id, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("动态ID不合法"))
		return
	}
	viewerID := jwt.CurrentUserID(c)
	ctx := c.Request.Context()

	m, err := findMoment(id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if !visible(ctx, m, viewerID) {
		response.Fail(c, response.ErrMomentNotFound)
		return
	}

	counted, err := graph.View(ctx, id, viewerID)
	if err != nil {
		log.Error("记录浏览失败", "error", err, "id", id)
	} else if counted {
		m.ViewCount++
	}

	detail := MomentDetail{Moment: *m}
	if detail.Liked, err = graph.HasLiked(ctx, id, viewerID); err != nil {
		log.Warn("查询点赞状态失败", "error", err, "id", id, "viewer_id", viewerID)
	}
	response.Success(c, detail)
}

// ListMoments 动态广场，只展示公开动态
func ListMoments(c *gin.Context) {
	var req ListMomentsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.Moment{}).
		Where("status = ? AND visibility = ?", model.MomentNormal, model.VisibilityPublic)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取动态总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	moments := []model.Moment{}
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("User").Order("created_at DESC").Offset(offset).Limit(req.PageSize).Find(&moments).Error; err != nil {
		log.Error("获取动态列表失败", "error", err)
		moments = []model.Moment{}
	}

	response.Success(c, gin.H{
		"moments":   moments,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

func listByUser(c *gin.Context, userID uint, onlyPublic bool) {
	query := database.DB.Preload("User").Where("user_id = ? AND status = ?", userID, model.MomentNormal)
	if onlyPublic {
		query = query.Where("visibility = ?", model.VisibilityPublic)
	}

	moments := []model.Moment{}
	if err := query.Order("created_at DESC").Find(&moments).Error; err != nil {
		log.Error("获取用户动态失败", "error", err, "user_id", userID)
		moments = []model.Moment{}
	}
	response.Success(c, moments)
}

func MyMoments(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	listByUser(c, userID, false)
}

// UserMoments 用户主页，非本人只能看到公开动态
func UserMoments(c *gin.Context) {
	userID, ok := tools.ParamID(c, "user_id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户ID不合法"))
		return
	}
	listByUser(c, userID, jwt.CurrentUserID(c) != userID)
}

// ownMoment 读取动态并确认当前用户是作者
func ownMoment(c *gin.Context) (*model.Moment, bool) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	id, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("动态ID不合法"))
		return nil, false
	}
	m, err := findMoment(id)
	if err != nil {
		response.Fail(c, err)
		return nil, false
	}
	if m.UserID != userID {
		log.Warn("无权限操作动态", "id", id, "author_id", m.UserID, "user_id", userID)
		response.Fail(c, response.ErrForbidden.WithTips("只能操作自己的动态"))
		return nil, false
	}
	return m, true
}

func UpdateMoment(c *gin.Context) {
	var req UpdateMomentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定编辑动态请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("内容不能为空"))
			return
		}
		updates["content"] = content
	}
	if req.Images != nil {
		images, err := marshalImages(*req.Images)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("图片格式错误"))
			return
		}
		updates["images"] = images
	}
	if req.LocationName != nil {
		updates["location_name"] = strings.TrimSpace(*req.LocationName)
	}
	if req.LocationAddress != nil {
		updates["location_address"] = strings.TrimSpace(*req.LocationAddress)
	}
	if req.Visibility != nil {
		updates["visibility"] = *req.Visibility
	}
	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("请至少修改一个字段"))
		return
	}

	m, ok := ownMoment(c)
	if !ok {
		return
	}
	if err := database.DB.Model(m).Updates(updates).Error; err != nil {
		log.Error("编辑动态失败", "error", err, "id", m.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updated, err := findMoment(m.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, updated)
}

// DeleteMoment 软删除，status 置为 0
func DeleteMoment(c *gin.Context) {
	m, ok := ownMoment(c)
	if !ok {
		return
	}
	if err := database.DB.Model(m).Update("status", model.MomentDeleted).Error; err != nil {
		log.Error("删除动态失败", "error", err, "id", m.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除动态", "id", m.ID, "user_id", m.UserID)
	response.Success(c)
}
