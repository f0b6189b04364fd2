package user

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/tools"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProfileResp 用户主页，登录用户额外返回是否已关注
type ProfileResp struct {
	model.User
	IsFollowing bool `json:"is_following"`
}

// UpdateProfileReq 使用指针类型支持部分更新
type UpdateProfileReq struct {
	Nickname  *string `json:"nickname" binding:"omitempty,max=50"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=255"`
	Gender    *int8   `json:"gender" binding:"omitempty,min=0,max=2"`
	Bio       *string `json:"bio" binding:"omitempty,max=255"`
}

func findUser(id uint) (*model.User, error) {
	var user model.User
	err := database.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrTargetNotFound
	}
	if err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &user, nil
}

func Me(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	user, err := findUser(userID)
	if err != nil {
		log.Error("查询用户失败", "error", err, "user_id", userID)
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

func Profile(c *gin.Context) {
	id, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户ID不合法"))
		return
	}
	user, err := findUser(id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	resp := ProfileResp{User: *user}
	if viewerID := jwt.CurrentUserID(c); viewerID != 0 && viewerID != id {
		if resp.IsFollowing, err = graph.IsFollowing(c.Request.Context(), viewerID, id); err != nil {
			log.Warn("查询关注关系失败", "error", err, "viewer_id", viewerID, "user_id", id)
		}
	}
	response.Success(c, resp)
}

// UpdateProfile 修改自己的资料，计数字段不可修改
func UpdateProfile(c *gin.Context) {
	userID := jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改资料请求失败", "error", err, "user_id", userID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.Nickname != nil {
		nickname := strings.TrimSpace(*req.Nickname)
		if nickname == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("昵称不能为空"))
			return
		}
		updates["nickname"] = nickname
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("请至少修改一个字段"))
		return
	}

	res := database.DB.Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		log.Error("修改资料失败", "error", res.Error, "user_id", userID)
		response.Fail(c, response.ErrDatabase.WithOrigin(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		response.Fail(c, response.ErrTargetNotFound)
		return
	}

	log.Info("用户修改资料", "user_id", userID)
	response.Success(c)
}
