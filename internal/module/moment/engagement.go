package moment

import (
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/tools"

	"github.com/gin-gonic/gin"
)

type AddCommentReq struct {
	Content       string `json:"content" binding:"required"`
	ParentID      *uint  `json:"parent_id"`        // 回复的评论，发一级评论时为空
	ReplyToUserID *uint  `json:"reply_to_user_id"` // 被回复人
}

func momentAction(c *gin.Context) (momentID, userID uint, ok bool) {
	userID = jwt.CurrentUserID(c)
	if userID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return 0, 0, false
	}
	momentID, ok = tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("动态ID不合法"))
		return 0, 0, false
	}
	return momentID, userID, true
}

func Like(c *gin.Context) {
	momentID, userID, ok := momentAction(c)
	if !ok {
		return
	}
	if err := graph.Like(c.Request.Context(), momentID, userID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func Unlike(c *gin.Context) {
	momentID, userID, ok := momentAction(c)
	if !ok {
		return
	}
	if err := graph.Unlike(c.Request.Context(), momentID, userID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func AddComment(c *gin.Context) {
	momentID, userID, ok := momentAction(c)
	if !ok {
		return
	}

	var req AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定评论请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	comment, err := graph.AddComment(c.Request.Context(), momentID, userID, req.ParentID, req.ReplyToUserID, req.Content)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"comment_id": comment.ID})
}

// ListComments 两级评论列表
func ListComments(c *gin.Context) {
	momentID, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("动态ID不合法"))
		return
	}
	comments, err := graph.Comments(c.Request.Context(), momentID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, comments)
}
