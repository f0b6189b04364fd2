package user

import (
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"activity-partner/tools"

	"github.com/gin-gonic/gin"
)

// PageReq 页码从 1 开始
type PageReq struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func (p *PageReq) offsetLimit() (int, int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return (p.Page - 1) * p.PageSize, p.PageSize
}

func followTarget(c *gin.Context) (followerID, followeeID uint, ok bool) {
	followerID = jwt.CurrentUserID(c)
	if followerID == 0 {
		response.Fail(c, response.ErrUnauthorized)
		return 0, 0, false
	}
	followeeID, ok = tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户ID不合法"))
		return 0, 0, false
	}
	return followerID, followeeID, true
}

func Follow(c *gin.Context) {
	followerID, followeeID, ok := followTarget(c)
	if !ok {
		return
	}
	if err := graph.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func Unfollow(c *gin.Context) {
	followerID, followeeID, ok := followTarget(c)
	if !ok {
		return
	}
	if err := graph.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c)
}

func CheckFollowing(c *gin.Context) {
	followerID, followeeID, ok := followTarget(c)
	if !ok {
		return
	}
	following, err := graph.IsFollowing(c.Request.Context(), followerID, followeeID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"is_following": following})
}

// Following 某用户关注的人
func Following(c *gin.Context) {
	listFollow(c, true)
}

// Followers 某用户的粉丝
func Followers(c *gin.Context) {
	listFollow(c, false)
}

func listFollow(c *gin.Context, following bool) {
	userID, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户ID不合法"))
		return
	}
	var req PageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	offset, limit := req.offsetLimit()

	list := graph.Followers
	if following {
		list = graph.Following
	}
	page, err := list(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, page)
}

func FollowStats(c *gin.Context) {
	userID, ok := tools.ParamID(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("用户ID不合法"))
		return
	}
	stats, err := graph.FollowStats(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, stats)
}
