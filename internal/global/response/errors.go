package response

// 错误码 = HTTP 状态码 * 100 + 序号
var (
	ErrInvalidRequest = newError(40000, "请求参数错误")

	ErrUnauthorized = newError(40100, "未登录或登录已过期")
	ErrTokenInvalid = newError(40101, "Token 无效")

	ErrForbidden        = newError(40300, "无权限")
	ErrOwnerCannotApply = newError(40301, "您是活动发起人，无需申请")
	ErrNotReviewer      = newError(40302, "只有活动发起人可以审核或管理该活动")

	ErrNotFound            = newError(40400, "资源不存在")
	ErrActivityNotFound    = newError(40401, "活动不存在")
	ErrParticipantNotFound = newError(40402, "申请记录不存在")
	ErrTargetNotFound      = newError(40403, "用户不存在")
	ErrMomentNotFound      = newError(40404, "动态不存在或已被删除")

	ErrActivityFull       = newError(40901, "活动已满员")
	ErrAlreadyPending     = newError(40902, "您已申请过，请等待审核")
	ErrAlreadyMember      = newError(40903, "您已是活动成员")
	ErrPreviouslyRejected = newError(40904, "您的申请已被拒绝")
	ErrAlreadyReviewed    = newError(40905, "该申请已处理")
	ErrNotParticipant     = newError(40906, "您未参与该活动")
	ErrAlreadyLeft        = newError(40907, "您已退出该活动")
	ErrSelfFollow         = newError(40908, "不能关注自己")
	ErrAlreadyFollowing   = newError(40909, "已经关注过该用户")
	ErrNotFollowing       = newError(40910, "未关注该用户")
	ErrAlreadyLiked       = newError(40911, "已经点赞过了")
	ErrNotLiked           = newError(40912, "尚未点赞")

	ErrInvalidState          = newError(42200, "当前状态不允许该操作")
	ErrActivityNotRecruiting = newError(42201, "活动已满员、结束或已取消，无法报名")

	ErrServerInternal = newError(50000, "服务器内部错误")
	ErrDatabase       = newError(50001, "数据库错误")
)

// 错误类别，取值为对应的 HTTP 状态码
const (
	KindValidation   = 400
	KindUnauthorized = 401
	KindForbidden    = 403
	KindNotFound     = 404
	KindConflict     = 409
	KindInvalidState = 422
	KindInternal     = 500
)
