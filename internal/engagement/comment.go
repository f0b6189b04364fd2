package engagement

import (
	"activity-partner/internal/global/metrics"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const MaxCommentRunes = 500

// AddComment parentID 为 nil 时发表一级评论。回复一条回复时挂到它的一级评论下，
// 评论列表因此只有两级
func (g *Graph) AddComment(ctx context.Context, momentID, userID uint, parentID, replyToUserID *uint, content string) (*model.MomentComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, response.ErrInvalidRequest.WithTips("评论内容不能为空")
	}
	if utf8.RuneCountInString(content) > MaxCommentRunes {
		return nil, response.ErrInvalidRequest.WithTips("评论内容不能超过500字")
	}

	comment := &model.MomentComment{
		MomentID:      momentID,
		UserID:        userID,
		ReplyToUserID: replyToUserID,
		Content:       content,
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := liveMoment(tx, momentID); err != nil {
			return err
		}

		if parentID != nil {
			var parent model.MomentComment
			err := tx.Where("id = ? AND moment_id = ?", *parentID, momentID).Take(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrInvalidRequest.WithTips("回复的评论不存在")
			}
			if err != nil {
				return dbErr(err)
			}
			root := parent.ID
			if parent.ParentID != nil {
				root = *parent.ParentID
			}
			comment.ParentID = &root
			if comment.ReplyToUserID == nil {
				comment.ReplyToUserID = &parent.UserID
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return dbErr(err)
		}
		if err := Incr(tx, MomentComments, momentID); err != nil {
			return dbErr(err)
		}
		return nil
	})
	metrics.Observe(metrics.Engagement, "comment", err)
	if err != nil {
		return nil, err
	}

	g.log.Info("发表评论", "moment_id", momentID, "user_id", userID, "comment_id", comment.ID)
	return comment, nil
}

// Comments 返回一级评论，每条内嵌其回复，均按时间正序。回复查询失败时回复列表为空
func (g *Graph) Comments(ctx context.Context, momentID uint) ([]model.MomentComment, error) {
	db := g.db.WithContext(ctx)

	top := []model.MomentComment{}
	if err := db.Preload("User").
		Where("moment_id = ? AND parent_id IS NULL", momentID).
		Order("created_at ASC, id ASC").
		Find(&top).Error; err != nil {
		return nil, dbErr(err)
	}
	if len(top) == 0 {
		return top, nil
	}

	ids := make([]uint, len(top))
	for i := range top {
		ids[i] = top[i].ID
		top[i].Replies = []model.MomentComment{}
	}

	var replies []model.MomentComment
	if err := db.Preload("User").
		Where("parent_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&replies).Error; err != nil {
		g.log.Warn("查询评论回复失败", "error", err, "moment_id", momentID)
		return top, nil
	}

	index := make(map[uint]int, len(top))
	for i := range top {
		index[top[i].ID] = i
	}
	for _, r := range replies {
		if i, ok := index[*r.ParentID]; ok {
			top[i].Replies = append(top[i].Replies, r)
		}
	}
	return top, nil
}
