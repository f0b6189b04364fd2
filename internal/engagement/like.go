package engagement

import (
	"activity-partner/internal/global/metrics"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// liveMoment 只有正常状态的动态可以被点赞、评论和浏览
func liveMoment(tx *gorm.DB, momentID uint) (*model.Moment, error) {
	var m model.Moment
	err := tx.Where("id = ? AND status = ?", momentID, model.MomentNormal).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrMomentNotFound
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &m, nil
}

func (g *Graph) Like(ctx context.Context, momentID, userID uint) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := liveMoment(tx, momentID); err != nil {
			return err
		}

		var exists int64
		if err := tx.Model(&model.MomentLike{}).
			Where("moment_id = ? AND user_id = ?", momentID, userID).
			Count(&exists).Error; err != nil {
			return dbErr(err)
		}
		if exists > 0 {
			return response.ErrAlreadyLiked
		}

		if err := tx.Create(&model.MomentLike{MomentID: momentID, UserID: userID}).Error; err != nil {
			if isDuplicate(err) {
				return response.ErrAlreadyLiked
			}
			return dbErr(err)
		}
		if err := Incr(tx, MomentLikes, momentID); err != nil {
			return dbErr(err)
		}
		return nil
	})
	metrics.Observe(metrics.Engagement, "like", err)
	if err != nil {
		return err
	}

	g.log.Info("点赞动态", "moment_id", momentID, "user_id", userID)
	return nil
}

func (g *Graph) Unlike(ctx context.Context, momentID, userID uint) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("moment_id = ? AND user_id = ?", momentID, userID).Delete(&model.MomentLike{})
		if res.Error != nil {
			return dbErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return response.ErrNotLiked
		}
		if err := Decr(tx, MomentLikes, momentID); err != nil {
			return dbErr(err)
		}
		return nil
	})
	metrics.Observe(metrics.Engagement, "unlike", err)
	if err != nil {
		return err
	}

	g.log.Info("取消点赞", "moment_id", momentID, "user_id", userID)
	return nil
}

// HasLiked userID 为 0（未登录）时返回 false
func (g *Graph) HasLiked(ctx context.Context, momentID, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var n int64
	err := g.db.WithContext(ctx).Model(&model.MomentLike{}).
		Where("moment_id = ? AND user_id = ?", momentID, userID).
		Count(&n).Error
	if err != nil {
		return false, dbErr(err)
	}
	return n > 0, nil
}
