package engagement

import (
	"activity-partner/internal/global/metrics"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type FollowStats struct {
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
}

type UserPage struct {
	List   []model.User `json:"list"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

func (g *Graph) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return response.ErrSelfFollow
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var followee model.User
		err := tx.Select("id").First(&followee, followeeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrTargetNotFound
		}
		if err != nil {
			return dbErr(err)
		}

		var exists int64
		if err := tx.Model(&model.UserFollow{}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Count(&exists).Error; err != nil {
			return dbErr(err)
		}
		if exists > 0 {
			return response.ErrAlreadyFollowing
		}

		edge := &model.UserFollow{FollowerID: followerID, FolloweeID: followeeID}
		if err := tx.Create(edge).Error; err != nil {
			if isDuplicate(err) {
				return response.ErrAlreadyFollowing
			}
			return dbErr(err)
		}
		if err := Incr(tx, UserFollowers, followeeID); err != nil {
			return dbErr(err)
		}
		if err := Incr(tx, UserFollowing, followerID); err != nil {
			return dbErr(err)
		}
		return nil
	})
	metrics.Observe(metrics.Engagement, "follow", err)
	if err != nil {
		return err
	}

	g.log.Info("关注用户", "follower_id", followerID, "followee_id", followeeID)
	return nil
}

func (g *Graph) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&model.UserFollow{})
		if res.Error != nil {
			return dbErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return response.ErrNotFollowing
		}
		if err := Decr(tx, UserFollowers, followeeID); err != nil {
			return dbErr(err)
		}
		if err := Decr(tx, UserFollowing, followerID); err != nil {
			return dbErr(err)
		}
		return nil
	})
	metrics.Observe(metrics.Engagement, "unfollow", err)
	if err != nil {
		return err
	}

	g.log.Info("取消关注", "follower_id", followerID, "followee_id", followeeID)
	return nil
}

func (g *Graph) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error
	if err != nil {
		return false, dbErr(err)
	}
	return n > 0, nil
}

// Following 我关注的人，按关注时间倒序
func (g *Graph) Following(ctx context.Context, userID uint, offset, limit int) (*UserPage, error) {
	return g.listUsers(ctx, "follower_id", "followee_id", userID, offset, limit)
}

// Followers 关注我的人
func (g *Graph) Followers(ctx context.Context, userID uint, offset, limit int) (*UserPage, error) {
	return g.listUsers(ctx, "followee_id", "follower_id", userID, offset, limit)
}

func (g *Graph) listUsers(ctx context.Context, by, pick string, userID uint, offset, limit int) (*UserPage, error) {
	db := g.db.WithContext(ctx)
	page := &UserPage{List: []model.User{}, Offset: offset, Limit: limit}

	if err := db.Model(&model.UserFollow{}).Where(by+" = ?", userID).Count(&page.Total).Error; err != nil {
		return nil, dbErr(err)
	}
	err := db.Model(&model.User{}).
		Joins("JOIN user_follow ON user_follow."+pick+" = user.id").
		Where("user_follow."+by+" = ?", userID).
		Order("user_follow.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&page.List).Error
	if err != nil {
		g.log.Error("查询关注列表失败", "error", err, "user_id", userID, "by", by)
		page.List = []model.User{}
	}
	return page, nil
}

// FollowStats 直接统计关系表，不读冗余计数
func (g *Graph) FollowStats(ctx context.Context, userID uint) (*FollowStats, error) {
	db := g.db.WithContext(ctx)
	stats := &FollowStats{}
	if err := db.Model(&model.UserFollow{}).Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error; err != nil {
		return nil, dbErr(err)
	}
	if err := db.Model(&model.UserFollow{}).Where("followee_id = ?", userID).Count(&stats.FollowersCount).Error; err != nil {
		return nil, dbErr(err)
	}
	return stats, nil
}
