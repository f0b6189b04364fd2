package participation

import (
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ApplicationPreviewSize 我发布的活动列表中每个活动附带的申请条数
const ApplicationPreviewSize = 7

type ParticipantPage struct {
	List   []model.Participant `json:"list"`
	Total  int64               `json:"total"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
}

// Application 我的申请记录
type Application struct {
	ParticipantID  uint                    `json:"participant_id" excel:"-"`
	ActivityID     uint                    `json:"activity_id"`
	ActivityTitle  string                  `json:"activity_title"`
	ActivityStatus model.ActivityStatus    `json:"activity_status"`
	Status         model.ParticipantStatus `json:"status"`
	ApplyMsg       string                  `json:"apply_msg"`
	CreatedAt      time.Time               `json:"created_at"`
}

type ActivityWithApplications struct {
	model.Activity
	CurrentParticipants int64               `json:"current_participants"`
	Applications        []model.Participant `json:"applications"`
	TotalApplications   int64               `json:"total_applications"`
}

// GetActivity 读取活动详情，不加锁
func (l *Ledger) GetActivity(ctx context.Context, activityID uint) (*model.Activity, error) {
	var activity model.Activity
	err := l.db.WithContext(ctx).Preload("Initiator").First(&activity, activityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrActivityNotFound
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &activity, nil
}

// Occupancy 当前已通过的人数，不含发起人
func (l *Ledger) Occupancy(ctx context.Context, activityID uint) (int64, error) {
	n, err := Occupied(l.db.WithContext(ctx), activityID)
	if err != nil {
		return 0, dbErr(err)
	}
	return n, nil
}

// ListParticipants 分页参数原样透传；status 为 nil 时返回全部状态
func (l *Ledger) ListParticipants(ctx context.Context, activityID uint, status *model.ParticipantStatus, offset, limit int) (*ParticipantPage, error) {
	db := l.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&model.Activity{}).Where("id = ?", activityID).Count(&exists).Error; err != nil {
		return nil, dbErr(err)
	}
	if exists == 0 {
		return nil, response.ErrActivityNotFound
	}

	query := db.Model(&model.Participant{}).Where("activity_id = ?", activityID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	page := &ParticipantPage{List: []model.Participant{}, Offset: offset, Limit: limit}
	if err := query.Count(&page.Total).Error; err != nil {
		l.log.Error("统计参与者失败", "error", err, "activity_id", activityID)
		return page, nil
	}
	if err := query.Preload("User").Order("created_at ASC").Offset(offset).Limit(limit).Find(&page.List).Error; err != nil {
		l.log.Error("查询参与者列表失败", "error", err, "activity_id", activityID)
		page.List = []model.Participant{}
	}
	return page, nil
}

// MyApplications 查询失败时返回空列表
func (l *Ledger) MyApplications(ctx context.Context, userID uint) []Application {
	apps := []Application{}
	err := l.db.WithContext(ctx).
		Table("participant AS p").
		Select("p.id AS participant_id, p.activity_id, a.title AS activity_title, a.status AS activity_status, p.status, p.apply_msg, p.created_at").
		Joins("LEFT JOIN activity AS a ON a.id = p.activity_id").
		Where("p.user_id = ? AND p.deleted_at IS NULL", userID).
		Order("p.created_at DESC").
		Scan(&apps).Error
	if err != nil {
		l.log.Error("查询我的申请失败", "error", err, "user_id", userID)
		return []Application{}
	}
	return apps
}

// MyActivitiesWithApplications 单个活动的申请查询失败时，该活动的申请列表为空
func (l *Ledger) MyActivitiesWithApplications(ctx context.Context, userID uint) ([]ActivityWithApplications, error) {
	db := l.db.WithContext(ctx)

	var activities []model.Activity
	if err := db.Where("initiator_id = ?", userID).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, dbErr(err)
	}

	result := make([]ActivityWithApplications, 0, len(activities))
	for _, activity := range activities {
		item := ActivityWithApplications{
			Activity:     activity,
			Applications: []model.Participant{},
		}

		if n, err := Occupied(db, activity.ID); err != nil {
			l.log.Warn("统计活动人数失败", "error", err, "activity_id", activity.ID)
		} else {
			item.CurrentParticipants = n + 1
		}

		query := db.Model(&model.Participant{}).Where("activity_id = ?", activity.ID)
		if err := query.Count(&item.TotalApplications).Error; err != nil {
			l.log.Warn("统计申请总数失败", "error", err, "activity_id", activity.ID)
		}
		if err := query.Preload("User").Order("created_at ASC").Limit(ApplicationPreviewSize).Find(&item.Applications).Error; err != nil {
			l.log.Warn("查询申请列表失败", "error", err, "activity_id", activity.ID)
			item.Applications = []model.Participant{}
		}
		result = append(result, item)
	}
	return result, nil
}
