// Package participation 维护活动参与记录的状态机与名额占用。
//
// 所有写操作都在一个事务内完成，并先对活动行加 FOR UPDATE 锁，
// 使同一活动上的 "读人数 → 判断 → 写入" 串行执行，避免并发审核超员。
// 加锁之后的读取一律使用锁定读，可重复读隔离级别下不会读到加锁前的快照。
package participation

import (
	"activity-partner/internal/global/logger"
	"activity-partner/internal/global/metrics"
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Ledger struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{
		db:  db,
		log: logger.New("Ledger"),
	}
}

func dbErr(err error) error {
	return response.ErrDatabase.WithOrigin(err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

// lockActivity 读取活动并锁住该行直到事务结束
func lockActivity(tx *gorm.DB, activityID uint) (*model.Activity, error) {
	var activity model.Activity
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&activity, activityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrActivityNotFound
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &activity, nil
}

// transit 只允许合法的状态迁移，带上原状态做条件更新
func transit(tx *gorm.DB, activity *model.Activity, to model.ActivityStatus) error {
	if !activity.Status.CanTransitTo(to) {
		return response.ErrInvalidState.WithTips(activity.Status.String() + " -> " + to.String())
	}
	res := tx.Model(&model.Activity{}).
		Where("id = ? AND status = ?", activity.ID, activity.Status).
		Update("status", to)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return response.ErrInvalidState
	}
	activity.Status = to
	return nil
}

func setParticipantStatus(tx *gorm.DB, p *model.Participant, status model.ParticipantStatus, extra map[string]any) error {
	updates := map[string]any{"status": status}
	for k, v := range extra {
		updates[k] = v
	}
	if err := tx.Model(p).Updates(updates).Error; err != nil {
		return dbErr(err)
	}
	p.Status = status
	return nil
}

// Apply 申请加入活动。已退出的记录会被重新激活为申请中，而不是插入新行
func (l *Ledger) Apply(ctx context.Context, activityID, userID uint, message string) (*model.Participant, error) {
	var result *model.Participant
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.InitiatorID == userID {
			return response.ErrOwnerCannotApply
		}
		if activity.Status != model.ActivityRecruiting {
			return response.ErrActivityNotRecruiting
		}

		var existing model.Participant
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("activity_id = ? AND user_id = ?", activityID, userID).Take(&existing).Error
		switch {
		case err == nil:
			switch existing.Status {
			case model.ParticipantPending:
				return response.ErrAlreadyPending
			case model.ParticipantApproved:
				return response.ErrAlreadyMember
			case model.ParticipantRejected:
				return response.ErrPreviouslyRejected
			}
			extra := map[string]any{}
			if message != "" {
				extra["apply_msg"] = message
				existing.ApplyMsg = message
			}
			if err := setParticipantStatus(tx, &existing, model.ParticipantPending, extra); err != nil {
				return err
			}
			result = &existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return dbErr(err)
		}

		ok, _, err := HasSeat(tx, activity)
		if err != nil {
			return dbErr(err)
		}
		if !ok {
			return response.ErrActivityFull
		}

		p := &model.Participant{
			ActivityID: activityID,
			UserID:     userID,
			Status:     model.ParticipantPending,
			ApplyMsg:   message,
		}
		if err := tx.Create(p).Error; err != nil {
			if isDuplicate(err) {
				return response.ErrAlreadyPending
			}
			return dbErr(err)
		}
		result = p
		return nil
	})
	metrics.Observe(metrics.Participation, "apply", err)
	if err != nil {
		return nil, err
	}

	l.log.Info("申请加入活动", "activity_id", activityID, "user_id", userID, "participant_id", result.ID)
	return result, nil
}

// Review 发起人审核申请。通过时在活动行锁内重新检查名额
func (l *Ledger) Review(ctx context.Context, participantID, actorID uint, decision Decision) error {
	if !decision.Valid() {
		return response.ErrInvalidRequest.WithTips("请指定审核动作: approve 或 reject")
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 这里只取 activity_id，它不会变化
		var p model.Participant
		err := tx.Select("activity_id").Where("id = ?", participantID).Take(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrParticipantNotFound
		}
		if err != nil {
			return dbErr(err)
		}

		activity, err := lockActivity(tx, p.ActivityID)
		if err != nil {
			return err
		}
		if err := Authorize(activity, actorID); err != nil {
			return err
		}

		// 可重复读下普通读取会沿用事务开始时的快照，加锁后必须用锁定读拿到最新状态
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, participantID).Error; err != nil {
			return dbErr(err)
		}
		if p.Status != model.ParticipantPending {
			return response.ErrAlreadyReviewed
		}

		if decision == DecisionReject {
			return setParticipantStatus(tx, &p, model.ParticipantRejected, nil)
		}

		ok, occupied, err := HasSeat(tx, activity)
		if err != nil {
			return dbErr(err)
		}
		if !ok {
			return response.ErrActivityFull.WithTips("无法通过更多申请")
		}
		if err := setParticipantStatus(tx, &p, model.ParticipantApproved, nil); err != nil {
			return err
		}
		if occupied+1 >= activity.Seats() && activity.Status == model.ActivityRecruiting {
			return transit(tx, activity, model.ActivityFull)
		}
		return nil
	})
	metrics.Observe(metrics.Participation, "review", err)
	if err != nil {
		return err
	}

	l.log.Info("审核参与申请", "participant_id", participantID, "actor_id", actorID, "decision", decision)
	return nil
}

// Leave 退出活动。已满员的活动在成员退出后回到招募中，
// 但不会自动通过排队中的申请，由发起人另行审核
func (l *Ledger) Leave(ctx context.Context, activityID, userID uint) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := lockActivity(tx, activityID)
		if errors.Is(err, response.ErrActivityNotFound) {
			return response.ErrNotParticipant
		}
		if err != nil {
			return err
		}

		var p model.Participant
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("activity_id = ? AND user_id = ?", activityID, userID).Take(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrNotParticipant
		}
		if err != nil {
			return dbErr(err)
		}

		if p.Status == model.ParticipantLeft {
			return response.ErrAlreadyLeft
		}
		if !p.Status.Active() {
			return response.ErrNotParticipant
		}

		wasApproved := p.Status == model.ParticipantApproved
		if err := setParticipantStatus(tx, &p, model.ParticipantLeft, nil); err != nil {
			return err
		}
		if wasApproved && activity.Status == model.ActivityFull {
			return transit(tx, activity, model.ActivityRecruiting)
		}
		return nil
	})
	metrics.Observe(metrics.Participation, "leave", err)
	if err != nil {
		return err
	}

	l.log.Info("退出活动", "activity_id", activityID, "user_id", userID)
	return nil
}

// Close 发起人结束或取消活动
func (l *Ledger) Close(ctx context.Context, activityID, actorID uint, to model.ActivityStatus) error {
	if !to.Closed() {
		return response.ErrInvalidRequest
	}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if err := Authorize(activity, actorID); err != nil {
			return err
		}
		return transit(tx, activity, to)
	})
	metrics.Observe(metrics.Participation, "close", err)
	if err != nil {
		return err
	}

	l.log.Info("活动状态变更", "activity_id", activityID, "actor_id", actorID, "status", to.String())
	return nil
}
