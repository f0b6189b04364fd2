package participation

import (
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/test"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	ledger *Ledger
	owner  *model.User
}

func newFixture(t *testing.T) *fixture {
	db := test.NewDB(t)
	return &fixture{
		db:     db,
		ledger: NewLedger(db),
		owner:  test.CreateUser(t, db, "发起人"),
	}
}

func (f *fixture) users(t *testing.T, n int) []*model.User {
	users := make([]*model.User, n)
	for i := range users {
		users[i] = test.CreateUser(t, f.db, "用户")
	}
	return users
}

func (f *fixture) reload(t *testing.T, id uint) *model.Participant {
	var p model.Participant
	require.NoError(t, f.db.First(&p, id).Error)
	return &p
}

func (f *fixture) activityStatus(t *testing.T, id uint) model.ActivityStatus {
	var a model.Activity
	require.NoError(t, f.db.First(&a, id).Error)
	return a.Status
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	u := f.users(t, 1)[0]

	p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "带拍子")
	require.NoError(t, err)
	require.Equal(t, model.ParticipantPending, p.Status)
	require.Equal(t, "带拍子", f.reload(t, p.ID).ApplyMsg)

	_, err = f.ledger.Apply(ctx, activity.ID, u.ID, "")
	require.ErrorIs(t, err, response.ErrAlreadyPending)

	_, err = f.ledger.Apply(ctx, activity.ID, f.owner.ID, "")
	require.ErrorIs(t, err, response.ErrOwnerCannotApply)

	_, err = f.ledger.Apply(ctx, 9999, u.ID, "")
	require.ErrorIs(t, err, response.ErrActivityNotFound)

	require.NoError(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionApprove))
	_, err = f.ledger.Apply(ctx, activity.ID, u.ID, "")
	require.ErrorIs(t, err, response.ErrAlreadyMember)

	// Activity.status 不因申请改变
	require.Equal(t, model.ActivityRecruiting, f.activityStatus(t, activity.ID))
}

func TestApplyRejectedCannotReapply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	u := f.users(t, 1)[0]

	p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionReject))

	_, err = f.ledger.Apply(ctx, activity.ID, u.ID, "再试一次")
	require.ErrorIs(t, err, response.ErrPreviouslyRejected)
}

func TestApplyRequiresRecruiting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.users(t, 1)[0]

	for _, status := range []model.ActivityStatus{model.ActivityFull, model.ActivityEnded, model.ActivityCancelled} {
		activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
		require.NoError(t, f.db.Model(activity).Update("status", status).Error)

		_, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
		require.ErrorIs(t, err, response.ErrActivityNotRecruiting, status.String())
		require.Equal(t, response.KindInvalidState, response.ErrActivityNotRecruiting.Kind())
	}
}

func TestApplyFailsWithoutSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 2)
	users := f.users(t, 2)

	// 名额已被占用但状态仍是招募中（例如历史数据），申请仍应被拒绝
	require.NoError(t, f.db.Create(&model.Participant{
		ActivityID: activity.ID,
		UserID:     users[0].ID,
		Status:     model.ParticipantApproved,
	}).Error)

	_, err := f.ledger.Apply(ctx, activity.ID, users[1].ID, "")
	require.ErrorIs(t, err, response.ErrActivityFull)

	var count int64
	require.NoError(t, f.db.Model(&model.Participant{}).Where("user_id = ?", users[1].ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestApplyLeaveApplyReusesRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	u := f.users(t, 1)[0]

	first, err := f.ledger.Apply(ctx, activity.ID, u.ID, "第一次")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Leave(ctx, activity.ID, u.ID))
	require.Equal(t, model.ParticipantLeft, f.reload(t, first.ID).Status)

	second, err := f.ledger.Apply(ctx, activity.ID, u.ID, "第二次")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, model.ParticipantPending, second.Status)

	stored := f.reload(t, first.ID)
	require.Equal(t, model.ParticipantPending, stored.Status)
	require.Equal(t, "第二次", stored.ApplyMsg)

	var rows int64
	require.NoError(t, f.db.Model(&model.Participant{}).
		Where("activity_id = ? AND user_id = ?", activity.ID, u.ID).Count(&rows).Error)
	require.Equal(t, int64(1), rows)
}

func TestReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	users := f.users(t, 2)

	p, err := f.ledger.Apply(ctx, activity.ID, users[0].ID, "")
	require.NoError(t, err)

	require.ErrorIs(t, f.ledger.Review(ctx, p.ID, f.owner.ID, "maybe"), response.ErrInvalidRequest)
	require.ErrorIs(t, f.ledger.Review(ctx, 9999, f.owner.ID, DecisionApprove), response.ErrParticipantNotFound)
	require.ErrorIs(t, f.ledger.Review(ctx, p.ID, users[1].ID, DecisionApprove), response.ErrNotReviewer)

	require.NoError(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionApprove))
	require.Equal(t, model.ParticipantApproved, f.reload(t, p.ID).Status)
	require.ErrorIs(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionApprove), response.ErrAlreadyReviewed)
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	u := f.users(t, 1)[0]

	p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionReject))

	for _, d := range []Decision{DecisionApprove, DecisionReject} {
		require.ErrorIs(t, f.ledger.Review(ctx, p.ID, f.owner.ID, d), response.ErrAlreadyReviewed)
	}
	require.Equal(t, model.ParticipantRejected, f.reload(t, p.ID).Status)
}

func TestReviewOtherOwnersActivityForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := f.users(t, 2)
	otherOwner, applicant := users[0], users[1]

	mine := test.CreateActivity(t, f.db, f.owner.ID, 5)
	theirs := test.CreateActivity(t, f.db, otherOwner.ID, 5)

	p, err := f.ledger.Apply(ctx, theirs.ID, applicant.ID, "")
	require.NoError(t, err)
	own, err := f.ledger.Apply(ctx, mine.ID, applicant.ID, "")
	require.NoError(t, err)

	err = f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionApprove)
	require.ErrorIs(t, err, response.ErrNotReviewer)
	var e *response.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, response.KindForbidden, e.Kind())
	require.Equal(t, model.ParticipantPending, f.reload(t, p.ID).Status)

	// 自己发起的活动可以审核
	require.NoError(t, f.ledger.Review(ctx, own.ID, f.owner.ID, DecisionApprove))
	require.Equal(t, model.ParticipantApproved, f.reload(t, own.ID).Status)
}

func TestApproveMarksActivityFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 3)
	users := f.users(t, 3)

	var ids []uint
	for _, u := range users {
		p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, f.ledger.Review(ctx, ids[0], f.owner.ID, DecisionApprove))
	require.Equal(t, model.ActivityRecruiting, f.activityStatus(t, activity.ID))

	require.NoError(t, f.ledger.Review(ctx, ids[1], f.owner.ID, DecisionApprove))
	require.Equal(t, model.ActivityFull, f.activityStatus(t, activity.ID))

	require.ErrorIs(t, f.ledger.Review(ctx, ids[2], f.owner.ID, DecisionApprove), response.ErrActivityFull)
	require.Equal(t, model.ParticipantPending, f.reload(t, ids[2]).Status)

	// 满员后仍可以拒绝
	require.NoError(t, f.ledger.Review(ctx, ids[2], f.owner.ID, DecisionReject))
}

func TestConcurrentApproveNeverExceedsCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const maxParticipants = 4
	activity := test.CreateActivity(t, f.db, f.owner.ID, maxParticipants)
	users := f.users(t, 10)

	var ids []uint
	for _, u := range users {
		p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			errs <- f.ledger.Review(ctx, id, f.owner.ID, DecisionApprove)
		}(id)
	}
	wg.Wait()
	close(errs)

	approved := 0
	for err := range errs {
		if err == nil {
			approved++
			continue
		}
		require.ErrorIs(t, err, response.ErrActivityFull)
	}
	require.Equal(t, maxParticipants-1, approved)

	occupied, err := f.ledger.Occupancy(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, int64(maxParticipants-1), occupied)
	require.Equal(t, model.ActivityFull, f.activityStatus(t, activity.ID))
}

func TestTwoApplicantsOneSeatRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 2)
	users := f.users(t, 2)

	var wg sync.WaitGroup
	applied := make(chan *model.Participant, 2)
	for _, u := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			p, err := f.ledger.Apply(ctx, activity.ID, userID, "")
			if err == nil {
				applied <- p
			}
		}(u.ID)
	}
	wg.Wait()
	close(applied)

	var ids []uint
	for p := range applied {
		ids = append(ids, p.ID)
	}
	require.Len(t, ids, 2)

	results := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			results <- f.ledger.Review(ctx, id, f.owner.ID, DecisionApprove)
		}(id)
	}
	wg.Wait()
	close(results)

	var ok, full int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, response.ErrActivityFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, full)

	var statuses []model.ParticipantStatus
	require.NoError(t, f.db.Model(&model.Participant{}).
		Where("activity_id = ?", activity.ID).Order("status").Pluck("status", &statuses).Error)
	require.Equal(t, []model.ParticipantStatus{model.ParticipantPending, model.ParticipantApproved}, statuses)
}

func TestLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	users := f.users(t, 3)

	require.ErrorIs(t, f.ledger.Leave(ctx, activity.ID, users[0].ID), response.ErrNotParticipant)
	require.ErrorIs(t, f.ledger.Leave(ctx, 9999, users[0].ID), response.ErrNotParticipant)

	pending, err := f.ledger.Apply(ctx, activity.ID, users[0].ID, "")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Leave(ctx, activity.ID, users[0].ID))
	require.Equal(t, model.ParticipantLeft, f.reload(t, pending.ID).Status)
	require.ErrorIs(t, f.ledger.Leave(ctx, activity.ID, users[0].ID), response.ErrAlreadyLeft)

	rejected, err := f.ledger.Apply(ctx, activity.ID, users[1].ID, "")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Review(ctx, rejected.ID, f.owner.ID, DecisionReject))
	require.ErrorIs(t, f.ledger.Leave(ctx, activity.ID, users[1].ID), response.ErrNotParticipant)
	require.Equal(t, model.ParticipantRejected, f.reload(t, rejected.ID).Status)
}

func TestLeaveReopensFullActivityWithoutPromotion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 2)
	users := f.users(t, 2)

	member, err := f.ledger.Apply(ctx, activity.ID, users[0].ID, "")
	require.NoError(t, err)
	waiting, err := f.ledger.Apply(ctx, activity.ID, users[1].ID, "")
	require.NoError(t, err)

	require.NoError(t, f.ledger.Review(ctx, member.ID, f.owner.ID, DecisionApprove))
	require.Equal(t, model.ActivityFull, f.activityStatus(t, activity.ID))

	require.NoError(t, f.ledger.Leave(ctx, activity.ID, users[0].ID))
	require.Equal(t, model.ActivityRecruiting, f.activityStatus(t, activity.ID))
	require.Equal(t, model.ParticipantPending, f.reload(t, waiting.ID).Status)

	require.NoError(t, f.ledger.Review(ctx, waiting.ID, f.owner.ID, DecisionApprove))
	require.Equal(t, model.ActivityFull, f.activityStatus(t, activity.ID))
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 5)
	u := f.users(t, 1)[0]

	require.ErrorIs(t, f.ledger.Close(ctx, activity.ID, u.ID, model.ActivityCancelled), response.ErrNotReviewer)
	require.ErrorIs(t, f.ledger.Close(ctx, activity.ID, u.ID, model.ActivityEnded), response.ErrNotReviewer)
	require.Equal(t, model.ActivityRecruiting, f.activityStatus(t, activity.ID))
	require.ErrorIs(t, f.ledger.Close(ctx, activity.ID, f.owner.ID, model.ActivityRecruiting), response.ErrInvalidRequest)

	require.NoError(t, f.ledger.Close(ctx, activity.ID, f.owner.ID, model.ActivityCancelled))
	require.Equal(t, model.ActivityCancelled, f.activityStatus(t, activity.ID))

	require.ErrorIs(t, f.ledger.Close(ctx, activity.ID, f.owner.ID, model.ActivityEnded), response.ErrInvalidState)
	_, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
	require.ErrorIs(t, err, response.ErrActivityNotRecruiting)
}
