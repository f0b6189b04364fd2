package participation

import (
	"activity-partner/internal/global/response"
	"activity-partner/internal/model"
	"activity-partner/test"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 10)
	users := f.users(t, 5)

	var ids []uint
	for _, u := range users {
		p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, f.ledger.Review(ctx, ids[0], f.owner.ID, DecisionApprove))
	require.NoError(t, f.ledger.Review(ctx, ids[1], f.owner.ID, DecisionReject))

	page, err := f.ledger.ListParticipants(ctx, activity.ID, nil, 0, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), page.Total)
	require.Len(t, page.List, 3)
	require.NotNil(t, page.List[0].User)

	page, err = f.ledger.ListParticipants(ctx, activity.ID, nil, 3, 3)
	require.NoError(t, err)
	require.Len(t, page.List, 2)

	pending := model.ParticipantPending
	page, err = f.ledger.ListParticipants(ctx, activity.ID, &pending, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	for _, p := range page.List {
		require.Equal(t, model.ParticipantPending, p.Status)
	}

	_, err = f.ledger.ListParticipants(ctx, 9999, nil, 0, 10)
	require.ErrorIs(t, err, response.ErrActivityNotFound)
}

func TestMyApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.users(t, 1)[0]

	require.Empty(t, f.ledger.MyApplications(ctx, u.ID))

	a1 := test.CreateActivity(t, f.db, f.owner.ID, 5)
	a2 := test.CreateActivity(t, f.db, f.owner.ID, 5)
	_, err := f.ledger.Apply(ctx, a1.ID, u.ID, "一")
	require.NoError(t, err)
	p2, err := f.ledger.Apply(ctx, a2.ID, u.ID, "二")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Review(ctx, p2.ID, f.owner.ID, DecisionApprove))

	apps := f.ledger.MyApplications(ctx, u.ID)
	require.Len(t, apps, 2)
	byActivity := map[uint]Application{}
	for _, app := range apps {
		byActivity[app.ActivityID] = app
	}
	require.Equal(t, model.ParticipantPending, byActivity[a1.ID].Status)
	require.Equal(t, model.ParticipantApproved, byActivity[a2.ID].Status)
	require.Equal(t, "周末羽毛球", byActivity[a2.ID].ActivityTitle)
	require.Equal(t, p2.ID, byActivity[a2.ID].ParticipantID)
}

func TestMyActivitiesWithApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 20)
	empty := test.CreateActivity(t, f.db, f.owner.ID, 3)
	users := f.users(t, ApplicationPreviewSize+2)

	for i, u := range users {
		p, err := f.ledger.Apply(ctx, activity.ID, u.ID, "")
		require.NoError(t, err)
		if i < 2 {
			require.NoError(t, f.ledger.Review(ctx, p.ID, f.owner.ID, DecisionApprove))
		}
	}

	list, err := f.ledger.MyActivitiesWithApplications(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[uint]ActivityWithApplications{}
	for _, item := range list {
		byID[item.ID] = item
	}
	busy := byID[activity.ID]
	require.Equal(t, int64(len(users)), busy.TotalApplications)
	require.Len(t, busy.Applications, ApplicationPreviewSize)
	require.Equal(t, int64(3), busy.CurrentParticipants)

	quiet := byID[empty.ID]
	require.Zero(t, quiet.TotalApplications)
	require.NotNil(t, quiet.Applications)
	require.Empty(t, quiet.Applications)
	require.Equal(t, int64(1), quiet.CurrentParticipants)

	none, err := f.ledger.MyActivitiesWithApplications(ctx, users[0].ID)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGetActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	activity := test.CreateActivity(t, f.db, f.owner.ID, 4)

	got, err := f.ledger.GetActivity(ctx, activity.ID)
	require.NoError(t, err)
	require.Equal(t, activity.Title, got.Title)
	require.NotNil(t, got.Initiator)
	require.Equal(t, f.owner.Nickname, got.Initiator.Nickname)

	_, err = f.ledger.GetActivity(ctx, 9999)
	require.ErrorIs(t, err, response.ErrActivityNotFound)
}
