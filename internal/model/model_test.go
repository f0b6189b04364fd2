package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityStatusTransitions(t *testing.T) {
	allowed := map[ActivityStatus][]ActivityStatus{
		ActivityRecruiting: {ActivityFull, ActivityEnded, ActivityCancelled},
		ActivityFull:       {ActivityRecruiting, ActivityEnded, ActivityCancelled},
		ActivityEnded:      {},
		ActivityCancelled:  {},
	}
	all := []ActivityStatus{ActivityRecruiting, ActivityFull, ActivityEnded, ActivityCancelled}

	for from, tos := range allowed {
		for _, to := range all {
			want := false
			for _, ok := range tos {
				if ok == to {
					want = true
				}
			}
			require.Equal(t, want, from.CanTransitTo(to), "%s -> %s", from, to)
		}
	}
	require.True(t, ActivityEnded.Closed())
	require.True(t, ActivityCancelled.Closed())
	require.False(t, ActivityFull.Closed())
}

func TestParticipantStatusActive(t *testing.T) {
	require.True(t, ParticipantPending.Active())
	require.True(t, ParticipantApproved.Active())
	require.False(t, ParticipantRejected.Active())
	require.False(t, ParticipantLeft.Active())
	require.Equal(t, "已退出", ParticipantLeft.String())
}

func TestActivitySeats(t *testing.T) {
	a := &Activity{MaxParticipants: 2}
	require.Equal(t, int64(1), a.Seats())
}
