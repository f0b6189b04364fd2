package engagement

import (
	"activity-partner/internal/global/response"
	"activity-partner/test"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	g, db := newGraph(t)
	ctx := context.Background()
	author := test.CreateUser(t, db, "作者")
	reader := test.CreateUser(t, db, "读者")
	m := test.CreateMoment(t, db, author.ID)

	_, err := g.AddComment(ctx, m.ID, reader.ID, nil, nil, "   ")
	require.ErrorIs(t, err, response.ErrInvalidRequest)
	_, err = g.AddComment(ctx, m.ID, reader.ID, nil, nil, strings.Repeat("赞", MaxCommentRunes+1))
	require.ErrorIs(t, err, response.ErrInvalidRequest)
	_, err = g.AddComment(ctx, 9999, reader.ID, nil, nil, "你好")
	require.ErrorIs(t, err, response.ErrMomentNotFound)

	top, err := g.AddComment(ctx, m.ID, reader.ID, nil, nil, "  拍得真好  ")
	require.NoError(t, err)
	require.Equal(t, "拍得真好", top.Content)
	require.Nil(t, top.ParentID)

	reply, err := g.AddComment(ctx, m.ID, author.ID, &top.ID, nil, "谢谢")
	require.NoError(t, err)
	require.Equal(t, top.ID, *reply.ParentID)
	require.Equal(t, reader.ID, *reply.ReplyToUserID)

	// 回复一条回复仍然挂在一级评论下
	nested, err := g.AddComment(ctx, m.ID, reader.ID, &reply.ID, nil, "不客气")
	require.NoError(t, err)
	require.Equal(t, top.ID, *nested.ParentID)
	require.Equal(t, author.ID, *nested.ReplyToUserID)

	missing := uint(9999)
	_, err = g.AddComment(ctx, m.ID, reader.ID, &missing, nil, "?")
	require.ErrorIs(t, err, response.ErrInvalidRequest)

	require.Equal(t, int64(3), loadMoment(t, db, m.ID).CommentCount)
}

func TestCommentsTwoLevels(t *testing.T) {
	g, db := newGraph(t)
	ctx := context.Background()
	author := test.CreateUser(t, db, "作者")
	m := test.CreateMoment(t, db, author.ID)

	empty, err := g.Comments(ctx, m.ID)
	require.NoError(t, err)
	require.Empty(t, empty)

	first, err := g.AddComment(ctx, m.ID, author.ID, nil, nil, "一楼")
	require.NoError(t, err)
	second, err := g.AddComment(ctx, m.ID, author.ID, nil, nil, "二楼")
	require.NoError(t, err)
	_, err = g.AddComment(ctx, m.ID, author.ID, &first.ID, nil, "回复一楼")
	require.NoError(t, err)
	_, err = g.AddComment(ctx, m.ID, author.ID, &first.ID, nil, "再回复一楼")
	require.NoError(t, err)

	list, err := g.Comments(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)
	require.Len(t, list[0].Replies, 2)
	require.Equal(t, "回复一楼", list[0].Replies[0].Content)
	require.Empty(t, list[1].Replies)
	require.NotNil(t, list[0].User)
}
