// Package engagement 维护关注、点赞、评论、浏览这类社交关系，
// 以及它们在 user / moment 表上的冗余计数。
//
// 关系行的插入删除与计数的增减在同一个事务内完成，计数不会与关系条数漂移。
package engagement

import (
	"activity-partner/internal/global/logger"
	"activity-partner/internal/global/response"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

type Graph struct {
	db    *gorm.DB
	views ViewGate
	log   *slog.Logger
}

// NewGraph views 为 nil 时每次浏览都计数
func NewGraph(db *gorm.DB, views ViewGate) *Graph {
	return &Graph{
		db:    db,
		views: views,
		log:   logger.New("Engagement"),
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
