package test

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 返回迁移好的内存 SQLite。只开一个连接：内存库只存在于该连接上，
// 事务因此串行执行，效果等同 MySQL 下对活动行加锁
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig()
	cfg.Logger = logger.Discard
	db, err := gorm.Open(sqlite.Open("file::memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, nickname string) *model.User {
	t.Helper()
	u := &model.User{Nickname: nickname}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateActivity(t *testing.T, db *gorm.DB, initiatorID uint, maxParticipants int) *model.Activity {
	t.Helper()
	a := &model.Activity{
		InitiatorID:     initiatorID,
		Title:           "周末羽毛球",
		StartTime:       time.Now().Add(24 * time.Hour),
		MaxParticipants: maxParticipants,
		Status:          model.ActivityRecruiting,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func CreateMoment(t *testing.T, db *gorm.DB, userID uint) *model.Moment {
	t.Helper()
	m := &model.Moment{
		UserID:  userID,
		Content: "今天的球打得不错",
		Status:  model.MomentNormal,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
