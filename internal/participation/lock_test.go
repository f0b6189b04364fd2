package participation

import (
	"activity-partner/internal/global/database"
	"activity-partner/internal/global/response"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 以下用 MySQL 方言对着 sqlmock 校验语句顺序：先锁活动行，之后决定名额的读取都是锁定读。
// 可重复读隔离级别下普通读会读到事务快照，只有锁定读能看到其他审核刚提交的结果
const (
	lockActivitySQL    = "SELECT \\* FROM `activity` WHERE .*FOR UPDATE"
	lockParticipantSQL = "SELECT \\* FROM `participant` WHERE .*FOR UPDATE"
	lockedCountSQL     = "SELECT count\\(\\*\\) FROM `participant` WHERE .*FOR UPDATE"
)

func newMockLedger(t *testing.T) (*Ledger, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := database.GormConfig()
	cfg.Logger = logger.Discard
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), cfg)
	require.NoError(t, err)
	return NewLedger(db), mock
}

func activityRow(status int64, maxParticipants int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "initiator_id", "status", "max_participants"}).
		AddRow(10, 1, status, maxParticipants)
}

func participantRow(id, userID, status int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "activity_id", "user_id", "status"}).
		AddRow(id, 10, userID, status)
}

func countRow(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestReviewReadsSeatsAfterLock(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .*activity_id.* FROM `participant`").
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow(10))
	mock.ExpectQuery(lockActivitySQL).WillReturnRows(activityRow(0, 5))
	mock.ExpectQuery(lockParticipantSQL).WillReturnRows(participantRow(7, 2, 0))
	mock.ExpectQuery(lockedCountSQL).WillReturnRows(countRow(1))
	mock.ExpectExec("UPDATE `participant` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ledger.Review(context.Background(), 7, 1, DecisionApprove))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewSeesConcurrentApproval(t *testing.T) {
	ledger, mock := newMockLedger(t)

	// 另一个审核在本事务等锁期间提交：锁定读看到已满的人数
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .*activity_id.* FROM `participant`").
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow(10))
	mock.ExpectQuery(lockActivitySQL).WillReturnRows(activityRow(0, 2))
	mock.ExpectQuery(lockParticipantSQL).WillReturnRows(participantRow(8, 3, 0))
	mock.ExpectQuery(lockedCountSQL).WillReturnRows(countRow(1))
	mock.ExpectRollback()

	err := ledger.Review(context.Background(), 8, 1, DecisionApprove)
	require.ErrorIs(t, err, response.ErrActivityFull)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewSeesConcurrentDecision(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .*activity_id.* FROM `participant`").
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow(10))
	mock.ExpectQuery(lockActivitySQL).WillReturnRows(activityRow(0, 5))
	mock.ExpectQuery(lockParticipantSQL).WillReturnRows(participantRow(7, 2, 1))
	mock.ExpectRollback()

	err := ledger.Review(context.Background(), 7, 1, DecisionApprove)
	require.ErrorIs(t, err, response.ErrAlreadyReviewed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyLocksActivityFirst(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockActivitySQL).WillReturnRows(activityRow(0, 5))
	mock.ExpectQuery(lockParticipantSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "activity_id", "user_id", "status"}))
	mock.ExpectQuery(lockedCountSQL).WillReturnRows(countRow(0))
	mock.ExpectExec("INSERT INTO `participant`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	p, err := ledger.Apply(context.Background(), 10, 2, "")
	require.NoError(t, err)
	require.Equal(t, uint(7), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveLocksActivityFirst(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockActivitySQL).WillReturnRows(activityRow(1, 2))
	mock.ExpectQuery(lockParticipantSQL).WillReturnRows(participantRow(7, 2, 1))
	mock.ExpectExec("UPDATE `participant` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `activity` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, ledger.Leave(context.Background(), 10, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}
