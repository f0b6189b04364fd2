package engagement

import (
	"gorm.io/gorm"
)

// Field 冗余计数列，只能使用下面列出的取值
type Field struct {
	table  string
	column string
}

var (
	MomentLikes    = Field{table: "moment", column: "like_count"}
	MomentComments = Field{table: "moment", column: "comment_count"}
	MomentViews    = Field{table: "moment", column: "view_count"}
	UserFollowers  = Field{table: "user", column: "follower_count"}
	UserFollowing  = Field{table: "user", column: "following_count"}
)

func (f Field) String() string {
	return f.table + "." + f.column
}

// Incr 单条 UPDATE 完成自增，需传入调用方的事务
func Incr(tx *gorm.DB, f Field, id uint) error {
	return tx.Table(f.table).
		Where("id = ?", id).
		UpdateColumn(f.column, gorm.Expr(f.column+" + 1")).Error
}

// Decr 自减，计数为 0 时不变
func Decr(tx *gorm.DB, f Field, id uint) error {
	return tx.Table(f.table).
		Where("id = ? AND "+f.column+" > 0", id).
		UpdateColumn(f.column, gorm.Expr(f.column+" - 1")).Error
}
