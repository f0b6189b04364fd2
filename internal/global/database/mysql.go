package database

import (
	"activity-partner/config"
	"activity-partner/internal/global/sentry/tracing"
	"activity-partner/internal/model"
	"activity-partner/tools"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Category{},
	&model.Activity{},
	&model.Participant{},
	&model.UserFollow{},
	&model.Moment{},
	&model.MomentLike{},
	&model.MomentComment{},
}

// GormConfig 生产与测试共用的 gorm 配置
func GormConfig() *gorm.Config {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		// 用户表由认证服务维护，不建外键
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}
	return gormConfig
}

// Migrate 对模型列表执行自动迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)

	db, err := gorm.Open(mysql.Open(dsn), GormConfig())
	tools.PanicOnErr(err)

	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin()))
	}
	DB = db

	tools.PanicOnErr(Migrate(DB))
}
