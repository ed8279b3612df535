package database

import (
	"EduForum/config"
	"EduForum/models"
	"EduForum/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化通知落库连接，未配置或连接失败返回 nil，收件箱只保留内存
func NewDB(conf *config.Config) *gorm.DB {
	if conf.MySQL == nil || conf.MySQL.Host == "" {
		log.L.Info("mysql not configured, notification inbox kept in memory")
		return nil
	}

	level := logger.Warn
	if conf.Debug() {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil
	}

	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		log.L.Error("auto migrate notification failed", zap.Error(err))
		return nil
	}
	log.L.Info("connect database success")
	return db
}
