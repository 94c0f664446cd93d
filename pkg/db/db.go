// Package db wires the gorm connection into the fx application.
package db

import (
	"strings"
	"time"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open establishes the database connection described by the config.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		dsn = "file:wrenchtrack.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("database connected", zap.String("driver", "sqlite"))
	return conn, nil
}
