package main

import (
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/audit"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/clock"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/config"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/events"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoicenumber"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/migration"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/observability/logger"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/payment"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/seed"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/server"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.Bootstrap.EnsureDefaultShop {
				return seed.EnsureDefaultShop(conn)
			}
			return nil
		}),
		shop.Module,
		events.Module,
		audit.Module,
		invoicenumber.Module,
		invoice.Module,
		payment.Module,
		analytics.Module,
		server.Module,
	)
	app.Run()
}
