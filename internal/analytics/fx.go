package analytics

import (
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/refresh"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.NewService),
	refresh.Module,
)
