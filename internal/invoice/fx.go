package invoice

import (
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/repository"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
