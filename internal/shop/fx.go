package shop

import (
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("shop",
	fx.Provide(repository.Provide),
)
