package invoicenumber

import "go.uber.org/fx"

var Module = fx.Module("invoicenumber",
	fx.Provide(NewProvider),
)
