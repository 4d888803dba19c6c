package population

import "go.uber.org/fx"

var Module = fx.Module("population",
	fx.Provide(
		NewRepository,
		NewService,
	),
)
