package refdata

import "go.uber.org/fx"

var Module = fx.Module("refdata",
	fx.Provide(
		NewCatalogue,
		NewSeeder,
	),
)
