package persona

import (
	"github.com/powderworks/skisim/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("persona",
	fx.Provide(config.NewPersonaConfigHolder),
	fx.Provide(func(holder *config.PersonaConfigHolder) (*Registry, error) {
		return NewRegistry(holder.Current())
	}),
)
